package s3

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/property-atlas/pkg/models/store"
	csvstore "github.com/de-tools/property-atlas/pkg/store/csv"
	"github.com/rs/zerolog"
)

const DefaultRegion = "ap-southeast-2"

// ObjectGetter is the part of the S3 client the source needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Location is a parsed s3://bucket/key URI.
type Location struct {
	Bucket string
	Key    string
}

func (l Location) String() string {
	return fmt.Sprintf("s3://%s/%s", l.Bucket, l.Key)
}

func ParseURI(uri string) (Location, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return Location{}, fmt.Errorf("invalid s3 uri %q: %w", uri, err)
	}
	if u.Scheme != "s3" {
		return Location{}, fmt.Errorf("invalid s3 uri %q: scheme must be s3", uri)
	}
	loc := Location{Bucket: u.Host, Key: strings.TrimPrefix(u.Path, "/")}
	if loc.Bucket == "" || loc.Key == "" {
		return Location{}, fmt.Errorf("invalid s3 uri %q: bucket and key are required", uri)
	}
	return loc, nil
}

// Source streams a CSV export stored in S3.
type Source struct {
	client ObjectGetter
	loc    Location
}

func NewSource(client ObjectGetter, loc Location) *Source {
	return &Source{client: client, loc: loc}
}

// NewSourceFromURI builds a client from the default AWS credential chain.
func NewSourceFromURI(ctx context.Context, uri string) (*Source, error) {
	loc, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	cfg, err := LoadConfig(ctx)
	if err != nil {
		return nil, err
	}
	return NewSource(s3.NewFromConfig(*cfg), loc), nil
}

func LoadConfig(ctx context.Context) (*awssdk.Config, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithDefaultRegion(DefaultRegion))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return &awsCfg, nil
}

func (s *Source) ReadRecords(ctx context.Context) ([]store.RawRecord, error) {
	logger := zerolog.Ctx(ctx)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: awssdk.String(s.loc.Bucket),
		Key:    awssdk.String(s.loc.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.loc, err)
	}
	defer func() {
		if err := out.Body.Close(); err != nil {
			logger.Warn().Err(err).Str("object", s.loc.String()).Msg("failed to close object body")
		}
	}()

	records, err := csvstore.Read(ctx, out.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.loc, err)
	}
	logger.Debug().Str("object", s.loc.String()).Int("rows", len(records)).Msg("object read")
	return records, nil
}
