package s3

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(*params.Bucket, *params.Key)
	if out := args.Get(0); out != nil {
		return out.(*s3.GetObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestParseURI(t *testing.T) {
	tests := []struct {
		uri     string
		want    Location
		wantErr bool
	}{
		{uri: "s3://atlas/exports/records.csv", want: Location{Bucket: "atlas", Key: "exports/records.csv"}},
		{uri: "s3://atlas/", wantErr: true},
		{uri: "s3:///records.csv", wantErr: true},
		{uri: "gs://atlas/records.csv", wantErr: true},
		{uri: "records.csv", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := ParseURI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.uri, got.String())
		})
	}
}

func TestSource_ReadRecords(t *testing.T) {
	client := new(mockClient)
	body := "date,location\n2024-01-01,Bondi\n"
	client.On("GetObject", "atlas", "records.csv").
		Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil)

	records, err := NewSource(client, Location{Bucket: "atlas", Key: "records.csv"}).ReadRecords(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Bondi", records[0].Fields["location"])
	client.AssertExpectations(t)
}

func TestSource_ReadRecordsError(t *testing.T) {
	client := new(mockClient)
	client.On("GetObject", "atlas", "missing.csv").Return(nil, assert.AnError)

	_, err := NewSource(client, Location{Bucket: "atlas", Key: "missing.csv"}).ReadRecords(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
}
