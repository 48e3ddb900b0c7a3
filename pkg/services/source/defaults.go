package source

import (
	"context"
	"fmt"

	"github.com/de-tools/property-atlas/pkg/models/store"
	csvstore "github.com/de-tools/property-atlas/pkg/store/csv"
	"github.com/de-tools/property-atlas/pkg/store/duckdb"
	"github.com/de-tools/property-atlas/pkg/store/s3"
	sqlstore "github.com/de-tools/property-atlas/pkg/store/sql"
)

// NewDefaultRegistry registers the file, duckdb and s3 sources. table names
// the SQL table read by duckdb sources.
func NewDefaultRegistry(table string) (Registry, error) {
	r := NewRegistry()
	factories := map[string]Factory{
		SchemeFile:   FileFactory,
		SchemeDuckDB: DuckDBFactory(table),
		SchemeS3:     S3Factory,
	}
	for scheme, f := range factories {
		if err := r.Register(scheme, f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func FileFactory(_ context.Context, uri string) (Reader, func() error, error) {
	path := TrimScheme(uri)
	return ReaderFunc(func(ctx context.Context) ([]store.RawRecord, error) {
		return csvstore.ReadFile(ctx, path)
	}), noop, nil
}

func DuckDBFactory(table string) Factory {
	return func(_ context.Context, uri string) (Reader, func() error, error) {
		db, err := duckdb.NewDB(duckdb.Settings{DbPath: TrimScheme(uri)})
		if err != nil {
			return nil, nil, err
		}
		reader, err := sqlstore.NewRecordReader(db, table)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("duckdb source: %w", err)
		}
		return reader, db.Close, nil
	}
}

func S3Factory(ctx context.Context, uri string) (Reader, func() error, error) {
	src, err := s3.NewSourceFromURI(ctx, uri)
	if err != nil {
		return nil, nil, err
	}
	return src, noop, nil
}
