package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/property-atlas/pkg/models/store"
	"github.com/de-tools/property-atlas/pkg/store/duckdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticFactory(rows ...store.RawRecord) Factory {
	return func(context.Context, string) (Reader, func() error, error) {
		return ReaderFunc(func(context.Context) ([]store.RawRecord, error) { return rows, nil }), noop, nil
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("mem", staticFactory()))
	assert.Error(t, r.Register("mem", staticFactory()), "duplicate scheme")
	assert.Error(t, r.Register("", staticFactory()))
	assert.Error(t, r.Register("other", nil))
	assert.Equal(t, []string{"mem"}, r.ListSchemes())
}

func TestRegistry_Open(t *testing.T) {
	r := NewRegistry()
	row := store.RawRecord{Line: 1, Fields: map[string]string{"location": "Bondi"}}
	require.NoError(t, r.Register("mem", staticFactory(row)))

	reader, closeFn, err := r.Open(context.Background(), "MEM://anything")
	require.NoError(t, err)
	defer closeFn()
	rows, err := reader.ReadRecords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []store.RawRecord{row}, rows)

	_, _, err = r.Open(context.Background(), "records.csv")
	assert.Error(t, err, "file is not registered on a bare registry")
}

func TestScheme(t *testing.T) {
	tests := map[string]string{
		"records.csv":             "file",
		"/data/records.csv":       "file",
		"file:///data/x.csv":      "file",
		"duckdb://atlas.db":       "duckdb",
		"s3://bucket/records.csv": "s3",
	}
	for uri, want := range tests {
		assert.Equal(t, want, Scheme(uri), uri)
	}
	assert.Equal(t, "/data/x.csv", TrimScheme("file:///data/x.csv"))
	assert.Equal(t, "atlas.db", TrimScheme("duckdb://atlas.db"))
}

func TestDefaultRegistry(t *testing.T) {
	r, err := NewDefaultRegistry(duckdb.DefaultTable)
	require.NoError(t, err)
	assert.Equal(t, []string{"duckdb", "file", "s3"}, r.ListSchemes())

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "records.csv")
		require.NoError(t, os.WriteFile(path, []byte("date,location\n2024-01-01,Bondi\n"), 0o644))

		reader, closeFn, err := r.Open(context.Background(), path)
		require.NoError(t, err)
		defer closeFn()
		rows, err := reader.ReadRecords(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Bondi", rows[0].Fields["location"])
	})

	t.Run("duckdb", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "atlas.db")
		reader, closeFn, err := r.Open(context.Background(), "duckdb://"+path)
		require.NoError(t, err)
		defer closeFn()

		rows, err := reader.ReadRecords(context.Background())
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("s3 uri must name an object", func(t *testing.T) {
		_, _, err := r.Open(context.Background(), "s3://bucket")
		assert.Error(t, err)
	})
}
