package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/de-tools/property-atlas/pkg/models/domain"
	"github.com/de-tools/property-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

// Read parses a header row followed by data rows. Header names are
// canonicalised; unknown columns are kept under their normalised name.
// Line numbers are 1-based and count the header.
func Read(ctx context.Context, r io.Reader) ([]store.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = store.CanonicalColumn(h)
	}

	var (
		records []store.RawRecord
		line    = 1
	)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		if blank(row) {
			continue
		}
		if len(row) > len(columns) {
			return nil, &domain.SchemaError{Line: line, Reason: fmt.Sprintf("expected %d fields, got %d", len(columns), len(row))}
		}
		fields := make(map[string]string, len(columns))
		for i, c := range columns {
			if i < len(row) {
				fields[c] = row[i]
			}
		}
		records = append(records, store.RawRecord{Line: line, Fields: fields})
	}

	zerolog.Ctx(ctx).Debug().Int("rows", len(records)).Msg("csv parsed")
	return records, nil
}

func ReadFile(ctx context.Context, path string) ([]store.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("failed to close csv file")
		}
	}()
	return Read(ctx, f)
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
