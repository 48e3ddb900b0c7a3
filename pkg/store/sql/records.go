package sql

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/de-tools/property-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

type RecordReader interface {
	ReadRecords(ctx context.Context) ([]store.RawRecord, error)
}

type reader struct {
	db    *sql.DB
	table string
}

// NewRecordReader reads every row of table. Column names are canonicalised the
// same way CSV headers are, so any SQL source with the period columns works.
func NewRecordReader(db *sql.DB, table string) (RecordReader, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if !identifier.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &reader{db: db, table: table}, nil
}

func (r *reader) ReadRecords(ctx context.Context) ([]store.RawRecord, error) {
	logger := zerolog.Ctx(ctx)
	query := fmt.Sprintf(`SELECT * FROM %s ORDER BY %s, %s`, r.table, store.ColumnDate, store.ColumnLocation)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s query failed: %w", r.table, err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			logger.Warn().Err(err).Msg("failed to close record query rows")
		}
	}(rows)

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	columns := make([]string, len(names))
	for i, n := range names {
		columns[i] = store.CanonicalColumn(n)
	}

	var (
		records []store.RawRecord
		line    int
	)
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		line++
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", line, err)
		}
		fields := make(map[string]string, len(columns))
		for i, c := range columns {
			fields[c] = format(values[i])
		}
		records = append(records, store.RawRecord{Line: line, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	logger.Debug().Str("table", r.table).Int("rows", len(records)).Msg("records read")
	return records, nil
}

// format renders a driver value the way it would appear in a CSV export.
func format(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case bool:
		if t {
			return "1"
		}
		return "0"
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format("2006-01-02 15:04:05")
	}
	return fmt.Sprint(v)
}
