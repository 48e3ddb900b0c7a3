package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const DefaultTable = "period_records"

const PeriodRecordsSchema = `
	CREATE TABLE IF NOT EXISTS period_records (
		date DATE NOT NULL,
		location VARCHAR NOT NULL,
		property_type VARCHAR NOT NULL,
		rent_received DOUBLE NOT NULL DEFAULT 0,
		additional_income DOUBLE NOT NULL DEFAULT 0,
		property_management_fees DOUBLE NOT NULL DEFAULT 0,
		utilities DOUBLE NOT NULL DEFAULT 0,
		strata_fees DOUBLE NOT NULL DEFAULT 0,
		routine_maintenance DOUBLE NOT NULL DEFAULT 0,
		council_rates DOUBLE NOT NULL DEFAULT 0,
		other_misc_costs DOUBLE NOT NULL DEFAULT 0,
		net_income DOUBLE NOT NULL DEFAULT 0,
		vacancy_status DOUBLE NOT NULL DEFAULT 0,
		PRIMARY KEY (location, property_type, date)
	);
`

var bootQueries = []string{
	PeriodRecordsSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens the database at settings.DbPath (":memory:" for a throwaway
// one) and makes sure the period_records table exists.
func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("open duckdb %q: %w", settings.DbPath, err)
	}

	return sql.OpenDB(c), nil
}
