package records

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/property-atlas/pkg/models/domain"
	"github.com/de-tools/property-atlas/pkg/store/duckdb"
)

// Store writes period records into the period_records table. Reads go
// through the generic SQL record reader so they pass the same validation as
// any other source.
type Store interface {
	Add(ctx context.Context, records []domain.PeriodRecord) error
	Count(ctx context.Context) (int64, error)
}

type recordStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &recordStore{db: db}, nil
}

// Add upserts records keyed by (location, property_type, date). It joins the
// transaction on ctx when there is one.
func (s *recordStore) Add(ctx context.Context, records []domain.PeriodRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx := duckdb.GetTransaction(ctx)
	query := `
		INSERT OR REPLACE INTO period_records (
			date, location, property_type, rent_received, additional_income,
			property_management_fees, utilities, strata_fees, routine_maintenance,
			council_rates, other_misc_costs, net_income, vacancy_status
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)`

	var stmt *sql.Stmt
	var err error
	if tx == nil {
		stmt, err = s.db.PrepareContext(ctx, query)
	} else {
		stmt, err = tx.PrepareContext(ctx, query)
	}
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err = stmt.ExecContext(ctx,
			r.Date,
			r.Location,
			r.PropertyType,
			r.RentReceived,
			r.AdditionalIncome,
			r.ManagementFees,
			r.Utilities,
			r.StrataFees,
			r.Maintenance,
			r.CouncilRates,
			r.OtherMisc,
			r.NetIncome,
			r.Vacancy,
		)
		if err != nil {
			return fmt.Errorf("insert record %s/%s: %w", r.Location, r.YearMonth, err)
		}
	}
	return nil
}

func (s *recordStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM period_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}
