package dataset

import (
	"context"
	"fmt"
	"slices"

	"github.com/de-tools/property-atlas/pkg/adapters"
	"github.com/de-tools/property-atlas/pkg/models/domain"
	"github.com/de-tools/property-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

// Registry enriches a property derived from the records with display data
// such as its name and coordinates.
type Registry interface {
	Describe(p domain.Property) domain.Property
}

type Option func(*options)

type options struct {
	registry Registry
}

func WithRegistry(r Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// Dataset is the immutable set of loaded period records. Accessors return
// copies, so callers cannot alter the loaded state.
type Dataset struct {
	records    []domain.PeriodRecord
	properties []domain.Property
}

// Load parses raw rows, derives the computed fields and builds the property
// list. Any malformed row fails the whole load with a *domain.SchemaError.
func Load(ctx context.Context, rows []store.RawRecord, opts ...Option) (*Dataset, error) {
	records := make([]domain.PeriodRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := adapters.MapStoreRecordToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("load dataset: %w", err)
		}
		records = append(records, rec)
	}

	ds := New(records, opts...)
	zerolog.Ctx(ctx).Info().
		Int("records", len(ds.records)).
		Int("properties", len(ds.properties)).
		Msg("dataset loaded")
	return ds, nil
}

// New builds a dataset from records whose source fields are set. Derived
// fields are always recomputed, whatever the input carries.
func New(records []domain.PeriodRecord, opts ...Option) *Dataset {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	ds := &Dataset{records: make([]domain.PeriodRecord, 0, len(records))}
	seen := make(map[string]struct{})
	for _, r := range records {
		r = Derive(r)
		ds.records = append(ds.records, r)

		p := domain.Property{
			Location: r.Location,
			Type:     r.PropertyType,
			Name:     displayName(r.Location, r.PropertyType),
		}
		if _, ok := seen[p.Key()]; ok {
			continue
		}
		seen[p.Key()] = struct{}{}
		if o.registry != nil {
			p = o.registry.Describe(p)
		}
		ds.properties = append(ds.properties, p)
	}
	return ds
}

// Derive fills the computed fields of r from its source fields.
func Derive(r domain.PeriodRecord) domain.PeriodRecord {
	r.GrossIncome = r.RentReceived + r.AdditionalIncome
	r.OperatingExpenses = r.ManagementFees + r.Utilities + r.StrataFees +
		r.Maintenance + r.CouncilRates + r.OtherMisc
	r.NOI = r.GrossIncome - r.OperatingExpenses
	r.TotalIncome = r.GrossIncome
	// OtherMisc is left out of TotalExpenses on purpose; the income trend has
	// always been reported this way.
	r.TotalExpenses = r.ManagementFees + r.Utilities + r.StrataFees +
		r.Maintenance + r.CouncilRates

	r.Year = r.Date.Year()
	r.Month = r.Date.Month()
	r.Quarter = (int(r.Month)-1)/3 + 1
	r.YearMonth = r.Date.Format("2006-01")
	r.YearQuarter = fmt.Sprintf("%d-Q%d", r.Year, r.Quarter)
	return r
}

func displayName(location, propertyType string) string {
	if propertyType == "" {
		return location
	}
	return location + " " + propertyType
}

func (d *Dataset) AllRecords() []domain.PeriodRecord {
	return slices.Clone(d.records)
}

// DistinctProperties lists each (location, type) pair once, in order of first
// appearance.
func (d *Dataset) DistinctProperties() []domain.Property {
	return slices.Clone(d.properties)
}

// Locations lists the distinct location identifiers in order of first
// appearance.
func (d *Dataset) Locations() []string {
	var out []string
	for _, p := range d.properties {
		if !slices.Contains(out, p.Location) {
			out = append(out, p.Location)
		}
	}
	return out
}

func (d *Dataset) Len() int {
	return len(d.records)
}
