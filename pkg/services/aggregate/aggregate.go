package aggregate

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/de-tools/property-atlas/pkg/models/domain"
	"github.com/de-tools/property-atlas/pkg/stats"
)

// TransactionCostRate is the share of the purchase price assumed to go to
// stamp duty, legal and other closing costs.
const TransactionCostRate = 0.04

// RecordSource is anything that exposes the loaded period records.
type RecordSource interface {
	AllRecords() []domain.PeriodRecord
}

// Aggregator computes selection-scoped aggregates. It holds no state and is
// safe for concurrent use.
type Aggregator struct{}

func New() *Aggregator {
	return &Aggregator{}
}

// FilterBySelection keeps the records whose location is selected.
func (a *Aggregator) FilterBySelection(src RecordSource, sel domain.Selection) ([]domain.PeriodRecord, error) {
	if sel.IsEmpty() {
		return nil, domain.ErrEmptySelection
	}
	set := sel.Set()
	var out []domain.PeriodRecord
	for _, r := range src.AllRecords() {
		if _, ok := set[r.Location]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// MonthlyAggregate groups records by year_month.
func (a *Aggregator) MonthlyAggregate(records []domain.PeriodRecord, fields []domain.Field, op domain.AggregateOp) ([]domain.PeriodAggregate, error) {
	return a.PeriodAggregate(records, fields, op, domain.GranularityMonth)
}

// PeriodAggregate groups records by the calendar key of g and applies op to
// each field. Buckets are returned in chronological order.
func (a *Aggregator) PeriodAggregate(
	records []domain.PeriodRecord,
	fields []domain.Field,
	op domain.AggregateOp,
	g domain.Granularity,
) ([]domain.PeriodAggregate, error) {
	reduce, err := reducer(op)
	if err != nil {
		return nil, err
	}
	for _, f := range fields {
		if !f.Known() {
			return nil, fmt.Errorf("unknown field: %s", f)
		}
	}

	type bucket struct {
		start  time.Time
		values map[domain.Field][]float64
	}
	buckets := make(map[string]*bucket)
	for _, r := range records {
		key, start, err := periodKey(r, g)
		if err != nil {
			return nil, err
		}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{start: start, values: make(map[domain.Field][]float64, len(fields))}
			buckets[key] = b
		}
		for _, f := range fields {
			b.values[f] = append(b.values[f], f.Value(r))
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return buckets[keys[i]].start.Before(buckets[keys[j]].start)
	})

	out := make([]domain.PeriodAggregate, 0, len(keys))
	for _, k := range keys {
		agg := domain.PeriodAggregate{Period: k, Values: make(map[domain.Field]float64, len(fields))}
		for _, f := range fields {
			agg.Values[f] = reduce(buckets[k].values[f])
		}
		out = append(out, agg)
	}
	return out, nil
}

func reducer(op domain.AggregateOp) (func([]float64) float64, error) {
	switch op {
	case domain.OpSum:
		return stats.Sum, nil
	case domain.OpMean:
		return stats.Mean, nil
	}
	return nil, fmt.Errorf("unsupported aggregate op: %s", op)
}

func periodKey(r domain.PeriodRecord, g domain.Granularity) (string, time.Time, error) {
	switch g {
	case domain.GranularityMonth, "":
		return r.YearMonth, time.Date(r.Year, r.Month, 1, 0, 0, 0, 0, time.UTC), nil
	case domain.GranularityQuarter:
		return r.YearQuarter, time.Date(r.Year, time.Month((r.Quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC), nil
	case domain.GranularityYear:
		return fmt.Sprintf("%d", r.Year), time.Date(r.Year, time.January, 1, 0, 0, 0, 0, time.UTC), nil
	}
	return "", time.Time{}, fmt.Errorf("unsupported granularity: %s", g)
}

func (a *Aggregator) MeanIncomeMetrics(records []domain.PeriodRecord) domain.IncomeMetrics {
	return domain.IncomeMetrics{
		MeanNetIncome:       stats.Mean(column(records, domain.FieldNetIncome)),
		MeanVacancyFraction: stats.Mean(column(records, domain.FieldVacancy)),
	}
}

// ROI annualizes the mean NOI and divides it by the down payment plus the
// transaction costs. A negative ratio is a valid result.
func (a *Aggregator) ROI(records []domain.PeriodRecord, purchasePrice, downPayment float64) (domain.ROI, error) {
	out := domain.ROI{
		AnnualIncome:    stats.Mean(column(records, domain.FieldNOI)) * 12,
		TotalInvestment: downPayment + purchasePrice*TransactionCostRate,
	}
	if out.TotalInvestment == 0 {
		return out, domain.ErrDivisionByZero
	}
	out.Ratio = out.AnnualIncome / out.TotalInvestment
	// No records means no mean NOI, so the ratio stays undefined.
	out.Defined = !math.IsNaN(out.Ratio)
	return out, nil
}

// ExpenseBreakdown returns the mean of every expense category, in the fixed
// category order.
func (a *Aggregator) ExpenseBreakdown(records []domain.PeriodRecord) []domain.ExpenseShare {
	out := make([]domain.ExpenseShare, 0, len(domain.ExpenseCategories))
	for _, c := range domain.ExpenseCategories {
		out = append(out, domain.ExpenseShare{Category: c, Mean: stats.Mean(column(records, c.Field))})
	}
	return out
}

func (a *Aggregator) ExpenseMetricsSummary(records []domain.PeriodRecord) domain.ExpenseMetrics {
	opex := column(records, domain.FieldOperatingExpenses)
	totalOpex := stats.Sum(opex)
	totalGross := stats.Sum(column(records, domain.FieldGrossIncome))
	totalMaintenance := stats.Sum(column(records, domain.FieldMaintenance))

	return domain.ExpenseMetrics{
		Total:                       totalOpex,
		AverageMonthly:              stats.Mean(opex),
		Max:                         stats.Max(opex),
		Min:                         stats.Min(opex),
		ExpenseToIncomeRatioPercent: stats.Ratio(totalOpex, totalGross) * 100,
		AverageCostPerProperty:      meanOfLocationMeans(records),
		MonthlyVolatility:           stats.SampleStdDev(opex),
		MaintenanceCostRatioPercent: stats.Ratio(totalMaintenance, totalOpex) * 100,
	}
}

// meanOfLocationMeans averages the per-location mean operating expense, so
// every property weighs the same regardless of how many periods it has.
func meanOfLocationMeans(records []domain.PeriodRecord) float64 {
	byLocation := make(map[string][]float64)
	var order []string
	for _, r := range records {
		if _, ok := byLocation[r.Location]; !ok {
			order = append(order, r.Location)
		}
		byLocation[r.Location] = append(byLocation[r.Location], r.OperatingExpenses)
	}
	means := make([]float64, 0, len(order))
	for _, l := range order {
		means = append(means, stats.Mean(byLocation[l]))
	}
	return stats.Mean(means)
}

func column(records []domain.PeriodRecord, f domain.Field) []float64 {
	out := make([]float64, 0, len(records))
	for _, r := range records {
		out = append(out, f.Value(r))
	}
	return out
}
