package view

import (
	"errors"
	"fmt"

	"github.com/de-tools/property-atlas/pkg/models/domain"
	"github.com/de-tools/property-atlas/pkg/services/aggregate"
	"github.com/de-tools/property-atlas/pkg/services/validation"
	"github.com/de-tools/property-atlas/pkg/stats"
)

type Aggregator interface {
	FilterBySelection(src aggregate.RecordSource, sel domain.Selection) ([]domain.PeriodRecord, error)
	MonthlyAggregate(records []domain.PeriodRecord, fields []domain.Field, op domain.AggregateOp) ([]domain.PeriodAggregate, error)
	PeriodAggregate(records []domain.PeriodRecord, fields []domain.Field, op domain.AggregateOp, g domain.Granularity) ([]domain.PeriodAggregate, error)
	MeanIncomeMetrics(records []domain.PeriodRecord) domain.IncomeMetrics
	ROI(records []domain.PeriodRecord, purchasePrice, downPayment float64) (domain.ROI, error)
	ExpenseBreakdown(records []domain.PeriodRecord) []domain.ExpenseShare
	ExpenseMetricsSummary(records []domain.PeriodRecord) domain.ExpenseMetrics
}

type Forecaster interface {
	Forecast(history []domain.SeriesPoint, horizonMonths int) (domain.ForecastResult, error)
}

// Catalog is the loaded dataset as seen by the controller.
type Catalog interface {
	aggregate.RecordSource
	DistinctProperties() []domain.Property
}

// Controller turns a view state into view results. Every call is computed
// from its arguments alone; the controller keeps no per-session state and can
// be shared between sessions.
type Controller struct {
	data       Catalog
	aggregator Aggregator
	forecaster Forecaster
}

func NewController(data Catalog, aggregator Aggregator, forecaster Forecaster) *Controller {
	return &Controller{
		data:       data,
		aggregator: aggregator,
		forecaster: forecaster,
	}
}

// Recompute assembles the model of the active view. An empty selection yields
// the placeholder without touching the aggregator or the forecaster.
func (c *Controller) Recompute(state domain.ViewState) (domain.ViewModel, error) {
	vm := domain.ViewModel{
		View:       state.View,
		Validation: c.ValidateFinancingInputs(state.Financing),
	}
	if vm.View == "" {
		vm.View = domain.ViewOverview
	}

	if state.Selection.IsEmpty() {
		vm.Placeholder = domain.PlaceholderText
		return vm, nil
	}

	switch vm.View {
	case domain.ViewOverview:
		overview, err := c.GetOverview(state.Selection, state.Financing)
		if err != nil {
			return vm, err
		}
		vm.Overview = &overview
	case domain.ViewExpenseAnalysis:
		expenses, err := c.GetExpenseAnalysis(state.Selection)
		if err != nil {
			return vm, err
		}
		vm.Expenses = &expenses
	case domain.ViewForecast:
		forecast, err := c.GetForecast(state.Selection, state.Horizon)
		if errors.Is(err, domain.ErrInsufficientHistory) {
			vm.ForecastUnavailable = "Not enough history to forecast the selected properties"
			return vm, nil
		}
		if err != nil {
			return vm, err
		}
		vm.Forecast = &forecast
	default:
		return vm, fmt.Errorf("unknown view %q", vm.View)
	}
	return vm, nil
}

// GetOverview returns domain.ErrEmptySelection for an empty selection. A zero
// total investment is reported through ROI.Defined, not as an error.
func (c *Controller) GetOverview(sel domain.Selection, params domain.FinancingParameters) (domain.OverviewResult, error) {
	if sel.IsEmpty() {
		return domain.OverviewResult{}, domain.ErrEmptySelection
	}
	records, err := c.aggregator.FilterBySelection(c.data, sel)
	if err != nil {
		return domain.OverviewResult{}, err
	}

	income := c.aggregator.MeanIncomeMetrics(records)
	roi, err := c.aggregator.ROI(records, domain.ValueOrZero(params.PurchasePrice), domain.ValueOrZero(params.DownPayment))
	if err != nil && !errors.Is(err, domain.ErrDivisionByZero) {
		return domain.OverviewResult{}, err
	}

	monthly, err := c.aggregator.MonthlyAggregate(records, trendFields, domain.OpSum)
	if err != nil {
		return domain.OverviewResult{}, fmt.Errorf("income trend: %w", err)
	}

	trend := incomeTrend(monthly)
	incomes := make([]float64, 0, len(trend))
	expenses := make([]float64, 0, len(trend))
	for _, p := range trend {
		incomes = append(incomes, p.Income)
		expenses = append(expenses, p.Expenses)
	}

	return domain.OverviewResult{
		ROI:                    roi,
		MeanNetIncome:          income.MeanNetIncome,
		OccupancyRate:          income.OccupancyRate(),
		Trend:                  trend,
		AverageMonthlyIncome:   stats.Mean(incomes),
		AverageMonthlyExpenses: stats.Mean(expenses),
	}, nil
}

// GetIncomeTrend sums income, expenses and net income per period of g.
func (c *Controller) GetIncomeTrend(sel domain.Selection, g domain.Granularity) ([]domain.IncomeTrendPoint, error) {
	if sel.IsEmpty() {
		return nil, domain.ErrEmptySelection
	}
	records, err := c.aggregator.FilterBySelection(c.data, sel)
	if err != nil {
		return nil, err
	}
	periods, err := c.aggregator.PeriodAggregate(records, trendFields, domain.OpSum, g)
	if err != nil {
		return nil, fmt.Errorf("income trend: %w", err)
	}
	return incomeTrend(periods), nil
}

var trendFields = []domain.Field{
	domain.FieldTotalIncome,
	domain.FieldTotalExpenses,
	domain.FieldNetIncome,
}

func incomeTrend(periods []domain.PeriodAggregate) []domain.IncomeTrendPoint {
	out := make([]domain.IncomeTrendPoint, 0, len(periods))
	for _, p := range periods {
		out = append(out, domain.IncomeTrendPoint{
			Period:    p.Period,
			Income:    p.Values[domain.FieldTotalIncome],
			Expenses:  p.Values[domain.FieldTotalExpenses],
			NetIncome: p.Values[domain.FieldNetIncome],
		})
	}
	return out
}

func (c *Controller) GetExpenseAnalysis(sel domain.Selection) (domain.ExpenseAnalysisResult, error) {
	if sel.IsEmpty() {
		return domain.ExpenseAnalysisResult{}, domain.ErrEmptySelection
	}
	records, err := c.aggregator.FilterBySelection(c.data, sel)
	if err != nil {
		return domain.ExpenseAnalysisResult{}, err
	}

	monthly, err := c.aggregator.MonthlyAggregate(records, []domain.Field{
		domain.FieldOperatingExpenses,
		domain.FieldMaintenance,
	}, domain.OpSum)
	if err != nil {
		return domain.ExpenseAnalysisResult{}, fmt.Errorf("expense trend: %w", err)
	}
	trend := make([]domain.ExpenseTrendPoint, 0, len(monthly))
	for _, m := range monthly {
		trend = append(trend, domain.ExpenseTrendPoint{
			Period:            m.Period,
			OperatingExpenses: m.Values[domain.FieldOperatingExpenses],
			Maintenance:       m.Values[domain.FieldMaintenance],
		})
	}

	return domain.ExpenseAnalysisResult{
		Metrics:   c.aggregator.ExpenseMetricsSummary(records),
		Breakdown: c.aggregator.ExpenseBreakdown(records),
		Trend:     trend,
	}, nil
}

// GetForecast forecasts the monthly mean NOI of the selection. It returns
// domain.ErrInsufficientHistory when fewer than two months are usable.
func (c *Controller) GetForecast(sel domain.Selection, horizonMonths int) (domain.ForecastResult, error) {
	if sel.IsEmpty() {
		return domain.ForecastResult{}, domain.ErrEmptySelection
	}
	records, err := c.aggregator.FilterBySelection(c.data, sel)
	if err != nil {
		return domain.ForecastResult{}, err
	}

	monthly, err := c.aggregator.MonthlyAggregate(records, []domain.Field{domain.FieldNOI}, domain.OpMean)
	if err != nil {
		return domain.ForecastResult{}, fmt.Errorf("noi series: %w", err)
	}
	history := make([]domain.SeriesPoint, 0, len(monthly))
	for _, m := range monthly {
		history = append(history, domain.SeriesPoint{Period: m.Period, Value: m.Values[domain.FieldNOI]})
	}

	return c.forecaster.Forecast(history, horizonMonths)
}

// GetPropertyMap places the selected properties and centres the map on the
// mean of their known coordinates.
func (c *Controller) GetPropertyMap(sel domain.Selection) (domain.MapResult, error) {
	if sel.IsEmpty() {
		return domain.MapResult{}, domain.ErrEmptySelection
	}
	var (
		out       domain.MapResult
		lat, long []float64
	)
	for _, p := range c.data.DistinctProperties() {
		if !sel.Contains(p.Location) {
			continue
		}
		out.Markers = append(out.Markers, p)
		if p.HasCoordinates {
			lat = append(lat, p.Coordinates.Latitude)
			long = append(long, p.Coordinates.Longitude)
		}
	}
	out.Center = domain.Coordinates{Latitude: stats.Mean(lat), Longitude: stats.Mean(long)}
	return out, nil
}

func (c *Controller) ValidateFinancingInputs(params domain.FinancingParameters) domain.ValidationResult {
	return validation.ValidateFinancing(params)
}

func (c *Controller) Properties() []domain.Property {
	return c.data.DistinctProperties()
}
