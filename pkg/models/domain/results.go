package domain

import "math"

type AggregateOp string

const (
	OpSum  AggregateOp = "sum"
	OpMean AggregateOp = "mean"
)

// PeriodAggregate holds the aggregated fields for one calendar bucket.
type PeriodAggregate struct {
	Period string
	Values map[Field]float64
}

// IncomeMetrics are the point statistics shown on the overview.
type IncomeMetrics struct {
	MeanNetIncome       float64
	MeanVacancyFraction float64
}

func (m IncomeMetrics) OccupancyRate() float64 {
	return 1 - m.MeanVacancyFraction
}

// ROI is annualized NOI over total invested capital. Defined is false when the
// investment is zero.
type ROI struct {
	Ratio           float64
	AnnualIncome    float64
	TotalInvestment float64
	Defined         bool
}

func (r ROI) Percent() float64 {
	if !r.Defined {
		return math.NaN()
	}
	return r.Ratio * 100
}

type ExpenseShare struct {
	Category ExpenseCategory
	Mean     float64
}

// ExpenseMetrics summarises operating expenses over a selection. Ratios and the
// volatility are NaN when undefined.
type ExpenseMetrics struct {
	Total                       float64
	AverageMonthly              float64
	Max                         float64
	Min                         float64
	ExpenseToIncomeRatioPercent float64
	AverageCostPerProperty      float64
	MonthlyVolatility           float64
	MaintenanceCostRatioPercent float64
}

type IncomeTrendPoint struct {
	Period    string
	Income    float64
	Expenses  float64
	NetIncome float64
}

type ExpenseTrendPoint struct {
	Period            string
	OperatingExpenses float64
	Maintenance       float64
}

type OverviewResult struct {
	ROI                    ROI
	MeanNetIncome          float64
	OccupancyRate          float64
	Trend                  []IncomeTrendPoint
	AverageMonthlyIncome   float64
	AverageMonthlyExpenses float64
}

type ExpenseAnalysisResult struct {
	Metrics   ExpenseMetrics
	Breakdown []ExpenseShare
	Trend     []ExpenseTrendPoint
}

type SeriesPoint struct {
	Period string
	Value  float64
}

type ForecastPoint struct {
	Period string
	Value  float64
	Upper  float64
	Lower  float64
}

type ForecastResult struct {
	History          []SeriesPoint
	Points           []ForecastPoint
	MeanGrowth       float64
	GrowthVolatility float64
	HorizonMonths    int
}

type MapResult struct {
	Center  Coordinates
	Markers []Property
}

// ValidationResult flags each financing field independently.
type ValidationResult struct {
	PurchasePriceValid bool
	DownPaymentValid   bool
	InterestRateValid  bool
}

func (v ValidationResult) AllValid() bool {
	return v.PurchasePriceValid && v.DownPaymentValid && v.InterestRateValid
}

// ViewModel is the assembled output of one recompute. When Placeholder is set
// no view result is populated.
type ViewModel struct {
	View        View
	Placeholder string
	Validation  ValidationResult

	Overview *OverviewResult
	Expenses *ExpenseAnalysisResult
	Forecast *ForecastResult

	// ForecastUnavailable explains why Forecast is nil on the forecast view.
	ForecastUnavailable string
}

func (vm ViewModel) IsPlaceholder() bool {
	return vm.Placeholder != ""
}
