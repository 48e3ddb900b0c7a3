package api

// Nullable numbers are encoded as null when the metric is undefined.

type Property struct {
	Location  string   `json:"location"`
	Type      string   `json:"property_type"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type Placeholder struct {
	Placeholder string `json:"placeholder"`
}

type ROI struct {
	Ratio           *float64 `json:"ratio"`
	Percent         *float64 `json:"percent"`
	AnnualIncome    *float64 `json:"annual_income"`
	TotalInvestment *float64 `json:"total_investment"`
	Defined         bool     `json:"defined"`
}

type IncomeTrendPoint struct {
	Period    string  `json:"period"`
	Income    float64 `json:"income"`
	Expenses  float64 `json:"expenses"`
	NetIncome float64 `json:"net_income"`
}

type IncomeTrend struct {
	Granularity string             `json:"granularity"`
	Points      []IncomeTrendPoint `json:"points"`
}

type Overview struct {
	ROI                    ROI                `json:"roi"`
	MeanNetIncome          *float64           `json:"mean_net_income"`
	OccupancyRate          *float64           `json:"occupancy_rate"`
	AverageMonthlyIncome   *float64           `json:"average_monthly_income"`
	AverageMonthlyExpenses *float64           `json:"average_monthly_expenses"`
	Trend                  []IncomeTrendPoint `json:"trend"`
}

type ExpenseMetrics struct {
	Total                       *float64 `json:"total"`
	AverageMonthly              *float64 `json:"average_monthly"`
	Max                         *float64 `json:"max"`
	Min                         *float64 `json:"min"`
	ExpenseToIncomeRatioPercent *float64 `json:"expense_to_income_ratio_percent"`
	AverageCostPerProperty      *float64 `json:"average_cost_per_property"`
	MonthlyVolatility           *float64 `json:"monthly_volatility"`
	MaintenanceCostRatioPercent *float64 `json:"maintenance_cost_ratio_percent"`
}

type ExpenseShare struct {
	Category string   `json:"category"`
	Mean     *float64 `json:"mean"`
}

type ExpenseTrendPoint struct {
	Period            string  `json:"period"`
	OperatingExpenses float64 `json:"operating_expenses"`
	Maintenance       float64 `json:"maintenance"`
}

type ExpenseAnalysis struct {
	Metrics   ExpenseMetrics      `json:"metrics"`
	Breakdown []ExpenseShare      `json:"breakdown"`
	Trend     []ExpenseTrendPoint `json:"trend"`
}

type SeriesPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

type Forecast struct {
	HorizonMonths    int           `json:"horizon_months"`
	MeanGrowth       float64       `json:"mean_growth"`
	GrowthVolatility float64       `json:"growth_volatility"`
	History          []SeriesPoint `json:"history"`
	Periods          []string      `json:"periods"`
	Values           []float64     `json:"values"`
	Upper            []float64     `json:"upper"`
	Lower            []float64     `json:"lower"`
}

type PropertyMap struct {
	CenterLatitude  *float64   `json:"center_latitude"`
	CenterLongitude *float64   `json:"center_longitude"`
	Markers         []Property `json:"markers"`
}

type Validation struct {
	PurchasePriceValid bool `json:"purchase_price_valid"`
	DownPaymentValid   bool `json:"down_payment_valid"`
	InterestRateValid  bool `json:"interest_rate_valid"`
}

// ViewModel is the response of a full recompute.
type ViewModel struct {
	View                string           `json:"view"`
	Placeholder         string           `json:"placeholder,omitempty"`
	Validation          Validation       `json:"validation"`
	Overview            *Overview        `json:"overview,omitempty"`
	Expenses            *ExpenseAnalysis `json:"expenses,omitempty"`
	Forecast            *Forecast        `json:"forecast,omitempty"`
	ForecastUnavailable string           `json:"forecast_unavailable,omitempty"`
}

type Error struct {
	Error string `json:"error"`
}
