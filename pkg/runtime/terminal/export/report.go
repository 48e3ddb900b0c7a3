package export

import (
	"fmt"

	"github.com/de-tools/property-atlas/pkg/models/domain"
)

// Report is a titled list of sections, each a small table.
type Report struct {
	Title    string
	Subtitle string
	Sections []Section
}

type Section struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// Builder turns view results into reports.
type Builder struct {
	fmt Formatter
}

func NewBuilder(f Formatter) *Builder {
	return &Builder{fmt: f}
}

func (b *Builder) Placeholder(text string) *Report {
	return &Report{Title: text}
}

func (b *Builder) Properties(props []domain.Property) *Report {
	s := Section{Title: "Properties", Columns: []string{"Location", "Type", "Name", "Coordinates"}}
	for _, p := range props {
		s.Rows = append(s.Rows, []string{p.Location, p.Type, p.Name, b.coordinates(p)})
	}
	return &Report{Title: "Portfolio", Subtitle: fmt.Sprintf("%d properties", len(props)), Sections: []Section{s}}
}

func (b *Builder) Overview(o domain.OverviewResult, params domain.FinancingParameters, v domain.ValidationResult) *Report {
	roi := NotAvailable
	if o.ROI.Defined {
		roi = b.fmt.Percent(o.ROI.Percent())
	}
	metrics := Section{
		Title:   "Key metrics",
		Columns: []string{"Metric", "Value"},
		Rows: [][]string{
			{"ROI", roi},
			{"Annual NOI", b.fmt.Money(o.ROI.AnnualIncome)},
			{"Total investment", b.fmt.Money(o.ROI.TotalInvestment)},
			{"Mean net income", b.fmt.Money(o.MeanNetIncome)},
			{"Occupancy rate", b.fmt.Ratio(o.OccupancyRate)},
			{"Average monthly income", b.fmt.Money(o.AverageMonthlyIncome)},
			{"Average monthly expenses", b.fmt.Money(o.AverageMonthlyExpenses)},
		},
	}
	return &Report{
		Title:    "Overview",
		Subtitle: b.financingLine(params, v),
		Sections: []Section{metrics, b.incomeSection("Monthly income", o.Trend)},
	}
}

func (b *Builder) Trend(points []domain.IncomeTrendPoint, g domain.Granularity) *Report {
	return &Report{
		Title:    "Income trend",
		Subtitle: fmt.Sprintf("Grouped by %s", g),
		Sections: []Section{b.incomeSection("Income", points)},
	}
}

// WithFinancing appends per-field indicators to r when any financing input
// is invalid.
func (b *Builder) WithFinancing(r *Report, v domain.ValidationResult) *Report {
	if v.AllValid() {
		return r
	}
	r.Sections = append(r.Sections, validationSection(v))
	return r
}

func (b *Builder) incomeSection(title string, points []domain.IncomeTrendPoint) Section {
	s := Section{Title: title, Columns: []string{"Period", "Income", "Expenses", "Net income"}}
	for _, p := range points {
		s.Rows = append(s.Rows, []string{p.Period, b.fmt.Money(p.Income), b.fmt.Money(p.Expenses), b.fmt.Money(p.NetIncome)})
	}
	return s
}

func (b *Builder) Expenses(e domain.ExpenseAnalysisResult) *Report {
	m := e.Metrics
	metrics := Section{
		Title:   "Expense metrics",
		Columns: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total expenses", b.fmt.Money(m.Total)},
			{"Average monthly", b.fmt.Money(m.AverageMonthly)},
			{"Highest month", b.fmt.Money(m.Max)},
			{"Lowest month", b.fmt.Money(m.Min)},
			{"Expense to income", b.fmt.Percent(m.ExpenseToIncomeRatioPercent)},
			{"Average cost per property", b.fmt.Money(m.AverageCostPerProperty)},
			{"Monthly volatility", b.fmt.Money(m.MonthlyVolatility)},
			{"Maintenance share", b.fmt.Percent(m.MaintenanceCostRatioPercent)},
		},
	}
	breakdown := Section{Title: "Breakdown", Columns: []string{"Category", "Mean"}}
	for _, s := range e.Breakdown {
		breakdown.Rows = append(breakdown.Rows, []string{s.Category.Label, b.fmt.Money(s.Mean)})
	}
	trend := Section{Title: "Monthly expenses", Columns: []string{"Period", "Operating", "Maintenance"}}
	for _, p := range e.Trend {
		trend.Rows = append(trend.Rows, []string{p.Period, b.fmt.Money(p.OperatingExpenses), b.fmt.Money(p.Maintenance)})
	}
	return &Report{Title: "Expense analysis", Sections: []Section{metrics, breakdown, trend}}
}

func (b *Builder) Forecast(f domain.ForecastResult) *Report {
	s := Section{Title: "Projected NOI", Columns: []string{"Period", "Forecast", "Lower", "Upper"}}
	for _, p := range f.Points {
		s.Rows = append(s.Rows, []string{p.Period, b.fmt.Money(p.Value), b.fmt.Money(p.Lower), b.fmt.Money(p.Upper)})
	}
	return &Report{
		Title: "Forecast",
		Subtitle: fmt.Sprintf("%d months, mean growth %s, volatility %s",
			f.HorizonMonths, b.fmt.Ratio(f.MeanGrowth), b.fmt.Ratio(f.GrowthVolatility)),
		Sections: []Section{s},
	}
}

func (b *Builder) Map(m domain.MapResult) *Report {
	s := Section{Title: "Markers", Columns: []string{"Name", "Latitude", "Longitude"}}
	for _, p := range m.Markers {
		lat, long := NotAvailable, NotAvailable
		if p.HasCoordinates {
			lat, long = b.fmt.Number(p.Coordinates.Latitude, 4), b.fmt.Number(p.Coordinates.Longitude, 4)
		}
		s.Rows = append(s.Rows, []string{p.Name, lat, long})
	}
	return &Report{
		Title:    "Property map",
		Subtitle: fmt.Sprintf("Centre %s, %s", b.fmt.Number(m.Center.Latitude, 4), b.fmt.Number(m.Center.Longitude, 4)),
		Sections: []Section{s},
	}
}

func (b *Builder) Validation(v domain.ValidationResult) *Report {
	return &Report{
		Title:    "Financing inputs",
		Sections: []Section{validationSection(v)},
	}
}

func validationSection(v domain.ValidationResult) Section {
	return Section{
		Title:   "Validation",
		Columns: []string{"Field", "Status"},
		Rows: [][]string{
			{"Purchase price", status(v.PurchasePriceValid)},
			{"Down payment", status(v.DownPaymentValid)},
			{"Interest rate", status(v.InterestRateValid)},
		},
	}
}

func (b *Builder) financingLine(p domain.FinancingParameters, v domain.ValidationResult) string {
	line := fmt.Sprintf("Purchase price %s, down payment %s, interest rate %s",
		b.amount(p.PurchasePrice), b.amount(p.DownPayment), b.rate(p.InterestRate))
	if !v.AllValid() {
		line += " (invalid inputs)"
	}
	return line
}

func (b *Builder) amount(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return b.fmt.Money(*v)
}

func (b *Builder) rate(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return b.fmt.Percent(*v)
}

func (b *Builder) coordinates(p domain.Property) string {
	if !p.HasCoordinates {
		return NotAvailable
	}
	return b.fmt.Number(p.Coordinates.Latitude, 4) + ", " + b.fmt.Number(p.Coordinates.Longitude, 4)
}

func status(valid bool) string {
	if valid {
		return "ok"
	}
	return "invalid"
}
