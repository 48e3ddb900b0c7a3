package adapters

import (
	"math"

	"github.com/de-tools/property-atlas/pkg/models/api"
	"github.com/de-tools/property-atlas/pkg/models/domain"
)

// nullable maps NaN and infinities to nil so the value encodes as JSON null.
func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func MapPropertyDomainToApi(p domain.Property) api.Property {
	out := api.Property{
		Location: p.Location,
		Type:     p.Type,
		Name:     p.Name,
	}
	if p.HasCoordinates {
		out.Latitude = nullable(p.Coordinates.Latitude)
		out.Longitude = nullable(p.Coordinates.Longitude)
	}
	return out
}

func MapPropertiesDomainToApi(props []domain.Property) []api.Property {
	out := make([]api.Property, 0, len(props))
	for _, p := range props {
		out = append(out, MapPropertyDomainToApi(p))
	}
	return out
}

func MapROIDomainToApi(r domain.ROI) api.ROI {
	out := api.ROI{
		AnnualIncome:    nullable(r.AnnualIncome),
		TotalInvestment: nullable(r.TotalInvestment),
		Defined:         r.Defined,
	}
	if r.Defined {
		out.Ratio = nullable(r.Ratio)
		out.Percent = nullable(r.Percent())
	}
	return out
}

func mapIncomeTrendPoints(points []domain.IncomeTrendPoint) []api.IncomeTrendPoint {
	out := make([]api.IncomeTrendPoint, 0, len(points))
	for _, p := range points {
		out = append(out, api.IncomeTrendPoint{
			Period:    p.Period,
			Income:    p.Income,
			Expenses:  p.Expenses,
			NetIncome: p.NetIncome,
		})
	}
	return out
}

func MapIncomeTrendDomainToApi(g domain.Granularity, points []domain.IncomeTrendPoint) api.IncomeTrend {
	return api.IncomeTrend{Granularity: string(g), Points: mapIncomeTrendPoints(points)}
}

func MapOverviewDomainToApi(o domain.OverviewResult) api.Overview {
	trend := mapIncomeTrendPoints(o.Trend)
	return api.Overview{
		ROI:                    MapROIDomainToApi(o.ROI),
		MeanNetIncome:          nullable(o.MeanNetIncome),
		OccupancyRate:          nullable(o.OccupancyRate),
		AverageMonthlyIncome:   nullable(o.AverageMonthlyIncome),
		AverageMonthlyExpenses: nullable(o.AverageMonthlyExpenses),
		Trend:                  trend,
	}
}

func MapExpenseAnalysisDomainToApi(e domain.ExpenseAnalysisResult) api.ExpenseAnalysis {
	breakdown := make([]api.ExpenseShare, 0, len(e.Breakdown))
	for _, s := range e.Breakdown {
		breakdown = append(breakdown, api.ExpenseShare{Category: s.Category.Label, Mean: nullable(s.Mean)})
	}
	trend := make([]api.ExpenseTrendPoint, 0, len(e.Trend))
	for _, p := range e.Trend {
		trend = append(trend, api.ExpenseTrendPoint{
			Period:            p.Period,
			OperatingExpenses: p.OperatingExpenses,
			Maintenance:       p.Maintenance,
		})
	}
	m := e.Metrics
	return api.ExpenseAnalysis{
		Metrics: api.ExpenseMetrics{
			Total:                       nullable(m.Total),
			AverageMonthly:              nullable(m.AverageMonthly),
			Max:                         nullable(m.Max),
			Min:                         nullable(m.Min),
			ExpenseToIncomeRatioPercent: nullable(m.ExpenseToIncomeRatioPercent),
			AverageCostPerProperty:      nullable(m.AverageCostPerProperty),
			MonthlyVolatility:           nullable(m.MonthlyVolatility),
			MaintenanceCostRatioPercent: nullable(m.MaintenanceCostRatioPercent),
		},
		Breakdown: breakdown,
		Trend:     trend,
	}
}

func MapForecastDomainToApi(f domain.ForecastResult) api.Forecast {
	out := api.Forecast{
		HorizonMonths:    f.HorizonMonths,
		MeanGrowth:       f.MeanGrowth,
		GrowthVolatility: f.GrowthVolatility,
		History:          make([]api.SeriesPoint, 0, len(f.History)),
		Periods:          make([]string, 0, len(f.Points)),
		Values:           make([]float64, 0, len(f.Points)),
		Upper:            make([]float64, 0, len(f.Points)),
		Lower:            make([]float64, 0, len(f.Points)),
	}
	for _, h := range f.History {
		out.History = append(out.History, api.SeriesPoint{Period: h.Period, Value: h.Value})
	}
	for _, p := range f.Points {
		out.Periods = append(out.Periods, p.Period)
		out.Values = append(out.Values, p.Value)
		out.Upper = append(out.Upper, p.Upper)
		out.Lower = append(out.Lower, p.Lower)
	}
	return out
}

func MapPropertyMapDomainToApi(m domain.MapResult) api.PropertyMap {
	out := api.PropertyMap{Markers: MapPropertiesDomainToApi(m.Markers)}
	for _, p := range m.Markers {
		if p.HasCoordinates {
			out.CenterLatitude = nullable(m.Center.Latitude)
			out.CenterLongitude = nullable(m.Center.Longitude)
			break
		}
	}
	return out
}

func MapValidationDomainToApi(v domain.ValidationResult) api.Validation {
	return api.Validation{
		PurchasePriceValid: v.PurchasePriceValid,
		DownPaymentValid:   v.DownPaymentValid,
		InterestRateValid:  v.InterestRateValid,
	}
}

func MapViewModelDomainToApi(vm domain.ViewModel) api.ViewModel {
	out := api.ViewModel{
		View:                string(vm.View),
		Placeholder:         vm.Placeholder,
		Validation:          MapValidationDomainToApi(vm.Validation),
		ForecastUnavailable: vm.ForecastUnavailable,
	}
	if vm.Overview != nil {
		o := MapOverviewDomainToApi(*vm.Overview)
		out.Overview = &o
	}
	if vm.Expenses != nil {
		e := MapExpenseAnalysisDomainToApi(*vm.Expenses)
		out.Expenses = &e
	}
	if vm.Forecast != nil {
		f := MapForecastDomainToApi(*vm.Forecast)
		out.Forecast = &f
	}
	return out
}
