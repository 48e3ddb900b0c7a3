package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/de-tools/property-atlas/pkg/models/domain"
	"github.com/de-tools/property-atlas/pkg/stats"
)

const (
	DefaultHorizonMonths = 12
	periodLayout         = "2006-01"
)

// Engine extrapolates a monthly series by compounding its mean
// period-over-period growth. The band around each step is the growth
// volatility applied to that step's value.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Forecast projects history horizonMonths steps ahead. History must be
// chronological with YYYY-MM periods. A non-positive horizon means the default.
func (e *Engine) Forecast(history []domain.SeriesPoint, horizonMonths int) (domain.ForecastResult, error) {
	if horizonMonths <= 0 {
		horizonMonths = DefaultHorizonMonths
	}
	if len(history) < 2 {
		return domain.ForecastResult{}, domain.ErrInsufficientHistory
	}

	growth := GrowthRatios(history)
	if len(growth) == 0 {
		return domain.ForecastResult{}, fmt.Errorf("no usable growth ratio: %w", domain.ErrInsufficientHistory)
	}
	meanGrowth := stats.Mean(growth)
	volatility := 0.0
	if len(growth) > 1 {
		volatility = stats.SampleStdDev(growth)
	}

	last := history[len(history)-1]
	lastPeriod, err := time.Parse(periodLayout, last.Period)
	if err != nil {
		return domain.ForecastResult{}, fmt.Errorf("invalid period %q: %w", last.Period, err)
	}

	points := make([]domain.ForecastPoint, 0, horizonMonths)
	value := last.Value
	for step := 1; step <= horizonMonths; step++ {
		value *= 1 + meanGrowth
		points = append(points, domain.ForecastPoint{
			Period: lastPeriod.AddDate(0, step, 0).Format(periodLayout),
			Value:  value,
			Upper:  value * (1 + volatility),
			Lower:  value * (1 - volatility),
		})
	}

	return domain.ForecastResult{
		History:          append([]domain.SeriesPoint(nil), history...),
		Points:           points,
		MeanGrowth:       meanGrowth,
		GrowthVolatility: volatility,
		HorizonMonths:    horizonMonths,
	}, nil
}

// GrowthRatios returns the fractional change between consecutive points.
// Steps from a zero value are undefined and skipped.
func GrowthRatios(history []domain.SeriesPoint) []float64 {
	var out []float64
	for i := 1; i < len(history); i++ {
		prev := history[i-1].Value
		if prev == 0 {
			continue
		}
		g := (history[i].Value - prev) / prev
		if math.IsNaN(g) || math.IsInf(g, 0) {
			continue
		}
		out = append(out, g)
	}
	return out
}
