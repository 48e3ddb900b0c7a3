package domain

import "fmt"

type View string

const (
	ViewOverview        View = "overview"
	ViewExpenseAnalysis View = "expenses"
	ViewForecast        View = "forecast"
)

func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewOverview, ViewExpenseAnalysis, ViewForecast:
		return View(s), nil
	case "":
		return ViewOverview, nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// Granularity selects the calendar key records are grouped by.
type Granularity string

const (
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

// ParseGranularity accepts month, quarter or year. Empty means month.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityMonth, GranularityQuarter, GranularityYear:
		return Granularity(s), nil
	case "":
		return GranularityMonth, nil
	}
	return "", fmt.Errorf("unknown granularity %q", s)
}

// ViewState is the full input of one recompute cycle.
type ViewState struct {
	Selection Selection
	Financing FinancingParameters
	View      View
	Horizon   int // forecast months, 0 means the default
}
