package export

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/de-tools/property-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter(t *testing.T) {
	f := NewFormatter("AUD")

	assert.Equal(t, "A$1,234.57", f.Money(1234.567))
	assert.Equal(t, "$1,234.57", NewFormatter("USD").Money(1234.567))
	assert.Equal(t, NotAvailable, f.Money(math.NaN()))
	assert.Equal(t, "12.35%", f.Percent(12.345))
	assert.Equal(t, "95.00%", f.Ratio(0.95))
	assert.Equal(t, NotAvailable, f.Percent(math.Inf(1)))
	assert.Equal(t, "-33.8915", f.Number(-33.89149, 4))

	assert.Equal(t, "AUD", NewFormatter("not-a-currency").Currency())
}

func TestReporter_Table(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	err := r.Handle(&Report{
		Title:    "Overview",
		Subtitle: "two properties",
		Sections: []Section{{
			Title:   "Key metrics",
			Columns: []string{"Metric", "Value"},
			Rows:    [][]string{{"ROI", "21.64%"}, {"Occupancy rate", NotAvailable}},
		}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Overview\ntwo properties\n")
	assert.Contains(t, out, "=== Key metrics ===")
	assert.Contains(t, out, "| Metric         | Value    |")
	assert.Contains(t, out, "| Occupancy rate | N/A      |")
	assert.Contains(t, out, "+----------------+----------+")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}

func TestMarkdown(t *testing.T) {
	md := Markdown(&Report{
		Title:    "Forecast",
		Sections: []Section{{Title: "Projected NOI", Columns: []string{"Period", "Forecast"}, Rows: [][]string{{"2024-04", "$10.00"}}}},
	})

	assert.True(t, strings.HasPrefix(md, "# Forecast\n\n"))
	assert.Contains(t, md, "| Period | Forecast |\n| --- | --- |\n| 2024-04 | $10.00 |\n")
}

func TestBuilder(t *testing.T) {
	b := NewBuilder(NewFormatter("AUD"))

	t.Run("undefined roi", func(t *testing.T) {
		r := b.Overview(domain.OverviewResult{ROI: domain.ROI{Defined: false}},
			domain.FinancingParameters{PurchasePrice: domain.Amount(0)}, domain.ValidationResult{})
		assert.Equal(t, []string{"ROI", NotAvailable}, r.Sections[0].Rows[0])
		assert.Contains(t, r.Subtitle, "(invalid inputs)")
		assert.Contains(t, r.Subtitle, "down payment N/A")
	})

	t.Run("expenses keep category order", func(t *testing.T) {
		var shares []domain.ExpenseShare
		for _, c := range domain.ExpenseCategories {
			shares = append(shares, domain.ExpenseShare{Category: c, Mean: 10})
		}
		r := b.Expenses(domain.ExpenseAnalysisResult{
			Metrics:   domain.ExpenseMetrics{MaintenanceCostRatioPercent: math.NaN()},
			Breakdown: shares,
		})
		require.Len(t, r.Sections[1].Rows, 6)
		assert.Equal(t, "Management", r.Sections[1].Rows[0][0])
		assert.Equal(t, "Other", r.Sections[1].Rows[5][0])
		assert.Equal(t, []string{"Maintenance share", NotAvailable}, r.Sections[0].Rows[7])
	})

	t.Run("map without coordinates", func(t *testing.T) {
		r := b.Map(domain.MapResult{
			Center:  domain.Coordinates{Latitude: math.NaN(), Longitude: math.NaN()},
			Markers: []domain.Property{{Name: "Bondi Apartment"}},
		})
		assert.Equal(t, "Centre N/A, N/A", r.Subtitle)
		assert.Equal(t, []string{"Bondi Apartment", NotAvailable, NotAvailable}, r.Sections[0].Rows[0])
	})

	t.Run("validation", func(t *testing.T) {
		r := b.Validation(domain.ValidationResult{PurchasePriceValid: true})
		assert.Equal(t, [][]string{{"Purchase price", "ok"}, {"Down payment", "invalid"}, {"Interest rate", "invalid"}}, r.Sections[0].Rows)
	})
}
