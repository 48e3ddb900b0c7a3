package dashboard

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/property-atlas/pkg/models/api"
	"github.com/de-tools/property-atlas/pkg/models/domain"
	"github.com/de-tools/property-atlas/pkg/services/aggregate"
	"github.com/de-tools/property-atlas/pkg/services/dataset"
	"github.com/de-tools/property-atlas/pkg/services/forecast"
	"github.com/de-tools/property-atlas/pkg/services/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func month(m time.Month) time.Time {
	return time.Date(2024, m, 1, 0, 0, 0, 0, time.UTC)
}

func newTestRouter() *Router {
	data := dataset.New([]domain.PeriodRecord{
		{Location: "Bondi", PropertyType: "Apartment", Date: month(1), RentReceived: 1000, Utilities: 100, NetIncome: 900},
		{Location: "Bondi", PropertyType: "Apartment", Date: month(2), RentReceived: 1100, Utilities: 100, NetIncome: 1000},
		{Location: "Manly", PropertyType: "Studio", Date: month(1), RentReceived: 800, NetIncome: 800},
	})
	ctrl := view.NewController(data, aggregate.New(), forecast.NewEngine())
	return NewRouter(ctrl, Settings{Financing: domain.DefaultFinancing(), HorizonMonths: 3})
}

func serve(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func TestListProperties(t *testing.T) {
	rr := serve(newTestRouter(), "/properties")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	props := decode[[]api.Property](t, rr)
	require.Len(t, props, 2)
	assert.Equal(t, "Bondi Apartment", props[0].Name)
	assert.Nil(t, props[0].Latitude)
}

func TestPlaceholderOnEmptySelection(t *testing.T) {
	router := newTestRouter()
	for _, path := range []string{"/overview", "/expenses", "/forecast", "/map"} {
		t.Run(path, func(t *testing.T) {
			rr := serve(router, path)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, api.Placeholder{Placeholder: domain.PlaceholderText}, decode[api.Placeholder](t, rr))
		})
	}
}

func TestGetOverview(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantStatus  int
		wantDefined bool
	}{
		{name: "default financing", query: "?property=Bondi", wantStatus: http.StatusOK, wantDefined: true},
		{name: "zero investment", query: "?property=Bondi&purchase_price=0&down_payment=0", wantStatus: http.StatusOK},
		{name: "bad number", query: "?property=Bondi&purchase_price=lots", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(newTestRouter(), "/overview"+tt.query)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			o := decode[api.Overview](t, rr)
			assert.Equal(t, tt.wantDefined, o.ROI.Defined)
			if tt.wantDefined {
				require.NotNil(t, o.ROI.Ratio)
				// mean NOI 950, investment 140000
				assert.InDelta(t, 950.0*12/140000, *o.ROI.Ratio, 1e-12)
			} else {
				assert.Nil(t, o.ROI.Ratio)
				assert.Nil(t, o.ROI.Percent)
			}
			assert.Len(t, o.Trend, 2)
		})
	}
}

func TestGetExpenseAnalysis_NullRatios(t *testing.T) {
	rr := serve(newTestRouter(), "/expenses?property=Manly")

	require.Equal(t, http.StatusOK, rr.Code)
	e := decode[api.ExpenseAnalysis](t, rr)
	require.NotNil(t, e.Metrics.Total)
	assert.Equal(t, 0.0, *e.Metrics.Total)
	assert.Nil(t, e.Metrics.MaintenanceCostRatioPercent, "zero operating expenses")
	assert.Nil(t, e.Metrics.MonthlyVolatility, "single period")
	assert.Len(t, e.Breakdown, len(domain.ExpenseCategories))

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	var metrics map[string]any
	require.NoError(t, json.Unmarshal(raw["metrics"], &metrics))
	v, ok := metrics["maintenance_cost_ratio_percent"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestUnknownLocation(t *testing.T) {
	router := newTestRouter()

	t.Run("overview", func(t *testing.T) {
		rr := serve(router, "/overview?property=Nowhere")

		require.Equal(t, http.StatusOK, rr.Code)
		o := decode[api.Overview](t, rr)
		assert.False(t, o.ROI.Defined)
		assert.Nil(t, o.ROI.Ratio)
		assert.Nil(t, o.ROI.AnnualIncome)
		require.NotNil(t, o.ROI.TotalInvestment)
		assert.Equal(t, 140000.0, *o.ROI.TotalInvestment)
		assert.Nil(t, o.MeanNetIncome)
		assert.Empty(t, o.Trend)
	})

	t.Run("view", func(t *testing.T) {
		rr := serve(router, "/view?view=overview&property=Nowhere")

		require.Equal(t, http.StatusOK, rr.Code)
		vm := decode[api.ViewModel](t, rr)
		require.NotNil(t, vm.Overview)
		assert.False(t, vm.Overview.ROI.Defined)
	})

	t.Run("expenses", func(t *testing.T) {
		rr := serve(router, "/expenses?property=Nowhere")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Nil(t, decode[api.ExpenseAnalysis](t, rr).Metrics.AverageMonthly)
	})
}

func TestGetIncomeTrend(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantPoints []string
	}{
		{name: "monthly by default", query: "?property=Bondi,Manly", wantStatus: http.StatusOK, wantPoints: []string{"2024-01", "2024-02"}},
		{name: "quarterly", query: "?property=Bondi,Manly&granularity=quarter", wantStatus: http.StatusOK, wantPoints: []string{"2024-Q1"}},
		{name: "yearly", query: "?property=Bondi&granularity=year", wantStatus: http.StatusOK, wantPoints: []string{"2024"}},
		{name: "bad granularity", query: "?property=Bondi&granularity=week", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(newTestRouter(), "/trend"+tt.query)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			trend := decode[api.IncomeTrend](t, rr)
			var periods []string
			for _, p := range trend.Points {
				periods = append(periods, p.Period)
			}
			assert.Equal(t, tt.wantPoints, periods)
		})
	}

	t.Run("quarter sums", func(t *testing.T) {
		trend := decode[api.IncomeTrend](t, serve(newTestRouter(), "/trend?property=Bondi,Manly&granularity=quarter"))

		assert.Equal(t, "quarter", trend.Granularity)
		require.Len(t, trend.Points, 1)
		assert.Equal(t, 2900.0, trend.Points[0].Income)
		assert.Equal(t, 200.0, trend.Points[0].Expenses)
	})

	t.Run("placeholder", func(t *testing.T) {
		rr := serve(newTestRouter(), "/trend?granularity=year")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, domain.PlaceholderText, decode[api.Placeholder](t, rr).Placeholder)
	})
}

func TestGetForecast(t *testing.T) {
	t.Run("default horizon", func(t *testing.T) {
		rr := serve(newTestRouter(), "/forecast?property=Bondi")

		require.Equal(t, http.StatusOK, rr.Code)
		f := decode[api.Forecast](t, rr)
		assert.Equal(t, 3, f.HorizonMonths)
		assert.Equal(t, []string{"2024-03", "2024-04", "2024-05"}, f.Periods)
		assert.InDelta(t, 1000*(1+1.0/9), f.Values[0], 1e-9)
	})

	t.Run("explicit horizon", func(t *testing.T) {
		rr := serve(newTestRouter(), "/forecast?property=Bondi&horizon=6")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decode[api.Forecast](t, rr).Values, 6)
	})

	t.Run("insufficient history", func(t *testing.T) {
		rr := serve(newTestRouter(), "/forecast?property=Manly")

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.NotEmpty(t, decode[api.Error](t, rr).Error)
	})

	t.Run("bad horizon", func(t *testing.T) {
		rr := serve(newTestRouter(), "/forecast?property=Bondi&horizon=-1")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestValidateFinancing(t *testing.T) {
	tests := []struct {
		query string
		want  api.Validation
	}{
		{"?purchase_price=500000&down_payment=100000&interest_rate=5", api.Validation{PurchasePriceValid: true, DownPaymentValid: true, InterestRateValid: true}},
		{"?purchase_price=500000&down_payment=600000&interest_rate=5", api.Validation{PurchasePriceValid: true, DownPaymentValid: false, InterestRateValid: true}},
		{"?purchase_price=0&down_payment=100000&interest_rate=25", api.Validation{PurchasePriceValid: false, DownPaymentValid: true, InterestRateValid: false}},
		{"", api.Validation{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rr := serve(newTestRouter(), "/validate"+tt.query)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.want, decode[api.Validation](t, rr))
		})
	}
}

func TestGetView(t *testing.T) {
	router := newTestRouter()

	t.Run("placeholder keeps validation", func(t *testing.T) {
		rr := serve(router, "/view?view=expenses&interest_rate=30")

		require.Equal(t, http.StatusOK, rr.Code)
		vm := decode[api.ViewModel](t, rr)
		assert.Equal(t, domain.PlaceholderText, vm.Placeholder)
		assert.False(t, vm.Validation.InterestRateValid)
		assert.True(t, vm.Validation.PurchasePriceValid)
		assert.Nil(t, vm.Expenses)
	})

	t.Run("forecast unavailable", func(t *testing.T) {
		rr := serve(router, "/view?view=forecast&property=Manly")

		require.Equal(t, http.StatusOK, rr.Code)
		vm := decode[api.ViewModel](t, rr)
		assert.Nil(t, vm.Forecast)
		assert.NotEmpty(t, vm.ForecastUnavailable)
	})

	t.Run("comma separated selection", func(t *testing.T) {
		rr := serve(router, "/view?property=Bondi,Manly&property=Bondi")

		require.Equal(t, http.StatusOK, rr.Code)
		vm := decode[api.ViewModel](t, rr)
		assert.Equal(t, "overview", vm.View)
		require.NotNil(t, vm.Overview)
		assert.Len(t, vm.Overview.Trend, 2)
	})

	t.Run("unknown view", func(t *testing.T) {
		rr := serve(router, "/view?view=map")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

type mockService struct {
	mock.Mock
}

func (m *mockService) Properties() []domain.Property {
	return m.Called().Get(0).([]domain.Property)
}

func (m *mockService) Recompute(state domain.ViewState) (domain.ViewModel, error) {
	args := m.Called(state)
	return args.Get(0).(domain.ViewModel), args.Error(1)
}

func (m *mockService) GetOverview(sel domain.Selection, params domain.FinancingParameters) (domain.OverviewResult, error) {
	args := m.Called(sel, params)
	return args.Get(0).(domain.OverviewResult), args.Error(1)
}

func (m *mockService) GetIncomeTrend(sel domain.Selection, g domain.Granularity) ([]domain.IncomeTrendPoint, error) {
	args := m.Called(sel, g)
	return args.Get(0).([]domain.IncomeTrendPoint), args.Error(1)
}

func (m *mockService) GetExpenseAnalysis(sel domain.Selection) (domain.ExpenseAnalysisResult, error) {
	args := m.Called(sel)
	return args.Get(0).(domain.ExpenseAnalysisResult), args.Error(1)
}

func (m *mockService) GetForecast(sel domain.Selection, horizonMonths int) (domain.ForecastResult, error) {
	args := m.Called(sel, horizonMonths)
	return args.Get(0).(domain.ForecastResult), args.Error(1)
}

func (m *mockService) GetPropertyMap(sel domain.Selection) (domain.MapResult, error) {
	args := m.Called(sel)
	return args.Get(0).(domain.MapResult), args.Error(1)
}

func (m *mockService) ValidateFinancingInputs(params domain.FinancingParameters) domain.ValidationResult {
	return m.Called(params).Get(0).(domain.ValidationResult)
}

func TestInternalError(t *testing.T) {
	svc := new(mockService)
	svc.On("GetExpenseAnalysis", domain.Selection{"Bondi"}).Return(domain.ExpenseAnalysisResult{}, assert.AnError)
	router := NewRouter(svc, Settings{})

	rr := serve(router, "/expenses?property=Bondi")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "internal error", decode[api.Error](t, rr).Error)
	svc.AssertExpectations(t)
}

func TestUnencodableResult(t *testing.T) {
	svc := new(mockService)
	svc.On("GetForecast", domain.Selection{"Bondi"}, 3).Return(domain.ForecastResult{
		HorizonMonths: 3,
		MeanGrowth:    math.NaN(),
	}, nil)

	rr := serve(NewRouter(svc, Settings{HorizonMonths: 3}), "/forecast?property=Bondi")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotEqual(t, "application/json", rr.Header().Get("Content-Type"))
	svc.AssertExpectations(t)
}

func TestGetOverview_FillsDefaults(t *testing.T) {
	svc := new(mockService)
	defaults := domain.DefaultFinancing()
	want := defaults
	want.DownPayment = domain.Amount(50_000)
	want.InterestRate = nil
	svc.On("GetOverview", domain.Selection{"Bondi"}, want).Return(domain.OverviewResult{}, nil)

	rr := serve(NewRouter(svc, Settings{Financing: defaults}), "/overview?property=Bondi&down_payment=50000&interest_rate=")

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}
