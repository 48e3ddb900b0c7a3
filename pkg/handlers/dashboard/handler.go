package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/de-tools/property-atlas/pkg/adapters"
	"github.com/de-tools/property-atlas/pkg/models/api"
	"github.com/de-tools/property-atlas/pkg/models/domain"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Service is the computation API the handlers expose. *view.Controller
// implements it.
type Service interface {
	Properties() []domain.Property
	Recompute(state domain.ViewState) (domain.ViewModel, error)
	GetOverview(sel domain.Selection, params domain.FinancingParameters) (domain.OverviewResult, error)
	GetIncomeTrend(sel domain.Selection, g domain.Granularity) ([]domain.IncomeTrendPoint, error)
	GetExpenseAnalysis(sel domain.Selection) (domain.ExpenseAnalysisResult, error)
	GetForecast(sel domain.Selection, horizonMonths int) (domain.ForecastResult, error)
	GetPropertyMap(sel domain.Selection) (domain.MapResult, error)
	ValidateFinancingInputs(params domain.FinancingParameters) domain.ValidationResult
}

type Settings struct {
	// Financing fills parameters absent from the query.
	Financing     domain.FinancingParameters
	HorizonMonths int
}

type Router struct {
	mux      *chi.Mux
	svc      Service
	settings Settings
}

func NewRouter(svc Service, settings Settings) *Router {
	r := &Router{
		mux:      chi.NewRouter(),
		svc:      svc,
		settings: settings,
	}
	r.mux.Get("/properties", r.ListProperties)
	r.mux.Get("/overview", r.GetOverview)
	r.mux.Get("/trend", r.GetIncomeTrend)
	r.mux.Get("/expenses", r.GetExpenseAnalysis)
	r.mux.Get("/forecast", r.GetForecast)
	r.mux.Get("/map", r.GetPropertyMap)
	r.mux.Get("/validate", r.ValidateFinancing)
	r.mux.Get("/view", r.GetView)
	return r
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.mux.ServeHTTP(w, r)
}

func (rt *Router) ListProperties(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, adapters.MapPropertiesDomainToApi(rt.svc.Properties()))
}

func (rt *Router) GetOverview(w http.ResponseWriter, r *http.Request) {
	params, err := rt.financing(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := rt.svc.GetOverview(selection(r), params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapOverviewDomainToApi(result))
}

func (rt *Router) GetIncomeTrend(w http.ResponseWriter, r *http.Request) {
	g, err := domain.ParseGranularity(r.URL.Query().Get("granularity"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	points, err := rt.svc.GetIncomeTrend(selection(r), g)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapIncomeTrendDomainToApi(g, points))
}

func (rt *Router) GetExpenseAnalysis(w http.ResponseWriter, r *http.Request) {
	result, err := rt.svc.GetExpenseAnalysis(selection(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapExpenseAnalysisDomainToApi(result))
}

func (rt *Router) GetForecast(w http.ResponseWriter, r *http.Request) {
	horizon, err := rt.horizon(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := rt.svc.GetForecast(selection(r), horizon)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapForecastDomainToApi(result))
}

func (rt *Router) GetPropertyMap(w http.ResponseWriter, r *http.Request) {
	result, err := rt.svc.GetPropertyMap(selection(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapPropertyMapDomainToApi(result))
}

// ValidateFinancing reports on the parameters exactly as given; absent
// values are not filled from the defaults.
func (rt *Router) ValidateFinancing(w http.ResponseWriter, r *http.Request) {
	params, err := financingFromQuery(r, domain.FinancingParameters{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapValidationDomainToApi(rt.svc.ValidateFinancingInputs(params)))
}

func (rt *Router) GetView(w http.ResponseWriter, r *http.Request) {
	v, err := domain.ParseView(r.URL.Query().Get("view"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	params, err := rt.financing(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	horizon, err := rt.horizon(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	vm, err := rt.svc.Recompute(domain.ViewState{
		Selection: selection(r),
		Financing: params,
		View:      v,
		Horizon:   horizon,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapViewModelDomainToApi(vm))
}

func (rt *Router) financing(r *http.Request) (domain.FinancingParameters, error) {
	return financingFromQuery(r, rt.settings.Financing)
}

func (rt *Router) horizon(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("horizon")
	if raw == "" {
		return rt.settings.HorizonMonths, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid 'horizon': expected a positive number of months")
	}
	return n, nil
}

// selection reads repeated or comma separated "property" parameters.
func selection(r *http.Request) domain.Selection {
	var sel domain.Selection
	for _, v := range r.URL.Query()["property"] {
		for _, loc := range strings.Split(v, ",") {
			if loc = strings.TrimSpace(loc); loc != "" && !sel.Contains(loc) {
				sel = append(sel, loc)
			}
		}
	}
	return sel
}

func financingFromQuery(r *http.Request, defaults domain.FinancingParameters) (domain.FinancingParameters, error) {
	out := defaults
	fields := []struct {
		name string
		dst  **float64
	}{
		{"purchase_price", &out.PurchasePrice},
		{"down_payment", &out.DownPayment},
		{"interest_rate", &out.InterestRate},
	}
	q := r.URL.Query()
	for _, f := range fields {
		if !q.Has(f.name) {
			continue
		}
		raw := strings.TrimSpace(q.Get(f.name))
		if raw == "" {
			*f.dst = nil
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return out, fmt.Errorf("invalid '%s': expected a number", f.name)
		}
		*f.dst = domain.Amount(v)
	}
	return out, nil
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptySelection):
		writeJSON(w, r, http.StatusOK, api.Placeholder{Placeholder: domain.PlaceholderText})
	case errors.Is(err, domain.ErrInsufficientHistory):
		writeJSON(w, r, http.StatusUnprocessableEntity, api.Error{Error: err.Error()})
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		writeJSON(w, r, http.StatusInternalServerError, api.Error{Error: "internal error"})
	}
}

// writeJSON encodes before writing the status so an encoding failure can
// still be reported as a 500.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to write response")
	}
}
