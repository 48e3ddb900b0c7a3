package view

import (
	"slices"
	"sync"

	"github.com/de-tools/property-atlas/pkg/models/domain"
)

// Session holds one client's current state. Each transition recomputes from
// the full new state, so the latest input always wins. Sessions share the
// controller but nothing else.
type Session struct {
	ctrl *Controller

	mu    sync.Mutex
	state domain.ViewState
}

func NewSession(ctrl *Controller, horizonMonths int) *Session {
	return &Session{
		ctrl: ctrl,
		state: domain.ViewState{
			Financing: domain.DefaultFinancing(),
			View:      domain.ViewOverview,
			Horizon:   horizonMonths,
		},
	}
}

func (s *Session) State() domain.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Selection = slices.Clone(s.state.Selection)
	return st
}

func (s *Session) Select(sel domain.Selection) (domain.ViewModel, error) {
	return s.update(func(st *domain.ViewState) { st.Selection = slices.Clone(sel) })
}

func (s *Session) SetFinancing(params domain.FinancingParameters) (domain.ViewModel, error) {
	return s.update(func(st *domain.ViewState) { st.Financing = params })
}

func (s *Session) Switch(v domain.View) (domain.ViewModel, error) {
	return s.update(func(st *domain.ViewState) { st.View = v })
}

func (s *Session) update(apply func(*domain.ViewState)) (domain.ViewModel, error) {
	s.mu.Lock()
	apply(&s.state)
	st := s.state
	s.mu.Unlock()
	return s.ctrl.Recompute(st)
}
