package view

import (
	"sync"
	"testing"

	"github.com/de-tools/property-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Transitions(t *testing.T) {
	s := NewSession(realController(), 3)

	vm, err := s.Switch(domain.ViewForecast)
	require.NoError(t, err)
	assert.True(t, vm.IsPlaceholder(), "nothing selected yet")

	vm, err = s.Select(domain.Selection{"Bondi"})
	require.NoError(t, err)
	require.NotNil(t, vm.Forecast)
	assert.Len(t, vm.Forecast.Points, 3)

	vm, err = s.SetFinancing(domain.FinancingParameters{PurchasePrice: domain.Amount(100), DownPayment: domain.Amount(200)})
	require.NoError(t, err)
	assert.False(t, vm.Validation.DownPaymentValid)
	assert.False(t, vm.Validation.InterestRateValid)
	assert.NotNil(t, vm.Forecast, "invalid inputs do not block other views")

	vm, err = s.Select(nil)
	require.NoError(t, err)
	assert.True(t, vm.IsPlaceholder())
}

func TestSession_StateIsIsolated(t *testing.T) {
	ctrl := realController()
	a := NewSession(ctrl, 0)
	b := NewSession(ctrl, 0)

	sel := domain.Selection{"Bondi"}
	_, err := a.Select(sel)
	require.NoError(t, err)
	sel[0] = "Coogee"

	assert.Equal(t, domain.Selection{"Bondi"}, a.State().Selection)
	assert.Empty(t, b.State().Selection)
	assert.Equal(t, domain.DefaultFinancing(), b.State().Financing)
}

func TestSession_ConcurrentSessionsShareDataset(t *testing.T) {
	ctrl := realController()
	var wg sync.WaitGroup
	for _, loc := range []string{"Bondi", "Coogee", "Manly", "Bondi"} {
		wg.Add(1)
		go func(loc string) {
			defer wg.Done()
			s := NewSession(ctrl, 0)
			vm, err := s.Select(domain.Selection{loc})
			assert.NoError(t, err)
			assert.NotNil(t, vm.Overview)
		}(loc)
	}
	wg.Wait()
}
