package commands

import (
	"fmt"

	"github.com/de-tools/property-atlas/pkg/models/domain"
	"github.com/de-tools/property-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/property-atlas/pkg/services/view"
	"github.com/spf13/cobra"
)

type ViewCmd struct {
	rt        *Runtime
	view      domain.View
	selection selectionFlags
	financing financingFlags
	horizon   int
}

func NewOverviewCmd(rt *Runtime) *cobra.Command {
	return newViewCmd(rt, domain.ViewOverview, "overview", "Show ROI, occupancy and the monthly income trend")
}

func NewExpensesCmd(rt *Runtime) *cobra.Command {
	return newViewCmd(rt, domain.ViewExpenseAnalysis, "expenses", "Show expense metrics and the category breakdown")
}

func NewForecastCmd(rt *Runtime) *cobra.Command {
	return newViewCmd(rt, domain.ViewForecast, "forecast", "Project monthly NOI with a volatility band")
}

func newViewCmd(rt *Runtime, v domain.View, use, short string) *cobra.Command {
	vc := &ViewCmd{rt: rt, view: v}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE:  vc.run,
	}

	vc.selection.register(cmd)
	vc.financing.register(cmd)
	if v == domain.ViewForecast {
		cmd.Flags().IntVar(&vc.horizon, "horizon", 0, "Forecast horizon in months (default from config)")
	}
	return cmd
}

func (vc *ViewCmd) run(cmd *cobra.Command, _ []string) error {
	if err := vc.rt.ready(cmd.Context()); err != nil {
		return err
	}
	horizon := vc.horizon
	if horizon <= 0 {
		horizon = vc.rt.Settings.Forecast.HorizonMonths
	}

	session := view.NewSession(vc.rt.Controller, horizon)
	if _, err := session.Switch(vc.view); err != nil {
		return err
	}
	params := vc.financing.params(cmd, vc.rt.Settings)
	if _, err := session.SetFinancing(params); err != nil {
		return err
	}
	vm, err := session.Select(vc.selection.selection())
	if err != nil {
		return fmt.Errorf("failed to compute %s: %w", vc.view, err)
	}

	report := viewReport(vc.rt.Builder, vm, params)
	return vc.rt.Reporter.Handle(report)
}

// viewReport renders the active view. Invalid financing inputs are listed on
// every view, not only the one that uses them.
func viewReport(b *export.Builder, vm domain.ViewModel, params domain.FinancingParameters) *export.Report {
	var r *export.Report
	switch {
	case vm.IsPlaceholder():
		r = b.Placeholder(vm.Placeholder)
	case vm.Overview != nil:
		r = b.Overview(*vm.Overview, params, vm.Validation)
	case vm.Expenses != nil:
		r = b.Expenses(*vm.Expenses)
	case vm.Forecast != nil:
		r = b.Forecast(*vm.Forecast)
	default:
		r = b.Placeholder(vm.ForecastUnavailable)
	}
	return b.WithFinancing(r, vm.Validation)
}
