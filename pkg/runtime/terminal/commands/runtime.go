package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/property-atlas/pkg/models/domain"
	"github.com/de-tools/property-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/property-atlas/pkg/services/config"
	"github.com/de-tools/property-atlas/pkg/services/source"
	"github.com/de-tools/property-atlas/pkg/services/view"
	"github.com/spf13/cobra"
)

// Runtime is filled in by the root command before any subcommand runs. The
// dataset itself is loaded on first use through Load.
type Runtime struct {
	Settings   *config.Settings
	Sources    source.Registry
	Reporter   *export.Reporter
	Builder    *export.Builder
	Controller *view.Controller

	Load func(ctx context.Context) (*view.Controller, error)
}

// selectionFlags are shared by every command scoped to a set of properties.
type selectionFlags struct {
	properties []string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.properties, "property", "p", nil, "Property location to include (repeatable)")
}

func (f *selectionFlags) selection() domain.Selection {
	var sel domain.Selection
	for _, p := range f.properties {
		if p != "" && !sel.Contains(p) {
			sel = append(sel, p)
		}
	}
	return sel
}

type financingFlags struct {
	purchasePrice float64
	downPayment   float64
	interestRate  float64
}

func (f *financingFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.purchasePrice, "purchase-price", domain.DefaultPurchasePrice, "Purchase price")
	cmd.Flags().Float64Var(&f.downPayment, "down-payment", domain.DefaultDownPayment, "Down payment")
	cmd.Flags().Float64Var(&f.interestRate, "interest-rate", domain.DefaultInterestRate, "Interest rate in percent")
}

// params starts from the configured financing and applies the flags that
// were set explicitly.
func (f *financingFlags) params(cmd *cobra.Command, settings *config.Settings) domain.FinancingParameters {
	p := settings.Financing.Parameters()
	if cmd.Flags().Changed("purchase-price") {
		p.PurchasePrice = domain.Amount(f.purchasePrice)
	}
	if cmd.Flags().Changed("down-payment") {
		p.DownPayment = domain.Amount(f.downPayment)
	}
	if cmd.Flags().Changed("interest-rate") {
		p.InterestRate = domain.Amount(f.interestRate)
	}
	return p
}

func (rt *Runtime) ready(ctx context.Context) error {
	if rt.Controller != nil {
		return nil
	}
	if rt.Load == nil {
		return fmt.Errorf("dataset is not loaded")
	}
	ctrl, err := rt.Load(ctx)
	if err != nil {
		return err
	}
	rt.Controller = ctrl
	return nil
}
