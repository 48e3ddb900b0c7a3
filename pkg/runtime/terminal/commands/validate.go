package commands

import (
	"github.com/de-tools/property-atlas/pkg/models/domain"
	"github.com/de-tools/property-atlas/pkg/services/validation"
	"github.com/spf13/cobra"
)

type ValidateCmd struct {
	rt            *Runtime
	purchasePrice float64
	downPayment   float64
	interestRate  float64
}

// NewValidateCmd checks only the inputs passed on the command line; nothing
// is filled from the defaults.
func NewValidateCmd(rt *Runtime) *cobra.Command {
	vc := &ValidateCmd{rt: rt}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate financing inputs",
		RunE:  vc.run,
	}

	cmd.Flags().Float64Var(&vc.purchasePrice, "purchase-price", 0, "Purchase price")
	cmd.Flags().Float64Var(&vc.downPayment, "down-payment", 0, "Down payment")
	cmd.Flags().Float64Var(&vc.interestRate, "interest-rate", 0, "Interest rate in percent")
	return cmd
}

func (vc *ValidateCmd) run(cmd *cobra.Command, _ []string) error {
	var p domain.FinancingParameters
	if cmd.Flags().Changed("purchase-price") {
		p.PurchasePrice = domain.Amount(vc.purchasePrice)
	}
	if cmd.Flags().Changed("down-payment") {
		p.DownPayment = domain.Amount(vc.downPayment)
	}
	if cmd.Flags().Changed("interest-rate") {
		p.InterestRate = domain.Amount(vc.interestRate)
	}
	return vc.rt.Reporter.Handle(vc.rt.Builder.Validation(validation.ValidateFinancing(p)))
}
