package commands

import (
	"errors"

	"github.com/de-tools/property-atlas/pkg/models/domain"
	"github.com/spf13/cobra"
)

type TrendCmd struct {
	rt          *Runtime
	selection   selectionFlags
	granularity string
}

func NewTrendCmd(rt *Runtime) *cobra.Command {
	tc := &TrendCmd{rt: rt}
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show income, expenses and net income by month, quarter or year",
		RunE:  tc.run,
	}
	tc.selection.register(cmd)
	cmd.Flags().StringVarP(&tc.granularity, "granularity", "g", string(domain.GranularityMonth), "Period length: month, quarter or year")
	return cmd
}

func (tc *TrendCmd) run(cmd *cobra.Command, _ []string) error {
	g, err := domain.ParseGranularity(tc.granularity)
	if err != nil {
		return err
	}
	if err := tc.rt.ready(cmd.Context()); err != nil {
		return err
	}
	points, err := tc.rt.Controller.GetIncomeTrend(tc.selection.selection(), g)
	if errors.Is(err, domain.ErrEmptySelection) {
		return tc.rt.Reporter.Handle(tc.rt.Builder.Placeholder(domain.PlaceholderText))
	}
	if err != nil {
		return err
	}
	return tc.rt.Reporter.Handle(tc.rt.Builder.Trend(points, g))
}
