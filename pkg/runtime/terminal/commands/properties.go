package commands

import (
	"errors"

	"github.com/de-tools/property-atlas/pkg/models/domain"
	"github.com/spf13/cobra"
)

func NewPropertiesCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "properties",
		Short: "List the properties found in the dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.ready(cmd.Context()); err != nil {
				return err
			}
			return rt.Reporter.Handle(rt.Builder.Properties(rt.Controller.Properties()))
		},
	}
}

func NewMapCmd(rt *Runtime) *cobra.Command {
	var sel selectionFlags
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Show the coordinates of the selected properties",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.ready(cmd.Context()); err != nil {
				return err
			}
			m, err := rt.Controller.GetPropertyMap(sel.selection())
			if errors.Is(err, domain.ErrEmptySelection) {
				return rt.Reporter.Handle(rt.Builder.Placeholder(domain.PlaceholderText))
			}
			if err != nil {
				return err
			}
			return rt.Reporter.Handle(rt.Builder.Map(m))
		},
	}
	sel.register(cmd)
	return cmd
}
