package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/property-atlas/pkg/runtime/app"
	"github.com/de-tools/property-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/property-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/property-atlas/pkg/services/config"
	"github.com/de-tools/property-atlas/pkg/services/source"
	"github.com/de-tools/property-atlas/pkg/services/view"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	opts    Options
	rt      *commands.Runtime
	rootCmd *cobra.Command

	configPath string
	source     string
	format     string
}

// Options contain configuration for the CLI
type Options struct {
	// Sources defaults to the file, duckdb and s3 sources reading the
	// configured table.
	Sources source.Registry
	Output  io.Writer
	Logs    io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logs == nil {
		opts.Logs = os.Stderr
	}

	cli := &CLI{
		opts: opts,
		rt:   &commands.Runtime{Sources: opts.Sources},
	}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "atlas",
		Short:             "Investment property analytics",
		SilenceUsage:      true,
		PersistentPreRunE: cli.setup,
	}
	cmd.SetOut(cli.opts.Output)

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Path to the settings file (default ./property-atlas.yaml)")
	cmd.PersistentFlags().StringVar(&cli.source, "source", "", "Record source, overrides data.source")
	cmd.PersistentFlags().StringVar(&cli.format, "format", formatAuto, "Output format: auto, table or markdown")

	cmd.AddCommand(commands.NewPropertiesCmd(cli.rt))
	cmd.AddCommand(commands.NewOverviewCmd(cli.rt))
	cmd.AddCommand(commands.NewTrendCmd(cli.rt))
	cmd.AddCommand(commands.NewExpensesCmd(cli.rt))
	cmd.AddCommand(commands.NewForecastCmd(cli.rt))
	cmd.AddCommand(commands.NewMapCmd(cli.rt))
	cmd.AddCommand(commands.NewValidateCmd(cli.rt))
	cmd.AddCommand(commands.NewImportCmd(cli.rt))

	return cmd
}

// setup loads settings and attaches the logger. The dataset is loaded by the
// first command that needs it.
func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	settings, err := config.LoadSettings(cli.configPath)
	if err != nil {
		return err
	}
	if cli.source != "" {
		settings.Data.Source = cli.source
	}

	logger, err := app.NewLogger(cli.opts.Logs, settings.Log.Level)
	if err != nil {
		return err
	}
	cmd.SetContext(logger.WithContext(cmd.Context()))

	reporter, err := newReporter(cli.opts.Output, cli.format)
	if err != nil {
		return err
	}
	if cli.rt.Sources == nil {
		cli.rt.Sources, err = source.NewDefaultRegistry(settings.Data.Table)
		if err != nil {
			return err
		}
	}

	cli.rt.Settings = settings
	cli.rt.Reporter = reporter
	cli.rt.Builder = export.NewBuilder(export.NewFormatter(settings.Display.Currency))
	cli.rt.Load = func(ctx context.Context) (*view.Controller, error) {
		a, err := app.Load(ctx, settings, cli.rt.Sources)
		if err != nil {
			return nil, err
		}
		zerolog.Ctx(ctx).Debug().Str("source", settings.Data.Source).Msg("dataset ready")
		return a.Controller, nil
	}
	return nil
}
