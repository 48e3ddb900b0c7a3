package main

import (
	"fmt"
	"os"

	"github.com/de-tools/property-atlas/pkg/handlers/dashboard"
	"github.com/de-tools/property-atlas/pkg/runtime/app"
	"github.com/de-tools/property-atlas/pkg/server"
	"github.com/de-tools/property-atlas/pkg/services/config"
	"github.com/de-tools/property-atlas/pkg/services/source"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgPath    string
	sourceFlag string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:          "web",
		Short:        "Start the web server for Property Atlas",
		SilenceUsage: true,
		RunE:         runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the settings file (default is ./property-atlas.yaml)")
	rootCmd.Flags().StringVar(&sourceFlag, "source", "", "Record source, overrides data.source")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	envErr := godotenv.Load()

	settings, err := config.LoadSettings(cfgPath)
	if err != nil {
		return err
	}
	if sourceFlag != "" {
		settings.Data.Source = sourceFlag
	}

	logger, err := app.NewLogger(os.Stdout, settings.Log.Level)
	if err != nil {
		return err
	}
	ctx := logger.WithContext(cmd.Context())
	if envErr != nil {
		logger.Debug().Err(envErr).Msg("no .env file loaded")
	}

	sources, err := source.NewDefaultRegistry(settings.Data.Table)
	if err != nil {
		return fmt.Errorf("failed to create source registry: %w", err)
	}
	atlas, err := app.Load(ctx, settings, sources)
	if err != nil {
		return fmt.Errorf("failed to load dataset from %s: %w", settings.Data.Source, err)
	}
	logger.Info().
		Str("source", settings.Data.Source).
		Int("properties", len(atlas.Controller.Properties())).
		Msg("dataset loaded successfully")

	webAPI := server.NewWebAPI(server.Config{
		Addr:            settings.Server.Addr(),
		ShutdownTimeout: settings.Server.ShutdownTimeout,
		Dashboard: dashboard.Settings{
			Financing:     settings.Financing.Parameters(),
			HorizonMonths: settings.Forecast.HorizonMonths,
		},
		Dependencies: server.Dependencies{
			Dashboard: atlas.Controller,
			Logger:    logger,
		},
	})

	return webAPI.Start(ctx)
}
