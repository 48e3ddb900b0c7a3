package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/de-tools/property-atlas/pkg/services/aggregate"
	"github.com/de-tools/property-atlas/pkg/services/config"
	"github.com/de-tools/property-atlas/pkg/services/dataset"
	"github.com/de-tools/property-atlas/pkg/services/forecast"
	"github.com/de-tools/property-atlas/pkg/services/source"
	"github.com/de-tools/property-atlas/pkg/services/view"
	"github.com/rs/zerolog"
)

// App is a loaded dataset together with the services computing over it.
type App struct {
	Settings   *config.Settings
	Dataset    *dataset.Dataset
	Controller *view.Controller
}

func NewLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// Load reads the configured source through sources and builds the
// controller. A malformed row fails the load with a *domain.SchemaError.
func Load(ctx context.Context, settings *config.Settings, sources source.Registry) (*App, error) {
	logger := zerolog.Ctx(ctx)

	ds, err := LoadDataset(ctx, settings, sources)
	if err != nil {
		logger.Error().Err(err).Str("source", settings.Data.Source).Msg("failed to load dataset")
		return nil, err
	}

	return &App{
		Settings:   settings,
		Dataset:    ds,
		Controller: view.NewController(ds, aggregate.New(), forecast.NewEngine()),
	}, nil
}

func LoadDataset(ctx context.Context, settings *config.Settings, sources source.Registry) (*dataset.Dataset, error) {
	reader, closeFn, err := sources.Open(ctx, settings.Data.Source)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer func() {
		if err := closeFn(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close source")
		}
	}()

	rows, err := reader.ReadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	var opts []dataset.Option
	if path := settings.Properties.Registry; path != "" {
		registry, err := config.NewPropertyRegistry(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, dataset.WithRegistry(registry))
	}
	return dataset.Load(ctx, rows, opts...)
}
