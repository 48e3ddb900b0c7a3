package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/property-atlas/pkg/models/domain"
	"github.com/spf13/viper"
)

const (
	DefaultConfigFile = "property-atlas.yaml"
	envPrefix         = "PROPERTY_ATLAS"
)

type Settings struct {
	Data       DataSettings      `mapstructure:"data"`
	Properties PropertySettings  `mapstructure:"properties"`
	Financing  FinancingSettings `mapstructure:"financing"`
	Forecast   ForecastSettings  `mapstructure:"forecast"`
	Display    DisplaySettings   `mapstructure:"display"`
	Server     ServerSettings    `mapstructure:"server"`
	Log        LogSettings       `mapstructure:"log"`
}

type DataSettings struct {
	// Source is a file path, duckdb://<file> or s3://bucket/key.
	Source string `mapstructure:"source"`
	Table  string `mapstructure:"table"`
}

type PropertySettings struct {
	Registry string `mapstructure:"registry"`
}

type FinancingSettings struct {
	PurchasePrice float64 `mapstructure:"purchase_price"`
	DownPayment   float64 `mapstructure:"down_payment"`
	InterestRate  float64 `mapstructure:"interest_rate"`
}

func (f FinancingSettings) Parameters() domain.FinancingParameters {
	return domain.FinancingParameters{
		PurchasePrice: domain.Amount(f.PurchasePrice),
		DownPayment:   domain.Amount(f.DownPayment),
		InterestRate:  domain.Amount(f.InterestRate),
	}
}

type ForecastSettings struct {
	HorizonMonths int `mapstructure:"horizon_months"`
}

type DisplaySettings struct {
	Currency string `mapstructure:"currency"`
}

type ServerSettings struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (s ServerSettings) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type LogSettings struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.source", "investment_property_expenses.csv")
	v.SetDefault("data.table", "period_records")
	v.SetDefault("properties.registry", "")
	v.SetDefault("financing.purchase_price", domain.DefaultPurchasePrice)
	v.SetDefault("financing.down_payment", domain.DefaultDownPayment)
	v.SetDefault("financing.interest_rate", domain.DefaultInterestRate)
	v.SetDefault("forecast.horizon_months", 12)
	v.SetDefault("display.currency", "AUD")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
}

// LoadSettings reads path when given, otherwise an optional
// property-atlas.yaml in the working directory. Environment variables
// prefixed with PROPERTY_ATLAS_ override file values; SERVER_HOST and
// SERVER_PORT are honoured as well.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.host", envPrefix+"_SERVER_HOST", "SERVER_HOST"); err != nil {
		return nil, fmt.Errorf("failed to bind server host: %w", err)
	}
	if err := v.BindEnv("server.port", envPrefix+"_SERVER_PORT", "SERVER_PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind server port: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultConfigFile, ".yaml"))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &s, nil
}
