package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config for the whole application
type Config struct {
	App         AppConfig
	Curve       CurveConfig
	Option      OptionConfig
	Solver      SolverConfig
	Calibration CalibrationConfig
	Metrics     MetricsConfig
}

// General application configuration
type AppConfig struct {
	Name        string `validate:"required"`
	Environment string `validate:"oneof=development staging production"`
	LogLevel    string `validate:"oneof=debug info warn error"`
}

// Configuration for curve construction
type CurveConfig struct {
	Interpolation string  `validate:"oneof=linear log-linear constant-left constant-right nearest"`
	ForwardTenor  float64 `mapstructure:"forward_tenor" validate:"gt=0"`
	MarginalTenor float64 `mapstructure:"marginal_tenor" validate:"gt=0"`
}

// Configuration for option valuation
type OptionConfig struct {
	Formula      string `validate:"oneof=intrinsic bachelier black76 displaced"`
	Displacement float64
}

// Configuration for root finding
type SolverConfig struct {
	Tolerance     float64 `validate:"gt=0"`
	MaxIterations int     `mapstructure:"max_iterations" validate:"gt=0"`
}

// Configuration for curve calibration
type CalibrationConfig struct {
	// Nodes is the explicit node order of the bootstrap
	Nodes []float64 `validate:"omitempty,min=1"`
}

// Configuration for metrics
type MetricsConfig struct {
	Prometheus PrometheusConfig
	Interval   time.Duration
}

// Configuration for Prometheus metrics
type PrometheusConfig struct {
	Enabled bool
	Port    int `validate:"gt=0,lte=65535"`
}

// Loads the configuration from a file and environment variables. A missing
// config file falls back to defaults.
func Load() (*Config, error) {
	setDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	viper.SetEnvPrefix("DCF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// App defaults
	viper.SetDefault("app.name", "dcf-engine")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("app.log_level", "info")

	// Curve defaults
	viper.SetDefault("curve.interpolation", "linear")
	viper.SetDefault("curve.forward_tenor", 0.25)
	viper.SetDefault("curve.marginal_tenor", 1.0)

	// Option defaults
	viper.SetDefault("option.formula", "black76")
	viper.SetDefault("option.displacement", 0.0)

	// Solver defaults
	viper.SetDefault("solver.tolerance", 1e-10)
	viper.SetDefault("solver.max_iterations", 100)

	// Metrics defaults
	viper.SetDefault("metrics.prometheus.enabled", true)
	viper.SetDefault("metrics.prometheus.port", 9090)
	viper.SetDefault("metrics.interval", "15s")
}

func GetConfigPath() string {
	configPath := os.Getenv("DCF_CONFIG_PATH")
	if configPath != "" {
		return configPath
	}

	return "./config/config.yaml"
}
