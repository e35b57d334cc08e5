// Package config provides YAML-based configuration for unusedstyles.
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/unusedstyles/pkg/report"
)

// Output formats, shared with the report renderer.
const (
	FormatText  = report.FormatText
	FormatTable = report.FormatTable
	FormatJSON  = report.FormatJSON
	FormatYAML  = report.FormatYAML
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Sentinel validation errors.
var (
	ErrInvalidFormat      = errors.New("invalid output format")
	ErrInvalidColor       = errors.New("invalid color mode")
	ErrInvalidWorkers     = errors.New("check workers must be positive")
	ErrInvalidMaxFileSize = errors.New("invalid max file size")
	ErrInvalidDebounce    = errors.New("watch debounce must not be negative")
	ErrInvalidLogLevel    = errors.New("invalid log level")
)

var (
	validFormats   = []string{FormatText, FormatTable, FormatJSON, FormatYAML}
	validColors    = []string{ColorAuto, ColorAlways, ColorNever}
	validLogLevels = []string{"debug", "info", "warn", "error"}
)

// Config is the top-level configuration struct for unusedstyles.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Output    OutputConfig    `mapstructure:"output"`
	Check     CheckConfig     `mapstructure:"check"`
	Watch     WatchConfig     `mapstructure:"watch"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// OutputConfig controls how reports are rendered.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Color  string `mapstructure:"color"`
}

// CheckConfig holds batch check settings.
type CheckConfig struct {
	Workers      int    `mapstructure:"workers"`
	FailOnUnused bool   `mapstructure:"fail_on_unused"`
	MaxFileSize  string `mapstructure:"max_file_size"`
}

// WatchConfig holds watch mode settings.
type WatchConfig struct {
	Debounce    time.Duration `mapstructure:"debounce"`
	MetricsAddr string        `mapstructure:"metrics_addr"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
	Environment  string `mapstructure:"environment"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if !slices.Contains(validFormats, c.Output.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Output.Format)
	}

	if !slices.Contains(validColors, c.Output.Color) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, c.Output.Color)
	}

	if c.Check.Workers <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Check.Workers)
	}

	_, err := c.Check.MaxFileSizeBytes()
	if err != nil {
		return err
	}

	if c.Watch.Debounce < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDebounce, c.Watch.Debounce)
	}

	if !slices.Contains(validLogLevels, c.Logging.Level) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	return nil
}

// MaxFileSizeBytes parses MaxFileSize ("4MB", "512KiB"). Zero means no limit.
func (c CheckConfig) MaxFileSizeBytes() (uint64, error) {
	if c.MaxFileSize == "" || c.MaxFileSize == "0" {
		return 0, nil
	}

	size, err := humanize.ParseBytes(c.MaxFileSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidMaxFileSize, c.MaxFileSize, err)
	}

	return size, nil
}
