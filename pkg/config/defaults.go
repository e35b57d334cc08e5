package config

import "time"

// Output defaults.
const (
	DefaultOutputFormat = FormatText
	DefaultOutputColor  = ColorAuto
)

// Check defaults.
const (
	DefaultCheckWorkers      = 4
	DefaultCheckFailOnUnused = false
	DefaultCheckMaxFileSize  = "4MB"
)

// Watch defaults.
const (
	DefaultWatchDebounce    = 200 * time.Millisecond
	DefaultWatchMetricsAddr = ""
)

// Logging defaults.
const (
	DefaultLoggingLevel = "info"
	DefaultLoggingJSON  = false
)

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: DefaultOutputFormat,
			Color:  DefaultOutputColor,
		},
		Check: CheckConfig{
			Workers:      DefaultCheckWorkers,
			FailOnUnused: DefaultCheckFailOnUnused,
			MaxFileSize:  DefaultCheckMaxFileSize,
		},
		Watch: WatchConfig{
			Debounce:    DefaultWatchDebounce,
			MetricsAddr: DefaultWatchMetricsAddr,
		},
		Logging: LoggingConfig{
			Level: DefaultLoggingLevel,
			JSON:  DefaultLoggingJSON,
		},
	}
}
