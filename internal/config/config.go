// Package config loads tableparser settings from flags, environment variables
// and an optional YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	tableparser "github.com/RedSunAtNight/TableParser"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variable names, e.g.
// TABLEPARSER_DETECT_SAMPLE_ROWS for detect.sample_rows.
const EnvPrefix = "TABLEPARSER"

// Config represents the complete tableparser configuration
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Detect  DetectConfig  `mapstructure:"detect"`
	Output  OutputConfig  `mapstructure:"output"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Watch   WatchConfig   `mapstructure:"watch"`
}

// LogConfig controls diagnostic logging
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`
	// Format is json or console
	Format string `mapstructure:"format"`
	// Development enables colored levels and stack traces on errors
	Development bool `mapstructure:"development"`
}

// DetectConfig controls delimiter detection
type DetectConfig struct {
	// TruncateAbove is the row count above which counting uses a fixed window
	TruncateAbove int `mapstructure:"truncate_above"`
	// SampleRows is the window size for long tables
	SampleRows int `mapstructure:"sample_rows"`
	// Delimiter skips detection when set; it may be several characters long
	Delimiter string `mapstructure:"delimiter"`
}

// OutputConfig controls how results and tables are written
type OutputConfig struct {
	// Format selects the report format: text, json or yaml
	Format string `mapstructure:"format"`
	// Delimiter joins cells in split and convert output
	Delimiter string `mapstructure:"delimiter"`
	// CRLF terminates converted rows with \r\n
	CRLF bool `mapstructure:"crlf"`
}

// MetricsConfig controls metrics export
type MetricsConfig struct {
	// Textfile is written in Prometheus text format after each command when set
	Textfile string `mapstructure:"textfile"`
}

// WatchConfig controls the watch command
type WatchConfig struct {
	// Debounce collapses bursts of file events into one detection run
	Debounce time.Duration `mapstructure:"debounce"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Detect: DetectConfig{
			TruncateAbove: tableparser.DefaultTruncateAbove,
			SampleRows:    tableparser.DefaultSampleRows,
		},
		Output: OutputConfig{
			Format:    "text",
			Delimiter: "\t",
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}

// SetDefaults registers default values with v so they apply even without a
// config file.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.development", defaults.Log.Development)

	v.SetDefault("detect.truncate_above", defaults.Detect.TruncateAbove)
	v.SetDefault("detect.sample_rows", defaults.Detect.SampleRows)
	v.SetDefault("detect.delimiter", defaults.Detect.Delimiter)

	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.delimiter", defaults.Output.Delimiter)
	v.SetDefault("output.crlf", defaults.Output.CRLF)

	v.SetDefault("metrics.textfile", defaults.Metrics.Textfile)

	v.SetDefault("watch.debounce", defaults.Watch.Debounce)
}

// Configure points v at the config file, or at config.yaml in the standard
// search path when file is empty, and enables environment overrides.
func Configure(v *viper.Viper, file string) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// ReadInConfig reads the config file configured on v. A missing file in the
// search path is not an error; an explicitly named file must exist.
func ReadInConfig(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return nil
	}
	return fmt.Errorf("reading config: %w", err)
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return cfg, nil
}

// ConfigDir returns the directory holding config.yaml
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tableparser")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tableparser"
	}
	return filepath.Join(home, ".config", "tableparser")
}

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "detect.sample_rows")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidOutputFormats returns the list of valid report formats
func ValidOutputFormats() []string {
	return []string{"text", "json", "yaml"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Log.Level)) {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Value:   c.Log.Level,
			Message: fmt.Sprintf("must be one of %v", ValidLogLevels()),
		})
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Value:   c.Log.Format,
			Message: "must be json or console",
		})
	}

	if c.Detect.TruncateAbove < 1 {
		errs = append(errs, ValidationError{
			Field:   "detect.truncate_above",
			Value:   c.Detect.TruncateAbove,
			Message: "must be at least 1",
		})
	}
	if c.Detect.SampleRows < 1 {
		errs = append(errs, ValidationError{
			Field:   "detect.sample_rows",
			Value:   c.Detect.SampleRows,
			Message: "must be at least 1",
		})
	}

	if !slices.Contains(ValidOutputFormats(), c.Output.Format) {
		errs = append(errs, ValidationError{
			Field:   "output.format",
			Value:   c.Output.Format,
			Message: fmt.Sprintf("must be one of %v", ValidOutputFormats()),
		})
	}
	if c.Output.Delimiter == "" {
		errs = append(errs, ValidationError{
			Field:   "output.delimiter",
			Value:   c.Output.Delimiter,
			Message: "must not be empty",
		})
	}

	if c.Watch.Debounce < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce",
			Value:   c.Watch.Debounce,
			Message: "must not be negative",
		})
	}

	return errs
}

// DetectorOptions converts the detect settings into detector options.
func (c *Config) DetectorOptions() []tableparser.Option {
	return []tableparser.Option{
		tableparser.WithSampling(c.Detect.TruncateAbove, c.Detect.SampleRows),
	}
}
