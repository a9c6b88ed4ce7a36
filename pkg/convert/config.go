package convert

import (
	"fmt"
	"path/filepath"

	"github.com/radiofrance/testlog2junit/internal/logger"
)

const (
	DefaultInput  = "testlog.log"
	DefaultOutput = "test_results.xml"
)

// Config holds everything a conversion run needs. The mapping between viper identifiers and
// struct field names is ensured by `mapstructure` struct tags.
type Config struct {
	Input       string   `mapstructure:"input"`
	Output      string   `mapstructure:"output"`
	SuiteName   string   `mapstructure:"suite_name"`
	Summary     bool     `mapstructure:"summary"`
	StripColors bool     `mapstructure:"strip_colors"`
	LogLevel    string   `mapstructure:"log_level"`
	S3          S3Config `mapstructure:"s3"`
}

// S3Config describes where the report is published. Publishing is disabled when Bucket is empty.
type S3Config struct {
	Bucket string `mapstructure:"bucket"`
	Region string `mapstructure:"region"`
	Prefix string `mapstructure:"prefix"`
}

func DefaultConfig() Config {
	return Config{
		Input:    DefaultInput,
		Output:   DefaultOutput,
		LogLevel: "info",
	}
}

// ConfigError reports an invalid configuration value, detected before any file is touched.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Validate checks the configuration without accessing the filesystem.
func (c Config) Validate() error {
	if c.Input == "" {
		return &ConfigError{Field: "input", Reason: "path must not be empty"}
	}

	if c.Output == "" {
		return &ConfigError{Field: "output", Reason: "path must not be empty"}
	}

	if samePath(c.Input, c.Output) {
		return &ConfigError{Field: "output", Reason: fmt.Sprintf("would overwrite the input log %q", c.Input)}
	}

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return &ConfigError{Field: "log_level", Reason: err.Error()}
	}

	if c.S3.Bucket == "" && (c.S3.Prefix != "" || c.S3.Region != "") {
		return &ConfigError{Field: "s3.bucket", Reason: "required when s3.prefix or s3.region is set"}
	}

	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}

	return absA == absB
}
