// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and FINCORE_* env vars.
// - Validation errors wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects json or console log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ServiceName is reported by GET /.
	ServiceName string `koanf:"service_name"`

	// ScoreMin and ScoreMax bound the closed interval scores are drawn from.
	ScoreMin int `koanf:"score_min"`
	ScoreMax int `koanf:"score_max"`

	// LowRiskThreshold is the score a result must exceed to be LOW risk.
	LowRiskThreshold int `koanf:"low_risk_threshold"`

	// ApprovalThreshold is the score a result must exceed to be approved.
	ApprovalThreshold int `koanf:"approval_threshold"`

	// RandomSeed fixes the score sequence; 0 seeds from the clock.
	RandomSeed int64 `koanf:"random_seed"`

	// TracingExporter is none, stdout or otlp.
	TracingExporter string `koanf:"tracing_exporter"`

	// OTLPEndpoint is the collector host:port used by the otlp exporter.
	OTLPEndpoint string `koanf:"otlp_endpoint"`

	// TraceSampleRatio is the fraction of root traces sampled.
	TraceSampleRatio float64 `koanf:"trace_sample_ratio"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "json",
		Addr:              ":8080",
		ServiceName:       "Fargate FinTech Core",
		ScoreMin:          300,
		ScoreMax:          850,
		LowRiskThreshold:  700,
		ApprovalThreshold: 600,
		RandomSeed:        0,
		TracingExporter:   "none",
		OTLPEndpoint:      "localhost:4317",
		TraceSampleRatio:  1.0,
	}
}

// Validate checks the invariants the service relies on.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.ScoreMin > c.ScoreMax:
		return fmt.Errorf("%w: score_min (%d) must not exceed score_max (%d)", ErrInvalidConfig, c.ScoreMin, c.ScoreMax)
	case c.TraceSampleRatio < 0 || c.TraceSampleRatio > 1:
		return fmt.Errorf("%w: trace_sample_ratio must be within [0, 1]", ErrInvalidConfig)
	}

	switch strings.ToLower(c.TracingExporter) {
	case "none", "stdout", "otlp":
	default:
		return fmt.Errorf("%w: unknown tracing_exporter %q", ErrInvalidConfig, c.TracingExporter)
	}
	return nil
}
