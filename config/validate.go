package config

import (
	"errors"
	"strings"
)

// Validate validates config values, including the configured policy.
func Validate(cfg Config) error {
	var issues []string

	if cfg.Report.MaxBodyBytes < 0 {
		issues = append(issues, "report.max_body_bytes must be >= 0")
	}
	if cfg.Report.Keep < 0 {
		issues = append(issues, "report.keep must be >= 0")
	}
	if cfg.Report.RatePerSecond < 0 {
		issues = append(issues, "report.rate_per_second must be >= 0")
	}
	if cfg.Report.RateBurst < 0 {
		issues = append(issues, "report.rate_burst must be >= 0")
	}
	if cfg.Report.RetentionDays < 0 {
		issues = append(issues, "report.retention_days must be >= 0")
	}

	if cfg.LogLevel != "" && !validLogLevel(cfg.LogLevel) {
		issues = append(issues, "log_level must be one of debug|info|warn|error")
	}
	if cfg.LogFormat != "" && !validLogFormat(cfg.LogFormat) {
		issues = append(issues, "log_format must be one of text|json")
	}

	if _, err := cfg.Policy.Header(); err != nil {
		issues = append(issues, "policy: "+err.Error())
	}

	if len(issues) > 0 {
		return errors.New(strings.Join(issues, "; "))
	}
	return nil
}

func validLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func validLogFormat(format string) bool {
	switch strings.ToLower(format) {
	case "text", "json":
		return true
	default:
		return false
	}
}
