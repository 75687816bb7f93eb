package config

import (
	"os"
	"strconv"
)

// LoadFromEnv applies environment overrides with a prefix (e.g. CSPHEAD_).
func LoadFromEnv(prefix string, base Config) Config {
	get := func(key string) string { return os.Getenv(prefix + key) }

	if value := get("LISTEN"); value != "" {
		base.Listen = value
	}
	if value := get("LOG_LEVEL"); value != "" {
		base.LogLevel = value
	}
	if value := get("LOG_FORMAT"); value != "" {
		base.LogFormat = value
	}
	if value := get("POLICY"); value != "" {
		base.Policy.Raw = value
		base.Policy.Directives = nil
	}
	if value := get("POLICY_REPORT_ONLY"); value != "" {
		if enabled, err := strconv.ParseBool(value); err == nil {
			base.Policy.ReportOnly = enabled
		}
	}
	if value := get("REPORT_PATH"); value != "" {
		base.Report.Path = value
	}
	if value := get("REPORT_MAX_BODY_BYTES"); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			base.Report.MaxBodyBytes = n
		}
	}
	if value := get("REPORT_KEEP"); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			base.Report.Keep = n
		}
	}
	if value := get("REPORT_DATABASE_URL"); value != "" {
		base.Report.DatabaseURL = value
	}
	if value := get("REPORT_RATE_PER_SECOND"); value != "" {
		if rate, err := strconv.ParseFloat(value, 64); err == nil {
			base.Report.RatePerSecond = rate
		}
	}
	if value := get("REPORT_RATE_BURST"); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			base.Report.RateBurst = n
		}
	}
	if value := get("REPORT_RETENTION_DAYS"); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			base.Report.RetentionDays = n
		}
	}

	return base
}
