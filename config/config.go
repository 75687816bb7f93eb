package config

// Config holds tool configuration.
type Config struct {
	Listen    string `yaml:"listen"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Policy Policy `yaml:"policy"`
	Report Report `yaml:"report"`
}

// Report configures the violation report collector.
type Report struct {
	Path         string `yaml:"path"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
	Keep         int    `yaml:"keep"`
	DatabaseURL  string `yaml:"database_url"`

	// RatePerSecond caps reports accepted per client address; zero
	// disables the limit.
	RatePerSecond float64 `yaml:"rate_per_second"`
	RateBurst     int     `yaml:"rate_burst"`

	// RetentionDays prunes persisted reports older than this; zero keeps
	// them forever. Only applies to the database store.
	RetentionDays int `yaml:"retention_days"`
}

// Default returns safe defaults.
func Default() Config {
	return Config{
		Listen:    ":8080",
		LogLevel:  "info",
		LogFormat: "text",
		Report: Report{
			Path:         "/csp-reports",
			MaxBodyBytes: 64 << 10,
			Keep:         512,
		},
	}
}
