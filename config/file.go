package config

// LoadFromFile loads configuration from a YAML file into the base config.
// Unknown keys are rejected.
func LoadFromFile(path string, base Config) (Config, error) {
	return loadYAML(path, base, false)
}

// Load loads config from file (if provided) and applies env overrides.
func Load(path, envPrefix string) (Config, error) {
	cfg := Default()
	var err error
	if path != "" {
		cfg, err = LoadFromFile(path, cfg)
		if err != nil {
			return cfg, err
		}
	}
	if envPrefix != "" {
		cfg = LoadFromEnv(envPrefix, cfg)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
