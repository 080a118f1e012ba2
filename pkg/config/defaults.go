package config

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults. Explicitly
// configured values are left alone.
func ApplyDefaults(cfg *Config) {
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = "info"
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = "json"
	}

	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = "minerva"
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = ":9090"
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = "/metrics"
	}

	if cfg.Constraints.Git.URL != "" {
		if cfg.Constraints.Git.Branch == "" {
			cfg.Constraints.Git.Branch = "main"
		}
		if cfg.Constraints.Git.LocalPath == "" {
			cfg.Constraints.Git.LocalPath = "data/rulepacks"
		}
	}
	if cfg.Constraints.Git.Auth.Type == "" {
		cfg.Constraints.Git.Auth.Type = "none"
	}

	if cfg.Audit.Retention.Schedule == "" {
		cfg.Audit.Retention.Schedule = "0 3 * * *"
	}
	if cfg.Audit.Retention.ArchivePath == "" {
		cfg.Audit.Retention.ArchivePath = "data/archives"
	}
}
