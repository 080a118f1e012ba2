package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Variables follow the naming
// convention MINERVA_SECTION_FIELD (e.g. MINERVA_LOGGING_LEVEL) and always
// take precedence over file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration.
func applyEnvOverrides(cfg *Config) {
	// Logging overrides
	if val := os.Getenv("MINERVA_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("MINERVA_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("MINERVA_LOGGING_ADD_SOURCE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Logging.AddSource = b
		}
	}

	// Metrics overrides
	if val := os.Getenv("MINERVA_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("MINERVA_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
	if val := os.Getenv("MINERVA_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}

	// Ontology overrides
	if val := os.Getenv("MINERVA_ONTOLOGY_DOMAIN_PATHS"); val != "" {
		cfg.Ontology.DomainPaths = splitPaths(val)
	}
	if val := os.Getenv("MINERVA_ONTOLOGY_ENTITY_PATHS"); val != "" {
		cfg.Ontology.EntityPaths = splitPaths(val)
	}
	if val := os.Getenv("MINERVA_ONTOLOGY_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Ontology.Watch = b
		}
	}

	// Constraint overrides
	if val := os.Getenv("MINERVA_CONSTRAINTS_PATHS"); val != "" {
		cfg.Constraints.Paths = splitPaths(val)
	}
	if val := os.Getenv("MINERVA_CONSTRAINTS_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Constraints.Watch = b
		}
	}
	if val := os.Getenv("MINERVA_CONSTRAINTS_GIT_URL"); val != "" {
		cfg.Constraints.Git.URL = val
	}
	if val := os.Getenv("MINERVA_CONSTRAINTS_GIT_BRANCH"); val != "" {
		cfg.Constraints.Git.Branch = val
	}
	if val := os.Getenv("MINERVA_CONSTRAINTS_GIT_PATH"); val != "" {
		cfg.Constraints.Git.Path = val
	}
	if val := os.Getenv("MINERVA_CONSTRAINTS_GIT_LOCAL_PATH"); val != "" {
		cfg.Constraints.Git.LocalPath = val
	}
	if val := os.Getenv("MINERVA_CONSTRAINTS_GIT_POLL_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Constraints.Git.PollInterval = d
		}
	}
	if val := os.Getenv("MINERVA_CONSTRAINTS_GIT_AUTH_TYPE"); val != "" {
		cfg.Constraints.Git.Auth.Type = val
	}
	if val := os.Getenv("MINERVA_CONSTRAINTS_GIT_AUTH_TOKEN"); val != "" {
		cfg.Constraints.Git.Auth.Token = val
	}

	// Audit retention overrides
	if val := os.Getenv("MINERVA_AUDIT_RETENTION_MAX_AGE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Audit.Retention.MaxAge = d
		}
	}
	if val := os.Getenv("MINERVA_AUDIT_RETENTION_MAX_ENTRIES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Audit.Retention.MaxEntries = i
		}
	}
	if val := os.Getenv("MINERVA_AUDIT_RETENTION_SCHEDULE"); val != "" {
		cfg.Audit.Retention.Schedule = val
	}
}

// splitPaths splits a comma-separated path list, trimming whitespace.
func splitPaths(val string) []string {
	var paths []string
	for _, p := range strings.Split(val, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
