package config

import (
	"fmt"
	"time"
)

var (
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats = map[string]bool{"json": true, "text": true}
	validAuthTypes  = map[string]bool{"none": true, "basic": true, "token": true, "ssh": true}
)

// Validate checks a configuration for inconsistencies. It expects defaults
// to have been applied already.
func Validate(cfg *Config) error {
	if !validLogLevels[cfg.Telemetry.Logging.Level] {
		return fmt.Errorf("telemetry.logging.level: unknown level %q", cfg.Telemetry.Logging.Level)
	}
	if !validLogFormats[cfg.Telemetry.Logging.Format] {
		return fmt.Errorf("telemetry.logging.format: unknown format %q", cfg.Telemetry.Logging.Format)
	}

	if cfg.Audit.Retention.MaxAge < 0 {
		return fmt.Errorf("audit.retention.max_age: must not be negative")
	}
	if cfg.Audit.Retention.MaxEntries < 0 {
		return fmt.Errorf("audit.retention.max_entries: must not be negative")
	}

	git := cfg.Constraints.Git
	if git.URL != "" {
		if !validAuthTypes[git.Auth.Type] {
			return fmt.Errorf("constraints.git.auth.type: unknown type %q", git.Auth.Type)
		}
		switch git.Auth.Type {
		case "basic":
			if git.Auth.Username == "" || git.Auth.Password == "" {
				return fmt.Errorf("constraints.git.auth: basic auth requires username and password")
			}
		case "token":
			if git.Auth.Token == "" {
				return fmt.Errorf("constraints.git.auth: token auth requires a token")
			}
		case "ssh":
			if git.Auth.SSHKeyPath == "" {
				return fmt.Errorf("constraints.git.auth: ssh auth requires ssh_key_path")
			}
		}
		if git.PollInterval < 0 {
			return fmt.Errorf("constraints.git.poll_interval: must not be negative")
		}
		if git.PollInterval > 0 && git.PollInterval < time.Second {
			return fmt.Errorf("constraints.git.poll_interval: must be at least 1s")
		}
	}

	return nil
}
