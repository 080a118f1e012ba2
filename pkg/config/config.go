package config

import "time"

// Config is the root configuration for Minerva.
type Config struct {
	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Ontology configures domain schema and entity loading.
	Ontology OntologyConfig `yaml:"ontology"`

	// Constraints configures constraint loading and rule-pack sources.
	Constraints ConstraintsConfig `yaml:"constraints"`

	// Audit configures the audit trail.
	Audit AuditConfig `yaml:"audit"`
}

// TelemetryConfig configures observability.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	Format string `yaml:"format"`

	// AddSource includes file and line number in logs.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled turns metric recording on.
	Enabled bool `yaml:"enabled"`

	// Namespace is the Prometheus namespace prefix.
	Namespace string `yaml:"namespace"`

	// ListenAddress is the address the metrics endpoint binds to.
	ListenAddress string `yaml:"listen_address"`

	// Path is the metrics endpoint path.
	Path string `yaml:"path"`
}

// OntologyConfig configures domain schema and entity ingestion.
type OntologyConfig struct {
	// DomainPaths lists YAML files or directories with domain schemas.
	DomainPaths []string `yaml:"domain_paths"`

	// EntityPaths lists YAML files or directories with entity seeds.
	EntityPaths []string `yaml:"entity_paths"`

	// Watch enables hot-reload of domain and entity files.
	Watch bool `yaml:"watch"`
}

// ConstraintsConfig configures constraint ingestion.
type ConstraintsConfig struct {
	// Paths lists YAML files or directories with declarative constraints.
	Paths []string `yaml:"paths"`

	// Watch enables hot-reload of constraint files.
	Watch bool `yaml:"watch"`

	// Git configures an optional Git rule-pack source.
	Git GitConfig `yaml:"git"`
}

// GitConfig configures rule-pack synchronisation from a Git repository.
type GitConfig struct {
	// URL is the repository URL. Empty disables the Git source.
	URL string `yaml:"url"`

	// Branch is the branch to track. Defaults to "main".
	Branch string `yaml:"branch"`

	// Path is the subdirectory within the repository holding rule packs.
	Path string `yaml:"path"`

	// LocalPath is where the repository is cloned.
	LocalPath string `yaml:"local_path"`

	// PollInterval is how often to pull for changes.
	PollInterval time.Duration `yaml:"poll_interval"`

	// Auth configures repository authentication.
	Auth GitAuthConfig `yaml:"auth"`
}

// GitAuthConfig configures Git authentication.
type GitAuthConfig struct {
	// Type is the auth mechanism: "none", "basic", "token", or "ssh".
	Type string `yaml:"type"`

	// Username for basic auth.
	Username string `yaml:"username"`

	// Password for basic auth.
	Password string `yaml:"password"`

	// Token for token auth.
	Token string `yaml:"token"`

	// SSHKeyPath is the private key file for ssh auth.
	SSHKeyPath string `yaml:"ssh_key_path"`
}

// AuditConfig configures the audit trail.
type AuditConfig struct {
	Retention RetentionConfig `yaml:"retention"`
}

// RetentionConfig configures audit retention. Zero limits keep every
// entry.
type RetentionConfig struct {
	// MaxAge is how long entries are retained. 0 keeps entries forever.
	MaxAge time.Duration `yaml:"max_age"`

	// MaxEntries is the maximum number of retained entries. 0 is
	// unlimited.
	MaxEntries int `yaml:"max_entries"`

	// Schedule is a cron expression for automatic pruning.
	Schedule string `yaml:"schedule"`

	// ArchiveBeforeDelete exports pruned entries to JSON first.
	ArchiveBeforeDelete bool `yaml:"archive_before_delete"`

	// ArchivePath is the archive directory.
	ArchivePath string `yaml:"archive_path"`
}
