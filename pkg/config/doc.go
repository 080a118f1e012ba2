// Package config provides YAML configuration loading for Minerva.
//
// # Loading Sequence
//
// Configuration is loaded from a YAML file, filled with defaults, then
// optionally overridden from MINERVA_* environment variables, and finally
// validated:
//
//	cfg, err := config.LoadConfigWithEnvOverrides("minerva.yaml")
//	if err != nil {
//	    return err
//	}
//
// # Environment Overrides
//
// Variables follow MINERVA_SECTION_FIELD naming, for example:
//
//	MINERVA_LOGGING_LEVEL=debug
//	MINERVA_CONSTRAINTS_GIT_URL=https://example.com/rulepacks.git
//	MINERVA_AUDIT_RETENTION_MAX_ENTRIES=100000
//
// Path-list variables (MINERVA_ONTOLOGY_DOMAIN_PATHS,
// MINERVA_CONSTRAINTS_PATHS) are comma-separated.
package config
