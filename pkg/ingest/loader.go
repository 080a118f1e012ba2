package ingest

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"mercator-hq/minerva/pkg/constraint"
	"mercator-hq/minerva/pkg/ontology"
)

// LoaderConfig configures the Loader.
type LoaderConfig struct {
	// MaxFileSize is the maximum accepted file size in bytes.
	MaxFileSize int64

	// Extensions lists the file extensions read from directories.
	Extensions []string

	// SkipHidden skips dot-files and dot-directories in directory walks.
	SkipHidden bool
}

// DefaultLoaderConfig returns the default loader configuration.
func DefaultLoaderConfig() *LoaderConfig {
	return &LoaderConfig{
		MaxFileSize: 10 * 1024 * 1024, // 10MB
		Extensions:  []string{".yaml", ".yml"},
		SkipHidden:  true,
	}
}

// Loader reads domain schemas, entity seeds, and declarative constraints
// from the file system.
type Loader struct {
	config *LoaderConfig
	logger *slog.Logger
}

// NewLoader creates a loader.
func NewLoader(config *LoaderConfig, logger *slog.Logger) *Loader {
	if config == nil {
		config = DefaultLoaderConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		config: config,
		logger: logger.With("component", "ingest.loader"),
	}
}

// LoadDomainFile loads a single domain schema file.
func (l *Loader) LoadDomainFile(path string) (*ontology.Domain, error) {
	data, err := l.readFile(path)
	if err != nil {
		return nil, err
	}
	domain, err := ParseDomain(data)
	if err != nil {
		return nil, &ParseError{FilePath: path, Message: "invalid domain schema", Cause: err}
	}
	return domain, nil
}

// LoadEntityFile loads a single entity seed file.
func (l *Loader) LoadEntityFile(path string) ([]*ontology.Entity, error) {
	data, err := l.readFile(path)
	if err != nil {
		return nil, err
	}
	entities, err := ParseEntities(data)
	if err != nil {
		return nil, &ParseError{FilePath: path, Message: "invalid entity seed", Cause: err}
	}
	return entities, nil
}

// LoadConstraintFile loads a single declarative constraint file.
func (l *Loader) LoadConstraintFile(path string) ([]*constraint.Definition, error) {
	data, err := l.readFile(path)
	if err != nil {
		return nil, err
	}
	defs, err := ParseConstraints(data)
	if err != nil {
		return nil, &ParseError{FilePath: path, Message: "invalid constraint file", Cause: err}
	}
	return defs, nil
}

// LoadDomains loads domain schemas from a mixed list of files and
// directories. Directories are walked recursively.
func (l *Loader) LoadDomains(paths []string) ([]*ontology.Domain, error) {
	var domains []*ontology.Domain
	err := l.eachFile(paths, func(path string) error {
		domain, err := l.LoadDomainFile(path)
		if err != nil {
			return err
		}
		domains = append(domains, domain)
		l.logger.Info("domain schema loaded", "path", path, "domain", domain.Name)
		return nil
	})
	return domains, err
}

// LoadEntities loads entity seeds from a mixed list of files and
// directories.
func (l *Loader) LoadEntities(paths []string) ([]*ontology.Entity, error) {
	var entities []*ontology.Entity
	err := l.eachFile(paths, func(path string) error {
		batch, err := l.LoadEntityFile(path)
		if err != nil {
			return err
		}
		entities = append(entities, batch...)
		l.logger.Info("entity seed loaded", "path", path, "entities", len(batch))
		return nil
	})
	return entities, err
}

// LoadConstraints loads declarative constraints from a mixed list of files
// and directories.
func (l *Loader) LoadConstraints(paths []string) ([]*constraint.Definition, error) {
	var defs []*constraint.Definition
	err := l.eachFile(paths, func(path string) error {
		batch, err := l.LoadConstraintFile(path)
		if err != nil {
			return err
		}
		defs = append(defs, batch...)
		l.logger.Info("constraint file loaded", "path", path, "constraints", len(batch))
		return nil
	})
	return defs, err
}

// eachFile invokes fn for every matching file in the given files and
// directories.
func (l *Loader) eachFile(paths []string, fn func(path string) error) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return &LoadError{FilePath: path, Message: "failed to access path", Cause: err}
		}
		if !info.IsDir() {
			if err := fn(path); err != nil {
				return err
			}
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			base := filepath.Base(p)
			if l.config.SkipHidden && strings.HasPrefix(base, ".") && p != path {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !l.hasValidExtension(p) {
				return nil
			}
			return fn(p)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// readFile reads a file, guarding size and UTF-8 validity.
func (l *Loader) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{FilePath: path, Message: "file not found", Cause: err}
		}
		return nil, &LoadError{FilePath: path, Message: "failed to access file", Cause: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &LoadError{FilePath: path, Message: "not a regular file"}
	}
	if info.Size() > l.config.MaxFileSize {
		return nil, &LoadError{
			FilePath: path,
			Message:  fmt.Sprintf("file size %d bytes exceeds maximum %d bytes", info.Size(), l.config.MaxFileSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{FilePath: path, Message: "failed to read file", Cause: err}
	}
	if !utf8.Valid(data) {
		return nil, &LoadError{FilePath: path, Message: "file contains invalid UTF-8 encoding"}
	}
	return data, nil
}

// hasValidExtension checks whether the file should be read from a
// directory walk.
func (l *Loader) hasValidExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, valid := range l.config.Extensions {
		if ext == strings.ToLower(valid) {
			return true
		}
	}
	return false
}
