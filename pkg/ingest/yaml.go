package ingest

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"mercator-hq/minerva/pkg/constraint"
	"mercator-hq/minerva/pkg/constraint/rule"
	"mercator-hq/minerva/pkg/ontology"
)

// DomainFile is the on-disk shape of a domain schema document.
type DomainFile struct {
	Domain ontology.Domain `yaml:"domain"`
}

// EntityFile is the on-disk shape of an entity seed document.
type EntityFile struct {
	Entities []*ontology.Entity `yaml:"entities"`
}

// ConstraintFile is the on-disk shape of a declarative constraint document.
type ConstraintFile struct {
	Constraints []ConstraintSpec `yaml:"constraints"`
}

// ConstraintSpec is one declarative constraint as authored: the definition
// fields plus the rule the evaluator wraps.
type ConstraintSpec struct {
	constraint.Definition `yaml:",inline"`

	// Rule holds the conditions the constraint checks.
	Rule rule.Rule `yaml:"rule"`
}

// Build converts the spec into a registrable definition wrapping the
// declarative rule evaluator.
func (s *ConstraintSpec) Build() *constraint.Definition {
	return constraint.NewDeclarative(s.Definition, s.Rule)
}

// ParseDomain decodes a domain schema document.
func ParseDomain(data []byte) (*ontology.Domain, error) {
	var file DomainFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if file.Domain.Name == "" {
		return nil, fmt.Errorf("domain name is required")
	}
	return &file.Domain, nil
}

// ParseEntities decodes an entity seed document. Every entity must carry an
// id; domain and type default from the id's composite segments when omitted.
func ParseEntities(data []byte) ([]*ontology.Entity, error) {
	var file EntityFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	for i, entity := range file.Entities {
		if entity == nil || entity.ID == "" {
			return nil, fmt.Errorf("entity %d: id is required", i)
		}
		if entity.Domain == "" || entity.Type == "" {
			domain, entityType, _, ok := ontology.ParseEntityID(entity.ID)
			if !ok {
				return nil, fmt.Errorf("entity %d: id %q is not of the form domain:type:localId", i, entity.ID)
			}
			if entity.Domain == "" {
				entity.Domain = domain
			}
			if entity.Type == "" {
				entity.Type = entityType
			}
		}
	}
	return file.Entities, nil
}

// ParseConstraints decodes a declarative constraint document into
// registrable definitions.
func ParseConstraints(data []byte) ([]*constraint.Definition, error) {
	var file ConstraintFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	defs := make([]*constraint.Definition, 0, len(file.Constraints))
	for i := range file.Constraints {
		spec := &file.Constraints[i]
		if spec.ID == "" {
			return nil, fmt.Errorf("constraint %d: id is required", i)
		}
		if spec.Severity != "" && !spec.Severity.Valid() {
			return nil, fmt.Errorf("constraint %q: unknown severity %q", spec.ID, spec.Severity)
		}
		if spec.Status != "" && !spec.Status.Valid() {
			return nil, fmt.Errorf("constraint %q: unknown status %q", spec.ID, spec.Status)
		}
		defs = append(defs, spec.Build())
	}
	return defs, nil
}
