// Package validator performs structural validation of ontology domain
// schemas before registration.
//
// Validation never fails registration: ontology.Engine.RegisterDomain accepts
// any schema so partially-invalid domains can still be inspected. Callers run
// Validate first and decide what to do with the reported issues. Dangling
// relationship targets and empty enum value lists are warnings; missing
// required schema fields and duplicate names are errors.
package validator

import (
	"fmt"

	"mercator-hq/minerva/pkg/ontology"
)

// Severity classifies a validation issue.
type Severity string

const (
	// SeverityError marks structural problems a schema author must fix.
	SeverityError Severity = "error"

	// SeverityWarning marks inconsistencies the engine tolerates at runtime.
	SeverityWarning Severity = "warning"
)

// Issue is one validation finding with a human-readable message.
type Issue struct {
	// Severity is error or warning.
	Severity Severity

	// Message describes the issue in plain language.
	Message string
}

// String renders the issue as "severity: message".
func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Severity, i.Message)
}

// Result is the ordered list of issues found in one validation pass.
type Result struct {
	Issues []Issue
}

// HasErrors returns true if any issue has error severity.
func (r *Result) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns the messages of all error-severity issues.
func (r *Result) Errors() []string {
	var msgs []string
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			msgs = append(msgs, issue.Message)
		}
	}
	return msgs
}

// Warnings returns the messages of all warning-severity issues.
func (r *Result) Warnings() []string {
	var msgs []string
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			msgs = append(msgs, issue.Message)
		}
	}
	return msgs
}

// Strings returns every issue rendered as "severity: message", in order.
func (r *Result) Strings() []string {
	msgs := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		msgs = append(msgs, issue.String())
	}
	return msgs
}

func (r *Result) addError(format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Severity: SeverityError, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) addWarning(format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)})
}

// Validate runs all checks over a domain schema and returns the accumulated
// issues. It never panics and never returns an error value: a nil or empty
// schema simply produces error-severity issues.
func Validate(domain *ontology.Domain) *Result {
	result := &Result{}

	if domain == nil {
		result.addError("domain schema is nil")
		return result
	}
	if domain.Name == "" {
		result.addError("domain is missing required field 'name'")
	}

	seenTypes := make(map[string]bool)
	for i := range domain.EntityTypes {
		t := &domain.EntityTypes[i]
		validateEntityType(domain, t, seenTypes, result)
	}

	return result
}

func validateEntityType(domain *ontology.Domain, t *ontology.EntityType, seenTypes map[string]bool, result *Result) {
	if t.Name == "" {
		result.addError("domain %q declares an entity type with no name", domain.Name)
		return
	}
	if seenTypes[t.Name] {
		result.addError("domain %q declares duplicate entity type %q", domain.Name, t.Name)
	}
	seenTypes[t.Name] = true

	for _, p := range t.Properties {
		if p.Name == "" {
			result.addError("entity type %q declares a property with no name", t.Name)
			continue
		}
		if p.Type == ontology.PropertyTypeEnum && len(p.EnumValues) == 0 {
			result.addWarning("property %q on type %q is an enum with no enum values", p.Name, t.Name)
		}
	}

	seenRels := make(map[string]bool)
	for _, rel := range t.Relationships {
		if rel.Name == "" {
			result.addError("entity type %q declares a relationship with no name", t.Name)
			continue
		}
		if seenRels[rel.Name] {
			result.addError("entity type %q declares duplicate relationship %q", t.Name, rel.Name)
		}
		seenRels[rel.Name] = true

		if rel.TargetType == "" {
			result.addError("relationship %q on type %q has no target type", rel.Name, t.Name)
			continue
		}
		if !domain.HasEntityType(rel.TargetType) {
			result.addWarning("relationship %q on type %q targets unknown type %q", rel.Name, t.Name, rel.TargetType)
		}
	}
}
