package constraint

import (
	"context"
	"time"
)

// Severity classifies how an unsatisfied constraint affects the verdict.
type Severity string

const (
	// SeverityBlock makes an unsatisfied result veto the action.
	SeverityBlock Severity = "block"

	// SeverityWarn surfaces an unsatisfied result without blocking.
	SeverityWarn Severity = "warn"

	// SeverityInfo is retained for display only; it affects neither the
	// verdict nor the warning partition.
	SeverityInfo Severity = "info"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case SeverityBlock, SeverityWarn, SeverityInfo:
		return true
	}
	return false
}

// Status is the lifecycle state of a registered constraint. Status is
// mutable at runtime via the engine without re-registration.
type Status string

const (
	// StatusCandidate marks a rule under observation, not yet promoted.
	StatusCandidate Status = "candidate"

	// StatusPromoted marks a rule in active service.
	StatusPromoted Status = "promoted"

	// StatusDisabled marks a rule switched off by an operator.
	StatusDisabled Status = "disabled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusCandidate, StatusPromoted, StatusDisabled:
		return true
	}
	return false
}

// ActionWildcard matches every intended action in RelevantActions.
const ActionWildcard = "*"

// Evaluator is the capability every constraint exposes. Implementations may
// be pure (declarative rules) or perform their own external lookups; they
// may block, so they receive the caller's context. The engine imposes no
// timeout of its own.
type Evaluator interface {
	Evaluate(ctx context.Context, c *Context) (*Result, error)
}

// EvaluatorFunc adapts an ordinary function to the Evaluator interface.
type EvaluatorFunc func(ctx context.Context, c *Context) (*Result, error)

// Evaluate calls f.
func (f EvaluatorFunc) Evaluate(ctx context.Context, c *Context) (*Result, error) {
	return f(ctx, c)
}

// Definition is a registered constraint.
type Definition struct {
	// ID uniquely identifies the constraint in the registry.
	ID string `json:"id" yaml:"id"`

	// Name is the human-readable rule name.
	Name string `json:"name" yaml:"name"`

	// Domain is the ontology domain the constraint belongs to.
	Domain string `json:"domain" yaml:"domain"`

	// AppliesTo lists the entity type names the constraint concerns.
	AppliesTo []string `json:"applies_to,omitempty" yaml:"applies_to,omitempty"`

	// RelevantActions lists the intended actions that make the constraint
	// applicable, or the "*" wildcard for all actions.
	RelevantActions []string `json:"relevant_actions,omitempty" yaml:"relevant_actions,omitempty"`

	// Severity classifies the effect of an unsatisfied result.
	Severity Severity `json:"severity" yaml:"severity"`

	// Status is the lifecycle state. Evaluation does not consult it; see
	// engine.Engine.Evaluate.
	Status Status `json:"status" yaml:"status"`

	// Description explains what the constraint checks.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Evaluator produces the constraint's result for a context.
	Evaluator Evaluator `json:"-" yaml:"-"`
}

// AppliesToAction reports whether the constraint is applicable to the given
// intended action, either by exact match or the wildcard.
func (d *Definition) AppliesToAction(action string) bool {
	for _, a := range d.RelevantActions {
		if a == action || a == ActionWildcard {
			return true
		}
	}
	return false
}

// Clone returns a copy of the definition with its own slices. The Evaluator
// is shared; evaluators are stateless from the registry's point of view.
func (d *Definition) Clone() *Definition {
	if d == nil {
		return nil
	}
	clone := *d
	clone.AppliesTo = append([]string(nil), d.AppliesTo...)
	clone.RelevantActions = append([]string(nil), d.RelevantActions...)
	return &clone
}

// Context is the snapshot a caller supplies for one evaluation: the intended
// action, its target, related entities discovered from the graph store, and
// a metadata bag filled by the caller's enrichment step.
type Context struct {
	// IntendedAction names the prospective mutating action.
	IntendedAction string `json:"intended_action"`

	// TargetEntity is the composite id of the entity the action targets.
	TargetEntity string `json:"target_entity"`

	// RelatedEntities lists composite ids of entities related to the target.
	RelatedEntities []string `json:"related_entities,omitempty"`

	// Timestamp is when the context snapshot was taken.
	Timestamp time.Time `json:"timestamp"`

	// Metadata is the open key/value bag conditions and evaluators inspect.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Result is one constraint's judgement of a context.
type Result struct {
	// ConstraintID identifies the constraint that produced the result.
	ConstraintID string `json:"constraint_id"`

	// Satisfied is true when the constraint found nothing objectionable.
	Satisfied bool `json:"satisfied"`

	// Severity is the effective severity the result carries. Normally the
	// definition's severity; evaluation failures are downgraded to warn.
	Severity Severity `json:"severity"`

	// Explanation states, in plain language, why the result is what it is.
	Explanation string `json:"explanation"`

	// InvolvedEntities lists the entity ids the judgement rests on.
	InvolvedEntities []string `json:"involved_entities,omitempty"`
}

// Verdict is the reduced outcome of one evaluation call.
type Verdict struct {
	// ID is a correlation id for the evaluation (UUID), distinct from the
	// audit log's sequential entry id.
	ID string `json:"id"`

	// Allowed is false exactly when at least one unsatisfied result carries
	// block severity.
	Allowed bool `json:"allowed"`

	// Results holds every applicable constraint's result in registration
	// order.
	Results []*Result `json:"results,omitempty"`

	// Summary is the human-readable reduction of the results.
	Summary string `json:"summary"`

	// EvaluatedAt is when the verdict was produced.
	EvaluatedAt time.Time `json:"evaluated_at"`

	// Context is the originating context snapshot.
	Context *Context `json:"context,omitempty"`
}

// BlockedResults returns the unsatisfied results with block severity.
func (v *Verdict) BlockedResults() []*Result {
	var blocked []*Result
	for _, r := range v.Results {
		if !r.Satisfied && r.Severity == SeverityBlock {
			blocked = append(blocked, r)
		}
	}
	return blocked
}

// WarningResults returns the unsatisfied results with warn severity.
func (v *Verdict) WarningResults() []*Result {
	var warnings []*Result
	for _, r := range v.Results {
		if !r.Satisfied && r.Severity == SeverityWarn {
			warnings = append(warnings, r)
		}
	}
	return warnings
}
