package constraint

import (
	"context"
	"fmt"

	"mercator-hq/minerva/pkg/constraint/rule"
)

// NewDeclarative completes a definition with an evaluator wrapping a
// declarative rule. The constraint is satisfied exactly when the rule does
// not trigger against the context's metadata; a rule with no conditions
// therefore yields an always-satisfied, effectively informational
// constraint.
func NewDeclarative(def Definition, r rule.Rule) *Definition {
	d := def.Clone()
	d.Evaluator = EvaluatorFunc(func(_ context.Context, c *Context) (*Result, error) {
		triggered := r.Triggered(c.Metadata)

		explanation := fmt.Sprintf("%s: conditions not met", displayName(d))
		if triggered {
			if d.Description != "" {
				explanation = d.Description
			} else {
				explanation = fmt.Sprintf("%s: rule conditions matched", displayName(d))
			}
		}

		return &Result{
			ConstraintID:     d.ID,
			Satisfied:        !triggered,
			Severity:         d.Severity,
			Explanation:      explanation,
			InvolvedEntities: []string{c.TargetEntity},
		}, nil
	})
	return d
}

func displayName(d *Definition) string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}
