// Package engine provides the constraint registry and evaluation engine
// that governs prospective agent actions.
//
// The engine holds registered constraint definitions, evaluates the ones
// applicable to an intended action against a caller-supplied context, and
// reduces the per-constraint results to a single verdict. Every evaluation
// is recorded in an append-only audit log.
//
// # Evaluation Flow
//
//	Context (action, target, related entities, metadata)
//	       |
//	Select applicable constraints (action match or "*" wildcard)
//	       |
//	For each applicable constraint, in registration order:
//	  run its evaluator; contain errors and panics as warn results
//	       |
//	Partition unsatisfied results by severity
//	       |
//	Verdict (allowed, results, summary) + audit entry
//
// # Basic Usage
//
//	eng := engine.New(engine.Config{})
//
//	eng.Register(constraint.NewDeclarative(constraint.Definition{
//	    ID:              "change-freeze",
//	    Name:            "Change Freeze Window",
//	    Domain:          "itsm",
//	    RelevantActions: []string{"deploy"},
//	    Severity:        constraint.SeverityBlock,
//	    Status:          constraint.StatusPromoted,
//	}, freezeRule))
//
//	verdict, err := eng.Evaluate(ctx, &constraint.Context{
//	    IntendedAction: "deploy",
//	    TargetEntity:   "itsm:Service:SVC001",
//	    Metadata:       map[string]any{"change_freeze": true},
//	})
//	if !verdict.Allowed {
//	    return fmt.Errorf("action blocked: %s", verdict.Summary)
//	}
//
// # Failure Containment
//
// An evaluator that returns an error or panics never fails the evaluation
// call. The engine substitutes a synthetic unsatisfied result with warn
// severity, so a broken constraint surfaces in the verdict without vetoing
// the action or hiding the other constraints' results.
//
// # Lifecycle Status
//
// A definition's Status (candidate, promoted, disabled) is registry
// metadata. Evaluate runs every applicable constraint regardless of
// status; candidate rules dry-run in real verdicts and operators filter
// on status when reviewing results. Callers that want status-gated
// enforcement filter the verdict's results themselves.
package engine
