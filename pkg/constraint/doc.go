// Package constraint defines the value types shared by the policy
// evaluation engine and its collaborators: constraint definitions, the
// evaluation context supplied by callers, per-constraint results, and the
// aggregate verdict.
//
// # Core Types
//
// Definition: a registered constraint with applicability, severity, status,
// and an Evaluator capability
//
// Context: one intended action against a target entity, with related entity
// ids and an open metadata bag
//
// Result: one constraint's judgement of a context
//
// Verdict: the reduced allow/block decision for one evaluation call
//
// # Evaluator Dispatch
//
// Every Definition exposes the same Evaluate signature regardless of how it
// is implemented. Declarative constraints wrap the pure rule evaluator via
// NewDeclarative; bespoke constraints supply an EvaluatorFunc that may
// perform its own I/O. Callers of the engine never need to know which.
//
// # Immutability
//
// Definitions should be treated as immutable after registration except
// through the engine's status and severity update operations. Results and
// verdicts are never mutated once produced; audit entries reference them
// as-is.
package constraint
