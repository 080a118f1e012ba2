package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mercator-hq/minerva/pkg/audit"
	"mercator-hq/minerva/pkg/constraint"
	"mercator-hq/minerva/pkg/telemetry/metrics"
)

// Config configures an Engine.
type Config struct {
	// Logger for structured logging. Defaults to slog.Default().
	Logger *slog.Logger

	// Metrics is an optional metrics handle. May be nil.
	Metrics *metrics.Metrics

	// AuditLog is the audit trail to append verdicts to. A fresh log is
	// created when nil.
	AuditLog *audit.Log
}

// Engine is the constraint registry and evaluator. It is safe for
// concurrent use.
type Engine struct {
	// mu protects constraints and order.
	mu sync.RWMutex

	// constraints maps constraint id to its definition.
	constraints map[string]*constraint.Definition

	// order holds constraint ids in first-registration order. An upsert
	// keeps the id's original position.
	order []string

	auditLog *audit.Log
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New creates a constraint engine.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	auditLog := cfg.AuditLog
	if auditLog == nil {
		auditLog = audit.NewLog()
	}

	return &Engine{
		constraints: make(map[string]*constraint.Definition),
		auditLog:    auditLog,
		logger:      logger.With("component", "constraint.engine"),
		metrics:     cfg.Metrics,
	}
}

// Register upserts a constraint definition by id. Re-registering an id
// replaces the definition but keeps its original position in evaluation
// order.
func (e *Engine) Register(def *constraint.Definition) error {
	if def == nil {
		return &RegistrationError{Message: "definition cannot be nil"}
	}
	if def.ID == "" {
		return &RegistrationError{Message: "constraint id is required"}
	}
	if def.Evaluator == nil {
		return &RegistrationError{ConstraintID: def.ID, Message: "evaluator is required"}
	}
	if def.Severity != "" && !def.Severity.Valid() {
		return &RegistrationError{ConstraintID: def.ID, Message: fmt.Sprintf("unknown severity %q", def.Severity)}
	}
	if def.Status != "" && !def.Status.Valid() {
		return &RegistrationError{ConstraintID: def.ID, Message: fmt.Sprintf("unknown status %q", def.Status)}
	}

	e.mu.Lock()
	if _, exists := e.constraints[def.ID]; !exists {
		e.order = append(e.order, def.ID)
	}
	e.constraints[def.ID] = def.Clone()
	count := len(e.order)
	e.mu.Unlock()

	e.logger.Info("constraint registered",
		"constraint_id", def.ID,
		"domain", def.Domain,
		"severity", def.Severity,
		"status", def.Status,
	)
	e.metrics.UpdateConstraintCount(count)

	return nil
}

// GetConstraints returns the constraints belonging to the given domain, in
// registration order. The returned definitions are copies.
func (e *Engine) GetConstraints(domain string) []*constraint.Definition {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var defs []*constraint.Definition
	for _, id := range e.order {
		if def := e.constraints[id]; def.Domain == domain {
			defs = append(defs, def.Clone())
		}
	}
	return defs
}

// GetAllConstraints returns every registered constraint in registration
// order. The returned definitions are copies.
func (e *Engine) GetAllConstraints() []*constraint.Definition {
	e.mu.RLock()
	defer e.mu.RUnlock()

	defs := make([]*constraint.Definition, 0, len(e.order))
	for _, id := range e.order {
		defs = append(defs, e.constraints[id].Clone())
	}
	return defs
}

// ConstraintCount returns the number of registered constraints.
func (e *Engine) ConstraintCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.order)
}

// UpdateConstraintStatus sets the status of a registered constraint in
// place. Returns false when the id is unknown or the status is invalid.
func (e *Engine) UpdateConstraintStatus(id string, status constraint.Status) bool {
	if !status.Valid() {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	def, ok := e.constraints[id]
	if !ok {
		return false
	}
	def.Status = status
	return true
}

// UpdateConstraintSeverity sets the severity of a registered constraint in
// place. Returns false when the id is unknown or the severity is invalid.
func (e *Engine) UpdateConstraintSeverity(id string, severity constraint.Severity) bool {
	if !severity.Valid() {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	def, ok := e.constraints[id]
	if !ok {
		return false
	}
	def.Severity = severity
	return true
}

// Evaluate runs every constraint applicable to the context's intended
// action and reduces their results to a verdict. The verdict is appended
// to the audit log before it is returned.
//
// Applicability is by action match or the "*" wildcard only; a
// constraint's Status is not consulted, so candidate rules dry-run in
// real verdicts. Callers that want status gating filter the results.
//
// The caller's ctx is passed to each evaluator; the engine imposes no
// timeout of its own.
func (e *Engine) Evaluate(ctx context.Context, c *constraint.Context) (*constraint.Verdict, error) {
	if c == nil {
		return nil, ErrNilContext
	}

	start := time.Now()
	applicable := e.applicableTo(c.IntendedAction)

	verdict := &constraint.Verdict{
		ID:          uuid.NewString(),
		EvaluatedAt: start,
		Context:     c,
	}

	if len(applicable) == 0 {
		verdict.Allowed = true
		verdict.Summary = fmt.Sprintf("No constraints applied to action %q", c.IntendedAction)
		e.record(verdict, start)
		return verdict, nil
	}

	for _, def := range applicable {
		result := e.runEvaluator(ctx, def, c)
		verdict.Results = append(verdict.Results, result)
		e.metrics.RecordConstraintResult(def.ID, result.Satisfied)
	}

	blocked := verdict.BlockedResults()
	warnings := verdict.WarningResults()
	verdict.Allowed = len(blocked) == 0
	verdict.Summary = buildSummary(c.IntendedAction, len(verdict.Results), blocked, warnings)

	e.record(verdict, start)
	return verdict, nil
}

// applicableTo returns copies of the constraints applicable to the action,
// in registration order.
func (e *Engine) applicableTo(action string) []*constraint.Definition {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var defs []*constraint.Definition
	for _, id := range e.order {
		if def := e.constraints[id]; def.AppliesToAction(action) {
			defs = append(defs, def.Clone())
		}
	}
	return defs
}

// runEvaluator runs one constraint's evaluator, containing errors and
// panics as synthetic unsatisfied warn results. A misbehaving constraint
// must never abort the evaluation of the others or the caller's action.
func (e *Engine) runEvaluator(ctx context.Context, def *constraint.Definition, c *constraint.Context) (result *constraint.Result) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("constraint evaluator panicked",
				"constraint_id", def.ID,
				"panic", r,
			)
			result = failureResult(def, c, fmt.Sprintf("%v", r))
		}
	}()

	res, err := def.Evaluator.Evaluate(ctx, c)
	if err != nil {
		e.logger.Warn("constraint evaluation failed",
			"constraint_id", def.ID,
			"error", err,
		)
		return failureResult(def, c, err.Error())
	}
	if res == nil {
		return failureResult(def, c, "evaluator returned no result")
	}
	if res.ConstraintID == "" {
		res.ConstraintID = def.ID
	}
	return res
}

// failureResult builds the synthetic result for a failed evaluator.
func failureResult(def *constraint.Definition, c *constraint.Context, message string) *constraint.Result {
	name := def.Name
	if name == "" {
		name = def.ID
	}
	return &constraint.Result{
		ConstraintID:     def.ID,
		Satisfied:        false,
		Severity:         constraint.SeverityWarn,
		Explanation:      fmt.Sprintf("%s: evaluation failed: %s", name, message),
		InvolvedEntities: []string{c.TargetEntity},
	}
}

// buildSummary reduces the partitioned results to the verdict's summary
// line.
func buildSummary(action string, total int, blocked, warnings []*constraint.Result) string {
	var parts []string

	if len(blocked) > 0 {
		parts = append(parts, fmt.Sprintf("BLOCKED by %d constraint(s): %s",
			len(blocked), joinExplanations(blocked)))
	}
	if len(warnings) > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s): %s",
			len(warnings), joinExplanations(warnings)))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("All %d constraint(s) satisfied for action %q", total, action)
	}
	return strings.Join(parts, "; ")
}

func joinExplanations(results []*constraint.Result) string {
	explanations := make([]string, len(results))
	for i, r := range results {
		explanations[i] = r.Explanation
	}
	return strings.Join(explanations, "; ")
}

// record appends the verdict to the audit log and updates metrics.
func (e *Engine) record(verdict *constraint.Verdict, start time.Time) {
	entry := e.auditLog.Append(verdict)

	decision := "blocked"
	if verdict.Allowed {
		decision = "allowed"
	}
	e.metrics.RecordEvaluation(decision, time.Since(start))
	e.metrics.UpdateAuditEntries(e.auditLog.Len())

	e.logger.Info("action evaluated",
		"verdict_id", verdict.ID,
		"audit_id", entry.ID,
		"action", verdict.Context.IntendedAction,
		"target", verdict.Context.TargetEntity,
		"allowed", verdict.Allowed,
		"results", len(verdict.Results),
	)
}

// GetAuditLog returns an ordered snapshot of the audit trail.
func (e *Engine) GetAuditLog() []*audit.Entry {
	return e.auditLog.Snapshot()
}

// GetAuditEntriesFor returns the audit entries matching the filter.
func (e *Engine) GetAuditEntriesFor(filter audit.Filter) []*audit.Entry {
	return e.auditLog.Query(filter)
}

// GetAuditSummary returns the running audit counters.
func (e *Engine) GetAuditSummary() audit.Summary {
	return e.auditLog.Summary()
}

// AuditLog returns the underlying audit log, for wiring into retention
// or export.
func (e *Engine) AuditLog() *audit.Log {
	return e.auditLog
}
