// Package rule is the pure declarative rule evaluator used by constraints
// authored as data rather than code.
//
// A rule is a conjunction of field-comparison conditions over a metadata
// bag. All conditions must hold for the rule to trigger. Evaluation is a
// pure function: it never panics and never reports errors. A condition
// that cannot be evaluated sensibly (non-numeric value under a numeric
// operator, non-list value under "in") is simply false.
//
// A rule with no conditions is defined as never triggered. This makes an
// empty declarative constraint inert rather than an always-fire rule, the
// conservative default for rules assembled by tooling.
package rule

// Operator is a comparison operator usable in a condition.
type Operator string

const (
	OperatorEq     Operator = "eq"
	OperatorNeq    Operator = "neq"
	OperatorGt     Operator = "gt"
	OperatorGte    Operator = "gte"
	OperatorLt     Operator = "lt"
	OperatorLte    Operator = "lte"
	OperatorIn     Operator = "in"
	OperatorExists Operator = "exists"
)

// Condition is a single field comparison. Value is unused by the exists
// operator.
type Condition struct {
	// Field is the metadata key to inspect.
	Field string `yaml:"field"`

	// Operator is the comparison to apply.
	Operator Operator `yaml:"operator"`

	// Value is the comparand. For the in operator it must be a list.
	Value any `yaml:"value,omitempty"`
}

// Rule is an AND-combination of conditions.
type Rule struct {
	// Conditions must all hold for the rule to trigger. An empty list
	// never triggers.
	Conditions []Condition `yaml:"conditions"`
}

// Triggered reports whether every condition holds against the metadata bag.
// An empty condition list returns false.
func (r Rule) Triggered(metadata map[string]any) bool {
	if len(r.Conditions) == 0 {
		return false
	}
	for _, cond := range r.Conditions {
		if !cond.holds(metadata) {
			return false
		}
	}
	return true
}

// holds evaluates a single condition against the metadata bag.
func (c Condition) holds(metadata map[string]any) bool {
	actual, present := metadata[c.Field]

	switch c.Operator {
	case OperatorExists:
		return present

	case OperatorEq:
		return looseEqual(actual, c.Value)

	case OperatorNeq:
		return !looseEqual(actual, c.Value)

	case OperatorGt, OperatorGte, OperatorLt, OperatorLte:
		return compareNumeric(c.Operator, actual, c.Value)

	case OperatorIn:
		return memberOf(actual, c.Value)

	default:
		// Unknown operator: the condition cannot hold.
		return false
	}
}
