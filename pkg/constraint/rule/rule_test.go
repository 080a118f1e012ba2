package rule

import "testing"

func TestTriggered_EmptyConditionsNeverTrigger(t *testing.T) {
	r := Rule{}
	if r.Triggered(map[string]any{"anything": true}) {
		t.Error("rule with no conditions must never trigger")
	}
	if r.Triggered(nil) {
		t.Error("rule with no conditions must never trigger on nil metadata")
	}
}

func TestTriggered_SingleConditions(t *testing.T) {
	metadata := map[string]any{
		"change_freeze_active": true,
		"priority":             "P1",
		"open_incidents":       3,
		"uptime":               99.95,
		"owner":                nil,
	}

	tests := []struct {
		name string
		cond Condition
		want bool
	}{
		{name: "eq bool match", cond: Condition{Field: "change_freeze_active", Operator: OperatorEq, Value: true}, want: true},
		{name: "eq bool mismatch", cond: Condition{Field: "change_freeze_active", Operator: OperatorEq, Value: false}, want: false},
		{name: "eq string", cond: Condition{Field: "priority", Operator: OperatorEq, Value: "P1"}, want: true},
		{name: "eq int vs float", cond: Condition{Field: "open_incidents", Operator: OperatorEq, Value: float64(3)}, want: true},
		{name: "eq missing field", cond: Condition{Field: "ghost", Operator: OperatorEq, Value: "x"}, want: false},
		{name: "neq", cond: Condition{Field: "priority", Operator: OperatorNeq, Value: "P3"}, want: true},
		{name: "neq missing field vs value", cond: Condition{Field: "ghost", Operator: OperatorNeq, Value: "x"}, want: true},
		{name: "gt holds", cond: Condition{Field: "open_incidents", Operator: OperatorGt, Value: 2}, want: true},
		{name: "gt fails", cond: Condition{Field: "open_incidents", Operator: OperatorGt, Value: 3}, want: false},
		{name: "gte boundary", cond: Condition{Field: "open_incidents", Operator: OperatorGte, Value: 3}, want: true},
		{name: "lt float", cond: Condition{Field: "uptime", Operator: OperatorLt, Value: 99.99}, want: true},
		{name: "lte boundary", cond: Condition{Field: "uptime", Operator: OperatorLte, Value: 99.95}, want: true},
		{name: "numeric op on non-number is false", cond: Condition{Field: "priority", Operator: OperatorGt, Value: 1}, want: false},
		{name: "numeric op on missing field is false", cond: Condition{Field: "ghost", Operator: OperatorGt, Value: 1}, want: false},
		{name: "numeric op with non-numeric comparand is false", cond: Condition{Field: "open_incidents", Operator: OperatorGt, Value: "two"}, want: false},
		{name: "in member", cond: Condition{Field: "priority", Operator: OperatorIn, Value: []any{"P1", "P2"}}, want: true},
		{name: "in non-member", cond: Condition{Field: "priority", Operator: OperatorIn, Value: []any{"P2", "P3"}}, want: false},
		{name: "in numeric coercion", cond: Condition{Field: "open_incidents", Operator: OperatorIn, Value: []any{float64(3)}}, want: true},
		{name: "in with non-list value is false", cond: Condition{Field: "priority", Operator: OperatorIn, Value: "P1"}, want: false},
		{name: "in with nil value is false", cond: Condition{Field: "priority", Operator: OperatorIn}, want: false},
		{name: "exists present", cond: Condition{Field: "priority", Operator: OperatorExists}, want: true},
		{name: "exists present nil value", cond: Condition{Field: "owner", Operator: OperatorExists}, want: true},
		{name: "exists absent", cond: Condition{Field: "ghost", Operator: OperatorExists}, want: false},
		{name: "exists ignores value", cond: Condition{Field: "priority", Operator: OperatorExists, Value: "ignored"}, want: true},
		{name: "unknown operator is false", cond: Condition{Field: "priority", Operator: "matches", Value: "P.*"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Rule{Conditions: []Condition{tt.cond}}
			if got := r.Triggered(metadata); got != tt.want {
				t.Errorf("Triggered() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTriggered_ConditionsAreConjunctive(t *testing.T) {
	metadata := map[string]any{
		"change_freeze_active": true,
		"priority":             "P1",
	}

	both := Rule{Conditions: []Condition{
		{Field: "change_freeze_active", Operator: OperatorEq, Value: true},
		{Field: "priority", Operator: OperatorEq, Value: "P1"},
	}}
	if !both.Triggered(metadata) {
		t.Error("all conditions hold, rule must trigger")
	}

	oneFails := Rule{Conditions: []Condition{
		{Field: "change_freeze_active", Operator: OperatorEq, Value: true},
		{Field: "priority", Operator: OperatorEq, Value: "P3"},
	}}
	if oneFails.Triggered(metadata) {
		t.Error("one failing condition must prevent triggering")
	}
}

func TestTriggered_NilMetadata(t *testing.T) {
	r := Rule{Conditions: []Condition{
		{Field: "x", Operator: OperatorExists},
	}}
	if r.Triggered(nil) {
		t.Error("exists must be false against nil metadata")
	}
}
