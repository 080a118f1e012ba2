package engine

import (
	"fmt"
	"strings"
)

// DescribeConstraints renders a deterministic markdown listing of every
// constraint registered for the domain, in registration order. A domain
// with no constraints yields an explicit sentinel string instead of an
// error so callers can surface it directly.
func (e *Engine) DescribeConstraints(domain string) string {
	defs := e.GetConstraints(domain)
	if len(defs) == 0 {
		return fmt.Sprintf("No constraints registered for domain: %q.", domain)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "# Constraints: %s\n\n", domain)
	for _, def := range defs {
		name := def.Name
		if name == "" {
			name = def.ID
		}
		fmt.Fprintf(&b, "## %s (%s)\n\n", name, def.ID)
		fmt.Fprintf(&b, "- Severity: %s\n", def.Severity)
		fmt.Fprintf(&b, "- Status: %s\n", def.Status)
		if len(def.AppliesTo) > 0 {
			fmt.Fprintf(&b, "- Applies to: %s\n", strings.Join(def.AppliesTo, ", "))
		}
		if len(def.RelevantActions) > 0 {
			fmt.Fprintf(&b, "- Relevant actions: %s\n", strings.Join(def.RelevantActions, ", "))
		}
		if def.Description != "" {
			fmt.Fprintf(&b, "- Description: %s\n", def.Description)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}
