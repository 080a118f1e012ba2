package ontology

import (
	"fmt"
	"strings"
)

// DescribeDomain renders a deterministic markdown summary of a registered
// domain: its entity types, their properties, and their direct and computed
// inverse relationships with cardinalities. The output is meant for humans
// and LLM prompts alike.
//
// An unregistered name yields an explicit sentinel string instead of an
// error so callers can surface it directly.
func (e *Engine) DescribeDomain(name string) string {
	d := e.GetDomain(name)
	if d == nil {
		return fmt.Sprintf("Unknown domain: %q. No domain with this name is registered.", name)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "# Domain: %s (%s)\n\n", displayLabel(d.Label, d.Name), d.Name)
	if d.Version != "" {
		fmt.Fprintf(&b, "Version: %s\n\n", d.Version)
	}
	if d.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", d.Description)
	}

	if len(d.EntityTypes) == 0 {
		b.WriteString("_No entity types declared._\n")
		return b.String()
	}

	for i := range d.EntityTypes {
		t := &d.EntityTypes[i]
		fmt.Fprintf(&b, "## %s (%s)\n\n", displayLabel(t.Label, t.Name), t.Name)
		if t.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", t.Description)
		}

		if len(t.Properties) > 0 {
			b.WriteString("Properties:\n")
			for _, p := range t.Properties {
				fmt.Fprintf(&b, "- `%s` (%s)", p.Name, p.Type)
				if p.Required {
					b.WriteString(" [required]")
				}
				if p.Type == PropertyTypeEnum && len(p.EnumValues) > 0 {
					fmt.Fprintf(&b, " values: %s", strings.Join(p.EnumValues, ", "))
				}
				if p.Description != "" {
					fmt.Fprintf(&b, ": %s", p.Description)
				}
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}

		rels := e.GetRelationshipsFor(d.Name, t.Name)
		if len(rels) > 0 {
			b.WriteString("Relationships:\n")
			for _, rel := range rels {
				fmt.Fprintf(&b, "- `%s` -> %s (%s)", rel.Name, rel.TargetType, rel.Cardinality)
				if t.GetRelationship(rel.Name) == nil {
					b.WriteString(" [inverse]")
				}
				if rel.Description != "" {
					fmt.Fprintf(&b, ": %s", rel.Description)
				}
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// displayLabel prefers the authored label, falling back to the name.
func displayLabel(label, name string) string {
	if label != "" {
		return label
	}
	return name
}
