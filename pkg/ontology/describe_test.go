package ontology

import (
	"strings"
	"testing"
)

func TestDescribeDomain_UnknownSentinel(t *testing.T) {
	eng := NewEngine(nil)

	got := eng.DescribeDomain("finance")
	if !strings.Contains(got, `Unknown domain: "finance"`) {
		t.Errorf("expected unknown-domain sentinel, got %q", got)
	}
}

func TestDescribeDomain_ContainsTypesPropertiesRelationships(t *testing.T) {
	eng := NewEngine(nil)
	eng.RegisterDomain(itsmDomain())

	got := eng.DescribeDomain("itsm")

	wantFragments := []string{
		"# Domain: IT Service Management (itsm)",
		"Version: 1.0.0",
		"## Incident (Incident)",
		"`priority` (enum) [required] values: P1, P2, P3",
		"`affects_service` -> Service (many_to_one)",
		"## Service (Service)",
		"`governed_by_sla` -> SLA (many_to_one)",
		"`affected_by_incidents` -> Incident (one_to_many) [inverse]",
		"## Service Level Agreement (SLA)",
		"`governs_services` -> Service (one_to_many) [inverse]",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(got, frag) {
			t.Errorf("description missing %q\n---\n%s", frag, got)
		}
	}
}

func TestDescribeDomain_RendersDescriptions(t *testing.T) {
	eng := NewEngine(nil)
	eng.RegisterDomain(&Domain{
		Name: "itsm",
		EntityTypes: []EntityType{{
			Name: "Incident",
			Properties: []Property{
				{Name: "priority", Type: PropertyTypeString, Description: "Business impact rating."},
			},
			Relationships: []Relationship{
				{Name: "affects_service", TargetType: "Service", Cardinality: ManyToOne, Description: "The service taken down."},
			},
		}},
	})

	got := eng.DescribeDomain("itsm")
	if !strings.Contains(got, "`priority` (string): Business impact rating.") {
		t.Errorf("property description not rendered, got:\n%s", got)
	}
	if !strings.Contains(got, "(many_to_one): The service taken down.") {
		t.Errorf("relationship description not rendered, got:\n%s", got)
	}
}

func TestDescribeDomain_Deterministic(t *testing.T) {
	eng := NewEngine(nil)
	eng.RegisterDomain(itsmDomain())

	first := eng.DescribeDomain("itsm")
	for i := 0; i < 10; i++ {
		if got := eng.DescribeDomain("itsm"); got != first {
			t.Fatal("DescribeDomain output is not deterministic")
		}
	}
}

func TestDescribeDomain_EmptyDomain(t *testing.T) {
	eng := NewEngine(nil)
	eng.RegisterDomain(&Domain{Name: "empty"})

	got := eng.DescribeDomain("empty")
	if !strings.Contains(got, "No entity types declared") {
		t.Errorf("expected empty-domain note, got %q", got)
	}
}
