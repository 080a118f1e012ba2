package ontology

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/minerva/pkg/telemetry/metrics"
)

// itsmDomain builds the reference test domain: incidents affect services,
// services are governed by SLAs, and both forward declarations carry
// inverse names.
func itsmDomain() *Domain {
	return &Domain{
		Name:        "itsm",
		Label:       "IT Service Management",
		Version:     "1.0.0",
		Description: "Incidents, services, and the SLAs that govern them.",
		EntityTypes: []EntityType{
			{
				Name:  "Incident",
				Label: "Incident",
				Properties: []Property{
					{Name: "priority", Type: PropertyTypeEnum, Required: true, EnumValues: []string{"P1", "P2", "P3"}},
					{Name: "status", Type: PropertyTypeString, Required: true},
				},
				Relationships: []Relationship{
					{
						Name:        "affects_service",
						SourceType:  "Incident",
						TargetType:  "Service",
						Cardinality: ManyToOne,
						InverseName: "affected_by_incidents",
					},
				},
			},
			{
				Name:  "Service",
				Label: "Service",
				Properties: []Property{
					{Name: "tier", Type: PropertyTypeNumber},
				},
				Relationships: []Relationship{
					{
						Name:        "governed_by_sla",
						SourceType:  "Service",
						TargetType:  "SLA",
						Cardinality: ManyToOne,
						InverseName: "governs_services",
					},
				},
			},
			{
				Name:  "SLA",
				Label: "Service Level Agreement",
				Properties: []Property{
					{Name: "target_uptime", Type: PropertyTypeNumber, Required: true},
				},
			},
		},
	}
}

func TestRegisterDomain_LastWriterWins(t *testing.T) {
	eng := NewEngine(nil)

	eng.RegisterDomain(&Domain{Name: "itsm", Version: "1.0.0"})
	eng.RegisterDomain(&Domain{Name: "hr", Version: "0.1.0"})
	eng.RegisterDomain(&Domain{Name: "itsm", Version: "2.0.0"})

	domains := eng.GetDomains()
	if len(domains) != 2 {
		t.Fatalf("expected 2 domains after re-registration, got %d", len(domains))
	}

	// Re-registering keeps the original position.
	if domains[0].Name != "itsm" || domains[1].Name != "hr" {
		t.Errorf("unexpected domain order: %q, %q", domains[0].Name, domains[1].Name)
	}

	got := eng.GetDomain("itsm")
	if got == nil {
		t.Fatal("expected itsm domain to be registered")
	}
	if got.Version != "2.0.0" {
		t.Errorf("expected replacement schema version 2.0.0, got %q", got.Version)
	}
}

func TestGetDomain_UnknownReturnsNil(t *testing.T) {
	eng := NewEngine(nil)

	if d := eng.GetDomain("nope"); d != nil {
		t.Errorf("expected nil for unknown domain, got %+v", d)
	}
	if et := eng.GetEntityType("nope", "Incident"); et != nil {
		t.Errorf("expected nil for unknown domain type lookup, got %+v", et)
	}
	if rels := eng.GetRelationshipsFor("nope", "Incident"); rels != nil {
		t.Errorf("expected nil relationships for unknown domain, got %+v", rels)
	}
}

func TestGetEntityType(t *testing.T) {
	eng := NewEngine(nil)
	eng.RegisterDomain(itsmDomain())

	tests := []struct {
		name     string
		domain   string
		typeName string
		wantNil  bool
	}{
		{name: "known type", domain: "itsm", typeName: "Incident"},
		{name: "unknown type", domain: "itsm", typeName: "ChangeRequest", wantNil: true},
		{name: "unknown domain", domain: "finance", typeName: "Incident", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eng.GetEntityType(tt.domain, tt.typeName)
			if tt.wantNil {
				if got != nil {
					t.Errorf("expected nil, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected entity type, got nil")
			}
			if got.Name != tt.typeName {
				t.Errorf("expected type %q, got %q", tt.typeName, got.Name)
			}
		})
	}
}

func TestGetRelationshipsFor_ComputedInverses(t *testing.T) {
	eng := NewEngine(nil)
	eng.RegisterDomain(itsmDomain())

	// Service declares one relationship and receives one inverse from
	// Incident's declaration.
	rels := eng.GetRelationshipsFor("itsm", "Service")
	if len(rels) != 2 {
		t.Fatalf("expected 2 relationships for Service, got %d: %+v", len(rels), rels)
	}

	// Direct relationships come first, in declaration order.
	direct := rels[0]
	if direct.Name != "governed_by_sla" || direct.TargetType != "SLA" {
		t.Errorf("expected direct governed_by_sla -> SLA first, got %+v", direct)
	}

	inverse := rels[1]
	if inverse.Name != "affected_by_incidents" {
		t.Fatalf("expected inverse affected_by_incidents, got %q", inverse.Name)
	}
	if inverse.SourceType != "Service" || inverse.TargetType != "Incident" {
		t.Errorf("inverse should run Service -> Incident, got %s -> %s", inverse.SourceType, inverse.TargetType)
	}
	if inverse.Cardinality != OneToMany {
		t.Errorf("inverse of many_to_one should be one_to_many, got %s", inverse.Cardinality)
	}
	if inverse.InverseName != "affects_service" {
		t.Errorf("inverse should point back at affects_service, got %q", inverse.InverseName)
	}
}

func TestGetRelationshipsFor_SLAReceivesOnlyInverse(t *testing.T) {
	eng := NewEngine(nil)
	eng.RegisterDomain(itsmDomain())

	rels := eng.GetRelationshipsFor("itsm", "SLA")
	if len(rels) != 1 {
		t.Fatalf("expected exactly 1 relationship for SLA, got %d", len(rels))
	}
	if rels[0].Name != "governs_services" || rels[0].TargetType != "Service" {
		t.Errorf("expected inverse governs_services -> Service, got %+v", rels[0])
	}
}

func TestGetRelationshipsFor_NoInverseNameContributesNothing(t *testing.T) {
	eng := NewEngine(nil)
	eng.RegisterDomain(&Domain{
		Name: "d",
		EntityTypes: []EntityType{
			{
				Name: "A",
				Relationships: []Relationship{
					{Name: "points_at", SourceType: "A", TargetType: "B", Cardinality: OneToOne},
				},
			},
			{Name: "B"},
		},
	})

	if rels := eng.GetRelationshipsFor("d", "B"); len(rels) != 0 {
		t.Errorf("relationship without inverse name must not surface on target, got %+v", rels)
	}
}

func TestCardinalityInverse(t *testing.T) {
	tests := []struct {
		in   Cardinality
		want Cardinality
	}{
		{OneToMany, ManyToOne},
		{ManyToOne, OneToMany},
		{OneToOne, OneToOne},
		{ManyToMany, ManyToMany},
	}
	for _, tt := range tests {
		if got := tt.in.Inverse(); got != tt.want {
			t.Errorf("Inverse(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestAddEntity_UpsertOverwrites(t *testing.T) {
	eng := NewEngine(nil)

	eng.AddEntity(&Entity{
		ID:         "itsm:Incident:INC001",
		Type:       "Incident",
		Domain:     "itsm",
		Properties: map[string]any{"status": "open"},
	})
	eng.AddEntity(&Entity{
		ID:         "itsm:Incident:INC001",
		Type:       "Incident",
		Domain:     "itsm",
		Properties: map[string]any{"status": "resolved"},
	})

	if eng.EntityCount() != 1 {
		t.Fatalf("upsert must not duplicate, got %d entities", eng.EntityCount())
	}

	got := eng.GetEntity("itsm:Incident:INC001")
	if got == nil {
		t.Fatal("expected stored entity")
	}
	if got.Properties["status"] != "resolved" {
		t.Errorf("expected overwrite to win, got status %v", got.Properties["status"])
	}
}

func TestGetEntity_ReturnsCopy(t *testing.T) {
	eng := NewEngine(nil)
	eng.AddEntity(&Entity{
		ID:            "itsm:Service:SVC001",
		Type:          "Service",
		Domain:        "itsm",
		Properties:    map[string]any{"tier": 1},
		Relationships: map[string][]string{"governed_by_sla": {"itsm:SLA:SLA001"}},
	})

	first := eng.GetEntity("itsm:Service:SVC001")
	first.Properties["tier"] = 99
	first.Relationships["governed_by_sla"][0] = "tampered"

	second := eng.GetEntity("itsm:Service:SVC001")
	if second.Properties["tier"] != 1 {
		t.Errorf("caller mutation leaked into store: tier = %v", second.Properties["tier"])
	}
	if second.Relationships["governed_by_sla"][0] != "itsm:SLA:SLA001" {
		t.Errorf("caller mutation leaked into store: %v", second.Relationships)
	}
}

func TestGetDomain_ReturnsCopy(t *testing.T) {
	eng := NewEngine(nil)
	registered := &Domain{
		Name: "itsm",
		EntityTypes: []EntityType{{
			Name:       "Service",
			Properties: []Property{{Name: "tier", Type: PropertyTypeEnum, EnumValues: []string{"gold", "silver"}}},
			Relationships: []Relationship{{
				Name:        "depends_on",
				TargetType:  "Service",
				Cardinality: ManyToMany,
			}},
		}},
	}
	eng.RegisterDomain(registered)

	// Mutating the original after registration must not reach the store.
	registered.EntityTypes[0].Name = "Tampered"

	first := eng.GetDomain("itsm")
	first.EntityTypes[0].Name = "Mutated"
	first.EntityTypes[0].Properties[0].EnumValues[0] = "tampered"
	first.EntityTypes[0].Relationships[0].TargetType = "Nowhere"

	if got := eng.GetEntityType("itsm", "Service"); got == nil {
		t.Fatal("caller mutation through GetDomain leaked into engine state: Service type is gone")
	}
	second := eng.GetDomain("itsm")
	if second.EntityTypes[0].Properties[0].EnumValues[0] != "gold" {
		t.Errorf("caller mutation leaked into store: %v", second.EntityTypes[0].Properties[0].EnumValues)
	}
	if second.EntityTypes[0].Relationships[0].TargetType != "Service" {
		t.Errorf("caller mutation leaked into store: %v", second.EntityTypes[0].Relationships[0])
	}

	all := eng.GetDomains()
	all[0].EntityTypes[0].Name = "Mutated"
	typ := eng.GetEntityType("itsm", "Service")
	typ.Properties[0].Name = "mutated"
	if eng.GetEntityType("itsm", "Service").Properties[0].Name != "tier" {
		t.Error("caller mutation through GetDomains or GetEntityType leaked into store")
	}
}

func TestGetAllEntities_SortedByID(t *testing.T) {
	eng := NewEngine(nil)
	eng.AddEntity(&Entity{ID: "itsm:Service:SVC002"})
	eng.AddEntity(&Entity{ID: "itsm:Incident:INC001"})
	eng.AddEntity(&Entity{ID: "itsm:SLA:SLA001"})

	all := eng.GetAllEntities()
	if len(all) != 3 {
		t.Fatalf("expected 3 entities, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID >= all[i].ID {
			t.Errorf("entities not sorted: %q before %q", all[i-1].ID, all[i].ID)
		}
	}
}

func TestGetEntity_UnknownReturnsNil(t *testing.T) {
	eng := NewEngine(nil)
	if got := eng.GetEntity("itsm:Incident:NOPE"); got != nil {
		t.Errorf("expected nil for unknown entity, got %+v", got)
	}
}

func TestParseEntityID(t *testing.T) {
	tests := []struct {
		id         string
		wantDomain string
		wantType   string
		wantLocal  string
		wantOK     bool
	}{
		{"itsm:Incident:INC001", "itsm", "Incident", "INC001", true},
		{"itsm:Incident:a:b", "itsm", "Incident", "a:b", true},
		{"itsm:Incident", "", "", "", false},
		{"", "", "", "", false},
		{"::x", "", "", "", false},
	}

	for _, tt := range tests {
		domain, typ, local, ok := ParseEntityID(tt.id)
		if ok != tt.wantOK {
			t.Errorf("ParseEntityID(%q) ok = %v, want %v", tt.id, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if domain != tt.wantDomain || typ != tt.wantType || local != tt.wantLocal {
			t.Errorf("ParseEntityID(%q) = (%q, %q, %q)", tt.id, domain, typ, local)
		}
	}

	if id := EntityID("itsm", "Incident", "INC001"); id != "itsm:Incident:INC001" {
		t.Errorf("EntityID composed %q", id)
	}
}

func metricValue(t *testing.T, registry *prometheus.Registry, name string) float64 {
	t.Helper()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		var total float64
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				total += m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				total += float64(m.GetHistogram().GetSampleCount())
			}
		}
		return total
	}
	return 0
}

func TestEngineRecordsMetrics(t *testing.T) {
	m, registry := metrics.New(metrics.DefaultConfig(), nil)

	eng := NewEngine(nil)
	eng.SetMetrics(m)

	eng.AddEntity(&Entity{
		ID:            "itsm:Service:payments",
		Relationships: map[string][]string{"depends_on": {"itsm:Service:auth"}},
	})
	eng.AddEntity(&Entity{ID: "itsm:Service:auth"})

	if got := metricValue(t, registry, "minerva_entities_stored"); got != 2 {
		t.Errorf("entities_stored = %v, want 2", got)
	}

	eng.Traverse("itsm:Service:payments", 1)

	if got := metricValue(t, registry, "minerva_traversals_total"); got != 1 {
		t.Errorf("traversals_total = %v, want 1", got)
	}
	// One histogram sample, covering the two visited entities.
	if got := metricValue(t, registry, "minerva_traversal_visited"); got != 1 {
		t.Errorf("traversal_visited sample count = %v, want 1", got)
	}
}
