package ontology

import "testing"

// seedChain stores INC001 -(affects_service)-> SVC001 -(governed_by_sla)-> SLA001.
func seedChain(eng *Engine) {
	eng.AddEntity(&Entity{
		ID:            "itsm:Incident:INC001",
		Type:          "Incident",
		Domain:        "itsm",
		Relationships: map[string][]string{"affects_service": {"itsm:Service:SVC001"}},
	})
	eng.AddEntity(&Entity{
		ID:            "itsm:Service:SVC001",
		Type:          "Service",
		Domain:        "itsm",
		Relationships: map[string][]string{"governed_by_sla": {"itsm:SLA:SLA001"}},
	})
	eng.AddEntity(&Entity{
		ID:     "itsm:SLA:SLA001",
		Type:   "SLA",
		Domain: "itsm",
	})
}

func TestTraverse_DepthZeroReturnsStartOnly(t *testing.T) {
	eng := NewEngine(nil)
	seedChain(eng)

	visited := eng.Traverse("itsm:Incident:INC001", 0)
	if len(visited) != 1 {
		t.Fatalf("maxDepth 0 must visit only the start node, got %d", len(visited))
	}
	node, ok := visited["itsm:Incident:INC001"]
	if !ok {
		t.Fatal("start node missing from result")
	}
	if node.Depth != 0 {
		t.Errorf("start node depth = %d, want 0", node.Depth)
	}
	if node.Entity == nil || node.Entity.ID != "itsm:Incident:INC001" {
		t.Errorf("start node entity = %+v", node.Entity)
	}
}

func TestTraverse_BoundedDepth(t *testing.T) {
	eng := NewEngine(nil)
	seedChain(eng)

	tests := []struct {
		name     string
		maxDepth int
		wantIDs  map[string]int
	}{
		{
			name:     "one hop",
			maxDepth: 1,
			wantIDs: map[string]int{
				"itsm:Incident:INC001": 0,
				"itsm:Service:SVC001":  1,
			},
		},
		{
			name:     "two hops",
			maxDepth: 2,
			wantIDs: map[string]int{
				"itsm:Incident:INC001": 0,
				"itsm:Service:SVC001":  1,
				"itsm:SLA:SLA001":      2,
			},
		},
		{
			name:     "depth beyond graph",
			maxDepth: 10,
			wantIDs: map[string]int{
				"itsm:Incident:INC001": 0,
				"itsm:Service:SVC001":  1,
				"itsm:SLA:SLA001":      2,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visited := eng.Traverse("itsm:Incident:INC001", tt.maxDepth)
			if len(visited) != len(tt.wantIDs) {
				t.Fatalf("visited %d entities, want %d: %v", len(visited), len(tt.wantIDs), visited)
			}
			for id, wantDepth := range tt.wantIDs {
				node, ok := visited[id]
				if !ok {
					t.Errorf("missing %q from result", id)
					continue
				}
				if node.Depth != wantDepth {
					t.Errorf("%q depth = %d, want %d", id, node.Depth, wantDepth)
				}
			}
		})
	}
}

func TestTraverse_CycleTerminates(t *testing.T) {
	eng := NewEngine(nil)
	eng.AddEntity(&Entity{
		ID:            "d:T:a",
		Relationships: map[string][]string{"next": {"d:T:b"}},
	})
	eng.AddEntity(&Entity{
		ID:            "d:T:b",
		Relationships: map[string][]string{"next": {"d:T:a"}},
	})

	visited := eng.Traverse("d:T:a", 5)
	if len(visited) != 2 {
		t.Fatalf("cycle must visit each entity once, got %d", len(visited))
	}
	if visited["d:T:a"].Depth != 0 || visited["d:T:b"].Depth != 1 {
		t.Errorf("unexpected depths: a=%d b=%d", visited["d:T:a"].Depth, visited["d:T:b"].Depth)
	}
}

func TestTraverse_DiamondFirstDepthWins(t *testing.T) {
	eng := NewEngine(nil)
	// top fans out to left and right, both reach bottom.
	eng.AddEntity(&Entity{
		ID:            "d:T:top",
		Relationships: map[string][]string{"edges": {"d:T:left", "d:T:right"}},
	})
	eng.AddEntity(&Entity{
		ID:            "d:T:left",
		Relationships: map[string][]string{"edges": {"d:T:bottom"}},
	})
	eng.AddEntity(&Entity{
		ID:            "d:T:right",
		Relationships: map[string][]string{"edges": {"d:T:bottom"}},
	})
	eng.AddEntity(&Entity{ID: "d:T:bottom"})

	visited := eng.Traverse("d:T:top", 3)
	if len(visited) != 4 {
		t.Fatalf("diamond must visit 4 entities, got %d", len(visited))
	}
	if visited["d:T:bottom"].Depth != 2 {
		t.Errorf("bottom depth = %d, want 2", visited["d:T:bottom"].Depth)
	}
}

func TestTraverse_DanglingEdgeSkipped(t *testing.T) {
	eng := NewEngine(nil)
	eng.AddEntity(&Entity{
		ID:            "d:T:a",
		Relationships: map[string][]string{"next": {"d:T:ghost"}},
	})

	visited := eng.Traverse("d:T:a", 2)
	if len(visited) != 1 {
		t.Fatalf("dangling target must be skipped, got %d entities", len(visited))
	}
}

func TestTraverse_UnknownStartYieldsEmpty(t *testing.T) {
	eng := NewEngine(nil)
	if visited := eng.Traverse("d:T:missing", 3); len(visited) != 0 {
		t.Errorf("expected empty result for unknown start, got %v", visited)
	}
}
