package ontology

import (
	"fmt"
	"strings"
)

// Entity is one runtime instance of an entity type. Entities are owned by the
// Engine for the process lifetime; ingestion re-runs upserts to refresh them.
type Entity struct {
	// ID is the globally unique composite key "domain:type:localId".
	ID string `yaml:"id" json:"id"`

	// Type is the entity type name within Domain.
	Type string `yaml:"type" json:"type"`

	// Domain is the owning domain name.
	Domain string `yaml:"domain" json:"domain"`

	// Properties maps property names to scalar (possibly nil) values.
	Properties map[string]any `yaml:"properties,omitempty" json:"properties,omitempty"`

	// Relationships maps relationship names to ordered lists of target
	// entity ids. Traversal follows exactly these edges; if bidirectional
	// reachability is wanted, the ingestion layer populates both directions.
	Relationships map[string][]string `yaml:"relationships,omitempty" json:"relationships,omitempty"`
}

// EntityID builds the composite entity id "domain:type:localId".
func EntityID(domain, entityType, localID string) string {
	return fmt.Sprintf("%s:%s:%s", domain, entityType, localID)
}

// ParseEntityID splits a composite entity id into its domain, type, and local
// id parts. The local id may itself contain colons. Returns ok=false when the
// id does not have at least three segments.
func ParseEntityID(id string) (domain, entityType, localID string, ok bool) {
	parts := strings.SplitN(id, ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

// Clone returns a deep copy of the entity. The engine stores and returns
// clones so callers can never mutate its internal state.
func (e *Entity) Clone() *Entity {
	if e == nil {
		return nil
	}
	clone := &Entity{
		ID:     e.ID,
		Type:   e.Type,
		Domain: e.Domain,
	}
	if e.Properties != nil {
		clone.Properties = make(map[string]any, len(e.Properties))
		for k, v := range e.Properties {
			clone.Properties[k] = v
		}
	}
	if e.Relationships != nil {
		clone.Relationships = make(map[string][]string, len(e.Relationships))
		for name, targets := range e.Relationships {
			clone.Relationships[name] = append([]string(nil), targets...)
		}
	}
	return clone
}
