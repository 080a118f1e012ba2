// Package ontology implements the typed entity graph store at the heart of
// Minerva. It holds the declarative vocabulary (domains, entity types,
// relationships) and the live entity instances for one or more business
// domains, and answers relationship and reachability queries over them.
//
// # Core Types
//
// Domain: a named, versioned vocabulary of entity types and relationships
//
// EntityType: one kind of entity within a domain, with properties and
// declared (outgoing) relationships
//
// Entity: a runtime instance of an entity type, with property values and
// relationship edges to other entity ids
//
// Engine: the in-memory graph store owning registered domains and entities
//
// # Basic Usage
//
//	eng := ontology.NewEngine(nil)
//	eng.RegisterDomain(domain)
//
//	rels := eng.GetRelationshipsFor("itsm", "Service")
//	for _, rel := range rels {
//	    fmt.Println(rel.Name, "->", rel.TargetType)
//	}
//
//	eng.AddEntity(&ontology.Entity{ID: "itsm:Incident:INC001", ...})
//	visited := eng.Traverse("itsm:Incident:INC001", 2)
//
// # Relationship Inversion
//
// A type's full relationship set is computed, not stored. For every declared
// relationship R on type A targeting type B with an inverse name I,
// GetRelationshipsFor exposes I on B targeting A, even though B's schema never
// declares it. The fold runs at query time over the whole domain so the
// authored schema stays the single source of truth.
//
// # Failure Semantics
//
// All lookups are total: unknown domains, types, and entities yield nil or
// empty results, and DescribeDomain returns an explicit sentinel string.
// No Engine operation returns an error for missing input.
package ontology
