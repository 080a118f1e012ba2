package ontology

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"mercator-hq/minerva/pkg/telemetry/metrics"
)

// Engine is the in-memory graph store. It owns zero or more registered
// domains and the live set of entity instances, and answers relationship and
// reachability queries over them.
//
// All methods are safe for concurrent use. Mutations (RegisterDomain,
// AddEntity) are single synchronous calls guarded by a write lock; reads
// return copies, never live references.
type Engine struct {
	// mu protects domains, domainOrder, and entities.
	mu sync.RWMutex

	// domains maps domain name to its registered schema.
	domains map[string]*Domain

	// domainOrder preserves first-registration order for deterministic
	// listings. Re-registering a name keeps its original position.
	domainOrder []string

	// entities maps composite entity id to the stored instance.
	entities map[string]*Entity

	// logger for structured logging.
	logger *slog.Logger

	// metrics is the optional recorder for the entity gauge and traversal
	// counters. May be nil; recording calls on a nil handle are no-ops.
	metrics *metrics.Metrics
}

// NewEngine creates an empty graph store. A nil logger falls back to
// slog.Default.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		domains:  make(map[string]*Domain),
		entities: make(map[string]*Entity),
		logger:   logger.With("component", "ontology.engine"),
	}
}

// SetMetrics attaches a metrics recorder. The engine records the stored
// entity gauge and traversal counters through it. Leaving it unset, or
// passing nil, disables recording.
func (e *Engine) SetMetrics(m *metrics.Metrics) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.metrics = m
}

// RegisterDomain registers a domain schema, replacing any existing schema of
// the same name (last-writer-wins). Registration performs no validation;
// callers run the schema validator first so partially-invalid domains can
// still be inspected for diagnostics.
func (e *Engine) RegisterDomain(domain *Domain) {
	if domain == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.domains[domain.Name]; !exists {
		e.domainOrder = append(e.domainOrder, domain.Name)
	}
	// The engine stores a copy so later caller mutations cannot reach the
	// registered schema.
	e.domains[domain.Name] = domain.Clone()

	e.logger.Info("domain registered",
		"domain", domain.Name,
		"version", domain.Version,
		"entity_types", len(domain.EntityTypes),
	)
}

// GetDomains returns copies of all registered domains in first-registration
// order.
func (e *Engine) GetDomains() []*Domain {
	e.mu.RLock()
	defer e.mu.RUnlock()

	domains := make([]*Domain, 0, len(e.domainOrder))
	for _, name := range e.domainOrder {
		domains = append(domains, e.domains[name].Clone())
	}
	return domains
}

// GetDomain returns a copy of the registered domain with the given name, or
// nil if no such domain is registered.
func (e *Engine) GetDomain(name string) *Domain {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.domains[name].Clone()
}

// GetEntityType returns a copy of the named entity type from the named
// domain, or nil when either the domain or the type is unknown.
func (e *Engine) GetEntityType(domain, typeName string) *EntityType {
	e.mu.RLock()
	defer e.mu.RUnlock()

	d, ok := e.domains[domain]
	if !ok {
		return nil
	}
	t := d.GetEntityType(typeName)
	if t == nil {
		return nil
	}
	clone := t.clone()
	return &clone
}

// GetRelationshipsFor returns the full relationship view for a type: the
// relationships it declares directly, in declaration order, followed by the
// inverse relationships contributed by every type in the domain whose
// declared relationship targets it and carries an inverse name, in the order
// the owning types were declared. Unknown domains or types yield nil.
func (e *Engine) GetRelationshipsFor(domain, typeName string) []Relationship {
	e.mu.RLock()
	defer e.mu.RUnlock()

	d, ok := e.domains[domain]
	if !ok {
		return nil
	}
	t := d.GetEntityType(typeName)
	if t == nil {
		return nil
	}

	rels := make([]Relationship, 0, len(t.Relationships))
	for _, rel := range t.Relationships {
		if rel.SourceType == "" {
			rel.SourceType = typeName
		}
		rels = append(rels, rel)
	}

	// Query-time fold over the whole domain: inverse edges are derived from
	// the authored declarations, never stored, so a schema change can never
	// leave stale inverse edges behind.
	for i := range d.EntityTypes {
		owner := &d.EntityTypes[i]
		for _, rel := range owner.Relationships {
			if rel.TargetType != typeName || rel.InverseName == "" {
				continue
			}
			rels = append(rels, Relationship{
				Name:        rel.InverseName,
				Label:       rel.InverseName,
				SourceType:  typeName,
				TargetType:  owner.Name,
				Cardinality: rel.Cardinality.Inverse(),
				InverseName: rel.Name,
				Description: fmt.Sprintf("Inverse of %s.%s", owner.Name, rel.Name),
			})
		}
	}

	return rels
}

// AddEntity upserts an entity by id, unconditionally overwriting any
// existing entity with the same id. The engine stores a copy.
func (e *Engine) AddEntity(entity *Entity) {
	if entity == nil || entity.ID == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.entities[entity.ID] = entity.Clone()
	e.metrics.UpdateEntityCount(len(e.entities))

	e.logger.Debug("entity upserted",
		"entity_id", entity.ID,
		"domain", entity.Domain,
		"type", entity.Type,
	)
}

// GetEntity returns a copy of the entity with the given id, or nil if no
// such entity is stored.
func (e *Engine) GetEntity(id string) *Entity {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.entities[id].Clone()
}

// GetAllEntities returns copies of every stored entity, sorted by id for
// deterministic iteration.
func (e *Engine) GetAllEntities() []*Entity {
	e.mu.RLock()
	defer e.mu.RUnlock()

	entities := make([]*Entity, 0, len(e.entities))
	for _, entity := range e.entities {
		entities = append(entities, entity.Clone())
	}
	sort.Slice(entities, func(i, j int) bool { return entities[i].ID < entities[j].ID })
	return entities
}

// EntityCount returns the number of stored entities.
func (e *Engine) EntityCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.entities)
}
