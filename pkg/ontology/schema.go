package ontology

// PropertyType enumerates the scalar types a property value may carry.
type PropertyType string

const (
	PropertyTypeString    PropertyType = "string"
	PropertyTypeNumber    PropertyType = "number"
	PropertyTypeBoolean   PropertyType = "boolean"
	PropertyTypeDate      PropertyType = "date"
	PropertyTypeEnum      PropertyType = "enum"
	PropertyTypeReference PropertyType = "reference"
)

// Cardinality enumerates the declared multiplicity of a relationship.
type Cardinality string

const (
	OneToOne   Cardinality = "one_to_one"
	OneToMany  Cardinality = "one_to_many"
	ManyToOne  Cardinality = "many_to_one"
	ManyToMany Cardinality = "many_to_many"
)

// Inverse returns the cardinality as seen from the target side of a
// relationship. one_to_many and many_to_one mirror each other; the
// symmetric cardinalities are their own inverse.
func (c Cardinality) Inverse() Cardinality {
	switch c {
	case OneToMany:
		return ManyToOne
	case ManyToOne:
		return OneToMany
	default:
		return c
	}
}

// Domain is the root schema node: a named, versioned vocabulary of entity
// types and their relationships (e.g. "itsm").
type Domain struct {
	// Name uniquely identifies the domain across the engine.
	Name string `yaml:"name"`

	// Label is the human-readable display name.
	Label string `yaml:"label,omitempty"`

	// Version is the schema version string.
	Version string `yaml:"version,omitempty"`

	// Description explains what the domain models.
	Description string `yaml:"description,omitempty"`

	// EntityTypes lists the domain's entity types in declaration order.
	// Declaration order is significant: computed inverse relationships are
	// reported in the order their owning types appear here.
	EntityTypes []EntityType `yaml:"entity_types"`
}

// EntityType describes one kind of entity within a domain.
type EntityType struct {
	// Name uniquely identifies the type within its domain.
	Name string `yaml:"name"`

	// Label is the human-readable display name.
	Label string `yaml:"label,omitempty"`

	// Description explains what instances of this type represent.
	Description string `yaml:"description,omitempty"`

	// Properties lists the type's properties in declaration order.
	Properties []Property `yaml:"properties,omitempty"`

	// Relationships lists the type's declared outgoing relationships, as
	// authored. Inverse relationships contributed by other types are never
	// stored here; they are computed by Engine.GetRelationshipsFor.
	Relationships []Relationship `yaml:"relationships,omitempty"`
}

// Property describes a single property of an entity type.
type Property struct {
	// Name identifies the property within its type.
	Name string `yaml:"name"`

	// Label is the human-readable display name.
	Label string `yaml:"label,omitempty"`

	// Type is the property's value type.
	Type PropertyType `yaml:"type"`

	// Required marks the property as mandatory on instances.
	Required bool `yaml:"required,omitempty"`

	// EnumValues lists the allowed values when Type is enum.
	EnumValues []string `yaml:"enum_values,omitempty"`

	// Description explains the property.
	Description string `yaml:"description,omitempty"`
}

// Relationship describes a declared, directed relationship between two
// entity types.
type Relationship struct {
	// Name identifies the relationship on its source type.
	Name string `yaml:"name"`

	// Label is the human-readable display name.
	Label string `yaml:"label,omitempty"`

	// SourceType is the entity type declaring the relationship.
	SourceType string `yaml:"source_type,omitempty"`

	// TargetType is the entity type the relationship points at. It may
	// reference a type unknown to the domain; the schema validator flags
	// this, the engine tolerates it.
	TargetType string `yaml:"target_type"`

	// Cardinality is the declared multiplicity.
	Cardinality Cardinality `yaml:"cardinality"`

	// InverseName, when set, names the computed relationship visible on
	// TargetType pointing back at SourceType.
	InverseName string `yaml:"inverse_name,omitempty"`

	// Description explains the relationship.
	Description string `yaml:"description,omitempty"`
}

// Clone returns a deep copy of the domain, including every entity type and
// each type's property and relationship slices. A nil receiver yields nil.
func (d *Domain) Clone() *Domain {
	if d == nil {
		return nil
	}
	clone := &Domain{
		Name:        d.Name,
		Label:       d.Label,
		Version:     d.Version,
		Description: d.Description,
	}
	if d.EntityTypes != nil {
		clone.EntityTypes = make([]EntityType, len(d.EntityTypes))
		for i := range d.EntityTypes {
			clone.EntityTypes[i] = d.EntityTypes[i].clone()
		}
	}
	return clone
}

func (t EntityType) clone() EntityType {
	out := t
	if t.Properties != nil {
		out.Properties = make([]Property, len(t.Properties))
		for i, p := range t.Properties {
			p.EnumValues = append([]string(nil), p.EnumValues...)
			out.Properties[i] = p
		}
	}
	out.Relationships = append([]Relationship(nil), t.Relationships...)
	return out
}

// GetEntityType returns the entity type with the given name, or nil if the
// domain does not declare it.
func (d *Domain) GetEntityType(name string) *EntityType {
	for i := range d.EntityTypes {
		if d.EntityTypes[i].Name == name {
			return &d.EntityTypes[i]
		}
	}
	return nil
}

// HasEntityType returns true if the domain declares a type with the given name.
func (d *Domain) HasEntityType(name string) bool {
	return d.GetEntityType(name) != nil
}

// GetProperty returns the property with the given name, or nil if the type
// does not declare it.
func (t *EntityType) GetProperty(name string) *Property {
	for i := range t.Properties {
		if t.Properties[i].Name == name {
			return &t.Properties[i]
		}
	}
	return nil
}

// GetRelationship returns the declared relationship with the given name, or
// nil if the type does not declare it.
func (t *EntityType) GetRelationship(name string) *Relationship {
	for i := range t.Relationships {
		if t.Relationships[i].Name == name {
			return &t.Relationships[i]
		}
	}
	return nil
}
