package metadata

import "slices"

// Metadata is the bound result of a build: every entity with its resolved
// attributes, and every filter definition.
type Metadata struct {
	Entities   []EntityBinding    `yaml:"entities"`
	FilterDefs []FilterDefBinding `yaml:"filter-defs,omitempty"`
}

// Entity returns the binding registered under an entity name or class name, or nil.
func (m *Metadata) Entity(name string) *EntityBinding {
	for i := range m.Entities {
		if m.Entities[i].Name == name {
			return &m.Entities[i]
		}
	}

	for i := range m.Entities {
		if m.Entities[i].Class == name {
			return &m.Entities[i]
		}
	}

	return nil
}

// FilterDef returns the named filter definition, or nil.
func (m *Metadata) FilterDef(name string) *FilterDefBinding {
	i := slices.IndexFunc(m.FilterDefs, func(d FilterDefBinding) bool { return d.Name == name })
	if i < 0 {
		return nil
	}

	return &m.FilterDefs[i]
}

// EntityBinding is one bound entity.
type EntityBinding struct {
	Name            string                  `yaml:"name"`
	Class           string                  `yaml:"class,omitempty"`
	Table           string                  `yaml:"table"`
	SecondaryTables []SecondaryTableBinding `yaml:"secondary-tables,omitempty"`
	Origin          string                  `yaml:"origin"`
	Identifier      AttributeBinding        `yaml:"identifier"`
	Attributes      []AttributeBinding      `yaml:"attributes,omitempty"`
	Filters         []FilterBinding         `yaml:"filters,omitempty"`
}

// SecondaryTableBinding is a table joined to the entity's primary table.
// KeyTarget holds the identifier columns the key references.
type SecondaryTableBinding struct {
	Table      string         `yaml:"table"`
	Key        []ValueBinding `yaml:"key"`
	KeyTarget  []string       `yaml:"key-target,omitempty"`
	ForeignKey string         `yaml:"foreign-key,omitempty"`
	Optional   bool           `yaml:"optional,omitempty"`
	Inverse    bool           `yaml:"inverse,omitempty"`
}

// Attribute returns the named attribute (identifier included), or nil.
func (e *EntityBinding) Attribute(name string) *AttributeBinding {
	if e.Identifier.Name == name {
		return &e.Identifier
	}

	for i := range e.Attributes {
		if e.Attributes[i].Name == name {
			return &e.Attributes[i]
		}
	}

	return nil
}

// AttributeBinding is one bound attribute. Association-only fields are empty
// for basic attributes.
type AttributeBinding struct {
	Name           string `yaml:"name"`
	Nature         string `yaml:"nature"`
	Accessor       string `yaml:"accessor,omitempty"`
	Type           string `yaml:"type,omitempty"`
	NaturalID      string `yaml:"natural-id,omitempty"`
	Generation     string `yaml:"generation,omitempty"`
	Generator      string `yaml:"generator,omitempty"`
	Lazy           bool   `yaml:"lazy,omitempty"`
	Virtual        bool   `yaml:"virtual,omitempty"`
	Nullable       bool   `yaml:"nullable"`
	Insert         bool   `yaml:"insert"`
	Update         bool   `yaml:"update"`
	OptimisticLock bool   `yaml:"optimistic-lock"`

	FetchTiming string   `yaml:"fetch-timing,omitempty"`
	FetchStyle  string   `yaml:"fetch-style,omitempty"`
	FetchMode   string   `yaml:"fetch-mode,omitempty"`
	Cascade     []string `yaml:"cascade,omitempty"`
	Target      string   `yaml:"target,omitempty"`
	ForeignKey  string   `yaml:"foreign-key,omitempty"`
	// PropertyRef names the target attribute when the association is not
	// keyed by the target's identifier.
	PropertyRef string `yaml:"property-ref,omitempty"`

	Values []ValueBinding `yaml:"values,omitempty"`
	// JoinColumns are the target columns as table.column, resolved in the
	// second pass.
	JoinColumns []string `yaml:"join-columns,omitempty"`

	Attributes []AttributeBinding `yaml:"attributes,omitempty"`
	Collection *CollectionBinding `yaml:"collection,omitempty"`
}

// CollectionBinding holds what only plural attributes have.
type CollectionBinding struct {
	Nature  string `yaml:"nature"`
	Element string `yaml:"element"`
	// Table is the collection table, or the target's table for one-to-many.
	Table         string          `yaml:"table"`
	ElementType   string          `yaml:"element-type,omitempty"`
	Key           []ValueBinding  `yaml:"key"`
	KeyTarget     []string        `yaml:"key-target,omitempty"`
	Elements      []ValueBinding  `yaml:"elements,omitempty"`
	ElementTarget []string        `yaml:"element-target,omitempty"`
	Index         []ValueBinding  `yaml:"index,omitempty"`
	IndexBase     int             `yaml:"index-base,omitempty"`
	Inverse       bool            `yaml:"inverse,omitempty"`
	BatchSize     int             `yaml:"batch-size,omitempty"`
	Where         string          `yaml:"where,omitempty"`
	OrderBy       string          `yaml:"order-by,omitempty"`
	Filters       []FilterBinding `yaml:"filters,omitempty"`
}

// ValueBinding is a column or a formula.
type ValueBinding struct {
	Table    string `yaml:"table,omitempty"`
	Column   string `yaml:"column,omitempty"`
	Formula  string `yaml:"formula,omitempty"`
	SQLType  string `yaml:"sql-type,omitempty"`
	Length   int    `yaml:"length,omitempty"`
	Nullable bool   `yaml:"nullable,omitempty"`
	Unique   bool   `yaml:"unique,omitempty"`
	Default  string `yaml:"default,omitempty"`
	Check    string `yaml:"check,omitempty"`
}

// FilterBinding is a filter applied to an entity or collection, with the
// definition's default condition already substituted.
type FilterBinding struct {
	Name      string `yaml:"name"`
	Condition string `yaml:"condition"`
}

// FilterDefBinding is a filter definition.
type FilterDefBinding struct {
	Name       string                   `yaml:"name"`
	Condition  string                   `yaml:"condition,omitempty"`
	Origin     string                   `yaml:"origin"`
	Parameters []FilterParameterBinding `yaml:"parameters,omitempty"`
}

// FilterParameterBinding is one typed filter parameter.
type FilterParameterBinding struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}
