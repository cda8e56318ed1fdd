package mapping

// Document is the root of a YAML mapping document.
type Document struct {
	// Package qualifies unqualified class names.
	Package string `yaml:"package,omitempty"`

	// DefaultLazy applies to associations that declare no laziness. Default: true.
	DefaultLazy *bool `yaml:"default-lazy,omitempty"`

	// DefaultCascade applies to associations that declare no cascade. Default: "none".
	DefaultCascade string `yaml:"default-cascade,omitempty"`

	// DefaultAccess is the property accessor used when none is declared. Default: "property".
	DefaultAccess string `yaml:"default-access,omitempty"`

	// FilterDefs are the filter definitions declared by this document.
	FilterDefs []FilterDefElement `yaml:"filter-defs,omitempty"`

	// Classes are the mapped entity classes.
	Classes []ClassElement `yaml:"classes"`

	Meta []MetaElement `yaml:"meta,omitempty"`
}

// IsDefaultLazy returns DefaultLazy, true when unset.
func (d *Document) IsDefaultLazy() bool {
	return BoolValue(d.DefaultLazy, true)
}

// FilterDefElement declares a parameterized filter.
type FilterDefElement struct {
	Name       string               `yaml:"name"`
	Condition  string               `yaml:"condition,omitempty"`
	Parameters []FilterParamElement `yaml:"parameters,omitempty"`
}

// FilterParamElement declares one filter parameter.
type FilterParamElement struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// FilterElement applies a filter definition to a class or collection.
type FilterElement struct {
	Name      string `yaml:"name"`
	Condition string `yaml:"condition,omitempty"`
}

// MetaElement is a free-form meta attribute.
type MetaElement struct {
	Attribute string `yaml:"attribute"`
	Value     string `yaml:"value"`
	Inherit   *bool  `yaml:"inherit,omitempty"`
}

// ClassElement maps one entity class.
type ClassElement struct {
	Name       string             `yaml:"name"`
	EntityName string             `yaml:"entity-name,omitempty"`
	Table      string             `yaml:"table,omitempty"`
	ID         *IDElement         `yaml:"id,omitempty"`
	NaturalID  *NaturalIDElement  `yaml:"natural-id,omitempty"`
	Attributes []AttributeElement `yaml:"attributes,omitempty"`
	Joins      []JoinElement      `yaml:"joins,omitempty"`
	Filters    []FilterElement    `yaml:"filters,omitempty"`
	Meta       []MetaElement      `yaml:"meta,omitempty"`
}

// JoinElement maps attributes to a secondary table joined to the class table
// on the identifier.
type JoinElement struct {
	Table      string             `yaml:"table"`
	Key        KeyElement         `yaml:"key"`
	Optional   bool               `yaml:"optional,omitempty"`
	Inverse    bool               `yaml:"inverse,omitempty"`
	Attributes []AttributeElement `yaml:"attributes"`
}

// IDElement maps a simple identifier.
type IDElement struct {
	Name      string          `yaml:"name"`
	Access    string          `yaml:"access,omitempty"`
	Type      string          `yaml:"type,omitempty"`
	Column    string          `yaml:"column,omitempty"`
	Columns   []ColumnElement `yaml:"columns,omitempty"`
	Generator string          `yaml:"generator,omitempty"`
	Meta      []MetaElement   `yaml:"meta,omitempty"`
}

// NaturalIDElement groups the attributes forming the business key.
type NaturalIDElement struct {
	Mutable    bool               `yaml:"mutable,omitempty"`
	Attributes []AttributeElement `yaml:"attributes"`
}

// AttributeElement holds exactly one attribute declaration.
type AttributeElement struct {
	Property  *PropertyElement   `yaml:"property,omitempty"`
	ManyToOne *ManyToOneElement  `yaml:"many-to-one,omitempty"`
	Component *ComponentElement  `yaml:"component,omitempty"`
	Set       *CollectionElement `yaml:"set,omitempty"`
	Bag       *CollectionElement `yaml:"bag,omitempty"`
	List      *CollectionElement `yaml:"list,omitempty"`
}

// Kind returns the YAML key of the declared variant, "" when none is set.
// With several variants set it returns the first one; Validate reports that.
func (a *AttributeElement) Kind() string {
	kinds := a.kinds()
	if len(kinds) == 0 {
		return ""
	}

	return kinds[0]
}

func (a *AttributeElement) kinds() []string {
	var kinds []string

	if a.Property != nil {
		kinds = append(kinds, "property")
	}

	if a.ManyToOne != nil {
		kinds = append(kinds, "many-to-one")
	}

	if a.Component != nil {
		kinds = append(kinds, "component")
	}

	if a.Set != nil {
		kinds = append(kinds, "set")
	}

	if a.Bag != nil {
		kinds = append(kinds, "bag")
	}

	if a.List != nil {
		kinds = append(kinds, "list")
	}

	return kinds
}

// Name returns the attribute name of whichever variant is set.
func (a *AttributeElement) Name() string {
	switch {
	case a.Property != nil:
		return a.Property.Name
	case a.ManyToOne != nil:
		return a.ManyToOne.Name
	case a.Component != nil:
		return a.Component.Name
	case a.Set != nil:
		return a.Set.Name
	case a.Bag != nil:
		return a.Bag.Name
	case a.List != nil:
		return a.List.Name
	default:
		return ""
	}
}

// ValueDeclaration is the column/formula part shared by every element that
// maps to relational values.
type ValueDeclaration struct {
	ColumnAttribute  string          `yaml:"column,omitempty"`
	FormulaAttribute string          `yaml:"formula,omitempty"`
	Columns          []ColumnElement `yaml:"columns,omitempty"`
	Formulas         StringOrArray   `yaml:"formulas,omitempty"`
}

// IsEmpty returns true if no column or formula is declared.
func (v *ValueDeclaration) IsEmpty() bool {
	return v.ColumnAttribute == "" && v.FormulaAttribute == "" &&
		len(v.Columns) == 0 && v.Formulas.IsEmpty()
}

// ColumnElement is an explicit column declaration. A plain string in YAML is
// read as the column name.
type ColumnElement struct {
	Name    string `yaml:"name"`
	SQLType string `yaml:"sql-type,omitempty"`
	Length  int    `yaml:"length,omitempty"`
	NotNull *bool  `yaml:"not-null,omitempty"`
	Unique  bool   `yaml:"unique,omitempty"`
	Default string `yaml:"default,omitempty"`
	Check   string `yaml:"check,omitempty"`
}

// PropertyElement maps a basic attribute.
type PropertyElement struct {
	Name             string            `yaml:"name"`
	Access           string            `yaml:"access,omitempty"`
	Type             string            `yaml:"type,omitempty"`
	TypeParams       map[string]string `yaml:"type-params,omitempty"`
	ValueDeclaration `yaml:",inline"`
	NotNull          *bool         `yaml:"not-null,omitempty"`
	Insert           *bool         `yaml:"insert,omitempty"`
	Update           *bool         `yaml:"update,omitempty"`
	OptimisticLock   *bool         `yaml:"optimistic-lock,omitempty"`
	Lazy             bool          `yaml:"lazy,omitempty"`
	Generated        string        `yaml:"generated,omitempty"`
	Meta             []MetaElement `yaml:"meta,omitempty"`
}

// IsInsert returns the insert flag, true when unset.
func (p *PropertyElement) IsInsert() bool { return BoolValue(p.Insert, true) }

// IsUpdate returns the update flag, true when unset.
func (p *PropertyElement) IsUpdate() bool { return BoolValue(p.Update, true) }

// IsOptimisticLock returns the optimistic-lock flag, true when unset.
func (p *PropertyElement) IsOptimisticLock() bool { return BoolValue(p.OptimisticLock, true) }

// Selector is a raw enumerated directive such as lazy="proxy". The empty
// value means the directive is absent.
type Selector string

// IsSet returns true if the directive was given.
func (s Selector) IsSet() bool { return s != "" }

// ManyToOneElement maps a many-to-one association.
type ManyToOneElement struct {
	Name             string `yaml:"name"`
	Access           string `yaml:"access,omitempty"`
	Class            string `yaml:"class,omitempty"`
	EntityName       string `yaml:"entity-name,omitempty"`
	ValueDeclaration `yaml:",inline"`
	Cascade          string        `yaml:"cascade,omitempty"`
	Fetch            Selector      `yaml:"fetch,omitempty"`
	Lazy             Selector      `yaml:"lazy,omitempty"`
	OuterJoin        Selector      `yaml:"outer-join,omitempty"`
	PropertyRef      string        `yaml:"property-ref,omitempty"`
	ForeignKey       string        `yaml:"foreign-key,omitempty"`
	NotNull          *bool         `yaml:"not-null,omitempty"`
	Insert           *bool         `yaml:"insert,omitempty"`
	Update           *bool         `yaml:"update,omitempty"`
	OptimisticLock   *bool         `yaml:"optimistic-lock,omitempty"`
	Meta             []MetaElement `yaml:"meta,omitempty"`
}

// IsInsert returns the insert flag, true when unset.
func (m *ManyToOneElement) IsInsert() bool { return BoolValue(m.Insert, true) }

// IsUpdate returns the update flag, true when unset.
func (m *ManyToOneElement) IsUpdate() bool { return BoolValue(m.Update, true) }

// IsOptimisticLock returns the optimistic-lock flag, true when unset.
func (m *ManyToOneElement) IsOptimisticLock() bool { return BoolValue(m.OptimisticLock, true) }

// ComponentElement maps an embedded value.
type ComponentElement struct {
	Name           string             `yaml:"name"`
	Class          string             `yaml:"class,omitempty"`
	Access         string             `yaml:"access,omitempty"`
	Parent         string             `yaml:"parent,omitempty"`
	Insert         *bool              `yaml:"insert,omitempty"`
	Update         *bool              `yaml:"update,omitempty"`
	OptimisticLock *bool              `yaml:"optimistic-lock,omitempty"`
	Lazy           bool               `yaml:"lazy,omitempty"`
	Attributes     []AttributeElement `yaml:"attributes"`
	Meta           []MetaElement      `yaml:"meta,omitempty"`
}

// CollectionElement maps a set, bag or list.
type CollectionElement struct {
	Name           string             `yaml:"name"`
	Access         string             `yaml:"access,omitempty"`
	Table          string             `yaml:"table,omitempty"`
	Lazy           Selector           `yaml:"lazy,omitempty"`
	Fetch          Selector           `yaml:"fetch,omitempty"`
	OuterJoin      Selector           `yaml:"outer-join,omitempty"`
	BatchSize      int                `yaml:"batch-size,omitempty"`
	Cascade        string             `yaml:"cascade,omitempty"`
	Inverse        bool               `yaml:"inverse,omitempty"`
	Where          string             `yaml:"where,omitempty"`
	OrderBy        string             `yaml:"order-by,omitempty"`
	OptimisticLock *bool              `yaml:"optimistic-lock,omitempty"`
	Key            KeyElement         `yaml:"key"`
	Index          *ListIndexElement  `yaml:"list-index,omitempty"`
	Element        *ElementElement    `yaml:"element,omitempty"`
	OneToMany      *OneToManyElement  `yaml:"one-to-many,omitempty"`
	ManyToMany     *ManyToManyElement `yaml:"many-to-many,omitempty"`
	Filters        []FilterElement    `yaml:"filters,omitempty"`
	Meta           []MetaElement      `yaml:"meta,omitempty"`
}

// IsOptimisticLock returns the optimistic-lock flag, true when unset.
func (c *CollectionElement) IsOptimisticLock() bool { return BoolValue(c.OptimisticLock, true) }

// KeyElement is the foreign key from the collection table to the owner.
type KeyElement struct {
	Column      string          `yaml:"column,omitempty"`
	Columns     []ColumnElement `yaml:"columns,omitempty"`
	PropertyRef string          `yaml:"property-ref,omitempty"`
	ForeignKey  string          `yaml:"foreign-key,omitempty"`
}

// ListIndexElement is the position column of a list.
type ListIndexElement struct {
	Column string `yaml:"column"`
	Base   int    `yaml:"base,omitempty"`
}

// ElementElement maps basic collection elements.
type ElementElement struct {
	Type             string `yaml:"type,omitempty"`
	ValueDeclaration `yaml:",inline"`
	NotNull          *bool `yaml:"not-null,omitempty"`
}

// OneToManyElement names the entity a one-to-many collection contains.
type OneToManyElement struct {
	Class      string `yaml:"class,omitempty"`
	EntityName string `yaml:"entity-name,omitempty"`
}

// ManyToManyElement names the entity and join columns of a many-to-many collection.
type ManyToManyElement struct {
	Class            string `yaml:"class,omitempty"`
	EntityName       string `yaml:"entity-name,omitempty"`
	ValueDeclaration `yaml:",inline"`
	PropertyRef      string `yaml:"property-ref,omitempty"`
	ForeignKey       string `yaml:"foreign-key,omitempty"`
}

// BoolValue dereferences p, returning def when p is nil.
func BoolValue(p *bool, def bool) bool {
	if p == nil {
		return def
	}

	return *p
}
