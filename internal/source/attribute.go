package source

// ExplicitTypeSource is the type information declared on an attribute.
// An empty Name means the binder infers the type.
type ExplicitTypeSource struct {
	Name       string
	Parameters map[string]string
}

// MetaAttributeSource is a free-form key/value attached to a mapping element.
type MetaAttributeSource struct {
	Name        string
	Value       string
	Inheritable bool
}

// AttributeSource is one mapped attribute or association.
type AttributeSource interface {
	Name() string
	IsSingular() bool
	Nature() AttributeNature
	PropertyAccessorName() string
	TypeInformation() ExplicitTypeSource
	IsIncludedInOptimisticLocking() bool
	MetaAttributeSources() []MetaAttributeSource
}

// RelationalValueSourceContainer is implemented by sources mapped to columns
// or formulas.
type RelationalValueSourceContainer interface {
	// RelationalValueSources are in declaration order.
	RelationalValueSources() []RelationalValueSource
	AreValuesIncludedInInsertByDefault() bool
	AreValuesIncludedInUpdateByDefault() bool
	AreValuesNullableByDefault() bool
}

// SingularAttributeSource is an attribute holding at most one value.
type SingularAttributeSource interface {
	AttributeSource
	RelationalValueSourceContainer
	IsVirtualAttribute() bool
	Generation() PropertyGeneration
	IsLazy() bool
	NaturalIDMutability() NaturalIDMutability
}

// FetchableAttributeSource is an association whose loading can be tuned.
type FetchableAttributeSource interface {
	FetchTiming() FetchTiming
	FetchStyle() FetchStyle
}

// CascadeStyleSource is an association that propagates lifecycle operations.
type CascadeStyleSource interface {
	CascadeStyles() CascadeStyles
}

// ToOneAttributeSource is a singular association (many-to-one, one-to-one).
type ToOneAttributeSource interface {
	SingularAttributeSource
	FetchableAttributeSource
	CascadeStyleSource
	FetchMode() FetchMode
	ReferencedEntityName() string
	// ExplicitForeignKeyName is "" when the constraint name is left to the binder.
	ExplicitForeignKeyName() string
	// ForeignKeyTargetColumnResolutionDelegate is nil when the association
	// targets the referenced entity's primary key.
	ForeignKeyTargetColumnResolutionDelegate() JoinColumnResolutionDelegate
}

// ComponentAttributeSource is an embedded value made of nested attributes.
type ComponentAttributeSource interface {
	SingularAttributeSource
	ComponentClassName() string
	// ParentReferenceAttributeName names the back reference to the owner, if any.
	ParentReferenceAttributeName() string
	AttributeSources() []AttributeSource
}

// ElementNature describes what a plural attribute contains.
type ElementNature int

const (
	ElementBasic ElementNature = iota
	ElementOneToMany
	ElementManyToMany
)

// String returns a human-readable representation of the ElementNature.
func (n ElementNature) String() string {
	switch n {
	case ElementOneToMany:
		return "ONE_TO_MANY"
	case ElementManyToMany:
		return "MANY_TO_MANY"
	default:
		return "BASIC"
	}
}

// PluralAttributeSource is a collection-valued attribute.
type PluralAttributeSource interface {
	AttributeSource
	FetchableAttributeSource
	CascadeStyleSource
	PluralNature() PluralNature
	ElementNature() ElementNature
	// ReferencedEntityName is "" for basic elements.
	ReferencedEntityName() string
	ElementTypeInformation() ExplicitTypeSource
	// CollectionTableName is "" for one-to-many collections.
	CollectionTableName() string
	KeyValueSources() []RelationalValueSource
	ElementValueSources() []RelationalValueSource
	IsInverse() bool
	BatchSize() int
	Where() string
	OrderBy() string
}
