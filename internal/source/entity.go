package source

// EntitySource is one mapped entity as produced by either input format.
type EntitySource interface {
	EntityName() string
	ClassName() string
	PrimaryTableName() string
	// SecondaryTableSources are the tables joined to the primary table, in
	// declaration order.
	SecondaryTableSources() []SecondaryTableSource
	// IdentifierSource is the simple identifier attribute.
	IdentifierSource() SingularAttributeSource
	// AttributeSources are in declaration order, identifier excluded.
	// Attributes mapped to a secondary table are included.
	AttributeSources() []AttributeSource
	FilterSources() []FilterSource
	MetaAttributeSources() []MetaAttributeSource
	Origin() Origin
}

// SecondaryTableSource is a table joined one to one with the primary table
// of an entity. Its key columns reference the entity identifier.
type SecondaryTableSource interface {
	TableName() string
	// KeyValueSources are the key columns; empty means the identifier
	// column names are reused.
	KeyValueSources() []RelationalValueSource
	ForeignKeyName() string
	// IsOptional means a row is only written when a mapped value is non-null.
	IsOptional() bool
	// IsInverse means the table is read but never written.
	IsInverse() bool
}

// StaticSecondaryTableSource is the SecondaryTableSource both input formats
// produce.
type StaticSecondaryTableSource struct {
	Table      string
	KeyValues  []RelationalValueSource
	ForeignKey string
	Optional   bool
	Inverse    bool
}

func (s StaticSecondaryTableSource) TableName() string      { return s.Table }
func (s StaticSecondaryTableSource) ForeignKeyName() string { return s.ForeignKey }
func (s StaticSecondaryTableSource) IsOptional() bool       { return s.Optional }
func (s StaticSecondaryTableSource) IsInverse() bool        { return s.Inverse }

func (s StaticSecondaryTableSource) KeyValueSources() []RelationalValueSource {
	return s.KeyValues
}
