package source

// RelationalValueNature tells column sources apart from derived ones.
type RelationalValueNature int

const (
	RelationalColumn RelationalValueNature = iota
	RelationalDerived
)

// RelationalValueSource is one column or formula of an attribute, scoped to
// the table that contains it.
type RelationalValueSource interface {
	Nature() RelationalValueNature
	ContainingTableName() string
}

// ColumnSource is a physical column declaration.
type ColumnSource interface {
	RelationalValueSource
	Name() string
	SQLType() string
	Length() int
	IsNullable() bool
	IsUnique() bool
	DefaultValue() string
	CheckCondition() string
	IsIncludedInInsert() bool
	IsIncludedInUpdate() bool
}

// DerivedValueSource is a formula: a read-only SQL expression.
type DerivedValueSource interface {
	RelationalValueSource
	Expression() string
}
