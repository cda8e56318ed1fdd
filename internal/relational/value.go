package relational

import "fmt"

// ValueKind tells columns apart from derived values.
type ValueKind int

const (
	ValueKindColumn ValueKind = iota
	ValueKindDerived
)

// String returns a human-readable representation of the ValueKind.
func (k ValueKind) String() string {
	if k == ValueKindDerived {
		return "derived"
	}

	return "column"
}

// Value is one relational value: a physical column or a derived (formula) value.
type Value interface {
	Kind() ValueKind
	// Table is the logical name of the table the value belongs to.
	Table() string
	// Text is the column name or the formula expression.
	Text() string
}

// Column is a physical table column.
type Column struct {
	TableName    string
	Name         string
	SQLType      string
	Length       int
	Nullable     bool
	Unique       bool
	DefaultValue string
	CheckClause  string
}

func (c *Column) Kind() ValueKind { return ValueKindColumn }
func (c *Column) Table() string   { return c.TableName }
func (c *Column) Text() string    { return c.Name }

// String renders the column as table.column.
func (c *Column) String() string {
	if c.TableName == "" {
		return c.Name
	}

	return c.TableName + "." + c.Name
}

// DerivedValue is a read-only SQL expression evaluated in the context of its table.
type DerivedValue struct {
	TableName  string
	Expression string
}

func (d *DerivedValue) Kind() ValueKind { return ValueKindDerived }
func (d *DerivedValue) Table() string   { return d.TableName }
func (d *DerivedValue) Text() string    { return d.Expression }

// String renders the expression in parentheses.
func (d *DerivedValue) String() string {
	return fmt.Sprintf("(%s)", d.Expression)
}

// ColumnNames returns the names of the columns among values, in order,
// skipping derived values.
func ColumnNames(values []Value) []string {
	var names []string

	for _, v := range values {
		if v.Kind() == ValueKindColumn {
			names = append(names, v.Text())
		}
	}

	return names
}
