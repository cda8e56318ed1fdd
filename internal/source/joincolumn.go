package source

import (
	"fmt"

	"github.com/twtxwydavid/hibernate-orm/internal/relational"
)

// JoinColumnResolutionContext is the read-only view of the referenced entity
// handed to delegates in the second binding pass.
type JoinColumnResolutionContext interface {
	// ResolveRelationalValuesForAttribute returns the relational values of
	// the named attribute of the referenced entity, in order.
	ResolveRelationalValuesForAttribute(attributeName string) ([]relational.Value, error)
	// ResolveColumn finds a column by logical name. An empty table means the
	// referenced entity's primary table.
	ResolveColumn(columnName, tableName string) (*relational.Column, error)
}

// JoinColumnResolutionDelegate resolves the target columns of an association
// that is not keyed by the referenced entity's primary key. It starts
// unresolved and becomes resolved after the first successful Resolve.
type JoinColumnResolutionDelegate interface {
	// ReferencedAttributeName is "" when the target is given by column names.
	ReferencedAttributeName() string
	Resolve(ctx JoinColumnResolutionContext) ([]relational.Value, error)
	Resolved() bool
	// JoinColumns is nil until resolved.
	JoinColumns() []relational.Value
}

type joinColumnState struct {
	resolved bool
	values   []relational.Value
}

func (s *joinColumnState) Resolved() bool                  { return s.resolved }
func (s *joinColumnState) JoinColumns() []relational.Value { return s.values }

func (s *joinColumnState) settle(values []relational.Value, err error) ([]relational.Value, error) {
	if err != nil {
		return nil, err
	}

	s.resolved = true
	s.values = values

	return values, nil
}

// AttributeJoinColumnDelegate targets the columns of a named (non-identifier)
// attribute of the referenced entity.
type AttributeJoinColumnDelegate struct {
	joinColumnState
	attributeName string
}

// NewAttributeJoinColumnDelegate returns an unresolved delegate for attributeName.
func NewAttributeJoinColumnDelegate(attributeName string) *AttributeJoinColumnDelegate {
	return &AttributeJoinColumnDelegate{attributeName: attributeName}
}

func (d *AttributeJoinColumnDelegate) ReferencedAttributeName() string {
	return d.attributeName
}

// Resolve looks the attribute up once; later calls return the first result.
func (d *AttributeJoinColumnDelegate) Resolve(ctx JoinColumnResolutionContext) ([]relational.Value, error) {
	if d.resolved {
		return d.values, nil
	}

	return d.settle(ctx.ResolveRelationalValuesForAttribute(d.attributeName))
}

// ColumnJoinColumnDelegate targets explicitly named columns of the referenced entity.
type ColumnJoinColumnDelegate struct {
	joinColumnState
	columnNames []string
	tableName   string
}

// NewColumnJoinColumnDelegate returns an unresolved delegate for columnNames
// in tableName ("" for the referenced entity's primary table).
func NewColumnJoinColumnDelegate(tableName string, columnNames ...string) *ColumnJoinColumnDelegate {
	return &ColumnJoinColumnDelegate{columnNames: columnNames, tableName: tableName}
}

func (d *ColumnJoinColumnDelegate) ReferencedAttributeName() string { return "" }

// ReferencedColumnNames returns the logical column names, in order.
func (d *ColumnJoinColumnDelegate) ReferencedColumnNames() []string { return d.columnNames }

// Resolve looks every column up once; later calls return the first result.
func (d *ColumnJoinColumnDelegate) Resolve(ctx JoinColumnResolutionContext) ([]relational.Value, error) {
	if d.resolved {
		return d.values, nil
	}

	values := make([]relational.Value, 0, len(d.columnNames))

	for _, name := range d.columnNames {
		col, err := ctx.ResolveColumn(name, d.tableName)
		if err != nil {
			return nil, fmt.Errorf("referenced column %q: %w", name, err)
		}

		values = append(values, col)
	}

	return d.settle(values, nil)
}
