package annotations

import (
	"github.com/twtxwydavid/hibernate-orm/internal/annotation"
	"github.com/twtxwydavid/hibernate-orm/internal/common"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

// fieldContext is one annotated field being interpreted.
type fieldContext struct {
	ctx   source.BindingContext
	field *annotation.FieldInfo
	owner string // unqualified entity name
	table string // primary table of the owner
}

func (f fieldContext) annotation(name string) *annotation.Instance {
	return f.field.Annotation(name)
}

func (f fieldContext) attributeName() string {
	return common.LowerFirst(f.field.Name)
}

func (f fieldContext) path() string {
	return f.owner + "." + f.attributeName()
}

func (f fieldContext) accessorName() string {
	return f.annotation(Access).TextOr(annotation.ValueKey, f.ctx.MappingDefaults().PropertyAccessorName)
}

// valuesAdapter exposes annotation column declarations to
// source.BuildValueSources.
type valuesAdapter struct {
	path     string
	columns  []source.ColumnSpec
	formula  string
	table    string
	insert   bool
	update   bool
	nullable bool
	implicit string
}

func (a *valuesAdapter) AttributePath() string             { return a.path }
func (a *valuesAdapter) ColumnAttribute() string           { return "" }
func (a *valuesAdapter) FormulaAttribute() string          { return a.formula }
func (a *valuesAdapter) Columns() []source.ColumnSpec      { return a.columns }
func (a *valuesAdapter) Formulas() []string                { return nil }
func (a *valuesAdapter) ContainingTableName() string       { return a.table }
func (a *valuesAdapter) IsIncludedInInsertByDefault() bool { return a.insert }
func (a *valuesAdapter) IsIncludedInUpdateByDefault() bool { return a.update }
func (a *valuesAdapter) AreValuesNullableByDefault() bool  { return a.nullable }
func (a *valuesAdapter) ImplicitColumnName() string        { return a.implicit }

// columnSpec reads a Column or JoinColumn annotation.
func columnSpec(in *annotation.Instance, defaultValue *annotation.Instance) source.ColumnSpec {
	return source.ColumnSpec{
		Name:         in.Text("Name"),
		SQLType:      in.Text("ColumnDefinition"),
		Length:       in.Int("Length", 0),
		Nullable:     in.BoolPtr("Nullable"),
		Unique:       in.Bool("Unique", false),
		DefaultValue: defaultValue.Text(annotation.ValueKey),
		Insert:       in.BoolPtr("Insertable"),
		Update:       in.BoolPtr("Updatable"),
	}
}

// columnTable returns the secondary table a column declares, or table.
func columnTable(table string, columns ...*annotation.Instance) string {
	for _, c := range columns {
		if t := c.Text("Table"); t != "" {
			return t
		}
	}

	return table
}

// singularAttribute holds the state every singular variant shares.
type singularAttribute struct {
	name           string
	accessor       string
	typeInfo       source.ExplicitTypeSource
	optimisticLock bool
	values         []source.RelationalValueSource
	insert         bool
	update         bool
	nullable       bool
	lazy           bool
	generation     source.PropertyGeneration
	naturalID      source.NaturalIDMutability
}

func newSingularAttribute(f fieldContext) singularAttribute {
	return singularAttribute{
		name:           f.attributeName(),
		accessor:       f.accessorName(),
		typeInfo:       explicitType(f.annotation(Type)),
		optimisticLock: !f.annotation(OptimisticLock).Bool("Excluded", false),
		insert:         true,
		update:         true,
		nullable:       true,
		generation:     source.GenerationNever,
		naturalID:      naturalIDMutability(f.annotation(NaturalID)),
	}
}

func (a *singularAttribute) Name() string                               { return a.name }
func (a *singularAttribute) IsSingular() bool                           { return true }
func (a *singularAttribute) PropertyAccessorName() string               { return a.accessor }
func (a *singularAttribute) TypeInformation() source.ExplicitTypeSource { return a.typeInfo }
func (a *singularAttribute) IsIncludedInOptimisticLocking() bool        { return a.optimisticLock }

// MetaAttributeSources is always empty; meta attributes exist only in documents.
func (a *singularAttribute) MetaAttributeSources() []source.MetaAttributeSource {
	return nil
}

func (a *singularAttribute) RelationalValueSources() []source.RelationalValueSource {
	return a.values
}

func (a *singularAttribute) AreValuesIncludedInInsertByDefault() bool { return a.insert }
func (a *singularAttribute) AreValuesIncludedInUpdateByDefault() bool { return a.update }
func (a *singularAttribute) AreValuesNullableByDefault() bool         { return a.nullable }
func (a *singularAttribute) IsVirtualAttribute() bool                 { return false }
func (a *singularAttribute) Generation() source.PropertyGeneration    { return a.generation }
func (a *singularAttribute) IsLazy() bool                             { return a.lazy }

func (a *singularAttribute) NaturalIDMutability() source.NaturalIDMutability {
	return a.naturalID
}

func (a *singularAttribute) buildValues(f fieldContext, adapter *valuesAdapter) error {
	adapter.path = f.path()
	adapter.insert = a.insert
	adapter.update = a.update
	adapter.nullable = a.nullable

	values, err := source.BuildValueSources(f.ctx, adapter)
	if err != nil {
		return err
	}

	a.values = values

	return nil
}

func explicitType(in *annotation.Instance) source.ExplicitTypeSource {
	if in == nil {
		return source.ExplicitTypeSource{}
	}

	var params map[string]string

	for _, p := range in.NestedList("Parameters") {
		if params == nil {
			params = map[string]string{}
		}

		params[p.Text("Name")] = p.Text(annotation.ValueKey)
	}

	return source.ExplicitTypeSource{Name: in.TextOr("Name", in.Text(annotation.ValueKey)), Parameters: params}
}

func naturalIDMutability(in *annotation.Instance) source.NaturalIDMutability {
	switch {
	case in == nil:
		return source.NotNaturalID
	case in.Bool("Mutable", false):
		return source.NaturalIDMutable
	default:
		return source.NaturalIDImmutable
	}
}
