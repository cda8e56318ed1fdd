package source

// ColumnSpec is a format-neutral column declaration. Nil pointers inherit the
// defaults of the owning attribute.
type ColumnSpec struct {
	Name         string
	SQLType      string
	Length       int
	Nullable     *bool
	Unique       bool
	DefaultValue string
	Check        string
	Insert       *bool
	Update       *bool
}

// ValueSourcesAdapter exposes the column/formula declarations of one element
// to BuildValueSources, whatever format the element comes from.
type ValueSourcesAdapter interface {
	// AttributePath names the element in error messages, e.g. "Order.customer".
	AttributePath() string
	ColumnAttribute() string
	FormulaAttribute() string
	Columns() []ColumnSpec
	Formulas() []string
	ContainingTableName() string
	IsIncludedInInsertByDefault() bool
	IsIncludedInUpdateByDefault() bool
	AreValuesNullableByDefault() bool
	// ImplicitColumnName is used when nothing is declared; "" yields no value sources.
	ImplicitColumnName() string
}

// ValueDeclarationConflict describes why a set of declarations cannot be
// combined, or returns "" when they can. Columns and formulas exclude each
// other; a shorthand excludes a non-empty list of its own kind.
func ValueDeclarationConflict(columnAttribute, formulaAttribute string, columns, formulas int) string {
	hasColumns := columnAttribute != "" || columns > 0
	hasFormulas := formulaAttribute != "" || formulas > 0

	switch {
	case hasColumns && hasFormulas:
		return "column and formula declarations are mutually exclusive"
	case columnAttribute != "" && columns > 0:
		return "column shorthand cannot be combined with a columns list"
	case formulaAttribute != "" && formulas > 0:
		return "formula shorthand cannot be combined with a formulas list"
	default:
		return ""
	}
}

// BuildValueSources turns the declarations exposed by adapter into ordered
// relational value sources, all scoped to the adapter's containing table.
func BuildValueSources(ctx BindingContext, adapter ValueSourcesAdapter) ([]RelationalValueSource, error) {
	columns := adapter.Columns()
	formulas := adapter.Formulas()

	conflict := ValueDeclarationConflict(adapter.ColumnAttribute(), adapter.FormulaAttribute(), len(columns), len(formulas))
	if conflict != "" {
		return nil, NewMappingError(ctx.Origin(), "Invalid value mapping on '%s': %s", adapter.AttributePath(), conflict)
	}

	table := adapter.ContainingTableName()

	switch {
	case adapter.ColumnAttribute() != "":
		return []RelationalValueSource{newColumnSource(table, ColumnSpec{Name: adapter.ColumnAttribute()}, adapter)}, nil
	case adapter.FormulaAttribute() != "":
		return []RelationalValueSource{newDerivedValueSource(table, adapter.FormulaAttribute())}, nil
	case len(columns) > 0:
		result := make([]RelationalValueSource, 0, len(columns))

		for _, spec := range columns {
			if spec.Name == "" {
				return nil, NewMappingError(ctx.Origin(), "Column without a name on '%s'", adapter.AttributePath())
			}

			result = append(result, newColumnSource(table, spec, adapter))
		}

		return result, nil
	case len(formulas) > 0:
		result := make([]RelationalValueSource, 0, len(formulas))
		for _, expr := range formulas {
			result = append(result, newDerivedValueSource(table, expr))
		}

		return result, nil
	case adapter.ImplicitColumnName() != "":
		return []RelationalValueSource{newColumnSource(table, ColumnSpec{Name: adapter.ImplicitColumnName()}, adapter)}, nil
	default:
		return nil, nil
	}
}

type columnSource struct {
	table    string
	spec     ColumnSpec
	nullable bool
	insert   bool
	update   bool
}

func newColumnSource(table string, spec ColumnSpec, defaults ValueSourcesAdapter) *columnSource {
	return &columnSource{
		table:    table,
		spec:     spec,
		nullable: boolOr(spec.Nullable, defaults.AreValuesNullableByDefault()),
		insert:   boolOr(spec.Insert, defaults.IsIncludedInInsertByDefault()),
		update:   boolOr(spec.Update, defaults.IsIncludedInUpdateByDefault()),
	}
}

func (c *columnSource) Nature() RelationalValueNature { return RelationalColumn }
func (c *columnSource) ContainingTableName() string   { return c.table }
func (c *columnSource) Name() string                  { return c.spec.Name }
func (c *columnSource) SQLType() string               { return c.spec.SQLType }
func (c *columnSource) Length() int                   { return c.spec.Length }
func (c *columnSource) IsNullable() bool              { return c.nullable }
func (c *columnSource) IsUnique() bool                { return c.spec.Unique }
func (c *columnSource) DefaultValue() string          { return c.spec.DefaultValue }
func (c *columnSource) CheckCondition() string        { return c.spec.Check }
func (c *columnSource) IsIncludedInInsert() bool      { return c.insert }
func (c *columnSource) IsIncludedInUpdate() bool      { return c.update }

type derivedValueSource struct {
	table      string
	expression string
}

func newDerivedValueSource(table, expression string) *derivedValueSource {
	return &derivedValueSource{table: table, expression: expression}
}

func (d *derivedValueSource) Nature() RelationalValueNature { return RelationalDerived }
func (d *derivedValueSource) ContainingTableName() string   { return d.table }
func (d *derivedValueSource) Expression() string            { return d.expression }

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}

	return *p
}
