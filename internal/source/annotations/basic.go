package annotations

import (
	"strings"

	"github.com/twtxwydavid/hibernate-orm/internal/annotation"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

var generationValues = []string{"NEVER", "INSERT", "ALWAYS"}

// BasicAttributeSource is a field mapped to a column or a formula.
type BasicAttributeSource struct {
	singularAttribute
}

func newBasicAttributeSource(f fieldContext) (*BasicAttributeSource, error) {
	b := &BasicAttributeSource{newSingularAttribute(f)}

	basic := f.annotation(Basic)
	b.lazy = basic.Text("Fetch") == "LAZY"
	b.nullable = basic.Bool("Optional", true)

	if generated := f.annotation(Generated); generated != nil {
		v := generated.TextOr(annotation.ValueKey, "ALWAYS")

		switch v {
		case "NEVER":
		case "INSERT":
			b.generation = source.GenerationInsert
			b.insert = false
		case "ALWAYS":
			b.generation = source.GenerationAlways
			b.insert = false
			b.update = false
		default:
			return nil, unexpectedValue(f.ctx, generated, annotation.ValueKey, v, generationValues)
		}
	}

	adapter := &valuesAdapter{table: f.table, implicit: b.name}

	if column := f.annotation(Column); column != nil {
		adapter.columns = []source.ColumnSpec{columnSpec(column, f.annotation(ColumnDefault))}
		adapter.table = columnTable(f.table, column)

		if adapter.columns[0].Name == "" {
			adapter.columns[0].Name = b.name
		}
	}

	if formula := f.annotation(Formula); formula != nil {
		adapter.formula = formula.Text(annotation.ValueKey)
		if strings.TrimSpace(adapter.formula) == "" {
			return nil, source.NewMappingError(f.ctx.Origin(), "Empty formula on '%s'", f.path())
		}
	}

	err := b.buildValues(f, adapter)
	if err != nil {
		return nil, err
	}

	return b, nil
}

func (b *BasicAttributeSource) Nature() source.AttributeNature {
	return source.NatureBasic
}

// IdentifierSource is the Id field of an entity. Its columns are never
// nullable and never updated.
type IdentifierSource struct {
	singularAttribute
	generator string
}

func newIdentifierSource(f fieldContext) (*IdentifierSource, error) {
	id := &IdentifierSource{
		singularAttribute: newSingularAttribute(f),
		generator:         "assigned",
	}

	id.nullable = false
	id.update = false
	id.naturalID = source.NotNaturalID

	if gv := f.annotation(GeneratedValue); gv != nil {
		id.generator = strings.ToLower(gv.TextOr("Strategy", "AUTO"))
	}

	if f.annotation(Formula) != nil {
		return nil, source.NewMappingError(f.ctx.Origin(), "Identifier '%s' cannot be a formula", f.path())
	}

	adapter := &valuesAdapter{table: f.table, implicit: f.attributeName()}

	if column := f.annotation(Column); column != nil {
		spec := columnSpec(column, nil)
		spec.Nullable = nil
		spec.Name = column.TextOr("Name", adapter.implicit)

		adapter.columns = []source.ColumnSpec{spec}
	}

	err := id.buildValues(f, adapter)
	if err != nil {
		return nil, err
	}

	return id, nil
}

func (id *IdentifierSource) Nature() source.AttributeNature {
	return source.NatureBasic
}

// Generator names the identifier generation strategy, "assigned" by default.
func (id *IdentifierSource) Generator() string {
	return id.generator
}
