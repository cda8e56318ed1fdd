package annotations

import (
	"github.com/twtxwydavid/hibernate-orm/internal/annotation"
	"github.com/twtxwydavid/hibernate-orm/internal/common"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

// EntitySource is a struct type annotated with Entity.
type EntitySource struct {
	origin     source.Origin
	entityName string
	className  string
	table      string
	joins      []source.SecondaryTableSource
	identifier *IdentifierSource
	attributes []source.AttributeSource
	filters    []source.FilterSource
}

func newEntitySource(s *Sources, class *annotation.ClassInfo) (*EntitySource, error) {
	ctx := s.bindingContext(class)

	err := checkNames(ctx, class.Annotations, typeAnnotations)
	if err != nil {
		return nil, err
	}

	e := &EntitySource{
		origin:     ctx.Origin(),
		entityName: s.entityName(class),
		className:  class.QualifiedName(),
		table:      class.Annotation(Table).TextOr("Name", class.Name),
	}

	for _, in := range class.AnnotationsNamed(SecondaryTable) {
		join, err := e.secondaryTableSource(ctx, in)
		if err != nil {
			return nil, err
		}

		e.joins = append(e.joins, join)
	}

	for _, f := range class.AnnotationsNamed(Filter) {
		e.filters = append(e.filters, source.StaticFilterSource{FilterName: f.Text("Name"), FilterCondition: f.Text("Condition")})
	}

	var ids []*annotation.FieldInfo

	for _, field := range class.Fields {
		f := fieldContext{ctx: ctx, field: field, owner: class.Name, table: e.table}

		err = checkNames(ctx, field.Annotations, fieldAnnotations)
		if err != nil {
			return nil, err
		}

		if f.annotation(ID) != nil {
			ids = append(ids, field)

			continue
		}

		attr, err := s.attributeSource(f)
		if err != nil {
			return nil, err
		}

		if attr != nil {
			e.attributes = append(e.attributes, attr)
		}
	}

	switch {
	case common.IsEmpty(ids):
		return nil, source.NewMappingError(ctx.Origin(), "Entity '%s' declares no Id field", e.entityName)
	case common.IsMultiple(ids):
		return nil, source.NewMappingError(ctx.Origin(),
			"Entity '%s' declares %d Id fields; composite identifiers are mapped in documents", e.entityName, len(ids))
	}

	e.identifier, err = newIdentifierSource(fieldContext{ctx: ctx, field: ids[0], owner: class.Name, table: e.table})
	if err != nil {
		return nil, err
	}

	return e, nil
}

// secondaryTableSource reads a SecondaryTable instance. Without PkJoinColumns
// the key reuses the identifier column names.
func (e *EntitySource) secondaryTableSource(ctx source.BindingContext, in *annotation.Instance) (source.SecondaryTableSource, error) {
	name := in.Text("Name")

	switch {
	case name == "":
		return nil, source.NewMappingError(ctx.Origin(), "SecondaryTable on '%s' declares no name", e.entityName)
	case name == e.table:
		return nil, source.NewMappingError(ctx.Origin(), "SecondaryTable '%s' of '%s' is its primary table", name, e.entityName)
	}

	for _, prev := range e.joins {
		if prev.TableName() == name {
			return nil, source.NewMappingError(ctx.Origin(), "Table '%s' is joined twice in '%s'", name, e.entityName)
		}
	}

	var columns []source.ColumnSpec

	for _, jc := range in.NestedList("PkJoinColumns") {
		if jc.Text("Name") == "" {
			return nil, source.NewMappingError(ctx.Origin(),
				"SecondaryTable '%s' of '%s' has a PkJoinColumn without a name", name, e.entityName)
		}

		columns = append(columns, source.ColumnSpec{Name: jc.Text("Name")})
	}

	key, err := source.BuildValueSources(ctx, &valuesAdapter{
		path:    e.entityName + "[" + name + "]",
		columns: columns,
		table:   name,
		insert:  true,
	})
	if err != nil {
		return nil, err
	}

	return source.StaticSecondaryTableSource{
		Table:      name,
		KeyValues:  key,
		ForeignKey: in.Nested("ForeignKey").Text("Name"),
		Optional:   in.Bool("Optional", true),
		Inverse:    in.Bool("Inverse", false),
	}, nil
}

func (e *EntitySource) EntityName() string       { return e.entityName }
func (e *EntitySource) ClassName() string        { return e.className }
func (e *EntitySource) PrimaryTableName() string { return e.table }
func (e *EntitySource) Origin() source.Origin    { return e.origin }

func (e *EntitySource) SecondaryTableSources() []source.SecondaryTableSource {
	return e.joins
}

func (e *EntitySource) IdentifierSource() source.SingularAttributeSource {
	return e.identifier
}

func (e *EntitySource) AttributeSources() []source.AttributeSource {
	return e.attributes
}

func (e *EntitySource) FilterSources() []source.FilterSource {
	return e.filters
}

func (e *EntitySource) MetaAttributeSources() []source.MetaAttributeSource {
	return nil
}
