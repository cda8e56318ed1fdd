package hbm

import (
	"strings"

	"github.com/twtxwydavid/hibernate-orm/internal/common"
	"github.com/twtxwydavid/hibernate-orm/internal/mapping"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

// attributeOwner is where nested attributes are declared: an entity or a
// component of it.
type attributeOwner struct {
	path  string
	table string
}

func (o attributeOwner) child(name string) string {
	return o.path + "." + name
}

// valueSourcesAdapter exposes a document value declaration to
// source.BuildValueSources.
type valueSourcesAdapter struct {
	path     string
	decl     *mapping.ValueDeclaration
	table    string
	insert   bool
	update   bool
	nullable bool
	implicit string
}

func (a *valueSourcesAdapter) AttributePath() string             { return a.path }
func (a *valueSourcesAdapter) ColumnAttribute() string           { return a.decl.ColumnAttribute }
func (a *valueSourcesAdapter) FormulaAttribute() string          { return a.decl.FormulaAttribute }
func (a *valueSourcesAdapter) Columns() []source.ColumnSpec      { return columnSpecs(a.decl.Columns) }
func (a *valueSourcesAdapter) Formulas() []string                { return a.decl.Formulas }
func (a *valueSourcesAdapter) ContainingTableName() string       { return a.table }
func (a *valueSourcesAdapter) IsIncludedInInsertByDefault() bool { return a.insert }
func (a *valueSourcesAdapter) IsIncludedInUpdateByDefault() bool { return a.update }
func (a *valueSourcesAdapter) AreValuesNullableByDefault() bool  { return a.nullable }
func (a *valueSourcesAdapter) ImplicitColumnName() string        { return a.implicit }

func columnSpecs(columns []mapping.ColumnElement) []source.ColumnSpec {
	specs := make([]source.ColumnSpec, 0, len(columns))

	for _, c := range columns {
		spec := source.ColumnSpec{
			Name:         c.Name,
			SQLType:      c.SQLType,
			Length:       c.Length,
			Unique:       c.Unique,
			DefaultValue: c.Default,
			Check:        c.Check,
		}

		if c.NotNull != nil {
			nullable := !*c.NotNull
			spec.Nullable = &nullable
		}

		specs = append(specs, spec)
	}

	return specs
}

// metaAttributes converts meta elements; meta is inheritable unless it says otherwise.
func metaAttributes(elements []mapping.MetaElement) []source.MetaAttributeSource {
	if len(elements) == 0 {
		return nil
	}

	meta := make([]source.MetaAttributeSource, 0, len(elements))
	for _, m := range elements {
		meta = append(meta, source.MetaAttributeSource{
			Name:        m.Attribute,
			Value:       m.Value,
			Inheritable: mapping.BoolValue(m.Inherit, true),
		})
	}

	return meta
}

func accessorName(ctx source.BindingContext, access string) string {
	return common.FirstNonEmpty(access, ctx.MappingDefaults().PropertyAccessorName)
}

// referencedEntityName prefers the class, qualified with the document package.
func referencedEntityName(ctx source.BindingContext, class, entityName string) string {
	if class != "" {
		return ctx.QualifyClassName(class)
	}

	return entityName
}

func unqualify(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}

	return name
}

// singularAttribute holds the state every singular variant shares.
type singularAttribute struct {
	sourceNode
	name           string
	accessor       string
	typeInfo       source.ExplicitTypeSource
	optimisticLock bool
	meta           []source.MetaAttributeSource
	values         []source.RelationalValueSource
	insert         bool
	update         bool
	nullable       bool
	lazy           bool
	generation     source.PropertyGeneration
	naturalID      source.NaturalIDMutability
}

func (a *singularAttribute) Name() string                               { return a.name }
func (a *singularAttribute) IsSingular() bool                           { return true }
func (a *singularAttribute) PropertyAccessorName() string               { return a.accessor }
func (a *singularAttribute) TypeInformation() source.ExplicitTypeSource { return a.typeInfo }
func (a *singularAttribute) IsIncludedInOptimisticLocking() bool        { return a.optimisticLock }

func (a *singularAttribute) MetaAttributeSources() []source.MetaAttributeSource {
	return a.meta
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

// buildValues runs the shared value source builder over decl using the
// attribute's own insert, update and nullability defaults.
func (a *singularAttribute) buildValues(path, table, implicit string, decl *mapping.ValueDeclaration) error {
	values, err := source.BuildValueSources(a.bindingContext(), &valueSourcesAdapter{
		path:     path,
		decl:     decl,
		table:    table,
		insert:   a.insert,
		update:   a.update,
		nullable: a.nullable,
		implicit: implicit,
	})
	if err != nil {
		return err
	}

	a.values = values

	return nil
}
