package hbm

import (
	"github.com/twtxwydavid/hibernate-orm/internal/common"
	"github.com/twtxwydavid/hibernate-orm/internal/mapping"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

// RootEntitySource is an entity declared by a class element.
type RootEntitySource struct {
	sourceNode
	entityName string
	className  string
	table      string
	joins      []source.SecondaryTableSource
	identifier *IdentifierSource
	attributes []source.AttributeSource
	filters    []source.FilterSource
	meta       []source.MetaAttributeSource
}

// NewRootEntitySource interprets cls and all of its attributes. Natural-id
// attributes come first, followed by the remaining attributes in order.
func NewRootEntitySource(doc *MappingDocument, cls *mapping.ClassElement) (*RootEntitySource, error) {
	className := doc.QualifyClassName(cls.Name)

	e := &RootEntitySource{
		sourceNode: sourceNode{document: doc},
		entityName: common.FirstNonEmpty(cls.EntityName, className),
		className:  className,
		table:      common.FirstNonEmpty(cls.Table, unqualify(cls.Name)),
		filters:    filterSources(cls.Filters),
		meta:       metaAttributes(cls.Meta),
	}

	if e.entityName == "" {
		return nil, source.NewMappingError(doc.Origin(), "Class element declares neither name nor entity-name")
	}

	if cls.ID == nil {
		return nil, source.NewMappingError(doc.Origin(), "Entity '%s' declares no identifier", e.entityName)
	}

	owner := attributeOwner{path: unqualify(e.entityName), table: e.table}

	id, err := NewIdentifierSource(doc, cls.ID, owner)
	if err != nil {
		return nil, err
	}

	e.identifier = id

	if cls.NaturalID != nil {
		natural, err := attributeSources(doc, cls.NaturalID.Attributes, owner, naturalIDMutability(cls.NaturalID))
		if err != nil {
			return nil, err
		}

		e.attributes = append(e.attributes, natural...)
	}

	attributes, err := attributeSources(doc, cls.Attributes, owner, source.NotNaturalID)
	if err != nil {
		return nil, err
	}

	e.attributes = append(e.attributes, attributes...)

	for i := range cls.Joins {
		err = e.bindJoin(doc, &cls.Joins[i], owner.path)
		if err != nil {
			return nil, err
		}
	}

	return e, nil
}

// bindJoin reads a secondary table. Its attributes are scoped to the joined
// table and appended to the entity attributes.
func (e *RootEntitySource) bindJoin(doc *MappingDocument, el *mapping.JoinElement, path string) error {
	if el.Table == "" {
		return source.NewMappingError(doc.Origin(), "Join in '%s' declares no table", e.entityName)
	}

	if el.Table == e.table {
		return source.NewMappingError(doc.Origin(), "Join in '%s' maps the primary table '%s'", e.entityName, el.Table)
	}

	for _, prev := range e.joins {
		if prev.TableName() == el.Table {
			return source.NewMappingError(doc.Origin(), "Table '%s' is joined twice in '%s'", el.Table, e.entityName)
		}
	}

	owner := attributeOwner{path: path, table: el.Table}

	for i := range el.Attributes {
		if attr := &el.Attributes[i]; attr.Set != nil || attr.Bag != nil || attr.List != nil {
			return source.NewMappingError(doc.Origin(),
				"Collection '%s' cannot be mapped to secondary table '%s'", owner.child(attr.Name()), el.Table)
		}
	}

	key, err := source.BuildValueSources(doc, &valueSourcesAdapter{
		path:     path + "[" + el.Table + "]",
		decl:     &mapping.ValueDeclaration{ColumnAttribute: el.Key.Column, Columns: el.Key.Columns},
		table:    el.Table,
		insert:   !el.Inverse,
		update:   false,
		nullable: false,
	})
	if err != nil {
		return err
	}

	if len(key) == 0 {
		return source.NewMappingError(doc.Origin(), "Join of '%s' in '%s' declares no key column", el.Table, e.entityName)
	}

	attributes, err := attributeSources(doc, el.Attributes, owner, source.NotNaturalID)
	if err != nil {
		return err
	}

	e.attributes = append(e.attributes, attributes...)
	e.joins = append(e.joins, source.StaticSecondaryTableSource{
		Table:      el.Table,
		KeyValues:  key,
		ForeignKey: el.Key.ForeignKey,
		Optional:   el.Optional,
		Inverse:    el.Inverse,
	})

	return nil
}

func (e *RootEntitySource) EntityName() string       { return e.entityName }
func (e *RootEntitySource) ClassName() string        { return e.className }
func (e *RootEntitySource) PrimaryTableName() string { return e.table }
func (e *RootEntitySource) Origin() source.Origin    { return e.origin() }

func (e *RootEntitySource) SecondaryTableSources() []source.SecondaryTableSource {
	return e.joins
}

func (e *RootEntitySource) IdentifierSource() source.SingularAttributeSource {
	return e.identifier
}

func (e *RootEntitySource) AttributeSources() []source.AttributeSource {
	return e.attributes
}

func (e *RootEntitySource) FilterSources() []source.FilterSource {
	return e.filters
}

func (e *RootEntitySource) MetaAttributeSources() []source.MetaAttributeSource {
	return e.meta
}
