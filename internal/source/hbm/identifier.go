package hbm

import (
	"github.com/twtxwydavid/hibernate-orm/internal/common"
	"github.com/twtxwydavid/hibernate-orm/internal/mapping"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

// IdentifierSource is the simple identifier of an entity. Its columns are
// never nullable and never updated.
type IdentifierSource struct {
	singularAttribute
	generator string
}

// NewIdentifierSource interprets the id element of the entity at owner.
func NewIdentifierSource(doc *MappingDocument, el *mapping.IDElement, owner attributeOwner) (*IdentifierSource, error) {
	id := &IdentifierSource{
		singularAttribute: singularAttribute{
			sourceNode:     sourceNode{document: doc},
			name:           el.Name,
			accessor:       accessorName(doc, el.Access),
			typeInfo:       source.ExplicitTypeSource{Name: el.Type},
			optimisticLock: true,
			meta:           metaAttributes(el.Meta),
			insert:         true,
			naturalID:      source.NotNaturalID,
		},
		generator: common.FirstNonEmpty(el.Generator, "assigned"),
	}

	columns := make([]mapping.ColumnElement, len(el.Columns))
	for i, c := range el.Columns {
		c.NotNull = nil
		columns[i] = c
	}

	decl := &mapping.ValueDeclaration{ColumnAttribute: el.Column, Columns: columns}
	implicit := common.FirstNonEmpty(el.Name, doc.MappingDefaults().IDColumnName)

	err := id.buildValues(owner.child(common.FirstNonEmpty(el.Name, "id")), owner.table, implicit, decl)
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
