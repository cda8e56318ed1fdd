package hbm

import (
	"github.com/twtxwydavid/hibernate-orm/internal/mapping"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

// ManyToOneAttributeSource is a many-to-one association read from a document.
type ManyToOneAttributeSource struct {
	singularAttribute
	timing           source.FetchTiming
	style            source.FetchStyle
	mode             source.FetchMode
	cascades         source.CascadeStyles
	referencedEntity string
	foreignKey       string
	delegate         source.JoinColumnResolutionDelegate
}

// NewManyToOneAttributeSource interprets el declared in owner. Unknown lazy
// or fetch selectors and unknown cascade styles fail construction; an unknown
// outer-join value reads as SELECT.
func NewManyToOneAttributeSource(
	doc *MappingDocument,
	el *mapping.ManyToOneElement,
	owner attributeOwner,
	naturalID source.NaturalIDMutability,
) (*ManyToOneAttributeSource, error) {
	path := owner.child(el.Name)

	timing, err := toOneFetchTiming(doc, path, el.Lazy, el.Fetch, el.OuterJoin)
	if err != nil {
		return nil, err
	}

	mode, err := toOneFetchMode(doc, path, el.Fetch)
	if err != nil {
		return nil, err
	}

	cascades, err := doc.InterpretCascadeStyles(el.Cascade)
	if err != nil {
		return nil, err
	}

	m := &ManyToOneAttributeSource{
		singularAttribute: singularAttribute{
			sourceNode:     sourceNode{document: doc},
			name:           el.Name,
			accessor:       accessorName(doc, el.Access),
			optimisticLock: el.IsOptimisticLock(),
			meta:           metaAttributes(el.Meta),
			insert:         el.IsInsert(),
			update:         el.IsUpdate(),
			nullable:       !mapping.BoolValue(el.NotNull, false),
			lazy:           timing != source.FetchImmediate,
			generation:     source.GenerationNever,
			naturalID:      naturalID,
		},
		timing:           timing,
		style:            toOneFetchStyle(doc, el.Fetch, el.OuterJoin),
		mode:             mode,
		cascades:         cascades,
		referencedEntity: referencedEntityName(doc, el.Class, el.EntityName),
		foreignKey:       el.ForeignKey,
	}

	if el.PropertyRef != "" {
		m.delegate = source.NewAttributeJoinColumnDelegate(el.PropertyRef)
	}

	err = m.buildValues(path, owner.table, el.Name, &el.ValueDeclaration)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *ManyToOneAttributeSource) Nature() source.AttributeNature      { return source.NatureManyToOne }
func (m *ManyToOneAttributeSource) FetchTiming() source.FetchTiming     { return m.timing }
func (m *ManyToOneAttributeSource) FetchStyle() source.FetchStyle       { return m.style }
func (m *ManyToOneAttributeSource) FetchMode() source.FetchMode         { return m.mode }
func (m *ManyToOneAttributeSource) CascadeStyles() source.CascadeStyles { return m.cascades }
func (m *ManyToOneAttributeSource) ReferencedEntityName() string        { return m.referencedEntity }
func (m *ManyToOneAttributeSource) ExplicitForeignKeyName() string      { return m.foreignKey }

// ForeignKeyTargetColumnResolutionDelegate is non-nil only with a property-ref.
func (m *ManyToOneAttributeSource) ForeignKeyTargetColumnResolutionDelegate() source.JoinColumnResolutionDelegate {
	return m.delegate
}
