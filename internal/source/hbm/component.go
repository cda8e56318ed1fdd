package hbm

import (
	"github.com/twtxwydavid/hibernate-orm/internal/mapping"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

// ComponentAttributeSource is an embedded value. Its relational values are
// those of its singular nested attributes, in declaration order.
type ComponentAttributeSource struct {
	singularAttribute
	className  string
	parent     string
	attributes []source.AttributeSource
}

// NewComponentAttributeSource interprets el and every attribute nested in it.
// Nested attributes share the owner's table and natural-id mutability.
func NewComponentAttributeSource(
	doc *MappingDocument,
	el *mapping.ComponentElement,
	owner attributeOwner,
	naturalID source.NaturalIDMutability,
) (*ComponentAttributeSource, error) {
	path := owner.child(el.Name)

	attributes, err := attributeSources(doc, el.Attributes, attributeOwner{path: path, table: owner.table}, naturalID)
	if err != nil {
		return nil, err
	}

	c := &ComponentAttributeSource{
		singularAttribute: singularAttribute{
			sourceNode:     sourceNode{document: doc},
			name:           el.Name,
			accessor:       accessorName(doc, el.Access),
			typeInfo:       source.ExplicitTypeSource{Name: doc.QualifyClassName(el.Class)},
			optimisticLock: mapping.BoolValue(el.OptimisticLock, true),
			meta:           metaAttributes(el.Meta),
			insert:         mapping.BoolValue(el.Insert, true),
			update:         mapping.BoolValue(el.Update, true),
			nullable:       true,
			lazy:           el.Lazy,
			generation:     source.GenerationNever,
			naturalID:      naturalID,
		},
		className:  doc.QualifyClassName(el.Class),
		parent:     el.Parent,
		attributes: attributes,
	}

	for _, attr := range attributes {
		if container, ok := attr.(source.RelationalValueSourceContainer); ok {
			c.values = append(c.values, container.RelationalValueSources()...)
		}
	}

	return c, nil
}

func (c *ComponentAttributeSource) Nature() source.AttributeNature             { return source.NatureComposite }
func (c *ComponentAttributeSource) ComponentClassName() string                 { return c.className }
func (c *ComponentAttributeSource) ParentReferenceAttributeName() string       { return c.parent }
func (c *ComponentAttributeSource) AttributeSources() []source.AttributeSource { return c.attributes }
