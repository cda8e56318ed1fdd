package hbm

import (
	"github.com/twtxwydavid/hibernate-orm/internal/mapping"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

// PropertyAttributeSource is a basic attribute mapped by a property element.
type PropertyAttributeSource struct {
	singularAttribute
}

// NewPropertyAttributeSource interprets el declared in owner. Without any
// column or formula the attribute maps to a column named after itself.
func NewPropertyAttributeSource(
	doc *MappingDocument,
	el *mapping.PropertyElement,
	owner attributeOwner,
	naturalID source.NaturalIDMutability,
) (*PropertyAttributeSource, error) {
	path := owner.child(el.Name)

	generation, err := propertyGeneration(doc, path, el.Generated)
	if err != nil {
		return nil, err
	}

	p := &PropertyAttributeSource{singularAttribute{
		sourceNode:     sourceNode{document: doc},
		name:           el.Name,
		accessor:       accessorName(doc, el.Access),
		typeInfo:       source.ExplicitTypeSource{Name: el.Type, Parameters: el.TypeParams},
		optimisticLock: el.IsOptimisticLock(),
		meta:           metaAttributes(el.Meta),
		insert:         el.IsInsert() && generation == source.GenerationNever,
		update:         el.IsUpdate() && generation != source.GenerationAlways,
		nullable:       !mapping.BoolValue(el.NotNull, false),
		lazy:           el.Lazy,
		generation:     generation,
		naturalID:      naturalID,
	}}

	err = p.buildValues(path, owner.table, el.Name, &el.ValueDeclaration)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (p *PropertyAttributeSource) Nature() source.AttributeNature {
	return source.NatureBasic
}

// propertyGeneration maps the generated directive; generated values are
// never written by the mapper itself.
func propertyGeneration(ctx source.BindingContext, path, generated string) (source.PropertyGeneration, error) {
	switch generated {
	case "", "never":
		return source.GenerationNever, nil
	case "insert":
		return source.GenerationInsert, nil
	case "always":
		return source.GenerationAlways, nil
	default:
		return 0, unexpectedSelector(ctx, "generated", path, mapping.Selector(generated), mapping.GeneratedValues)
	}
}
