package hbm

import (
	"github.com/twtxwydavid/hibernate-orm/internal/mapping"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

// attributeSources builds one source per element, keeping declaration order.
func attributeSources(
	doc *MappingDocument,
	elements []mapping.AttributeElement,
	owner attributeOwner,
	naturalID source.NaturalIDMutability,
) ([]source.AttributeSource, error) {
	attributes := make([]source.AttributeSource, 0, len(elements))

	for i := range elements {
		attr, err := attributeSource(doc, &elements[i], owner, naturalID)
		if err != nil {
			return nil, err
		}

		attributes = append(attributes, attr)
	}

	return attributes, nil
}

func attributeSource(
	doc *MappingDocument,
	el *mapping.AttributeElement,
	owner attributeOwner,
	naturalID source.NaturalIDMutability,
) (source.AttributeSource, error) {
	if el.Kind() == "" {
		return nil, source.NewMappingError(doc.Origin(), "Attribute in '%s' declares no kind", owner.path)
	}

	switch {
	case el.Property != nil:
		return NewPropertyAttributeSource(doc, el.Property, owner, naturalID)
	case el.ManyToOne != nil:
		return NewManyToOneAttributeSource(doc, el.ManyToOne, owner, naturalID)
	case el.Component != nil:
		return NewComponentAttributeSource(doc, el.Component, owner, naturalID)
	case el.Set != nil:
		return pluralAttributeSource(doc, el.Set, source.PluralSet, owner, naturalID)
	case el.Bag != nil:
		return pluralAttributeSource(doc, el.Bag, source.PluralBag, owner, naturalID)
	default:
		return pluralAttributeSource(doc, el.List, source.PluralList, owner, naturalID)
	}
}

func pluralAttributeSource(
	doc *MappingDocument,
	el *mapping.CollectionElement,
	nature source.PluralNature,
	owner attributeOwner,
	naturalID source.NaturalIDMutability,
) (source.AttributeSource, error) {
	if naturalID != source.NotNaturalID {
		return nil, source.NewMappingError(doc.Origin(), "Collection '%s' cannot be part of a natural-id", owner.child(el.Name))
	}

	return NewPluralAttributeSource(doc, el, nature, owner)
}

func naturalIDMutability(el *mapping.NaturalIDElement) source.NaturalIDMutability {
	if el.Mutable {
		return source.NaturalIDMutable
	}

	return source.NaturalIDImmutable
}
