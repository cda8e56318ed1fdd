package hbm

import (
	"github.com/twtxwydavid/hibernate-orm/internal/mapping"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

// basicElementColumn is the column of a value collection declaring none.
const basicElementColumn = "elt"

// PluralAttributeSource is a set, bag or list read from a document.
type PluralAttributeSource struct {
	sourceNode
	name             string
	accessor         string
	optimisticLock   bool
	meta             []source.MetaAttributeSource
	nature           source.PluralNature
	elementNature    source.ElementNature
	timing           source.FetchTiming
	style            source.FetchStyle
	cascades         source.CascadeStyles
	referencedEntity string
	elementType      source.ExplicitTypeSource
	table            string
	keyValues        []source.RelationalValueSource
	elementValues    []source.RelationalValueSource
	indexValues      []source.RelationalValueSource
	indexBase        int
	inverse          bool
	batchSize        int
	where            string
	orderBy          string
	keyDelegate      source.JoinColumnResolutionDelegate
	elementDelegate  source.JoinColumnResolutionDelegate
	filters          []source.FilterSource
}

// NewPluralAttributeSource interprets a collection element of the given
// nature declared in owner.
func NewPluralAttributeSource(
	doc *MappingDocument,
	el *mapping.CollectionElement,
	nature source.PluralNature,
	owner attributeOwner,
) (*PluralAttributeSource, error) {
	path := owner.child(el.Name)

	timing, err := pluralFetchTiming(doc, path, el)
	if err != nil {
		return nil, err
	}

	style, err := pluralFetchStyle(doc, path, el)
	if err != nil {
		return nil, err
	}

	cascades, err := doc.InterpretCascadeStyles(el.Cascade)
	if err != nil {
		return nil, err
	}

	p := &PluralAttributeSource{
		sourceNode:     sourceNode{document: doc},
		name:           el.Name,
		accessor:       accessorName(doc, el.Access),
		optimisticLock: el.IsOptimisticLock(),
		meta:           metaAttributes(el.Meta),
		nature:         nature,
		timing:         timing,
		style:          style,
		cascades:       cascades,
		table:          el.Table,
		inverse:        el.Inverse,
		batchSize:      el.BatchSize,
		where:          el.Where,
		orderBy:        el.OrderBy,
		filters:        filterSources(el.Filters),
	}

	err = p.bindElement(path, el)
	if err != nil {
		return nil, err
	}

	err = p.bindKey(path, el)
	if err != nil {
		return nil, err
	}

	if nature == source.PluralList {
		err = p.bindIndex(path, el)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *PluralAttributeSource) bindElement(path string, el *mapping.CollectionElement) error {
	ctx := p.bindingContext()

	switch {
	case el.Element != nil && el.OneToMany == nil && el.ManyToMany == nil:
		p.elementNature = source.ElementBasic
		p.elementType = source.ExplicitTypeSource{Name: el.Element.Type}

		values, err := p.buildValues(path, &el.Element.ValueDeclaration, basicElementColumn,
			!mapping.BoolValue(el.Element.NotNull, false))
		if err != nil {
			return err
		}

		p.elementValues = values
	case el.OneToMany != nil && el.Element == nil && el.ManyToMany == nil:
		p.elementNature = source.ElementOneToMany
		p.referencedEntity = referencedEntityName(ctx, el.OneToMany.Class, el.OneToMany.EntityName)
		p.table = ""
	case el.ManyToMany != nil && el.Element == nil && el.OneToMany == nil:
		m := el.ManyToMany
		p.elementNature = source.ElementManyToMany
		p.referencedEntity = referencedEntityName(ctx, m.Class, m.EntityName)

		values, err := p.buildValues(path, &m.ValueDeclaration, "", true)
		if err != nil {
			return err
		}

		if len(values) == 0 {
			return source.NewMappingError(ctx.Origin(), "Many-to-many '%s' declares no column", path)
		}

		p.elementValues = values

		if m.PropertyRef != "" {
			p.elementDelegate = source.NewAttributeJoinColumnDelegate(m.PropertyRef)
		}
	default:
		return source.NewMappingError(ctx.Origin(),
			"Collection '%s' must declare exactly one of element, one-to-many, many-to-many", path)
	}

	if p.elementNature != source.ElementOneToMany && p.table == "" {
		return source.NewMappingError(ctx.Origin(), "Collection of values '%s' declares no table", path)
	}

	return nil
}

func (p *PluralAttributeSource) bindKey(path string, el *mapping.CollectionElement) error {
	decl := &mapping.ValueDeclaration{ColumnAttribute: el.Key.Column, Columns: el.Key.Columns}

	values, err := p.buildValues(path, decl, "", p.elementNature == source.ElementOneToMany)
	if err != nil {
		return err
	}

	if len(values) == 0 {
		return source.NewMappingError(p.origin(), "Collection '%s' declares no key column", path)
	}

	p.keyValues = values

	if el.Key.PropertyRef != "" {
		p.keyDelegate = source.NewAttributeJoinColumnDelegate(el.Key.PropertyRef)
	}

	return nil
}

func (p *PluralAttributeSource) bindIndex(path string, el *mapping.CollectionElement) error {
	if el.Index == nil || el.Index.Column == "" {
		return source.NewMappingError(p.origin(), "List '%s' declares no list-index column", path)
	}

	values, err := p.buildValues(path, &mapping.ValueDeclaration{ColumnAttribute: el.Index.Column}, "", false)
	if err != nil {
		return err
	}

	p.indexValues = values
	p.indexBase = el.Index.Base

	return nil
}

// buildValues scopes collection values to the collection table, or to the
// referenced entity's primary table ("") for one-to-many collections.
func (p *PluralAttributeSource) buildValues(
	path string,
	decl *mapping.ValueDeclaration,
	implicit string,
	nullable bool,
) ([]source.RelationalValueSource, error) {
	return source.BuildValueSources(p.bindingContext(), &valueSourcesAdapter{
		path:     path,
		decl:     decl,
		table:    p.table,
		insert:   !p.inverse,
		update:   !p.inverse,
		nullable: nullable,
		implicit: implicit,
	})
}

func (p *PluralAttributeSource) Name() string                        { return p.name }
func (p *PluralAttributeSource) IsSingular() bool                    { return false }
func (p *PluralAttributeSource) PropertyAccessorName() string        { return p.accessor }
func (p *PluralAttributeSource) IsIncludedInOptimisticLocking() bool { return p.optimisticLock }

func (p *PluralAttributeSource) Nature() source.AttributeNature {
	switch p.elementNature {
	case source.ElementOneToMany:
		return source.NatureOneToMany
	case source.ElementManyToMany:
		return source.NatureManyToMany
	default:
		return source.NatureElementCollection
	}
}

// TypeInformation is empty: the collection type follows from PluralNature.
func (p *PluralAttributeSource) TypeInformation() source.ExplicitTypeSource {
	return source.ExplicitTypeSource{}
}

func (p *PluralAttributeSource) MetaAttributeSources() []source.MetaAttributeSource {
	return p.meta
}

func (p *PluralAttributeSource) FetchTiming() source.FetchTiming                   { return p.timing }
func (p *PluralAttributeSource) FetchStyle() source.FetchStyle                     { return p.style }
func (p *PluralAttributeSource) CascadeStyles() source.CascadeStyles               { return p.cascades }
func (p *PluralAttributeSource) PluralNature() source.PluralNature                 { return p.nature }
func (p *PluralAttributeSource) ElementNature() source.ElementNature               { return p.elementNature }
func (p *PluralAttributeSource) ReferencedEntityName() string                      { return p.referencedEntity }
func (p *PluralAttributeSource) ElementTypeInformation() source.ExplicitTypeSource { return p.elementType }
func (p *PluralAttributeSource) CollectionTableName() string                       { return p.table }
func (p *PluralAttributeSource) IsInverse() bool                                   { return p.inverse }
func (p *PluralAttributeSource) BatchSize() int                                    { return p.batchSize }
func (p *PluralAttributeSource) Where() string                                     { return p.where }
func (p *PluralAttributeSource) OrderBy() string                                   { return p.orderBy }

func (p *PluralAttributeSource) KeyValueSources() []source.RelationalValueSource {
	return p.keyValues
}

func (p *PluralAttributeSource) ElementValueSources() []source.RelationalValueSource {
	return p.elementValues
}

// IndexValueSources is the list-index column of a list, nil otherwise.
func (p *PluralAttributeSource) IndexValueSources() []source.RelationalValueSource {
	return p.indexValues
}

// IndexBase is the list position stored for the first element.
func (p *PluralAttributeSource) IndexBase() int {
	return p.indexBase
}

// KeyTargetResolutionDelegate resolves a key that references a non-identifier
// attribute of the owner; nil when the key targets the owner's identifier.
func (p *PluralAttributeSource) KeyTargetResolutionDelegate() source.JoinColumnResolutionDelegate {
	return p.keyDelegate
}

// ElementTargetResolutionDelegate resolves a many-to-many element keyed by a
// non-identifier attribute of the referenced entity.
func (p *PluralAttributeSource) ElementTargetResolutionDelegate() source.JoinColumnResolutionDelegate {
	return p.elementDelegate
}

// FilterSources are the filters applied to the collection.
func (p *PluralAttributeSource) FilterSources() []source.FilterSource {
	return p.filters
}
