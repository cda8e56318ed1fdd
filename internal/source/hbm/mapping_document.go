package hbm

import (
	"github.com/twtxwydavid/hibernate-orm/internal/common"
	"github.com/twtxwydavid/hibernate-orm/internal/mapping"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

// MappingDocument is one parsed mapping document together with the binding
// context its elements are interpreted in.
type MappingDocument struct {
	source.BindingContext
	document *mapping.Document
}

// NewMappingDocument wraps doc, whose declarations are reported as coming
// from originName. Document-level defaults (package, default-lazy,
// default-cascade, default-access) override base.
func NewMappingDocument(
	doc *mapping.Document,
	originName string,
	base source.MappingDefaults,
	cascades *source.CascadeInterpreter,
) *MappingDocument {
	defaults := base
	defaults.PackageName = common.FirstNonEmpty(doc.Package, base.PackageName)
	defaults.CascadeStyle = common.FirstNonEmpty(doc.DefaultCascade, base.CascadeStyle)
	defaults.PropertyAccessorName = common.FirstNonEmpty(doc.DefaultAccess, base.PropertyAccessorName)

	if doc.DefaultLazy != nil {
		defaults.AssociationsLazy = *doc.DefaultLazy
	}

	origin := source.Origin{Type: source.OriginMappingDocument, Name: originName}

	return &MappingDocument{
		BindingContext: source.NewBindingContext(origin, defaults, cascades),
		document:       doc,
	}
}

// Document returns the underlying parsed document.
func (d *MappingDocument) Document() *mapping.Document {
	return d.document
}

// FilterDefSources returns the document's filter definitions in declaration order.
func (d *MappingDocument) FilterDefSources() []source.FilterDefSource {
	defs := make([]source.FilterDefSource, 0, len(d.document.FilterDefs))
	for i := range d.document.FilterDefs {
		defs = append(defs, newFilterDefSource(&d.document.FilterDefs[i]))
	}

	return defs
}

// EntitySources builds one source per class element. The first invalid
// declaration aborts the whole document.
func (d *MappingDocument) EntitySources() ([]source.EntitySource, error) {
	entities := make([]source.EntitySource, 0, len(d.document.Classes))

	for i := range d.document.Classes {
		entity, err := NewRootEntitySource(d, &d.document.Classes[i])
		if err != nil {
			return nil, err
		}

		entities = append(entities, entity)
	}

	return entities, nil
}

// sourceNode is embedded by every element implementation.
type sourceNode struct {
	document *MappingDocument
}

func (n sourceNode) bindingContext() source.BindingContext {
	return n.document
}

func (n sourceNode) origin() source.Origin {
	return n.document.Origin()
}
