package annotations

import (
	"github.com/twtxwydavid/hibernate-orm/internal/annotation"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

// ToOneAttributeSource is a ManyToOne or OneToOne field.
type ToOneAttributeSource struct {
	singularAttribute
	nature           source.AttributeNature
	timing           source.FetchTiming
	style            source.FetchStyle
	mode             source.FetchMode
	cascades         source.CascadeStyles
	referencedEntity string
	foreignKey       string
	delegate         source.JoinColumnResolutionDelegate
}

// newToOneAttributeSource interprets assoc, a ManyToOne or OneToOne
// instance, with the field's join column, fetch and cascade annotations.
// resolveEntity maps a qualified class name to its entity name.
func newToOneAttributeSource(
	f fieldContext,
	assoc *annotation.Instance,
	resolveEntity func(className string) string,
) (*ToOneAttributeSource, error) {
	timing, err := toOneFetchTiming(f.ctx, assoc, f.annotation(LazyToOne))
	if err != nil {
		return nil, err
	}

	style, err := toOneFetchStyle(f.ctx, assoc, f.annotation(Fetch))
	if err != nil {
		return nil, err
	}

	directive, err := cascadeDirective(f.ctx, assoc, f.annotation(Cascade))
	if err != nil {
		return nil, err
	}

	cascades, err := f.ctx.InterpretCascadeStyles(directive)
	if err != nil {
		return nil, err
	}

	t := &ToOneAttributeSource{
		singularAttribute: newSingularAttribute(f),
		nature:            source.NatureManyToOne,
		timing:            timing,
		style:             style,
		mode:              toOneFetchMode(f.annotation(Fetch)),
		cascades:          cascades,
		referencedEntity:  referencedEntity(f, assoc, resolveEntity),
	}

	if assoc.Name == OneToOne {
		t.nature = source.NatureOneToOne
	}

	t.lazy = timing != source.FetchImmediate
	t.nullable = assoc.Bool("Optional", true)

	joinColumns := f.joinColumns()

	t.foreignKey = f.annotation(ForeignKey).Text("Name")
	for _, jc := range joinColumns {
		if t.foreignKey == "" {
			t.foreignKey = jc.Nested("ForeignKey").Text("Name")
		}
	}

	t.delegate, err = targetDelegate(f, joinColumns)
	if err != nil {
		return nil, err
	}

	adapter := &valuesAdapter{table: columnTable(f.table, joinColumns...)}
	if assoc.Text("MappedBy") == "" {
		adapter.implicit = t.name + "_id"
	}

	for _, jc := range joinColumns {
		spec := columnSpec(jc, nil)
		if spec.Name == "" {
			spec.Name = t.name + "_" + jc.TextOr("ReferencedColumnName", "id")
		}

		adapter.columns = append(adapter.columns, spec)
	}

	err = t.buildValues(f, adapter)
	if err != nil {
		return nil, err
	}

	return t, nil
}

// joinColumns collects JoinColumns elements followed by JoinColumn annotations.
func (f fieldContext) joinColumns() []*annotation.Instance {
	var columns []*annotation.Instance

	if group := f.annotation(JoinColumns); group != nil {
		columns = append(columns, group.NestedList(annotation.ValueKey)...)
	}

	for _, in := range f.field.Annotations {
		if in.Name == JoinColumn {
			columns = append(columns, in)
		}
	}

	return columns
}

// targetDelegate: PropertyRef names a target attribute; otherwise join
// columns naming referenced columns target those columns. Either all join
// columns name one or none does.
func targetDelegate(f fieldContext, joinColumns []*annotation.Instance) (source.JoinColumnResolutionDelegate, error) {
	if ref := f.annotation(PropertyRef); ref != nil {
		name := ref.TextOr(annotation.ValueKey, ref.Text("Name"))
		if name == "" {
			return nil, source.NewMappingError(f.ctx.Origin(), "Empty PropertyRef on '%s'", f.path())
		}

		return source.NewAttributeJoinColumnDelegate(name), nil
	}

	var referenced []string

	for _, jc := range joinColumns {
		if name := jc.Text("ReferencedColumnName"); name != "" {
			referenced = append(referenced, name)
		}
	}

	switch len(referenced) {
	case 0:
		return nil, nil
	case len(joinColumns):
		return source.NewColumnJoinColumnDelegate("", referenced...), nil
	default:
		return nil, source.NewMappingError(f.ctx.Origin(),
			"Join columns of '%s' must all or none declare ReferencedColumnName", f.path())
	}
}

func referencedEntity(f fieldContext, assoc *annotation.Instance, resolveEntity func(string) string) string {
	if target := assoc.Text("TargetEntity"); target != "" {
		return resolveEntity(f.ctx.QualifyClassName(target))
	}

	return resolveEntity(f.field.Type.Name)
}

func (t *ToOneAttributeSource) Nature() source.AttributeNature      { return t.nature }
func (t *ToOneAttributeSource) FetchTiming() source.FetchTiming     { return t.timing }
func (t *ToOneAttributeSource) FetchStyle() source.FetchStyle       { return t.style }
func (t *ToOneAttributeSource) FetchMode() source.FetchMode         { return t.mode }
func (t *ToOneAttributeSource) CascadeStyles() source.CascadeStyles { return t.cascades }
func (t *ToOneAttributeSource) ReferencedEntityName() string        { return t.referencedEntity }
func (t *ToOneAttributeSource) ExplicitForeignKeyName() string      { return t.foreignKey }

// ForeignKeyTargetColumnResolutionDelegate is non-nil with a PropertyRef or
// referenced column names.
func (t *ToOneAttributeSource) ForeignKeyTargetColumnResolutionDelegate() source.JoinColumnResolutionDelegate {
	return t.delegate
}
