package annotations

import (
	"github.com/twtxwydavid/hibernate-orm/internal/annotation"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

// Sources produces the source model of an annotation index.
type Sources struct {
	index    *annotation.Index
	defaults source.MappingDefaults
	cascades *source.CascadeInterpreter
}

// NewSources interprets index with defaults. The package of each class
// becomes its default package.
func NewSources(index *annotation.Index, defaults source.MappingDefaults, cascades *source.CascadeInterpreter) *Sources {
	return &Sources{index: index, defaults: defaults, cascades: cascades}
}

// FilterDefSources returns FilterDef and FilterDefs declarations of every
// indexed type, in declaration order.
func (s *Sources) FilterDefSources() ([]source.FilterDefSource, error) {
	var defs []source.FilterDefSource

	for _, class := range s.index.Classes() {
		ctx := s.bindingContext(class)

		var instances []*annotation.Instance

		for _, in := range class.Annotations {
			switch in.Name {
			case FilterDef:
				instances = append(instances, in)
			case FilterDefs:
				instances = append(instances, in.NestedList(annotation.ValueKey)...)
			}
		}

		for _, in := range instances {
			def, err := NewFilterDefSource(ctx, in)
			if err != nil {
				return nil, err
			}

			defs = append(defs, def)
		}
	}

	return defs, nil
}

// EntitySources builds one source per type annotated with Entity.
func (s *Sources) EntitySources() ([]source.EntitySource, error) {
	classes := s.index.ClassesAnnotatedWith(Entity)
	entities := make([]source.EntitySource, 0, len(classes))

	for _, class := range classes {
		e, err := newEntitySource(s, class)
		if err != nil {
			return nil, err
		}

		entities = append(entities, e)
	}

	return entities, nil
}

func (s *Sources) bindingContext(class *annotation.ClassInfo) source.BindingContext {
	defaults := s.defaults
	defaults.PackageName = class.Package

	origin := source.Origin{Type: source.OriginAnnotation, Name: class.QualifiedName()}

	return source.NewBindingContext(origin, defaults, s.cascades)
}

// entityName is the Entity name, or the qualified class name.
func (s *Sources) entityName(class *annotation.ClassInfo) string {
	return class.Annotation(Entity).TextOr("Name", class.QualifiedName())
}

// resolveEntity maps an indexed entity class to its entity name. Other names
// are returned unchanged; they may name document entities.
func (s *Sources) resolveEntity(className string) string {
	class := s.index.Class(className)
	if class == nil || class.Annotation(Entity) == nil {
		return className
	}

	return s.entityName(class)
}

// attributeSource returns nil for fields that are not mapped: unexported,
// embedded or Transient fields, and unannotated collections.
func (s *Sources) attributeSource(f fieldContext) (source.AttributeSource, error) {
	field := f.field

	if !field.Exported || field.Embedded || f.annotation(Transient) != nil {
		return nil, nil
	}

	for _, name := range []string{ManyToOne, OneToOne} {
		if assoc := f.annotation(name); assoc != nil {
			return newToOneAttributeSource(f, assoc, s.resolveEntity)
		}
	}

	if field.Type.Slice || field.Type.Map {
		return nil, nil
	}

	if target := s.index.Class(field.Type.Name); target != nil && target.Annotation(Entity) != nil {
		return nil, source.NewMappingError(f.ctx.Origin(),
			"Attribute '%s' references entity '%s' without ManyToOne or OneToOne", f.path(), s.entityName(target))
	}

	return newBasicAttributeSource(f)
}
