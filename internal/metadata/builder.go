package metadata

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/twtxwydavid/hibernate-orm/internal/annotation"
	"github.com/twtxwydavid/hibernate-orm/internal/match"
	"github.com/twtxwydavid/hibernate-orm/internal/mapping"
	"github.com/twtxwydavid/hibernate-orm/internal/relational"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
	"github.com/twtxwydavid/hibernate-orm/internal/source/annotations"
	"github.com/twtxwydavid/hibernate-orm/internal/source/hbm"
)

// input is one mapping input: a document or an annotation index.
type input struct {
	origin     source.Origin
	filterDefs func() ([]source.FilterDefSource, error)
	entities   func() ([]source.EntitySource, error)
}

// Builder collects mapping inputs and binds them in two passes: every
// attribute's relational values are registered first, then join column
// delegates are resolved against the registered entities.
type Builder struct {
	config   Config
	logger   *zap.SugaredLogger
	cascades *source.CascadeInterpreter
	inputs   []input
}

// NewBuilder creates a Builder. A nil logger discards log output.
func NewBuilder(logger *zap.SugaredLogger, config Config) (*Builder, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	cascades, err := source.NewCascadeInterpreter(config.CascadeCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create cascade interpreter: %w", err)
	}

	return &Builder{config: config, logger: logger, cascades: cascades}, nil
}

// AddDocument queues a parsed mapping document read from originName.
func (b *Builder) AddDocument(doc *mapping.Document, originName string) *hbm.MappingDocument {
	md := hbm.NewMappingDocument(doc, originName, b.config.Defaults, b.cascades)

	b.inputs = append(b.inputs, input{
		origin: md.Origin(),
		filterDefs: func() ([]source.FilterDefSource, error) {
			return md.FilterDefSources(), nil
		},
		entities: md.EntitySources,
	})

	return md
}

// AddAnnotationIndex queues the annotated types of index; originName names
// the loaded packages in error reports.
func (b *Builder) AddAnnotationIndex(index *annotation.Index, originName string) *annotations.Sources {
	sources := annotations.NewSources(index, b.config.Defaults, b.cascades)

	b.inputs = append(b.inputs, input{
		origin:     source.Origin{Type: source.OriginAnnotation, Name: originName},
		filterDefs: sources.FilterDefSources,
		entities:   sources.EntitySources,
	})

	return sources
}

// pendingJoin is an association whose target columns are resolved in the
// second pass.
type pendingJoin struct {
	owner  *entityState
	path   string
	target *entityState
	// delegate is nil when the association targets the identifier.
	delegate   source.JoinColumnResolutionDelegate
	foreignKey []relational.Value
	assign     func(columns []string)
}

// binder carries the state of one Build call.
type binder struct {
	config  Config
	reg     *registry
	pending []pendingJoin
	// defOrder is the declaration order of filter definitions.
	defOrder []string
}

// Build binds every queued input. The first MappingError aborts the build.
func (b *Builder) Build() (*Metadata, error) {
	bd := &binder{config: b.config, reg: newRegistry()}
	md := &Metadata{}

	for _, in := range b.inputs {
		defs, err := in.filterDefs()
		if err != nil {
			return nil, err
		}

		for _, def := range defs {
			if err := bd.addFilterDef(in.origin, def); err != nil {
				return nil, err
			}
		}
	}

	for _, in := range b.inputs {
		entities, err := in.entities()
		if err != nil {
			return nil, err
		}

		for _, e := range entities {
			if err := bd.reg.add(e); err != nil {
				return nil, err
			}
		}
	}

	b.logger.Debugw("registered mapping sources",
		"inputs", len(b.inputs), "entities", len(bd.reg.entities), "filterDefs", len(bd.reg.defs))

	// First pass: relational values of every attribute.
	for _, state := range bd.reg.entities {
		if err := bd.bindEntity(state); err != nil {
			return nil, err
		}
	}

	// Second pass: join columns.
	for _, p := range bd.pending {
		if err := bd.resolve(p); err != nil {
			return nil, err
		}
	}

	b.logger.Debugw("resolved join columns", "associations", len(bd.pending))

	for _, state := range bd.reg.entities {
		md.Entities = append(md.Entities, *state.binding)
	}

	for _, name := range bd.defOrder {
		md.FilterDefs = append(md.FilterDefs, *bd.reg.defs[name])
	}

	return md, nil
}

func (bd *binder) addFilterDef(origin source.Origin, def source.FilterDefSource) error {
	if prev, ok := bd.reg.defs[def.Name()]; ok {
		return source.NewMappingError(origin,
			"Duplicate filter definition '%s', already defined by %s", def.Name(), prev.Origin)
	}

	binding := &FilterDefBinding{Name: def.Name(), Condition: def.Condition(), Origin: origin.String()}
	for _, p := range def.ParameterSources() {
		binding.Parameters = append(binding.Parameters, FilterParameterBinding{
			Name: p.ParameterName(),
			Type: p.ParameterValueTypeName(),
		})
	}

	bd.reg.defs[def.Name()] = binding
	bd.defOrder = append(bd.defOrder, def.Name())

	return nil
}

// resolve runs the delegate of p (or takes the target identifier) and
// assigns the target columns.
func (bd *binder) resolve(p pendingJoin) error {
	values := p.target.identifierValues()

	if p.delegate != nil {
		resolved, err := p.delegate.Resolve(resolutionContext{target: p.target})
		if err != nil {
			return source.NewMappingError(p.owner.source.Origin(),
				"Unable to resolve join columns of '%s': %v", p.path, err)
		}

		values = resolved
	}

	if bd.config.CheckForeignKeyArity && len(p.foreignKey) > 0 && len(p.foreignKey) != len(values) {
		return source.NewMappingError(p.owner.source.Origin(),
			"'%s' maps %d column(s) but references %d column(s) of entity '%s'",
			p.path, len(p.foreignKey), len(values), p.target.name())
	}

	columns := make([]string, 0, len(values))
	for _, v := range values {
		columns = append(columns, qualifiedText(v))
	}

	p.assign(columns)

	return nil
}

// target looks up the entity an association references.
func (bd *binder) target(owner *entityState, path, name string) (*entityState, error) {
	if state, ok := bd.reg.lookup(name); ok {
		return state, nil
	}

	err := source.NewMappingError(owner.source.Origin(), "'%s' references unknown entity '%s'", path, name)
	if hint := match.Closest(name, bd.reg.entityNames()); hint != "" {
		err.Message += " (did you mean " + hint + "?)"
	}

	return nil, err
}

// filters substitutes default conditions and checks that every filter names
// a definition.
func (bd *binder) filters(owner *entityState, path string, filters []source.FilterSource) ([]FilterBinding, error) {
	var out []FilterBinding

	for _, f := range filters {
		def, ok := bd.reg.defs[f.Name()]
		if !ok {
			err := source.NewMappingError(owner.source.Origin(),
				"Filter '%s' on '%s' has no filter definition", f.Name(), path)
			if hint := match.Closest(f.Name(), bd.reg.filterDefNames()); hint != "" {
				err.Message += " (did you mean " + hint + "?)"
			}

			return nil, err
		}

		condition := f.Condition()
		if condition == "" {
			condition = def.Condition
		}

		if condition == "" {
			return nil, source.NewMappingError(owner.source.Origin(),
				"Filter '%s' on '%s' declares no condition and its definition has no default", f.Name(), path)
		}

		out = append(out, FilterBinding{Name: f.Name(), Condition: condition})
	}

	return out, nil
}

func qualifiedText(v relational.Value) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}

	return v.Text()
}
