package annotations

import (
	"github.com/twtxwydavid/hibernate-orm/internal/annotation"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

// FilterDefSource is a FilterDef annotation.
type FilterDefSource struct {
	name       string
	condition  string
	parameters []source.FilterParameterSource
}

// NewFilterDefSource reads the name, default condition and ordered
// parameters of a FilterDef instance. The condition is not validated.
func NewFilterDefSource(ctx source.BindingContext, in *annotation.Instance) (*FilterDefSource, error) {
	name := in.Text("Name")
	if name == "" {
		return nil, source.NewMappingError(ctx.Origin(), "FilterDef without a name at %s", in.Pos)
	}

	params := in.NestedList("Parameters")

	def := &FilterDefSource{
		name:       name,
		condition:  in.Text("DefaultCondition"),
		parameters: make([]source.FilterParameterSource, 0, len(params)),
	}

	for _, p := range params {
		if p.Text("Name") == "" || p.Text("Type") == "" {
			return nil, source.NewMappingError(ctx.Origin(), "FilterDef '%s' has a parameter without name or type", name)
		}

		def.parameters = append(def.parameters, source.StaticFilterParameterSource{Name: p.Text("Name"), Type: p.Text("Type")})
	}

	return def, nil
}

func (f *FilterDefSource) Name() string                                     { return f.name }
func (f *FilterDefSource) Condition() string                                { return f.condition }
func (f *FilterDefSource) ParameterSources() []source.FilterParameterSource { return f.parameters }
