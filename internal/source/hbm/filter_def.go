package hbm

import (
	"github.com/twtxwydavid/hibernate-orm/internal/mapping"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

type filterDefSource struct {
	name       string
	condition  string
	parameters []source.FilterParameterSource
}

func newFilterDefSource(el *mapping.FilterDefElement) *filterDefSource {
	params := make([]source.FilterParameterSource, 0, len(el.Parameters))
	for _, p := range el.Parameters {
		params = append(params, source.StaticFilterParameterSource{Name: p.Name, Type: p.Type})
	}

	return &filterDefSource{name: el.Name, condition: el.Condition, parameters: params}
}

func (f *filterDefSource) Name() string                                     { return f.name }
func (f *filterDefSource) Condition() string                                { return f.condition }
func (f *filterDefSource) ParameterSources() []source.FilterParameterSource { return f.parameters }

func filterSources(elements []mapping.FilterElement) []source.FilterSource {
	filters := make([]source.FilterSource, 0, len(elements))
	for _, f := range elements {
		filters = append(filters, source.StaticFilterSource{FilterName: f.Name, FilterCondition: f.Condition})
	}

	return filters
}
