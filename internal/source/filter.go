package source

// FilterParameterSource is one typed parameter of a filter definition.
type FilterParameterSource interface {
	ParameterName() string
	ParameterValueTypeName() string
}

// FilterDefSource is a named, parameterized filter definition. The condition
// is opaque here; it is validated when queries are compiled.
type FilterDefSource interface {
	Name() string
	Condition() string
	// ParameterSources are in declaration order.
	ParameterSources() []FilterParameterSource
}

// FilterSource is the application of a filter definition to an entity or
// collection. An empty Condition means the definition's default.
type FilterSource interface {
	Name() string
	Condition() string
}

// StaticFilterSource is the FilterSource both input formats produce.
type StaticFilterSource struct {
	FilterName      string
	FilterCondition string
}

func (f StaticFilterSource) Name() string      { return f.FilterName }
func (f StaticFilterSource) Condition() string { return f.FilterCondition }

// StaticFilterParameterSource is the FilterParameterSource both input
// formats produce.
type StaticFilterParameterSource struct {
	Name string
	Type string
}

func (p StaticFilterParameterSource) ParameterName() string          { return p.Name }
func (p StaticFilterParameterSource) ParameterValueTypeName() string { return p.Type }
