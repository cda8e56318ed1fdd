package source

import "strings"

// MappingDefaults are the global defaults a mapping input inherits.
type MappingDefaults struct {
	// PackageName qualifies unqualified class names.
	PackageName string
	// CascadeStyle is the directive applied when an association declares none.
	CascadeStyle string
	// PropertyAccessorName is the accessor used when an attribute declares none.
	PropertyAccessorName string
	// AssociationsLazy selects DELAYED over IMMEDIATE when nothing else decides.
	AssociationsLazy bool
	// IDColumnName is the column used by an identifier that declares none.
	IDColumnName string
}

// DefaultMappingDefaults returns the stock defaults: lazy associations,
// cascade "none", "property" access, identifier column "id".
func DefaultMappingDefaults() MappingDefaults {
	return MappingDefaults{
		CascadeStyle:         "none",
		PropertyAccessorName: "property",
		AssociationsLazy:     true,
		IDColumnName:         "id",
	}
}

// BindingContext is what every source implementation consults while it is
// being constructed. It is read-only once the build starts.
type BindingContext interface {
	MappingDefaults() MappingDefaults
	// Origin locates the mapping input this context belongs to.
	Origin() Origin
	// QualifyClassName applies the default package to an unqualified name.
	QualifyClassName(name string) string
	// InterpretCascadeStyles parses directive, falling back to the default
	// cascade style when directive is empty.
	InterpretCascadeStyles(directive string) (CascadeStyles, error)
}

// NewBindingContext returns a BindingContext backed by fixed defaults.
func NewBindingContext(origin Origin, defaults MappingDefaults, cascades *CascadeInterpreter) BindingContext {
	return &bindingContext{origin: origin, defaults: defaults, cascades: cascades}
}

type bindingContext struct {
	origin   Origin
	defaults MappingDefaults
	cascades *CascadeInterpreter
}

func (c *bindingContext) MappingDefaults() MappingDefaults { return c.defaults }
func (c *bindingContext) Origin() Origin                   { return c.origin }

func (c *bindingContext) QualifyClassName(name string) string {
	if name == "" || c.defaults.PackageName == "" || strings.Contains(name, ".") {
		return name
	}

	return c.defaults.PackageName + "." + name
}

func (c *bindingContext) InterpretCascadeStyles(directive string) (CascadeStyles, error) {
	if strings.TrimSpace(directive) == "" {
		directive = c.defaults.CascadeStyle
	}

	return c.cascades.Interpret(directive, c.origin)
}
