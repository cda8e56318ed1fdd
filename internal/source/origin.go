package source

import "fmt"

// OriginType is the format a mapping declaration was read from.
type OriginType int

const (
	OriginUnknown OriginType = iota
	OriginMappingDocument
	OriginAnnotation
)

// String returns a human-readable representation of the OriginType.
func (t OriginType) String() string {
	switch t {
	case OriginMappingDocument:
		return "MAPPING_DOCUMENT"
	case OriginAnnotation:
		return "ANNOTATION"
	default:
		return "OTHER"
	}
}

// Origin locates a mapping declaration for error reporting.
type Origin struct {
	Type OriginType
	// Name is a file name, a file:line position or a qualified type name.
	Name string
}

// String renders the origin as "TYPE(name)".
func (o Origin) String() string {
	return fmt.Sprintf("%s(%s)", o.Type, o.Name)
}
