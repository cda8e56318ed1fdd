package source

import "fmt"

// MappingError reports an invalid or unrecognized mapping declaration.
// Mapping errors are definitional: the build that raised one must abort.
type MappingError struct {
	Message string
	Origin  Origin
}

// NewMappingError formats a MappingError located at origin.
func NewMappingError(origin Origin, format string, args ...any) *MappingError {
	return &MappingError{
		Message: fmt.Sprintf(format, args...),
		Origin:  origin,
	}
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("%s : origin %s", e.Message, e.Origin)
}
