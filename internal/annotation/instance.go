package annotation

import (
	"fmt"
	"go/token"
	"slices"
	"strings"
)

// ValueKey is the key positional directive elements are stored under.
const ValueKey = "Value"

// TargetKind tells type-level annotations apart from field-level ones.
type TargetKind int

const (
	TargetType TargetKind = iota
	TargetField
)

// String returns a human-readable representation of the TargetKind.
func (k TargetKind) String() string {
	if k == TargetField {
		return "field"
	}

	return "type"
}

// Target is the declaration an annotation is attached to.
type Target struct {
	Kind      TargetKind
	ClassName string // package-qualified type name, e.g. "shop.Order"
	FieldName string // empty for type-level annotations
}

// String renders the target as "shop.Order" or "shop.Order.Customer".
func (t Target) String() string {
	if t.Kind == TargetField {
		return t.ClassName + "." + t.FieldName
	}

	return t.ClassName
}

// Instance is one parsed annotation directive. Values hold string, bool,
// int64, []any or *Instance.
type Instance struct {
	Name   string
	Target Target
	Pos    token.Position
	values map[string]any
}

// NewInstance returns an instance with the given values, for callers that
// build annotations without source text.
func NewInstance(name string, values map[string]any) *Instance {
	if values == nil {
		values = map[string]any{}
	}

	return &Instance{Name: name, values: values}
}

// Has reports whether key was given explicitly.
func (in *Instance) Has(key string) bool {
	if in == nil {
		return false
	}

	_, ok := in.values[key]

	return ok
}

// Keys returns the explicit keys in sorted order.
func (in *Instance) Keys() []string {
	if in == nil {
		return nil
	}

	keys := make([]string, 0, len(in.values))
	for k := range in.values {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// Raw returns the stored value of key.
func (in *Instance) Raw(key string) (any, bool) {
	if in == nil {
		return nil, false
	}

	v, ok := in.values[key]

	return v, ok
}

// Text returns the string value of key, "" when absent. A one-element
// list is accepted.
func (in *Instance) Text(key string) string {
	v, ok := in.Raw(key)
	if !ok {
		return ""
	}

	switch tv := v.(type) {
	case string:
		return tv
	case []any:
		if len(tv) == 1 {
			if s, ok := tv[0].(string); ok {
				return s
			}
		}
	}

	return ""
}

// TextOr returns the string value of key, def when absent or empty.
func (in *Instance) TextOr(key, def string) string {
	if s := in.Text(key); s != "" {
		return s
	}

	return def
}

// Strings returns the string elements of key. A single string is returned
// as a one-element slice.
func (in *Instance) Strings(key string) []string {
	v, ok := in.Raw(key)
	if !ok {
		return nil
	}

	switch tv := v.(type) {
	case string:
		return []string{tv}
	case []any:
		out := make([]string, 0, len(tv))
		for _, e := range tv {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}

		return out
	default:
		return nil
	}
}

// Bool returns the boolean value of key, def when absent.
func (in *Instance) Bool(key string, def bool) bool {
	v, ok := in.Raw(key)
	if !ok {
		return def
	}

	b, ok := v.(bool)
	if !ok {
		return def
	}

	return b
}

// BoolPtr returns the boolean value of key, nil when absent.
func (in *Instance) BoolPtr(key string) *bool {
	if !in.Has(key) {
		return nil
	}

	b := in.Bool(key, false)

	return &b
}

// Int returns the integer value of key, def when absent.
func (in *Instance) Int(key string, def int) int {
	v, ok := in.Raw(key)
	if !ok {
		return def
	}

	i, ok := v.(int64)
	if !ok {
		return def
	}

	return int(i)
}

// Nested returns the nested instance stored under key, nil when absent.
func (in *Instance) Nested(key string) *Instance {
	v, ok := in.Raw(key)
	if !ok {
		return nil
	}

	switch tv := v.(type) {
	case *Instance:
		return tv
	case []any:
		if len(tv) == 1 {
			if n, ok := tv[0].(*Instance); ok {
				return n
			}
		}
	}

	return nil
}

// NestedList returns the nested instances stored under key, in order.
// A single nested instance is returned as a one-element slice.
func (in *Instance) NestedList(key string) []*Instance {
	v, ok := in.Raw(key)
	if !ok {
		return nil
	}

	switch tv := v.(type) {
	case *Instance:
		return []*Instance{tv}
	case []any:
		out := make([]*Instance, 0, len(tv))
		for _, e := range tv {
			if n, ok := e.(*Instance); ok {
				out = append(out, n)
			}
		}

		return out
	default:
		return nil
	}
}

// Describe renders the instance roughly as it was written, with sorted keys.
func (in *Instance) Describe() string {
	if in == nil {
		return "<nil>"
	}

	var b strings.Builder

	b.WriteString(in.Name)

	if len(in.values) == 0 {
		return b.String()
	}

	b.WriteByte('{')

	for i, k := range in.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}

		fmt.Fprintf(&b, "%s: %s", k, describeValue(in.values[k]))
	}

	b.WriteByte('}')

	return b.String()
}

func describeValue(v any) string {
	switch tv := v.(type) {
	case string:
		return fmt.Sprintf("%q", tv)
	case *Instance:
		return tv.Describe()
	case []any:
		parts := make([]string, 0, len(tv))
		for _, e := range tv {
			parts = append(parts, describeValue(e))
		}

		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprint(tv)
	}
}
