package mapping

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/twtxwydavid/hibernate-orm/internal/common"
)

// StringOrArray is a string slice that can be unmarshaled from a single
// string or a list of strings.
type StringOrArray []string

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
// Accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML implements custom YAML marshaling for StringOrArray.
// Outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// First returns the first element or empty string if empty.
func (s StringOrArray) First() string {
	if v, ok := common.First(s); ok {
		return v
	}

	return ""
}

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}

// Contains returns true if the array contains the given string.
func (s StringOrArray) Contains(str string) bool {
	return slices.Contains(s, str)
}

// UnmarshalYAML implements custom YAML unmarshaling for ColumnElement.
// Accepts:
//   - Plain name: customer_id
//   - Full element: {name: customer_id, not-null: true, length: 32}
func (c *ColumnElement) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*c = ColumnElement{Name: node.Value}
		return nil

	case yaml.MappingNode:
		type plain ColumnElement

		var p plain

		if err := node.Decode(&p); err != nil {
			return err
		}

		*c = ColumnElement(p)

		return nil

	default:
		return fmt.Errorf("line %d: expected column name or column element, got %v", node.Line, node.Kind)
	}
}

// UnmarshalYAML implements custom YAML unmarshaling for Selector.
// Any scalar is accepted verbatim so that lazy: true and lazy: "true" read
// the same; interpretation happens later.
func (s *Selector) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar selector value, got %v", node.Line, node.Kind)
	}

	*s = Selector(node.Value)

	return nil
}
