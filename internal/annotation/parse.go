package annotation

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
)

// DirectivePrefix starts every annotation comment line.
const DirectivePrefix = "//orm:"

// ErrInvalidDirective is wrapped by every directive syntax error.
var ErrInvalidDirective = errors.New("invalid annotation directive")

// ParseDirective parses the text following DirectivePrefix, for example
// `ManyToOne{Fetch: LAZY}` or `Id`.
func ParseDirective(text string) (*Instance, error) {
	expr, err := parser.ParseExpr(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidDirective, text, err)
	}

	switch e := expr.(type) {
	case *ast.Ident:
		return NewInstance(e.Name, nil), nil
	case *ast.CompositeLit:
		name, ok := typeName(e.Type)
		if !ok {
			return nil, fmt.Errorf("%w %q: annotation name required", ErrInvalidDirective, text)
		}

		values, err := compositeValues(e)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidDirective, text, err)
		}

		return NewInstance(name, values), nil
	default:
		return nil, fmt.Errorf("%w %q: expected Name or Name{...}", ErrInvalidDirective, text)
	}
}

// Directives parses every annotation line of a comment group and attaches
// the instances to target.
func Directives(fset *token.FileSet, doc *ast.CommentGroup, target Target) ([]*Instance, error) {
	if doc == nil {
		return nil, nil
	}

	var result []*Instance

	for _, c := range doc.List {
		text, ok := strings.CutPrefix(c.Text, DirectivePrefix)
		if !ok {
			continue
		}

		pos := fset.Position(c.Pos())

		in, err := ParseDirective(text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pos, err)
		}

		in.Target = target
		in.Pos = pos
		result = append(result, in)
	}

	return result, nil
}

func typeName(expr ast.Expr) (string, bool) {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name, true
	case *ast.SelectorExpr:
		return t.Sel.Name, true
	default:
		return "", false
	}
}

// compositeValues stores keyed elements by key and positional elements
// under ValueKey, as a list when there are several.
func compositeValues(lit *ast.CompositeLit) (map[string]any, error) {
	values := map[string]any{}

	var positional []any

	for _, elt := range lit.Elts {
		if kv, ok := elt.(*ast.KeyValueExpr); ok {
			key, ok := kv.Key.(*ast.Ident)
			if !ok {
				return nil, fmt.Errorf("key must be an identifier, got %T", kv.Key)
			}

			if _, dup := values[key.Name]; dup {
				return nil, fmt.Errorf("duplicate key %s", key.Name)
			}

			v, err := literalValue(kv.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key.Name, err)
			}

			values[key.Name] = v

			continue
		}

		v, err := literalValue(elt)
		if err != nil {
			return nil, err
		}

		positional = append(positional, v)
	}

	switch {
	case len(positional) == 0:
	case len(values) > 0:
		return nil, errors.New("mixture of keyed and positional elements")
	case len(positional) == 1:
		values[ValueKey] = positional[0]
	default:
		values[ValueKey] = positional
	}

	return values, nil
}

func literalValue(expr ast.Expr) (any, error) {
	switch e := expr.(type) {
	case *ast.BasicLit:
		return basicValue(e)
	case *ast.Ident:
		switch e.Name {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return e.Name, nil
		}
	case *ast.SelectorExpr:
		return e.Sel.Name, nil
	case *ast.UnaryExpr:
		if e.Op != token.SUB {
			return nil, fmt.Errorf("unsupported operator %s", e.Op)
		}

		v, err := literalValue(e.X)
		if err != nil {
			return nil, err
		}

		i, ok := v.(int64)
		if !ok {
			return nil, errors.New("negation of a non-integer")
		}

		return -i, nil
	case *ast.CompositeLit:
		return compositeValue(e)
	default:
		return nil, fmt.Errorf("unsupported value %T", expr)
	}
}

// compositeValue reads a nested literal: a named or keyed literal is an
// instance, anything else is a list.
func compositeValue(lit *ast.CompositeLit) (any, error) {
	name, named := typeName(lit.Type)
	keyed := len(lit.Elts) > 0

	for _, elt := range lit.Elts {
		if _, ok := elt.(*ast.KeyValueExpr); !ok {
			keyed = false
			break
		}
	}

	if named || keyed {
		values, err := compositeValues(lit)
		if err != nil {
			return nil, err
		}

		return NewInstance(name, values), nil
	}

	list := make([]any, 0, len(lit.Elts))

	for _, elt := range lit.Elts {
		v, err := literalValue(elt)
		if err != nil {
			return nil, err
		}

		list = append(list, v)
	}

	return list, nil
}

func basicValue(lit *ast.BasicLit) (any, error) {
	switch lit.Kind {
	case token.STRING:
		return strconv.Unquote(lit.Value)
	case token.INT:
		return strconv.ParseInt(lit.Value, 0, 64)
	default:
		return nil, fmt.Errorf("unsupported literal %s", lit.Value)
	}
}
