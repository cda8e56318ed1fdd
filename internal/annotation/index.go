package annotation

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"slices"
)

// TypeRef describes a field's declared type.
type TypeRef struct {
	// Name is a builtin name ("string") or a package-qualified name ("shop.Customer").
	Name    string
	Pointer bool
	Slice   bool
	Map     bool
}

// IsBuiltin returns true for predeclared types such as string or int64.
func (r TypeRef) IsBuiltin() bool {
	return types.Universe.Lookup(r.Name) != nil
}

// FieldInfo is one struct field of an indexed class.
type FieldInfo struct {
	Name        string
	Type        TypeRef
	Embedded    bool
	Exported    bool
	Annotations []*Instance
	Pos         token.Position
}

// Annotation returns the first field annotation named name, nil when absent.
func (f *FieldInfo) Annotation(name string) *Instance {
	return findAnnotation(f.Annotations, name)
}

// ClassInfo is one struct type with its type-level and field annotations.
type ClassInfo struct {
	Package     string // package name
	PkgPath     string
	Name        string // type name
	Annotations []*Instance
	Fields      []*FieldInfo
	Pos         token.Position
}

// QualifiedName returns "package.Type".
func (c *ClassInfo) QualifiedName() string {
	return c.Package + "." + c.Name
}

// Annotation returns the first type-level annotation named name, nil when absent.
func (c *ClassInfo) Annotation(name string) *Instance {
	return findAnnotation(c.Annotations, name)
}

// AnnotationsNamed returns every type-level annotation named name, in order.
func (c *ClassInfo) AnnotationsNamed(name string) []*Instance {
	var out []*Instance

	for _, in := range c.Annotations {
		if in.Name == name {
			out = append(out, in)
		}
	}

	return out
}

// Index holds the annotated classes of one or more packages, in
// declaration order.
type Index struct {
	classes []*ClassInfo
	byName  map[string]*ClassInfo
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{byName: make(map[string]*ClassInfo)}
}

// Classes returns every indexed class in declaration order.
func (x *Index) Classes() []*ClassInfo {
	return x.classes
}

// Class returns the class with the given qualified name, nil when absent.
func (x *Index) Class(qualifiedName string) *ClassInfo {
	return x.byName[qualifiedName]
}

// ClassesAnnotatedWith returns the classes carrying a type-level annotation named name.
func (x *Index) ClassesAnnotatedWith(name string) []*ClassInfo {
	var out []*ClassInfo

	for _, c := range x.classes {
		if c.Annotation(name) != nil {
			out = append(out, c)
		}
	}

	return out
}

// Annotations returns every type-level annotation named name across all
// classes, in declaration order.
func (x *Index) Annotations(name string) []*Instance {
	var out []*Instance

	for _, c := range x.classes {
		out = append(out, c.AnnotationsNamed(name)...)
	}

	return out
}

// AddFile indexes every struct type declared in file. info may be nil;
// field types then come from the syntax alone.
func (x *Index) AddFile(fset *token.FileSet, file *ast.File, pkgPath string, info *types.Info) error {
	pkgName := file.Name.Name

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}

		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)

			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}

			doc := ts.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}

			class := &ClassInfo{
				Package: pkgName,
				PkgPath: pkgPath,
				Name:    ts.Name.Name,
				Pos:     fset.Position(ts.Pos()),
			}

			if _, dup := x.byName[class.QualifiedName()]; dup {
				return fmt.Errorf("%s: type %s indexed twice", class.Pos, class.QualifiedName())
			}

			annotations, err := Directives(fset, doc, Target{Kind: TargetType, ClassName: class.QualifiedName()})
			if err != nil {
				return err
			}

			class.Annotations = annotations

			err = x.addFields(fset, class, st, info)
			if err != nil {
				return err
			}

			x.classes = append(x.classes, class)
			x.byName[class.QualifiedName()] = class
		}
	}

	return nil
}

func (x *Index) addFields(fset *token.FileSet, class *ClassInfo, st *ast.StructType, info *types.Info) error {
	for _, field := range st.Fields.List {
		names := field.Names
		embedded := len(names) == 0

		if embedded {
			names = []*ast.Ident{ast.NewIdent(embeddedName(field.Type))}
		}

		for _, name := range names {
			target := Target{Kind: TargetField, ClassName: class.QualifiedName(), FieldName: name.Name}

			annotations, err := Directives(fset, field.Doc, target)
			if err != nil {
				return err
			}

			trailing, err := Directives(fset, field.Comment, target)
			if err != nil {
				return err
			}

			class.Fields = append(class.Fields, &FieldInfo{
				Name:        name.Name,
				Type:        typeRef(field.Type, info, class.Package),
				Embedded:    embedded,
				Exported:    ast.IsExported(name.Name),
				Annotations: slices.Concat(annotations, trailing),
				Pos:         fset.Position(field.Pos()),
			})
		}
	}

	return nil
}

// ParseSource parses and indexes one Go source file without loading its
// package. Field types are then resolved from the syntax only.
func (x *Index) ParseSource(filename string, src any) error {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	return x.AddFile(fset, file, file.Name.Name, nil)
}

func findAnnotation(annotations []*Instance, name string) *Instance {
	for _, in := range annotations {
		if in.Name == name {
			return in
		}
	}

	return nil
}

func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.Ident:
		return t.Name
	default:
		return ""
	}
}

// typeRef prefers the type checker's view; without one it reads the syntax,
// qualifying local names with pkgName.
func typeRef(expr ast.Expr, info *types.Info, pkgName string) TypeRef {
	if info != nil {
		if t := info.TypeOf(expr); t != nil {
			return checkedTypeRef(t)
		}
	}

	switch t := expr.(type) {
	case *ast.StarExpr:
		ref := typeRef(t.X, nil, pkgName)
		ref.Pointer = true

		return ref
	case *ast.ArrayType:
		ref := typeRef(t.Elt, nil, pkgName)
		ref.Slice = true

		return ref
	case *ast.MapType:
		ref := typeRef(t.Value, nil, pkgName)
		ref.Map = true

		return ref
	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok {
			return TypeRef{Name: pkg.Name + "." + t.Sel.Name}
		}
	case *ast.Ident:
		if types.Universe.Lookup(t.Name) != nil {
			return TypeRef{Name: t.Name}
		}

		return TypeRef{Name: pkgName + "." + t.Name}
	}

	return TypeRef{Name: types.ExprString(expr)}
}

func checkedTypeRef(t types.Type) TypeRef {
	switch tt := t.(type) {
	case *types.Pointer:
		ref := checkedTypeRef(tt.Elem())
		ref.Pointer = true

		return ref
	case *types.Slice:
		ref := checkedTypeRef(tt.Elem())
		ref.Slice = true

		return ref
	case *types.Array:
		ref := checkedTypeRef(tt.Elem())
		ref.Slice = true

		return ref
	case *types.Map:
		ref := checkedTypeRef(tt.Elem())
		ref.Map = true

		return ref
	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() == nil {
			return TypeRef{Name: obj.Name()}
		}

		return TypeRef{Name: obj.Pkg().Name() + "." + obj.Name()}
	case *types.Alias:
		return checkedTypeRef(types.Unalias(tt))
	case *types.Basic:
		return TypeRef{Name: tt.Name()}
	default:
		return TypeRef{Name: t.String()}
	}
}
