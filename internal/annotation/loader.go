package annotation

import (
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// Loader loads Go packages and indexes their annotated struct types.
type Loader struct {
	index *Index
	dir   string
}

// NewLoader creates a Loader resolving patterns relative to dir ("" for the
// current directory).
func NewLoader(dir string) *Loader {
	return &Loader{index: NewIndex(), dir: dir}
}

// LoadPackages loads the specified packages and adds them to the index.
// Patterns are standard Go package patterns (e.g., "./examples/shop").
// Packages that fail to type-check are rejected as a whole.
func (l *Loader) LoadPackages(patterns ...string) (*Index, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  l.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = multierr.Append(errs, e)
		}
	}

	if errs != nil {
		return nil, fmt.Errorf("package errors: %w", errs)
	}

	for _, pkg := range pkgs {
		if err := l.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return l.index, nil
}

// Index returns the current index.
func (l *Loader) Index() *Index {
	return l.index
}

func (l *Loader) processPackage(pkg *packages.Package) error {
	for _, file := range pkg.Syntax {
		err := l.index.AddFile(pkg.Fset, file, pkg.PkgPath, pkg.TypesInfo)
		if err != nil {
			return err
		}
	}

	return nil
}
