package analyze

import (
	"fmt"
	"go/types"
	"slices"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedTypes |
	packages.NeedImports |
	packages.NeedDeps

// Analyzer loads Go packages and answers implementation queries over them.
type Analyzer struct {
	pkgs map[string]*types.Package
	// roots are the packages matched by the load patterns, in load order.
	roots []*types.Package
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		pkgs: make(map[string]*types.Package),
	}
}

// LoadPackages loads the specified packages.
// Patterns are standard Go package patterns (e.g., "./demo", "polyfield/demo").
func (a *Analyzer) LoadPackages(patterns ...string) error {
	cfg := &packages.Config{
		Mode: LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	})
	if len(errs) > 0 {
		return fmt.Errorf("package errors: %v", errs)
	}

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		a.pkgs[pkg.PkgPath] = pkg.Types
	})

	for _, pkg := range pkgs {
		a.roots = append(a.roots, pkg.Types)
	}

	return nil
}

// Interface looks up a named interface among the loaded packages and their imports.
func (a *Analyzer) Interface(id TypeID) (*types.Interface, error) {
	pkg, ok := a.pkgs[id.PkgPath]
	if !ok {
		return nil, fmt.Errorf("package %s not loaded", id.PkgPath)
	}

	obj, ok := pkg.Scope().Lookup(id.Name).(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("type %s not found", id)
	}

	iface, ok := obj.Type().Underlying().(*types.Interface)
	if !ok {
		return nil, fmt.Errorf("type %s is not an interface", id)
	}

	return iface, nil
}

// Implementations returns the exported concrete types of the loaded root
// packages that implement the interface id, sorted by TypeID.
//
// Structs are registered as pointers so the inspector edits them in place;
// other types are registered as values when their value method set suffices.
// A function NewT() returning the registered form becomes the constructor.
func (a *Analyzer) Implementations(id TypeID) (*Report, error) {
	iface, err := a.Interface(id)
	if err != nil {
		return nil, err
	}

	report := &Report{Interface: id}

	for _, pkg := range a.roots {
		scope := pkg.Scope()
		for _, name := range scope.Names() {
			typeName, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || !typeName.Exported() || typeName.IsAlias() {
				continue
			}

			named, ok := typeName.Type().(*types.Named)
			if !ok || named.TypeParams().Len() > 0 || types.IsInterface(named) {
				continue
			}

			impl, ok := implementation(pkg, named, iface)
			if ok {
				report.Implementations = append(report.Implementations, impl)
			}
		}
	}

	slices.SortFunc(report.Implementations, func(x, y Implementation) int {
		return x.ID.Compare(y.ID)
	})

	return report, nil
}

func implementation(pkg *types.Package, named *types.Named, iface *types.Interface) (Implementation, bool) {
	ptr := types.NewPointer(named)
	if !types.Implements(ptr, iface) {
		return Implementation{}, false
	}

	_, isStruct := named.Underlying().(*types.Struct)
	valueImpl := types.Implements(named, iface)

	impl := Implementation{
		ID:      TypeID{PkgPath: pkg.Path(), Name: named.Obj().Name()},
		Pointer: isStruct || !valueImpl,
	}

	result, ctor, ok := constructor(pkg, named.Obj().Name())
	if !ok {
		return impl, true
	}

	switch {
	case types.Identical(result, ptr):
		impl.Pointer = true
		impl.Constructor = ctor
	case types.Identical(result, named) && valueImpl:
		impl.Pointer = false
		impl.Constructor = ctor
	}

	return impl, true
}

// constructor finds func NewT() R in pkg.
func constructor(pkg *types.Package, name string) (types.Type, string, bool) {
	fn, ok := pkg.Scope().Lookup("New" + name).(*types.Func)
	if !ok {
		return nil, "", false
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 1 || sig.TypeParams().Len() > 0 {
		return nil, "", false
	}

	return sig.Results().At(0).Type(), fn.Name(), true
}

// PackageInfo names a loaded root package.
type PackageInfo struct {
	Path string // Import path
	Name string // Package name
}

// Roots returns the packages matched by the load patterns.
func (a *Analyzer) Roots() []PackageInfo {
	out := make([]PackageInfo, 0, len(a.roots))
	for _, pkg := range a.roots {
		out = append(out, PackageInfo{Path: pkg.Path(), Name: pkg.Name()})
	}

	return out
}
