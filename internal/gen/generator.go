package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"polyfield/internal/analyze"
	"polyfield/internal/common"
)

// DefaultCatalogImport is the import path of the catalog package.
const DefaultCatalogImport = "polyfield/internal/catalog"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// PackagePath is the import path of the generated package. Types declared
	// there are referenced unqualified.
	PackagePath string
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// Filename is the name of the generated file.
	Filename string
	// CatalogImport is the import path of the catalog package.
	CatalogImport string
	// Universe is the expression naming the target universe. Defaults to the
	// catalog package's Default.
	Universe string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		OutputDir:     ".",
		Filename:      "variants_gen.go",
		CatalogImport: DefaultCatalogImport,
	}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "variants_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generator renders registry files.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

type importSpec struct {
	Alias string
	Path  string
}

type entry struct {
	Type    string
	Factory string
}

type templateData struct {
	PackageName string
	Catalog     string
	Universe    string
	Imports     []importSpec
	Entries     []entry
}

// Generate renders one registry file covering every implementation in reports.
// An implementation reported for several interfaces is registered once.
func (g *Generator) Generate(reports []*analyze.Report) (*GeneratedFile, error) {
	if g.config.PackageName == "" {
		return nil, errors.New("package name is required")
	}

	impls := collect(reports)
	if common.IsEmpty(impls) {
		return nil, errors.New("no implementations found")
	}

	aliases := newAliasSet()
	catalogAlias := aliases.add(g.config.CatalogImport)

	data := &templateData{
		PackageName: g.config.PackageName,
		Catalog:     catalogAlias,
		Universe:    g.config.Universe,
	}

	if data.Universe == "" {
		data.Universe = catalogAlias + ".Default"
	}

	for _, impl := range impls {
		data.Entries = append(data.Entries, g.entry(impl, aliases))
	}

	data.Imports = aliases.specs()

	var buf bytes.Buffer
	if err := registryTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, g.config.Filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: g.config.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{
		Filename: g.config.Filename,
		Content:  formatted,
	}, nil
}

func (g *Generator) entry(impl analyze.Implementation, aliases *aliasSet) entry {
	qualifier := ""
	if impl.ID.PkgPath != g.config.PackagePath {
		qualifier = aliases.add(impl.ID.PkgPath) + "."
	}

	if impl.Constructor != "" {
		return entry{Factory: qualifier + impl.Constructor}
	}

	typ := qualifier + impl.ID.Name
	if impl.Pointer {
		typ = "*" + typ
	}

	return entry{Type: typ}
}

func collect(reports []*analyze.Report) []analyze.Implementation {
	var out []analyze.Implementation

	seen := make(map[analyze.TypeID]bool)

	for _, r := range reports {
		for _, impl := range r.Implementations {
			if seen[impl.ID] {
				continue
			}

			seen[impl.ID] = true
			out = append(out, impl)
		}
	}

	slices.SortFunc(out, func(a, b analyze.Implementation) int {
		return a.ID.Compare(b.ID)
	})

	return out
}

// aliasSet assigns a unique package alias to every import path.
type aliasSet struct {
	byPath map[string]string
	used   map[string]bool
}

func newAliasSet() *aliasSet {
	return &aliasSet{
		byPath: make(map[string]string),
		used:   make(map[string]bool),
	}
}

func (s *aliasSet) add(path string) string {
	if alias, ok := s.byPath[path]; ok {
		return alias
	}

	base := common.PkgAlias(path)
	alias := base

	for i := 2; s.used[alias]; i++ {
		alias = base + strconv.Itoa(i)
	}

	s.byPath[path] = alias
	s.used[alias] = true

	return alias
}

func (s *aliasSet) specs() []importSpec {
	var specs []importSpec

	for path, alias := range s.byPath {
		spec := importSpec{Path: path}
		if alias != common.PkgAlias(path) {
			spec.Alias = alias
		}

		specs = append(specs, spec)
	}

	slices.SortFunc(specs, func(a, b importSpec) int {
		return strings.Compare(a.Path, b.Path)
	})

	return specs
}

var registryTemplate = template.Must(template.New("registry").Parse(`// Code generated by variantgen. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})

func init() {
{{range .Entries}}{{if .Factory}}	{{$.Catalog}}.MustRegister({{$.Universe}}, {{.Factory}})
{{else}}	{{$.Catalog}}.MustRegister[{{.Type}}]({{$.Universe}}, nil)
{{end}}{{end}}}
`))
