package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shapesPkg = "polyfield/internal/analyze/testdata/shapes"

func loadShapes(t *testing.T) *Analyzer {
	t.Helper()

	analyzer := NewAnalyzer()
	require.NoError(t, analyzer.LoadPackages("./testdata/shapes"))

	return analyzer
}

func TestAnalyzer_Implementations(t *testing.T) {
	analyzer := loadShapes(t)

	report, err := analyzer.Implementations(TypeID{PkgPath: shapesPkg, Name: "Shape"})
	require.NoError(t, err)

	expected := []Implementation{
		{ID: TypeID{PkgPath: shapesPkg, Name: "Blob"}, Pointer: true},
		{ID: TypeID{PkgPath: shapesPkg, Name: "Circle"}, Pointer: true, Constructor: "NewCircle"},
		{ID: TypeID{PkgPath: shapesPkg, Name: "Meters"}, Pointer: false},
		{ID: TypeID{PkgPath: shapesPkg, Name: "Square"}, Pointer: false, Constructor: "NewSquare"},
	}
	assert.Equal(t, expected, report.Implementations)
}

func TestAnalyzer_NoImplementations(t *testing.T) {
	analyzer := loadShapes(t)

	report, err := analyzer.Implementations(TypeID{PkgPath: shapesPkg, Name: "Solid"})
	require.NoError(t, err)
	assert.Empty(t, report.Implementations)
}

func TestAnalyzer_DemoPerson(t *testing.T) {
	analyzer := NewAnalyzer()
	require.NoError(t, analyzer.LoadPackages("polyfield/demo"))

	report, err := analyzer.Implementations(TypeID{PkgPath: "polyfield/demo", Name: "Person"})
	require.NoError(t, err)

	require.Len(t, report.Implementations, 2)
	assert.Equal(t, "NewStudent", report.Implementations[0].Constructor)
	assert.Equal(t, "Teacher", report.Implementations[1].ID.Name)
	assert.Empty(t, report.Implementations[1].Constructor)

	assert.Equal(t, []PackageInfo{{Path: "polyfield/demo", Name: "demo"}}, analyzer.Roots())
}

func TestAnalyzer_InterfaceErrors(t *testing.T) {
	analyzer := loadShapes(t)

	tests := []struct {
		name string
		id   TypeID
	}{
		{"package not loaded", TypeID{PkgPath: "polyfield/nowhere", Name: "Shape"}},
		{"missing type", TypeID{PkgPath: shapesPkg, Name: "Cube"}},
		{"not an interface", TypeID{PkgPath: shapesPkg, Name: "Label"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyzer.Implementations(tt.id)
			require.Error(t, err)
		})
	}
}

func TestAnalyzer_LoadErrors(t *testing.T) {
	analyzer := NewAnalyzer()
	require.Error(t, analyzer.LoadPackages("./testdata/missing"))
}

func TestParseTypeID(t *testing.T) {
	tests := []struct {
		in   string
		want TypeID
		ok   bool
	}{
		{"polyfield/demo.Person", TypeID{PkgPath: "polyfield/demo", Name: "Person"}, true},
		{"example.com/x/y.Shape", TypeID{PkgPath: "example.com/x/y", Name: "Shape"}, true},
		{"io.Reader", TypeID{PkgPath: "io", Name: "Reader"}, true},
		{"example.com/x", TypeID{}, false},
		{"demo.", TypeID{}, false},
		{"Person", TypeID{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTypeID(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImplementation_TypeExpr(t *testing.T) {
	impl := Implementation{ID: TypeID{PkgPath: "polyfield/demo", Name: "Student"}, Pointer: true}

	assert.Equal(t, "*Student", impl.TypeExpr("polyfield/demo"))
	assert.Equal(t, "*demo.Student", impl.TypeExpr("polyfield/cmd/polyfield"))

	impl.Pointer = false
	assert.Equal(t, "demo.Student", impl.TypeExpr("other"))
}
