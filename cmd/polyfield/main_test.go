package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	flagConfig = ""
	flagLogLevel = "error"
	flagDump = false
	flagOverlay = ""
	flagStrict = false
	flagDiags = false
	flagExpand = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	err := rootCmd.Execute()

	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestRender(t *testing.T) {
	out, err := execute(t, "render")
	require.NoError(t, err)

	assert.Equal(t, `Health = 0
Person: <None (null)>
A = 10
B = 20 (read-only)
`, out)
}

func TestRun(t *testing.T) {
	script := writeFile(t, "script.yaml", `
steps:
  - path: Person
    select: Student
  - path: Person
    expand: true
  - path: HP
    value: "150"
`)

	out, err := execute(t, "run", script)
	require.NoError(t, err)

	assert.Equal(t, `Health = 100
Person: <Student>
  Name = "ABC" (read-only)
  + Courses
A = 10
B = 20 (read-only)
`, out)
}

func TestRun_ReportsFailedSteps(t *testing.T) {
	script := writeFile(t, "script.yaml", `
steps:
  - path: B
    value: "1"
  - path: Nowhere
    expand: true
`)

	out, err := execute(t, "run", script)
	require.Error(t, err)
	assert.ErrorContains(t, err, "B: field is read-only")
	assert.ErrorContains(t, err, "Nowhere was not rendered")
	assert.Contains(t, out, "B = 20 (read-only)")
}

func TestRun_StrictFactories(t *testing.T) {
	script := writeFile(t, "script.yaml", `
steps:
  - path: Person
    select: Teacher
`)

	out, err := execute(t, "--strict-factories", "run", script)
	require.ErrorContains(t, err, "no default factory")
	assert.Contains(t, out, "Person: <None (null)>")
}

func TestRun_InvalidScript(t *testing.T) {
	script := writeFile(t, "script.yaml", "steps:\n  - path: HP\n")

	_, err := execute(t, "run", script)
	require.ErrorContains(t, err, "exactly one of")
}

func TestVariants(t *testing.T) {
	out, err := execute(t, "variants")
	require.NoError(t, err)

	assert.Equal(t, `demo.Person:
  Student (*demo.Student, factory)
  Teacher (*demo.Teacher, zero value)
`, out)
}

func TestConfigFileAndOverlay(t *testing.T) {
	overlay := writeFile(t, "overlay.yaml", `
types:
  demo.Player:
    A:
      name: Armor
      readonly: true
`)
	config := writeFile(t, "polyfield.yaml", "dump: true\noverlay: "+overlay+"\n")

	out, err := execute(t, "--config", config, "render")
	require.NoError(t, err)

	assert.Contains(t, out, "Armor = 10 (read-only)")
	assert.Contains(t, out, "HP: (int) 0")
}

func TestConfigFileMissing(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "render")
	require.ErrorContains(t, err, "load config")
}

func TestRender_Expand(t *testing.T) {
	out, err := execute(t, "render", "--expand", "Person")
	require.NoError(t, err)
	assert.Contains(t, out, "Person: <None (null)>")
}

func TestRun_Diagnostics(t *testing.T) {
	script := writeFile(t, "script.yaml", `
steps:
  - path: Person
    select: Teacher
`)

	out, err := execute(t, "--diagnostics", "run", script)
	require.NoError(t, err)
	assert.Contains(t, out, "Person: <Teacher>")
	assert.Contains(t, out, "info: [demo.Player] Person: [zero_construction] Teacher has no factory; constructed as zero value\n")
}

func TestRun_NoDiagnosticsByDefault(t *testing.T) {
	script := writeFile(t, "script.yaml", `
steps:
  - path: Person
    select: Teacher
`)

	out, err := execute(t, "run", script)
	require.NoError(t, err)
	assert.NotContains(t, out, "zero_construction")
}
