package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDiagnostics_Collect(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())

	d.AddInfo(CodeZeroConstruction, "built as zero value", "demo.Teacher", "Person")
	d.AddWarning(CodeProxyBinding, "accessor not found", "demo.Player", "HP")
	d.AddError(CodeOwnerUnresolved, "index out of range", "", "Items[9].Price")

	assert.True(t, d.HasErrors())
	assert.Len(t, d.All(), 3)
	assert.Equal(t, CodeOwnerUnresolved, d.All()[0].Code)
	assert.Len(t, d.WithCode(CodeProxyBinding), 1)

	assert.Equal(t, "Items[9].Price: [owner_unresolved] index out of range", d.All()[0].String())

	var other Diagnostics
	other.AddError(CodeCommit, "store rejected commit", "", "")
	d.Merge(other)
	assert.Len(t, d.Errors, 2)
	assert.Len(t, other.All(), 1)
}

func TestDiagnostics_ValueReceivers(t *testing.T) {
	collect := func() Diagnostics {
		var d Diagnostics
		d.AddWarning(CodeProxyBinding, "accessor not found", "demo.Player", "HP")

		return d
	}

	assert.Len(t, collect().WithCode(CodeProxyBinding), 1)
	assert.Empty(t, collect().WithCode(CodeCommit))
	assert.True(t, collect().IsValid())
	assert.False(t, collect().HasErrors())
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Code: CodeProxyBinding, Message: "bad", Owner: "demo.Player", FieldPath: "HP"}
	assert.Equal(t, "[demo.Player] HP: [proxy_binding] bad", d.String())
	assert.Equal(t, "plain", Diagnostic{Message: "plain"}.String())
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(7).String())
}

func TestLog(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	Log(logger, Diagnostic{Severity: DiagnosticWarning, Code: CodeProxyBinding, Message: "accessor not found", Owner: "demo.Player", FieldPath: "HP"})
	Log(logger, Diagnostic{Severity: DiagnosticError, Code: CodeOwnerUnresolved, Message: "boom"})
	Log(logger, Diagnostic{Severity: DiagnosticInfo, Code: CodeZeroConstruction, Message: "zero"})

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "HP", entries[0].ContextMap()["path"])
	assert.Equal(t, "demo.Player", entries[0].ContextMap()["owner"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.NotContains(t, entries[1].ContextMap(), "path")
	assert.Equal(t, zapcore.InfoLevel, entries[2].Level)
}
