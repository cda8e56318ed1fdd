package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_ErrorJoinsMessages(t *testing.T) {
	var d Diagnostics
	assert.True(t, d.IsValid())
	require.NoError(t, d.Error())

	d.AddError("unknown_lazy", `unknown lazy selection "proxi"`, "shop.hbm.yaml", "Order.customer", "proxy")
	d.AddError("duplicate_filter_def", `duplicate filter-def "byStatus"`, "shop.hbm.yaml", "")
	d.AddWarning("implicit_column", "no column declared", "shop.hbm.yaml", "Order.note")

	assert.True(t, d.HasErrors())
	assert.Equal(t, []string{"unknown_lazy", "duplicate_filter_def"}, d.Codes())

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t,
		`[shop.hbm.yaml] Order.customer: [unknown_lazy] unknown lazy selection "proxi" (did you mean proxy?); `+
			`[shop.hbm.yaml]: [duplicate_filter_def] duplicate filter-def "byStatus"`,
		err.Error())
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics
	a.AddInfo("scan", "scanned", "", "")
	b.AddError("x", "broken", "", "")
	b.AddWarning("y", "odd", "", "")

	a.Merge(b)
	assert.Len(t, a.Errors, 1)
	assert.Len(t, a.Warnings, 1)
	assert.Len(t, a.Infos, 1)
	assert.Equal(t, DiagnosticError, a.Errors[0].Severity)
}

func TestDiagnosticSeverity_String(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(42).String())
}
