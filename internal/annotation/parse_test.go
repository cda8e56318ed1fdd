package annotation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirective_Marker(t *testing.T) {
	in, err := ParseDirective("Id")
	require.NoError(t, err)
	assert.Equal(t, "Id", in.Name)
	assert.Empty(t, in.Keys())
	assert.Equal(t, "Id", in.Describe())
}

func TestParseDirective_KeyedValues(t *testing.T) {
	in, err := ParseDirective(`Column{Name: "code", Nullable: false, Length: 16, Precision: -2}`)
	require.NoError(t, err)

	assert.Equal(t, "Column", in.Name)
	assert.Equal(t, []string{"Length", "Name", "Nullable", "Precision"}, in.Keys())
	assert.Equal(t, "code", in.Text("Name"))
	assert.False(t, in.Bool("Nullable", true))
	assert.True(t, in.Bool("Unique", true), "absent key falls back")
	assert.Equal(t, 16, in.Int("Length", 255))
	assert.Equal(t, -2, in.Int("Precision", 0))
	assert.Nil(t, in.BoolPtr("Unique"))
	require.NotNil(t, in.BoolPtr("Nullable"))
	assert.False(t, *in.BoolPtr("Nullable"))
}

func TestParseDirective_IdentifiersAndSelectors(t *testing.T) {
	in, err := ParseDirective(`ManyToOne{Fetch: FetchType.LAZY, TargetEntity: Customer}`)
	require.NoError(t, err)

	assert.Equal(t, "LAZY", in.Text("Fetch"))
	assert.Equal(t, "Customer", in.Text("TargetEntity"))
	assert.Equal(t, "fallback", in.TextOr("Missing", "fallback"))
}

func TestParseDirective_PositionalValues(t *testing.T) {
	single, err := ParseDirective(`Fetch{JOIN}`)
	require.NoError(t, err)
	assert.Equal(t, "JOIN", single.Text(ValueKey))
	assert.Equal(t, []string{"JOIN"}, single.Strings(ValueKey))

	list, err := ParseDirective(`Cascade{"save-update", "lock"}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"save-update", "lock"}, list.Strings(ValueKey))
	assert.Equal(t, "", list.Text(ValueKey), "several values are not a single string")
}

func TestParseDirective_NestedInstances(t *testing.T) {
	in, err := ParseDirective(
		`FilterDef{Name: "byStatus", DefaultCondition: "status = :status", ` +
			`Parameters: {{Name: "status", Type: "string"}, ParamDef{Name: "since", Type: "date"}}}`)
	require.NoError(t, err)

	params := in.NestedList("Parameters")
	require.Len(t, params, 2)
	assert.Equal(t, "", params[0].Name)
	assert.Equal(t, "status", params[0].Text("Name"))
	assert.Equal(t, "string", params[0].Text("Type"))
	assert.Equal(t, "ParamDef", params[1].Name)
	assert.Equal(t, "since", params[1].Text("Name"))

	assert.Equal(t,
		`FilterDef{DefaultCondition: "status = :status", Name: "byStatus", `+
			`Parameters: {{Name: "status", Type: "string"}, ParamDef{Name: "since", Type: "date"}}}`,
		in.Describe())
}

func TestParseDirective_SingleNested(t *testing.T) {
	in, err := ParseDirective(`JoinColumn{Name: "customer_code", ForeignKey: ForeignKey{Name: "fk"}}`)
	require.NoError(t, err)

	fk := in.Nested("ForeignKey")
	require.NotNil(t, fk)
	assert.Equal(t, "fk", fk.Text("Name"))
	assert.Len(t, in.NestedList("ForeignKey"), 1)
	assert.Nil(t, in.Nested("Name"))
}

func TestParseDirective_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "syntax", text: `Column{Name: }`},
		{name: "call", text: `Column("x")`},
		{name: "unnamed", text: `[]string{"x"}`},
		{name: "duplicate key", text: `Column{Name: "a", Name: "b"}`},
		{name: "mixed", text: `Column{"a", Name: "b"}`},
		{name: "float", text: `Column{Scale: 1.5}`},
		{name: "non-identifier key", text: `Column{"a": "b"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDirective(tt.text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDirective))
		})
	}
}

func TestInstance_NilSafe(t *testing.T) {
	var in *Instance

	assert.False(t, in.Has("Name"))
	assert.Equal(t, "", in.Text("Name"))
	assert.True(t, in.Bool("Optional", true))
	assert.Nil(t, in.Nested("ForeignKey"))
	assert.Nil(t, in.Keys())
	assert.Equal(t, "<nil>", in.Describe())
}
