package relational

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValues(t *testing.T) {
	values := []Value{
		&Column{TableName: "orders", Name: "customer_id"},
		&DerivedValue{TableName: "orders", Expression: "upper(code)"},
		&Column{Name: "region"},
	}

	assert.Equal(t, []string{"customer_id", "region"}, ColumnNames(values))
	assert.Equal(t, ValueKindDerived, values[1].Kind())
	assert.Equal(t, "orders", values[1].Table())
	assert.Equal(t, "orders.customer_id", values[0].(*Column).String())
	assert.Equal(t, "region", values[2].(*Column).String())
	assert.Equal(t, "(upper(code))", values[1].(*DerivedValue).String())
	assert.Equal(t, "column", ValueKindColumn.String())
	assert.Equal(t, "derived", ValueKindDerived.String())
}
