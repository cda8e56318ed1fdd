package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", FirstNonEmpty("", "  ", "b", "c"))
	assert.Equal(t, "", FirstNonEmpty())
	assert.Equal(t, "", FirstNonEmpty("", " "))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"save-update", "lock", "delete"}, SplitList(" save-update,lock\tdelete ,"))
	assert.Empty(t, SplitList(" , "))
}

func TestLowerFirst(t *testing.T) {
	tests := map[string]string{
		"Status":     "status",
		"ID":         "id",
		"CustomerID": "customerID",
		"URLPath":    "urlPath",
		"status":     "status",
		"":           "",
		"X":          "x",
	}

	for in, expected := range tests {
		assert.Equal(t, expected, LowerFirst(in), in)
	}
}

func TestFirstNonNil(t *testing.T) {
	a, b := 1, 2
	assert.Equal(t, &a, FirstNonNil(nil, &a, &b))
	assert.Nil(t, FirstNonNil[int](nil, nil))
}
