package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		t     ValueType
		value any
	}{
		{"bool true", TypeBoolean, true},
		{"bool false", TypeBoolean, false},
		{"number", TypeNumber, 3.14},
		{"negative number", TypeNumber, -42.0},
		{"zero", TypeNumber, 0.0},
		{"string", TypeString, "hello world"},
		{"empty string", TypeString, ""},
		{"json object", TypeJSON, map[string]any{"model": "qwen2.5:14b", "retries": 3.0}},
		{"json array", TypeJSON, []any{"a", "b", 1.0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := StringifyValue(tc.value, tc.t)
			require.NoError(t, err)

			got, err := ParseValue(raw, tc.t)
			require.NoError(t, err)
			assert.Equal(t, tc.value, got)
		})
	}
}

func TestParseValueRejectsBadInput(t *testing.T) {
	_, err := ParseValue("not-a-number", TypeNumber)
	assert.Error(t, err)

	_, err = ParseValue("maybe", TypeBoolean)
	assert.Error(t, err)

	_, err = ParseValue("{broken", TypeJSON)
	assert.Error(t, err)

	_, err = ParseValue("x", ValueType("uuid"))
	assert.Error(t, err)
}

func TestStringifyValueRejectsWrongType(t *testing.T) {
	_, err := StringifyValue("true", TypeBoolean)
	assert.Error(t, err)

	_, err = StringifyValue(42, TypeNumber) // int, not float64
	assert.Error(t, err)

	_, err = StringifyValue(7, TypeString)
	assert.Error(t, err)
}
