package main

import (
	"math"
	"testing"

	"zentroq-backend/utils"

	"github.com/stretchr/testify/assert"
)

func TestSafeFloat(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		def      float64
		expected float64
	}{
		{"nil returns default", nil, 0, 0},
		{"nil returns custom default", nil, 7.5, 7.5},
		{"float64 passes through", 3.14, 0, 3.14},
		{"int converts", 42, 0, 42},
		{"int64 converts", int64(42), 0, 42},
		{"numeric string parses", "3.5", 0, 3.5},
		{"zero string parses to zero not default", "0", 7, 0},
		{"empty string returns default", "", 5, 5},
		{"whitespace string returns default", "   ", 5, 5},
		{"garbage string returns default", "abc", -1, -1},
		{"infinity sentinel", "infinity", 0, 999.0},
		{"inf sentinel", "Inf", 0, 999.0},
		{"nan becomes zero", "NaN", 5, 0},
		{"nil float pointer returns default", (*float64)(nil), 2, 2},
		{"float pointer dereferences", floatPtr(1.5), 0, 1.5},
		{"byte slice parses", []byte("2.5"), 0, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, utils.SafeFloat(tt.value, tt.def))
		})
	}
}

func TestSafeInt(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		def      int
		expected int
	}{
		{"nil returns default", nil, 5, 5},
		{"int passes through", 3, 0, 3},
		{"int64 converts", int64(9), 0, 9},
		{"float truncates", 3.9, 0, 3},
		{"numeric string parses", "3", 0, 3},
		{"zero string parses to zero not default", "0", 7, 0},
		{"empty string returns default", "", 5, 5},
		{"garbage string returns default", "abc", -1, -1},
		{"infinity sentinel", "infinity", 0, 999},
		{"nan becomes zero", "nan", 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, utils.SafeInt(tt.value, tt.def))
		})
	}
}

func TestJSONFloatMarshal(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"finite number", 2.5, "2.5"},
		{"positive infinity", math.Inf(1), `"Infinity"`},
		{"negative infinity", math.Inf(-1), `"-Infinity"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := utils.JSONFloat(tt.value).MarshalJSON()
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))
		})
	}
}

func TestJSONFloatMarshalNaN(t *testing.T) {
	data, err := utils.JSONFloat(math.NaN()).MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestJSONFloatUnmarshal(t *testing.T) {
	var f utils.JSONFloat

	assert.NoError(t, f.UnmarshalJSON([]byte(`"Infinity"`)))
	assert.True(t, math.IsInf(float64(f), 1))

	assert.NoError(t, f.UnmarshalJSON([]byte("4.25")))
	assert.Equal(t, 4.25, float64(f))

	assert.Error(t, f.UnmarshalJSON([]byte(`"bogus"`)))
}
