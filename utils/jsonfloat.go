package utils

import (
	"encoding/json"
	"math"
	"strconv"
)

// JSONFloat is a float64 that survives JSON encoding when non-finite: standard
// JSON forbids the Infinity/NaN literals, so positive and negative infinity are
// rendered as the strings "Infinity"/"-Infinity" and NaN as null. This is the
// wire contract the frontend expects for monthsOfCoverage.
type JSONFloat float64

// MarshalJSON implements json.Marshaler.
func (f JSONFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsInf(v, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Infinity"`), nil
	case math.IsNaN(v):
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler, accepting plain numbers and the
// quoted sentinel forms produced by MarshalJSON.
func (f *JSONFloat) UnmarshalJSON(data []byte) error {
	s := string(data)
	switch s {
	case "null":
		*f = JSONFloat(math.NaN())
		return nil
	case `"Infinity"`:
		*f = JSONFloat(math.Inf(1))
		return nil
	case `"-Infinity"`:
		*f = JSONFloat(math.Inf(-1))
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = JSONFloat(v)
	return nil
}
