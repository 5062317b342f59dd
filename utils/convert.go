package utils

import (
	"strconv"
	"strings"
)

// SafeFloat coerces a raw value of unknown shape into a float64. It is the
// defensive boundary between stored data and arithmetic: nil, empty strings and
// unparseable values collapse to the default, the textual "infinity"/"inf"
// sentinel becomes 999.0 (kept finite so it stays JSON-serializable) and "nan"
// becomes 0. It never returns an error.
func SafeFloat(value interface{}, def float64) float64 {
	switch v := value.(type) {
	case nil:
		return def
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint64:
		return float64(v)
	case *float64:
		if v == nil {
			return def
		}
		return *v
	case *string:
		if v == nil {
			return def
		}
		return parseFloat(*v, def)
	case []byte:
		return parseFloat(string(v), def)
	case string:
		return parseFloat(v, def)
	default:
		return def
	}
}

// SafeInt coerces a raw value into an int with the same rules as SafeFloat.
func SafeInt(value interface{}, def int) int {
	switch v := value.(type) {
	case nil:
		return def
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	case *float64:
		if v == nil {
			return def
		}
		return int(*v)
	case *string:
		if v == nil {
			return def
		}
		return parseInt(*v, def)
	case []byte:
		return parseInt(string(v), def)
	case string:
		return parseInt(v, def)
	default:
		return def
	}
}

func parseFloat(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	switch strings.ToLower(s) {
	case "infinity", "inf":
		return 999.0
	case "nan":
		return 0.0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	switch strings.ToLower(s) {
	case "infinity", "inf":
		return 999
	case "nan":
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
