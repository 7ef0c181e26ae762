package report

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CoerceNumber converts a loosely typed analysis value into a float64.
// Accepts native numbers, json.Number and strings with Persian or
// Arabic-Indic digits, percent signs and thousands separators.
// Returns false for anything unparsable; it never panics.
func CoerceNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return finite(f)
	case string:
		return coerceString(n)
	default:
		return 0, false
	}
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func coerceString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '۰' && r <= '۹': // Persian digits
			b.WriteRune('0' + (r - '۰'))
		case r >= '٠' && r <= '٩': // Arabic-Indic digits
			b.WriteRune('0' + (r - '٠'))
		case r == '٫': // Persian decimal separator
			b.WriteRune('.')
		case r == ',' || r == '٬' || r == '%':
			// thousands separators and percent signs are dropped
		case (r >= '0' && r <= '9') || r == '.' || r == '+' || r == '-':
			b.WriteRune(r)
		default:
			// any other character (currency marks, units, RTL controls) is dropped
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
