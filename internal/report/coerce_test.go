package report

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		name  string
		in    interface{}
		want  float64
		valid bool
	}{
		{"float", 82.5, 82.5, true},
		{"int", 17, 17, true},
		{"json number", json.Number("64.25"), 64.25, true},
		{"plain string", "73", 73, true},
		{"decimal string", " 73.5 ", 73.5, true},
		{"persian digits", "۸۵", 85, true},
		{"persian decimal", "۷۲٫۵", 72.5, true},
		{"arabic indic digits", "٤٢", 42, true},
		{"percent sign", "85%", 85, true},
		{"thousands separator", "1,250", 1250, true},
		{"persian thousands separator", "۱٬۲۵۰", 1250, true},
		{"negative", "-12", -12, true},
		{"unit suffix", "85 امتیاز", 85, true},
		{"nan", math.NaN(), 0, false},
		{"infinity", math.Inf(1), 0, false},
		{"empty string", "", 0, false},
		{"blank string", "   ", 0, false},
		{"letters only", "نامشخص", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
		{"object", map[string]interface{}{"a": 1}, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := CoerceNumber(tc.in)
			assert.Equal(t, tc.valid, ok)
			if tc.valid {
				assert.InDelta(t, tc.want, got, 1e-9)
			}
		})
	}
}

func TestCoerceNumberMalformedNumericString(t *testing.T) {
	// stripping foreign characters can leave an unparsable skeleton like "1.2.3"
	_, ok := CoerceNumber("1.2.3")
	assert.False(t, ok)
}
