package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHarvestTexts(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want []string
	}{
		{"nil", nil, nil},
		{"plain string", "تمرکز بر نقاط قوت", []string{"تمرکز بر نقاط قوت"}},
		{"blank string", "   ", []string{}},
		{
			"bulleted string",
			"• اعتماد به نفس\n• انعطاف‌پذیری",
			[]string{"اعتماد به نفس", "انعطاف‌پذیری"},
		},
		{
			"mixed glyphs",
			"◦ خلاقیت ▪ پشتکار ● همدلی",
			[]string{"خلاقیت", "پشتکار", "همدلی"},
		},
		{
			"string array",
			[]interface{}{"اول", "دوم"},
			[]string{"اول", "دوم"},
		},
		{
			"object with title",
			map[string]interface{}{"title": "مدیریت زمان", "weight": 3},
			[]string{"مدیریت زمان"},
		},
		{
			"object label beats text",
			map[string]interface{}{"label": "برچسب", "text": "متن"},
			[]string{"برچسب"},
		},
		{
			"labelless object walks values",
			map[string]interface{}{"a": "یک", "b": "دو"},
			[]string{"یک", "دو"},
		},
		{
			"nested grouping",
			[]interface{}{
				map[string]interface{}{"title": "گروه اول"},
				map[string]interface{}{"items": []interface{}{"آیتم ۱", "آیتم ۲"}},
			},
			[]string{"گروه اول", "آیتم ۱", "آیتم ۲"},
		},
		{"number", 42.0, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := HarvestTexts(tc.in)
			if len(tc.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDedupeTextsTrailingWhitespaceDuplicate(t *testing.T) {
	got := DedupeTexts([]string{"نقطه قوت اول", "نقطه قوت اول "}, 0)
	assert.Equal(t, []string{"نقطه قوت اول"}, got)
}

func TestDedupeTextsCaseAndSpacing(t *testing.T) {
	got := DedupeTexts([]string{"Time  Management", "time management", "Planning"}, 0)
	assert.Equal(t, []string{"Time  Management", "Planning"}, got)
}

func TestDedupeTextsCap(t *testing.T) {
	items := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		items = append(items, string(rune('a'+i)))
	}
	got := DedupeTexts(items, 0)
	assert.Len(t, got, DefaultMaxInsights)

	got = DedupeTexts(items, 3)
	assert.Len(t, got, 3)
}
