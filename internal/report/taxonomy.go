package report

import "strings"

// Category is one canonical competency bucket.
type Category struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Taxonomy is the injected category configuration: an ordered list of known
// buckets, an alias table collapsing synonymous labels, and the catch-all
// bucket appended after everything else. The taxonomy is soft: labels outside
// the known list still become buckets at aggregation time.
type Taxonomy struct {
	Categories []Category        `json:"categories"`
	Aliases    map[string]string `json:"aliases"`
	OtherKey   string            `json:"otherKey"`
	OtherLabel string            `json:"otherLabel"`
}

// DefaultTaxonomy returns the platform's built-in competency buckets.
// Deployments override it through the report section of the config file.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		Categories: []Category{
			{Key: "personality", Label: "شخصیت"},
			{Key: "intelligence", Label: "هوش و استعداد"},
			{Key: "interests", Label: "رغبت و علاقه"},
			{Key: "skills", Label: "مهارت‌ها"},
			{Key: "values", Label: "ارزش‌ها"},
		},
		Aliases: map[string]string{
			"تیپ شخصیتی":  "شخصیت",
			"شخصیت شناسی": "شخصیت",
			"هوش":         "هوش و استعداد",
			"استعداد":     "هوش و استعداد",
			"استعدادیابی": "هوش و استعداد",
			"علایق":       "رغبت و علاقه",
			"رغبت سنجی":   "رغبت و علاقه",
			"مهارت":       "مهارت‌ها",
			"ارزش":        "ارزش‌ها",
		},
		OtherKey:   "other",
		OtherLabel: "سایر ارزیابی‌ها",
	}
}

func (t Taxonomy) otherLabel() string {
	if t.OtherLabel != "" {
		return t.OtherLabel
	}
	return "other"
}

func (t Taxonomy) otherKey() string {
	if t.OtherKey != "" {
		return t.OtherKey
	}
	return "other"
}

// Resolve maps a free-text category label onto its canonical form. Empty or
// missing labels land in the catch-all bucket; labels outside the alias table
// pass through unchanged.
func (t Taxonomy) Resolve(raw *string) string {
	if raw == nil {
		return t.otherLabel()
	}
	label := strings.TrimSpace(*raw)
	if label == "" {
		return t.otherLabel()
	}
	if canonical, ok := t.Aliases[label]; ok && canonical != "" {
		return canonical
	}
	return label
}

// KeyFor returns the stable key of a resolved label: the configured key for
// known buckets, the label itself for soft pass-through buckets.
func (t Taxonomy) KeyFor(label string) string {
	if label == t.otherLabel() {
		return t.otherKey()
	}
	for _, c := range t.Categories {
		if c.Label == label {
			return c.Key
		}
	}
	return label
}
