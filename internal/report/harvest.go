package report

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultMaxInsights caps each deduplicated insight list.
const DefaultMaxInsights = 12

// labelKeys are tried in order when harvesting an object; when one is
// present only that field is walked.
var labelKeys = []string{"title", "label", "text"}

func isBullet(r rune) bool {
	switch r {
	case '\n', '\r', '•', '▪', '●', '◦', '-':
		return true
	}
	return false
}

// HarvestTexts recursively flattens an arbitrary decoded JSON value into a
// list of text fragments. Strings are split on line breaks and bullet glyphs,
// arrays are concatenated, and objects either follow their title/label/text
// field or walk every value.
func HarvestTexts(v interface{}) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return splitFragments(t)
	case []interface{}:
		var out []string
		for _, item := range t {
			out = append(out, HarvestTexts(item)...)
		}
		return out
	case map[string]interface{}:
		for _, key := range labelKeys {
			if inner, ok := t[key]; ok {
				return HarvestTexts(inner)
			}
		}
		// no label field; walk every value. Keys are sorted so repeated
		// builds over the same blob stay deterministic.
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var out []string
		for _, k := range keys {
			out = append(out, HarvestTexts(t[k])...)
		}
		return out
	default:
		return nil
	}
}

func splitFragments(s string) []string {
	parts := strings.FieldsFunc(s, isBullet)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DedupeTexts keeps the first occurrence of each fragment, comparing on a
// whitespace-collapsed, case-folded, NFKC-normalized key while preserving the
// original casing in the output. max <= 0 falls back to DefaultMaxInsights.
func DedupeTexts(items []string, max int) []string {
	if max <= 0 {
		max = DefaultMaxInsights
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(norm.NFKC.String(strings.Join(strings.Fields(item), " ")))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
		if len(out) >= max {
			break
		}
	}
	return out
}
