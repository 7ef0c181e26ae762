package report

import "sort"

// ScoreResult is the canonical (raw, normalized 0-100, max) triple for one
// analysis blob.
type ScoreResult struct {
	Raw        float64 `json:"rawScore"`
	Normalized float64 `json:"normalizedScore"`
	Max        float64 `json:"maxScore"`
}

// The upstream prompt contract usually yields one of these key spellings, but
// the LLM is not reliable about it, so every lookup runs through a priority
// list and treats misses as absent.
var (
	scoreKeys = []string{
		"score", "overall_score", "overallScore",
		"total_score", "totalScore",
		"readiness_index", "readinessIndex",
		"readiness_score", "readinessScore",
	}
	maxScoreKeys = []string{
		"max_score", "maxScore", "maximum", "full_mark", "fullMark",
	}
	factorKeys = []string{"factor_scores", "factorScores", "factors"}

	factorNameKeys  = []string{"subject", "factor", "name", "label"}
	factorValueKeys = []string{"score", "value", "actual", "current", "raw"}
	factorMaxKeys   = []string{"maxScore", "max_score", "fullMark", "full_mark"}
)

// likertDefaultMax is assumed for bare numeric factor entries; the upstream
// questionnaires default to 1-5 Likert items.
const likertDefaultMax = 5

func asMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

func lookupValue(m map[string]interface{}, keys []string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func lookupNumber(m map[string]interface{}, keys []string) (float64, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if n, ok := CoerceNumber(v); ok {
				return n, true
			}
		}
	}
	return 0, false
}

// NormalizeScore resolves one analysis blob into a ScoreResult using a
// three-tier strategy chain: explicit score, factor aggregation, zero.
// A malformed or empty blob yields the zero tier, never an error.
func NormalizeScore(analysis interface{}, fallbackMax float64) ScoreResult {
	m := asMap(analysis)

	if m != nil {
		if raw, ok := lookupNumber(m, scoreKeys); ok {
			max, ok := lookupNumber(m, maxScoreKeys)
			if !ok || max <= 0 {
				max = fallbackMax
			}
			if max <= 0 {
				max = 100
			}
			return ScoreResult{
				Raw:        raw,
				Normalized: clamp(raw/max*100, 0, 100),
				Max:        max,
			}
		}

		if factors := ExtractFactorScores(analysis); len(factors) > 0 {
			var sum float64
			var n int
			for _, f := range factors {
				if f.MaxScore <= 0 {
					continue
				}
				sum += clamp(f.Score/f.MaxScore*100, 0, 100)
				n++
			}
			if n > 0 {
				avg := clamp(sum/float64(n), 0, 100)
				return ScoreResult{Raw: avg, Normalized: avg, Max: 100}
			}
		}
	}

	if fallbackMax <= 0 {
		fallbackMax = 100
	}
	return ScoreResult{Raw: 0, Normalized: 0, Max: fallbackMax}
}

// ExtractFactorScores pulls the per-dimension breakdown out of an analysis
// blob. It tolerates both the array-of-objects shape and the map shape whose
// entries are nested objects or bare Likert numbers.
func ExtractFactorScores(analysis interface{}) []FactorScore {
	m := asMap(analysis)
	if m == nil {
		return nil
	}
	raw, ok := lookupValue(m, factorKeys)
	if !ok {
		return nil
	}

	switch t := raw.(type) {
	case []interface{}:
		out := make([]FactorScore, 0, len(t))
		for _, item := range t {
			if f, ok := factorFromObject(asMap(item), ""); ok {
				out = append(out, f)
			}
		}
		return out
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]FactorScore, 0, len(t))
		for _, k := range keys {
			entry := t[k]
			if nested := asMap(entry); nested != nil {
				if f, ok := factorFromObject(nested, k); ok {
					out = append(out, f)
				}
				continue
			}
			if score, ok := CoerceNumber(entry); ok {
				out = append(out, FactorScore{Name: k, Score: score, MaxScore: likertDefaultMax})
			}
		}
		return out
	default:
		return nil
	}
}

func factorFromObject(m map[string]interface{}, fallbackName string) (FactorScore, bool) {
	if m == nil {
		return FactorScore{}, false
	}
	score, ok := lookupNumber(m, factorValueKeys)
	if !ok {
		return FactorScore{}, false
	}
	name := fallbackName
	for _, k := range factorNameKeys {
		if v, present := m[k]; present {
			if s, isStr := v.(string); isStr && s != "" {
				name = s
				break
			}
		}
	}
	max, ok := lookupNumber(m, factorMaxKeys)
	if !ok {
		max = 0
	}
	return FactorScore{Name: name, Score: score, MaxScore: max}, true
}
