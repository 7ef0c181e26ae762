package report

import (
	"sort"
	"strings"
	"time"
)

var (
	summaryKeys         = []string{"summary", "overview", "conclusion"}
	strengthKeys        = []string{"strengths", "strength_points", "strongPoints", "strong_points"}
	recommendationKeys  = []string{"recommendations", "suggestions", "advice"}
	developmentPlanKeys = []string{"development_plan", "developmentPlan", "growth_plan", "action_plan"}
	riskKeys            = []string{"risks", "risk_factors", "riskFactors", "warnings"}
)

// ParseCompletion turns one fetched completion row into its canonical form by
// running the coercer, harvester, normalizer and category resolver over the
// raw analysis blob. It is a pure function and never fails: unusable input
// degrades to a zero score with empty insight lists.
func ParseCompletion(row CompletionRow, tax Taxonomy) ParsedCompletion {
	fallbackMax := 0.0
	if row.MaxScore != nil {
		fallbackMax = *row.MaxScore
	}
	score := NormalizeScore(row.RawAnalysis, fallbackMax)

	return ParsedCompletion{
		AssessmentID:       row.AssessmentID,
		QuestionnaireID:    row.QuestionnaireID,
		QuestionnaireTitle: row.QuestionnaireTitle,
		DisplayOrder:       row.QuestionnaireDisplayOrder,
		Category:           tax.Resolve(row.Category),
		CompletedAt:        row.CompletedAt,
		NormalizedScore:    score.Normalized,
		RawScore:           score.Raw,
		MaxScore:           score.Max,
		Summary:            extractSummary(row.RawAnalysis),
		Strengths:          extractInsights(row.RawAnalysis, strengthKeys),
		Recommendations:    extractInsights(row.RawAnalysis, recommendationKeys),
		DevelopmentPlan:    extractInsights(row.RawAnalysis, developmentPlanKeys),
		Risks:              extractInsights(row.RawAnalysis, riskKeys),
		FactorScores:       ExtractFactorScores(row.RawAnalysis),
	}
}

func extractSummary(analysis interface{}) *string {
	m := asMap(analysis)
	if m == nil {
		return nil
	}
	for _, k := range summaryKeys {
		if v, ok := m[k]; ok {
			if s, isStr := v.(string); isStr {
				if s = strings.TrimSpace(s); s != "" {
					return &s
				}
			}
		}
	}
	return nil
}

func extractInsights(analysis interface{}, keys []string) []string {
	m := asMap(analysis)
	if m == nil {
		return []string{}
	}
	v, ok := lookupValue(m, keys)
	if !ok {
		return []string{}
	}
	return DedupeTexts(HarvestTexts(v), DefaultMaxInsights)
}

// BuildReport reconciles a user's plan against their completions and
// assembles the final aggregated report. It returns nil when there is
// nothing to report on, i.e. no explicit assignments and no completions to
// synthesize a plan from; callers translate that into a not-found outcome.
// maxInsights caps each merged insight list; zero or negative falls back to
// DefaultMaxInsights.
func BuildReport(user UserBasicInfo, assignments []Assignment, completions []ParsedCompletion, tax Taxonomy, maxInsights int) *AggregatedFinalReport {
	deduped := DedupeCompletions(completions)

	if len(assignments) == 0 {
		assignments = SynthesizeAssignments(user.ID, deduped)
	}
	if len(assignments) == 0 {
		return nil
	}

	planned := make(map[uint]Assignment, len(assignments))
	for _, a := range assignments {
		planned[a.QuestionnaireID] = a
	}

	included := make([]ParsedCompletion, 0, len(deduped))
	for _, c := range deduped {
		if _, ok := planned[c.QuestionnaireID]; ok {
			included = append(included, c)
		}
	}
	sort.SliceStable(included, func(i, j int) bool {
		oi := planOrder(planned[included[i].QuestionnaireID])
		oj := planOrder(planned[included[j].QuestionnaireID])
		if oi != oj {
			return oi < oj
		}
		return included[i].QuestionnaireID < included[j].QuestionnaireID
	})

	completedSet := make(map[uint]struct{}, len(included))
	for _, c := range included {
		completedSet[c.QuestionnaireID] = struct{}{}
	}

	pending := make([]Assignment, 0)
	for _, a := range assignments {
		if _, done := completedSet[a.QuestionnaireID]; !done {
			pending = append(pending, a)
		}
	}

	assignedCount := len(assignments)
	completedCount := len(included)
	completionRate := 0.0
	if assignedCount > 0 {
		completionRate = float64(completedCount) / float64(assignedCount)
	}

	var lastCompletedAt = latestCompletion(included)

	var sumNormalized, sumRaw float64
	for _, c := range included {
		sumNormalized += c.NormalizedScore
		sumRaw += c.RawScore
	}
	overallNormalized := 0.0
	averageScore := 0.0
	if completedCount > 0 {
		overallNormalized = clamp(sumNormalized/float64(completedCount), 0, 100)
		averageScore = sumRaw / float64(completedCount)
	}

	categories, radar, wheel := AggregateCategories(tax, assignments, included)

	return &AggregatedFinalReport{
		User:               user,
		AssignedCount:      assignedCount,
		CompletedCount:     completedCount,
		CompletionRate:     completionRate,
		IsReady:            assignedCount > 0 && completedCount >= assignedCount,
		LastCompletedAt:    lastCompletedAt,
		OverallNormalized:  overallNormalized,
		AverageScore:       averageScore,
		Categories:         categories,
		Radar:              radar,
		PowerWheel:         wheel,
		Assessments:        included,
		PendingAssignments: pending,
		Strengths:          mergeInsights(included, maxInsights, func(c ParsedCompletion) []string { return c.Strengths }),
		Recommendations:    mergeInsights(included, maxInsights, func(c ParsedCompletion) []string { return c.Recommendations }),
		DevelopmentPlan:    mergeInsights(included, maxInsights, func(c ParsedCompletion) []string { return c.DevelopmentPlan }),
		Risks:              mergeInsights(included, maxInsights, func(c ParsedCompletion) []string { return c.Risks }),
	}
}

func planOrder(a Assignment) int {
	return orderOrZero(a.DisplayOrder)
}

func latestCompletion(completions []ParsedCompletion) *time.Time {
	var latest *time.Time
	for _, c := range completions {
		if c.CompletedAt == nil {
			continue
		}
		if latest == nil || c.CompletedAt.After(*latest) {
			t := *c.CompletedAt
			latest = &t
		}
	}
	return latest
}

func mergeInsights(completions []ParsedCompletion, max int, pick func(ParsedCompletion) []string) []string {
	var all []string
	for _, c := range completions {
		all = append(all, pick(c)...)
	}
	return DedupeTexts(all, max)
}
