package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTaxonomy keeps aggregation tests independent from the shipped buckets.
func testTaxonomy() Taxonomy {
	return Taxonomy{
		Categories: []Category{
			{Key: "x", Label: "X"},
			{Key: "y", Label: "Y"},
		},
		Aliases:    map[string]string{"ایکس": "X"},
		OtherKey:   "other",
		OtherLabel: "سایر",
	}
}

func testUser() UserBasicInfo {
	return UserBasicInfo{ID: 42, Name: "سارا محمدی", Email: "sara@example.com"}
}

func assignment(qid uint, order int, category string) Assignment {
	return Assignment{
		UserID:             42,
		QuestionnaireID:    qid,
		QuestionnaireTitle: "Q",
		DisplayOrder:       intPtr(order),
		Category:           strPtr(category),
	}
}

func TestParseCompletion(t *testing.T) {
	completedAt := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	row := CompletionRow{
		AssessmentID:       "as-1",
		UserID:             42,
		QuestionnaireID:    5,
		QuestionnaireTitle: "آزمون شخصیت",
		Category:           strPtr("ایکس"),
		CompletedAt:        &completedAt,
		RawAnalysis: decodeJSON(t, `{
			"score": "۸۰",
			"max_score": 100,
			"summary": "نتیجه کلی مطلوب است",
			"strengths": "• اعتماد به نفس\n• خلاقیت",
			"recommendations": ["مطالعه روزانه", "مطالعه روزانه "],
			"risks": {"title": "اضطراب در شرایط فشار"},
			"factor_scores": [{"subject": "برون‌گرایی", "score": 4, "maxScore": 5}]
		}`),
	}

	pc := ParseCompletion(row, testTaxonomy())
	assert.Equal(t, "as-1", pc.AssessmentID)
	assert.Equal(t, "X", pc.Category)
	assert.InDelta(t, 80.0, pc.NormalizedScore, 1e-9)
	assert.InDelta(t, 80.0, pc.RawScore, 1e-9)
	assert.Equal(t, 100.0, pc.MaxScore)
	require.NotNil(t, pc.Summary)
	assert.Equal(t, "نتیجه کلی مطلوب است", *pc.Summary)
	assert.Equal(t, []string{"اعتماد به نفس", "خلاقیت"}, pc.Strengths)
	assert.Equal(t, []string{"مطالعه روزانه"}, pc.Recommendations)
	assert.Equal(t, []string{"اضطراب در شرایط فشار"}, pc.Risks)
	assert.Empty(t, pc.DevelopmentPlan)
	require.Len(t, pc.FactorScores, 1)
	assert.Equal(t, "برون‌گرایی", pc.FactorScores[0].Name)
}

func TestParseCompletionNoAnalysis(t *testing.T) {
	row := CompletionRow{AssessmentID: "as-2", QuestionnaireID: 9, MaxScore: float64Ptr(20)}
	pc := ParseCompletion(row, testTaxonomy())
	assert.Equal(t, 0.0, pc.NormalizedScore)
	assert.Equal(t, 20.0, pc.MaxScore)
	assert.Equal(t, "سایر", pc.Category)
	assert.Nil(t, pc.Summary)
	assert.Empty(t, pc.Strengths)
}

func float64Ptr(f float64) *float64 { return &f }

func TestBuildReportNoData(t *testing.T) {
	assert.Nil(t, BuildReport(testUser(), nil, nil, testTaxonomy(), 0))
	assert.Nil(t, BuildReport(testUser(), []Assignment{}, []ParsedCompletion{}, testTaxonomy(), 0))
}

func TestBuildReportSingleCompleted(t *testing.T) {
	completedAt := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	assignments := []Assignment{assignment(1, 0, "X")}
	completions := []ParsedCompletion{{
		AssessmentID:    "as-1",
		QuestionnaireID: 1,
		Category:        "X",
		CompletedAt:     &completedAt,
		NormalizedScore: 50,
		RawScore:        50,
		MaxScore:        100,
	}}

	r := BuildReport(testUser(), assignments, completions, testTaxonomy(), 0)
	require.NotNil(t, r)

	assert.Equal(t, 1, r.AssignedCount)
	assert.Equal(t, 1, r.CompletedCount)
	assert.Equal(t, 1.0, r.CompletionRate)
	assert.True(t, r.IsReady)
	assert.Empty(t, r.PendingAssignments)
	require.NotNil(t, r.LastCompletedAt)
	assert.True(t, r.LastCompletedAt.Equal(completedAt))
	assert.InDelta(t, 50.0, r.OverallNormalized, 1e-9)

	var x *CategorySummary
	for i := range r.Categories {
		if r.Categories[i].Key == "x" {
			x = &r.Categories[i]
		}
	}
	require.NotNil(t, x)
	assert.InDelta(t, 50.0, x.NormalizedScore, 1e-9)
	assert.Equal(t, 1, x.CompletedCount)
	assert.Equal(t, 1, x.TotalAssignments)
	require.Len(t, x.Contributions, 1)
	assert.Equal(t, "as-1", x.Contributions[0].AssessmentID)
}

func TestBuildReportPartialPlan(t *testing.T) {
	completedAt := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	assignments := []Assignment{
		assignment(1, 0, "X"),
		assignment(2, 1, "Y"),
	}
	completions := []ParsedCompletion{{
		AssessmentID:    "as-1",
		QuestionnaireID: 1,
		Category:        "X",
		CompletedAt:     &completedAt,
		NormalizedScore: 80,
		RawScore:        80,
		MaxScore:        100,
	}}

	r := BuildReport(testUser(), assignments, completions, testTaxonomy(), 0)
	require.NotNil(t, r)

	assert.False(t, r.IsReady)
	assert.Equal(t, 0.5, r.CompletionRate)
	require.Len(t, r.PendingAssignments, 1)
	assert.Equal(t, uint(2), r.PendingAssignments[0].QuestionnaireID)

	// pending assignments and completed questionnaires partition the plan
	assert.Equal(t, r.AssignedCount, len(r.PendingAssignments)+r.CompletedCount)

	for _, c := range r.Categories {
		assert.LessOrEqual(t, c.CompletedCount, c.TotalAssignments, c.Label)
	}
}

func TestBuildReportChartShapes(t *testing.T) {
	tax := testTaxonomy()
	assignments := []Assignment{
		assignment(1, 0, "X"),
		assignment(2, 1, "X"),
		assignment(3, 2, "Y"),
	}
	ts := time.Now()
	completions := []ParsedCompletion{
		{AssessmentID: "a1", QuestionnaireID: 1, CompletedAt: &ts, NormalizedScore: 60},
		{AssessmentID: "a2", QuestionnaireID: 3, CompletedAt: &ts, NormalizedScore: 90},
	}

	r := BuildReport(testUser(), assignments, completions, tax, 0)
	require.NotNil(t, r)

	// fixed buckets plus catch-all, same cardinality across all projections
	require.Len(t, r.Categories, 3)
	assert.Len(t, r.Radar, 3)
	assert.Len(t, r.PowerWheel, 3)
	assert.Equal(t, "سایر", r.Categories[2].Label)

	byLabel := map[string]PowerWheelSegment{}
	for _, s := range r.PowerWheel {
		byLabel[s.Label] = s
	}
	assert.Equal(t, SegmentPartial, byLabel["X"].Status)
	assert.Equal(t, SegmentCompleted, byLabel["Y"].Status)
	// no plan entries at all means nothing can be pending
	assert.Equal(t, SegmentCompleted, byLabel["سایر"].Status)

	for _, p := range r.Radar {
		assert.Equal(t, 100.0, p.TargetScore)
	}
}

func TestBuildReportExcludesOutOfPlanCompletions(t *testing.T) {
	ts := time.Now()
	assignments := []Assignment{assignment(1, 0, "X")}
	completions := []ParsedCompletion{
		{AssessmentID: "a1", QuestionnaireID: 1, CompletedAt: &ts, NormalizedScore: 40},
		{AssessmentID: "stray", QuestionnaireID: 99, CompletedAt: &ts, NormalizedScore: 100},
	}

	r := BuildReport(testUser(), assignments, completions, testTaxonomy(), 0)
	require.NotNil(t, r)
	assert.Equal(t, 1, r.CompletedCount)
	require.Len(t, r.Assessments, 1)
	assert.Equal(t, "a1", r.Assessments[0].AssessmentID)
	assert.InDelta(t, 40.0, r.OverallNormalized, 1e-9)
}

func TestBuildReportSynthesizedFallback(t *testing.T) {
	ts := time.Now()
	completions := []ParsedCompletion{
		{AssessmentID: "a1", QuestionnaireID: 4, QuestionnaireTitle: "تست", Category: "X", CompletedAt: &ts, NormalizedScore: 70, DisplayOrder: intPtr(1)},
		{AssessmentID: "a2", QuestionnaireID: 4, QuestionnaireTitle: "تست", Category: "X", NormalizedScore: 10, DisplayOrder: intPtr(3)},
	}

	r := BuildReport(testUser(), nil, completions, testTaxonomy(), 0)
	require.NotNil(t, r)
	assert.Equal(t, 1, r.AssignedCount)
	assert.Equal(t, 1, r.CompletedCount)
	assert.True(t, r.IsReady)
	assert.InDelta(t, 70.0, r.OverallNormalized, 1e-9)
}

func TestBuildReportMergesInsights(t *testing.T) {
	ts := time.Now()
	assignments := []Assignment{assignment(1, 0, "X"), assignment(2, 1, "Y")}
	completions := []ParsedCompletion{
		{
			AssessmentID: "a1", QuestionnaireID: 1, CompletedAt: &ts,
			Strengths:       []string{"خلاقیت", "پشتکار"},
			Recommendations: []string{"مطالعه روزانه"},
		},
		{
			AssessmentID: "a2", QuestionnaireID: 2, CompletedAt: &ts,
			Strengths:       []string{"پشتکار ", "همدلی"},
			Recommendations: []string{"ورزش منظم"},
		},
	}

	r := BuildReport(testUser(), assignments, completions, testTaxonomy(), 0)
	require.NotNil(t, r)
	assert.Equal(t, []string{"خلاقیت", "پشتکار", "همدلی"}, r.Strengths)
	assert.Equal(t, []string{"مطالعه روزانه", "ورزش منظم"}, r.Recommendations)
	assert.Empty(t, r.Risks)
}

func TestBuildReportInsightLimitAboveDefault(t *testing.T) {
	ts := time.Now()
	assignments := []Assignment{
		assignment(1, 0, "X"),
		assignment(2, 1, "X"),
		assignment(3, 2, "Y"),
	}
	var completions []ParsedCompletion
	for i, qid := range []uint{1, 2, 3} {
		var strengths []string
		for j := 0; j < 6; j++ {
			strengths = append(strengths, fmt.Sprintf("نقطه قوت %d-%d", i, j))
		}
		completions = append(completions, ParsedCompletion{
			AssessmentID:    fmt.Sprintf("a%d", i),
			QuestionnaireID: qid,
			CompletedAt:     &ts,
			Strengths:       strengths,
		})
	}

	// a configured limit above the default must widen the merged list
	r := BuildReport(testUser(), assignments, completions, testTaxonomy(), 18)
	require.NotNil(t, r)
	assert.Len(t, r.Strengths, 18)

	// unset limit keeps the default ceiling
	r = BuildReport(testUser(), assignments, completions, testTaxonomy(), 0)
	require.NotNil(t, r)
	assert.Len(t, r.Strengths, DefaultMaxInsights)
}

func TestBuildReportAssessmentsFollowPlanOrder(t *testing.T) {
	ts := time.Now()
	assignments := []Assignment{
		assignment(2, 5, "X"),
		assignment(1, 1, "X"),
	}
	completions := []ParsedCompletion{
		{AssessmentID: "second", QuestionnaireID: 2, CompletedAt: &ts},
		{AssessmentID: "first", QuestionnaireID: 1, CompletedAt: &ts},
	}

	r := BuildReport(testUser(), assignments, completions, testTaxonomy(), 0)
	require.NotNil(t, r)
	require.Len(t, r.Assessments, 2)
	assert.Equal(t, "first", r.Assessments[0].AssessmentID)
	assert.Equal(t, "second", r.Assessments[1].AssessmentID)
}
