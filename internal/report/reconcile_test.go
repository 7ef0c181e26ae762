package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(i int) *int              { return &i }

func TestDedupeCompletionsKeepsLatest(t *testing.T) {
	older := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)

	completions := []ParsedCompletion{
		{AssessmentID: "a1", QuestionnaireID: 1, CompletedAt: timePtr(older), NormalizedScore: 40},
		{AssessmentID: "a2", QuestionnaireID: 2, CompletedAt: timePtr(older)},
		{AssessmentID: "a3", QuestionnaireID: 1, CompletedAt: timePtr(newer), NormalizedScore: 70},
	}

	out := DedupeCompletions(completions)
	require.Len(t, out, 2)
	// first-encounter order is preserved, the retake replaced in place
	assert.Equal(t, "a3", out[0].AssessmentID)
	assert.Equal(t, 70.0, out[0].NormalizedScore)
	assert.Equal(t, "a2", out[1].AssessmentID)
}

func TestDedupeCompletionsNilTimestamps(t *testing.T) {
	ts := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	t.Run("all nil keeps first", func(t *testing.T) {
		out := DedupeCompletions([]ParsedCompletion{
			{AssessmentID: "a1", QuestionnaireID: 7},
			{AssessmentID: "a2", QuestionnaireID: 7},
		})
		require.Len(t, out, 1)
		assert.Equal(t, "a1", out[0].AssessmentID)
	})

	t.Run("timestamped beats nil", func(t *testing.T) {
		out := DedupeCompletions([]ParsedCompletion{
			{AssessmentID: "a1", QuestionnaireID: 7},
			{AssessmentID: "a2", QuestionnaireID: 7, CompletedAt: timePtr(ts)},
		})
		require.Len(t, out, 1)
		assert.Equal(t, "a2", out[0].AssessmentID)
	})

	t.Run("nil never replaces timestamped", func(t *testing.T) {
		out := DedupeCompletions([]ParsedCompletion{
			{AssessmentID: "a1", QuestionnaireID: 7, CompletedAt: timePtr(ts)},
			{AssessmentID: "a2", QuestionnaireID: 7},
		})
		require.Len(t, out, 1)
		assert.Equal(t, "a1", out[0].AssessmentID)
	})
}

func TestSynthesizeAssignmentsOnePerQuestionnaire(t *testing.T) {
	completions := []ParsedCompletion{
		{AssessmentID: "a1", QuestionnaireID: 3, QuestionnaireTitle: "تست شخصیت", DisplayOrder: intPtr(2), Category: "شخصیت"},
		{AssessmentID: "a2", QuestionnaireID: 3, QuestionnaireTitle: "تست شخصیت", DisplayOrder: intPtr(5)},
		{AssessmentID: "a3", QuestionnaireID: 8, QuestionnaireTitle: "تست هوش", Category: "هوش و استعداد", MaxScore: 40},
	}

	out := SynthesizeAssignments(42, completions)
	require.Len(t, out, 2)

	// nil display order sorts as zero, so questionnaire 8 comes first
	assert.Equal(t, uint(8), out[0].QuestionnaireID)
	require.NotNil(t, out[0].DisplayOrder)
	assert.Equal(t, 0, *out[0].DisplayOrder)
	require.NotNil(t, out[0].MaxScore)
	assert.Equal(t, 40.0, *out[0].MaxScore)

	assert.Equal(t, uint(3), out[1].QuestionnaireID)
	require.NotNil(t, out[1].DisplayOrder)
	assert.Equal(t, 2, *out[1].DisplayOrder)
	require.NotNil(t, out[1].Category)
	assert.Equal(t, "شخصیت", *out[1].Category)

	for _, a := range out {
		assert.Equal(t, uint(42), a.UserID)
	}
}

func TestSynthesizeAssignmentsEmpty(t *testing.T) {
	assert.Empty(t, SynthesizeAssignments(1, nil))
}
