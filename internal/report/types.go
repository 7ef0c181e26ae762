package report

import "time"

// UserBasicInfo is the slice of the user record the report embeds.
type UserBasicInfo struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Assignment is one planned questionnaire in a user's assessment path.
// It is produced by the assignment-planning side and read-only here.
type Assignment struct {
	UserID             uint     `json:"userId"`
	QuestionnaireID    uint     `json:"questionnaireId"`
	QuestionnaireTitle string   `json:"questionnaireTitle"`
	DisplayOrder       *int     `json:"displayOrder"`
	Category           *string  `json:"category"`
	MaxScore           *float64 `json:"maxScore"`
}

// CompletionRow is one finished attempt as fetched by the caller.
// RawAnalysis holds the already-decoded LLM analysis blob; a decode failure
// upstream is represented as nil, never as an error.
type CompletionRow struct {
	AssessmentID              string
	UserID                    uint
	QuestionnaireID           uint
	QuestionnaireTitle        string
	QuestionnaireDisplayOrder *int
	Category                  *string
	CompletedAt               *time.Time
	RawAnalysis               interface{}
	MaxScore                  *float64
}

// FactorScore is one sub-dimension extracted from a factor breakdown.
type FactorScore struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"maxScore"`
}

// ParsedCompletion is the canonical per-attempt result. Created once per
// CompletionRow and never mutated afterwards.
type ParsedCompletion struct {
	AssessmentID       string        `json:"assessmentId"`
	QuestionnaireID    uint          `json:"questionnaireId"`
	QuestionnaireTitle string        `json:"questionnaireTitle"`
	DisplayOrder       *int          `json:"displayOrder"`
	Category           string        `json:"category"`
	CompletedAt        *time.Time    `json:"completedAt"`
	NormalizedScore    float64       `json:"normalizedScore"`
	RawScore           float64       `json:"rawScore"`
	MaxScore           float64       `json:"maxScore"`
	Summary            *string       `json:"summary"`
	Strengths          []string      `json:"strengths"`
	Recommendations    []string      `json:"recommendations"`
	DevelopmentPlan    []string      `json:"developmentPlan"`
	Risks              []string      `json:"risks"`
	FactorScores       []FactorScore `json:"factorScores"`
}

// ContributionPoint is one completion's share of a category average.
type ContributionPoint struct {
	AssessmentID string  `json:"assessmentId"`
	Label        string  `json:"label"`
	Score        float64 `json:"score"`
}

// CategorySummary is the per-taxonomy-entry roll-up. One is emitted for every
// taxonomy entry even when nothing contributed to it.
type CategorySummary struct {
	Key              string              `json:"key"`
	Label            string              `json:"label"`
	NormalizedScore  float64             `json:"normalizedScore"`
	CompletedCount   int                 `json:"completedCount"`
	TotalAssignments int                 `json:"totalAssignments"`
	Contributions    []ContributionPoint `json:"contributions"`
}

// RadarPoint is a chart-ready category score against the fixed 100 ceiling.
type RadarPoint struct {
	Subject     string  `json:"subject"`
	UserScore   float64 `json:"userScore"`
	TargetScore float64 `json:"targetScore"`
}

type SegmentStatus string

const (
	SegmentPending   SegmentStatus = "pending"
	SegmentPartial   SegmentStatus = "partial"
	SegmentCompleted SegmentStatus = "completed"
)

// PowerWheelSegment is the second chart projection of a category roll-up.
type PowerWheelSegment struct {
	Label            string        `json:"label"`
	Value            float64       `json:"value"`
	Status           SegmentStatus `json:"status"`
	CompletedCount   int           `json:"completedCount"`
	TotalAssignments int           `json:"totalAssignments"`
}

// AggregatedFinalReport is the immutable top-level result of a report build.
// Field names are public API contract; consumers serialize it as-is.
type AggregatedFinalReport struct {
	User               UserBasicInfo       `json:"user"`
	AssignedCount      int                 `json:"assignedCount"`
	CompletedCount     int                 `json:"completedCount"`
	CompletionRate     float64             `json:"completionRate"`
	IsReady            bool                `json:"isReady"`
	LastCompletedAt    *time.Time          `json:"lastCompletedAt"`
	OverallNormalized  float64             `json:"overallNormalized"`
	AverageScore       float64             `json:"averageScore"`
	Categories         []CategorySummary   `json:"categories"`
	Radar              []RadarPoint        `json:"radar"`
	PowerWheel         []PowerWheelSegment `json:"powerWheel"`
	Assessments        []ParsedCompletion  `json:"assessments"`
	PendingAssignments []Assignment        `json:"pendingAssignments"`
	Strengths          []string            `json:"strengths"`
	Recommendations    []string            `json:"recommendations"`
	DevelopmentPlan    []string            `json:"developmentPlan"`
	Risks              []string            `json:"risks"`
}
