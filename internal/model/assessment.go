package model

import (
	"encoding/json"
	"time"
)

type AssessmentStatus string

const (
	AssessmentInProgress AssessmentStatus = "in_progress"
	AssessmentCompleted  AssessmentStatus = "completed"
)

// Assessment is one attempt at a questionnaire. Results holds the raw
// LLM-authored analysis exactly as received; it is stored opaquely and only
// interpreted by the report engine, which tolerates any shape.
type Assessment struct {
	UUIDBase
	UserID          uint             `gorm:"index;not null" json:"userId"`
	QuestionnaireID uint             `gorm:"index;not null" json:"questionnaireId"`
	Status          AssessmentStatus `gorm:"size:20;default:'in_progress'" json:"status"`
	Results         json.RawMessage  `gorm:"type:json" json:"results"`
	CompletedAt     *time.Time       `json:"completedAt"`
	Questionnaire   Questionnaire    `gorm:"foreignKey:QuestionnaireID" json:"questionnaire"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// AssessmentMessage is one turn of the AI interview that produces the
// analysis blob.
type AssessmentMessage struct {
	BaseModel
	AssessmentID string `gorm:"size:36;index;not null" json:"assessmentId"`
	Role         string `gorm:"size:20;not null" json:"role"`
	Content      string `gorm:"type:text" json:"content"`
}

func (AssessmentMessage) TableName() string {
	return "assessment_messages"
}
