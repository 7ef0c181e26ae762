package model

// Questionnaire is one AI-chat-driven assessment in the catalog. Category and
// MaxScore feed the report aggregation; PromptContext is the system prompt
// handed to the AI interviewer.
type Questionnaire struct {
	BaseModel
	Title         string   `gorm:"size:255;not null" json:"title"`
	Description   string   `gorm:"type:text" json:"description"`
	Category      *string  `gorm:"size:100" json:"category"`
	MaxScore      *float64 `json:"maxScore"`
	DisplayOrder  int      `gorm:"default:0" json:"displayOrder"`
	Enabled       bool     `gorm:"default:true" json:"enabled"`
	PromptContext string   `gorm:"type:text" json:"-"`
}

func (Questionnaire) TableName() string {
	return "questionnaires"
}
