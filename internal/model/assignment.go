package model

// AssessmentAssignment is one planned questionnaire in a user's path,
// created by an admin. DisplayOrder is nullable: plans imported from the
// pre-planning era carry no explicit order.
type AssessmentAssignment struct {
	BaseModel
	UserID          uint          `gorm:"index:idx_assignment_user_questionnaire,unique;not null" json:"userId"`
	QuestionnaireID uint          `gorm:"index:idx_assignment_user_questionnaire,unique;not null" json:"questionnaireId"`
	DisplayOrder    *int          `json:"displayOrder"`
	AssignedBy      uint          `json:"assignedBy"`
	Questionnaire   Questionnaire `gorm:"foreignKey:QuestionnaireID" json:"questionnaire"`
}

func (AssessmentAssignment) TableName() string {
	return "assessment_assignments"
}
