package repository

import (
	"growthpath_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(a *model.Assessment) error {
	return r.DB.Create(a).Error
}

func (r *AssessmentRepository) FindByID(id string) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.Preload("Questionnaire").Where("id = ?", id).First(&a).Error
	return &a, err
}

func (r *AssessmentRepository) Update(a *model.Assessment) error {
	return r.DB.Save(a).Error
}

// FindCompletedByUser returns every completed attempt, retakes included; the
// report engine deduplicates them itself.
func (r *AssessmentRepository) FindCompletedByUser(userID uint) ([]model.Assessment, error) {
	var as []model.Assessment
	err := r.DB.Preload("Questionnaire").
		Where("user_id = ? AND status = ?", userID, model.AssessmentCompleted).
		Order("completed_at asc, created_at asc").
		Find(&as).Error
	return as, err
}

func (r *AssessmentRepository) AppendMessage(m *model.AssessmentMessage) error {
	return r.DB.Create(m).Error
}

func (r *AssessmentRepository) FindMessages(assessmentID string) ([]model.AssessmentMessage, error) {
	var ms []model.AssessmentMessage
	err := r.DB.Where("assessment_id = ?", assessmentID).
		Order("id asc").Find(&ms).Error
	return ms, err
}
