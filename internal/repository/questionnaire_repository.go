package repository

import (
	"growthpath_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionnaireRepository struct {
	DB *gorm.DB
}

func NewQuestionnaireRepository(db *gorm.DB) *QuestionnaireRepository {
	return &QuestionnaireRepository{DB: db}
}

func (r *QuestionnaireRepository) FindByID(id uint) (*model.Questionnaire, error) {
	var q model.Questionnaire
	err := r.DB.First(&q, id).Error
	return &q, err
}

func (r *QuestionnaireRepository) ListEnabled() ([]model.Questionnaire, error) {
	var qs []model.Questionnaire
	err := r.DB.Where("enabled = ?", true).
		Order("display_order asc, id asc").Find(&qs).Error
	return qs, err
}

func (r *QuestionnaireRepository) Create(q *model.Questionnaire) error {
	return r.DB.Create(q).Error
}

func (r *QuestionnaireRepository) Update(q *model.Questionnaire) error {
	return r.DB.Save(q).Error
}
