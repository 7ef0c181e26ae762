package service

import (
	"errors"
	"growthpath_backend/internal/model"
	"growthpath_backend/internal/repository"
	"growthpath_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionnaireService struct {
	QuestionnaireRepo *repository.QuestionnaireRepository
}

func NewQuestionnaireService(repo *repository.QuestionnaireRepository) *QuestionnaireService {
	return &QuestionnaireService{QuestionnaireRepo: repo}
}

type QuestionnaireInput struct {
	Title         string   `json:"title" binding:"required,max=255"`
	Description   string   `json:"description"`
	Category      *string  `json:"category"`
	MaxScore      *float64 `json:"maxScore" binding:"omitempty,gt=0"`
	DisplayOrder  int      `json:"displayOrder"`
	Enabled       *bool    `json:"enabled"`
	PromptContext string   `json:"promptContext"`
}

func (s *QuestionnaireService) List() ([]model.Questionnaire, error) {
	return s.QuestionnaireRepo.ListEnabled()
}

func (s *QuestionnaireService) Get(id uint) (*model.Questionnaire, error) {
	q, err := s.QuestionnaireRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionnaireNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *QuestionnaireService) Create(input QuestionnaireInput) (*model.Questionnaire, error) {
	q := &model.Questionnaire{
		Title:         input.Title,
		Description:   input.Description,
		Category:      input.Category,
		MaxScore:      input.MaxScore,
		DisplayOrder:  input.DisplayOrder,
		Enabled:       true,
		PromptContext: input.PromptContext,
	}
	if input.Enabled != nil {
		q.Enabled = *input.Enabled
	}
	if err := s.QuestionnaireRepo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionnaireService) Update(id uint, input QuestionnaireInput) (*model.Questionnaire, error) {
	q, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	q.Title = input.Title
	q.Description = input.Description
	q.Category = input.Category
	q.MaxScore = input.MaxScore
	q.DisplayOrder = input.DisplayOrder
	q.PromptContext = input.PromptContext
	if input.Enabled != nil {
		q.Enabled = *input.Enabled
	}

	if err := s.QuestionnaireRepo.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}
