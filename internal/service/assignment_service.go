package service

import (
	"growthpath_backend/internal/model"
	"growthpath_backend/internal/repository"
	"growthpath_backend/internal/util"
)

type AssignmentService struct {
	AssignmentRepo    *repository.AssignmentRepository
	QuestionnaireRepo *repository.QuestionnaireRepository
	ReportService     *ReportService
}

func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	questionnaireRepo *repository.QuestionnaireRepository,
	reportService *ReportService,
) *AssignmentService {
	return &AssignmentService{
		AssignmentRepo:    assignmentRepo,
		QuestionnaireRepo: questionnaireRepo,
		ReportService:     reportService,
	}
}

type AssignmentItem struct {
	QuestionnaireID uint `json:"questionnaireId" binding:"required"`
	DisplayOrder    *int `json:"displayOrder"`
}

type AssignInput struct {
	Items []AssignmentItem `json:"items" binding:"required,dive"`
}

// Assign replaces the user's assessment plan with the given items. Every
// questionnaire is validated against the catalog first.
func (s *AssignmentService) Assign(userID, assignedBy uint, input AssignInput) ([]model.AssessmentAssignment, error) {
	assignments := make([]model.AssessmentAssignment, 0, len(input.Items))
	seen := make(map[uint]bool, len(input.Items))

	for _, item := range input.Items {
		if seen[item.QuestionnaireID] {
			continue
		}
		seen[item.QuestionnaireID] = true

		if _, err := s.QuestionnaireRepo.FindByID(item.QuestionnaireID); err != nil {
			return nil, util.ErrQuestionnaireNotFound
		}

		assignments = append(assignments, model.AssessmentAssignment{
			UserID:          userID,
			QuestionnaireID: item.QuestionnaireID,
			DisplayOrder:    item.DisplayOrder,
			AssignedBy:      assignedBy,
		})
	}

	if err := s.AssignmentRepo.ReplaceForUser(userID, assignments); err != nil {
		return nil, err
	}

	s.ReportService.InvalidateUserReport(userID)

	return s.AssignmentRepo.FindByUserID(userID)
}

func (s *AssignmentService) ListForUser(userID uint) ([]model.AssessmentAssignment, error) {
	return s.AssignmentRepo.FindByUserID(userID)
}
