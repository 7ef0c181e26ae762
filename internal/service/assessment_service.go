package service

import (
	"errors"
	"growthpath_backend/internal/model"
	"growthpath_backend/internal/repository"
	"growthpath_backend/internal/util"
	"growthpath_backend/pkg/logger"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AssessmentService struct {
	AssessmentRepo    *repository.AssessmentRepository
	QuestionnaireRepo *repository.QuestionnaireRepository
	AIService         *AIService
	ReportService     *ReportService
}

func NewAssessmentService(
	assessmentRepo *repository.AssessmentRepository,
	questionnaireRepo *repository.QuestionnaireRepository,
	aiService *AIService,
	reportService *ReportService,
) *AssessmentService {
	return &AssessmentService{
		AssessmentRepo:    assessmentRepo,
		QuestionnaireRepo: questionnaireRepo,
		AIService:         aiService,
		ReportService:     reportService,
	}
}

type StartAssessmentInput struct {
	QuestionnaireID uint `json:"questionnaireId" binding:"required"`
}

type StartAssessmentResult struct {
	Assessment *model.Assessment `json:"assessment"`
	Greeting   string            `json:"greeting"`
}

type ChatTurnResult struct {
	Reply string `json:"reply"`
}

// Start opens a new attempt and asks the interviewer for its opening turn.
// Retakes are allowed: an earlier completed attempt does not block a new one.
func (s *AssessmentService) Start(userID uint, input StartAssessmentInput) (*StartAssessmentResult, error) {
	q, err := s.QuestionnaireRepo.FindByID(input.QuestionnaireID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionnaireNotFound
		}
		return nil, err
	}

	assessment := &model.Assessment{
		UserID:          userID,
		QuestionnaireID: q.ID,
		Status:          model.AssessmentInProgress,
	}
	if err := s.AssessmentRepo.Create(assessment); err != nil {
		return nil, err
	}

	greeting, err := s.AIService.Chat(q.PromptContext, nil, "گفتگو را با معرفی کوتاه آزمون و اولین پرسش آغاز کن.")
	if err != nil {
		logger.Log.Error("AI greeting failed",
			zap.String("assessmentId", assessment.ID),
			zap.Error(err))
		return nil, err
	}

	if err := s.AssessmentRepo.AppendMessage(&model.AssessmentMessage{
		AssessmentID: assessment.ID,
		Role:         "assistant",
		Content:      greeting,
	}); err != nil {
		return nil, err
	}

	return &StartAssessmentResult{Assessment: assessment, Greeting: greeting}, nil
}

func (s *AssessmentService) findOwned(assessmentID string, userID uint) (*model.Assessment, error) {
	assessment, err := s.AssessmentRepo.FindByID(assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}
	if assessment.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return assessment, nil
}

// SendMessage records the user's answer and returns the interviewer's reply.
func (s *AssessmentService) SendMessage(assessmentID string, userID uint, content string) (*ChatTurnResult, error) {
	assessment, err := s.findOwned(assessmentID, userID)
	if err != nil {
		return nil, err
	}
	if assessment.Status == model.AssessmentCompleted {
		return nil, util.ErrAssessmentCompleted
	}

	history, err := s.history(assessmentID)
	if err != nil {
		return nil, err
	}

	if err := s.AssessmentRepo.AppendMessage(&model.AssessmentMessage{
		AssessmentID: assessmentID,
		Role:         "user",
		Content:      content,
	}); err != nil {
		return nil, err
	}

	reply, err := s.AIService.Chat(assessment.Questionnaire.PromptContext, history, content)
	if err != nil {
		return nil, err
	}

	if err := s.AssessmentRepo.AppendMessage(&model.AssessmentMessage{
		AssessmentID: assessmentID,
		Role:         "assistant",
		Content:      reply,
	}); err != nil {
		return nil, err
	}

	return &ChatTurnResult{Reply: reply}, nil
}

// StreamMessage records the user's answer and streams the interviewer's reply
// token by token. The accumulated reply is persisted once the stream ends, so
// the transcript stays identical to the non-streaming flow.
func (s *AssessmentService) StreamMessage(assessmentID string, userID uint, content string) (<-chan string, <-chan error, error) {
	assessment, err := s.findOwned(assessmentID, userID)
	if err != nil {
		return nil, nil, err
	}
	if assessment.Status == model.AssessmentCompleted {
		return nil, nil, util.ErrAssessmentCompleted
	}

	history, err := s.history(assessmentID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.AssessmentRepo.AppendMessage(&model.AssessmentMessage{
		AssessmentID: assessmentID,
		Role:         "user",
		Content:      content,
	}); err != nil {
		return nil, nil, err
	}

	stream, streamErr := s.AIService.ChatStream(assessment.Questionnaire.PromptContext, history, content)

	out := make(chan string)
	errChan := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errChan)

		var reply strings.Builder
		for token := range stream {
			reply.WriteString(token)
			out <- token
		}
		if err := <-streamErr; err != nil {
			errChan <- err
			return
		}
		if reply.Len() == 0 {
			return
		}
		if err := s.AssessmentRepo.AppendMessage(&model.AssessmentMessage{
			AssessmentID: assessmentID,
			Role:         "assistant",
			Content:      reply.String(),
		}); err != nil {
			logger.Log.Error("failed to persist streamed reply",
				zap.String("assessmentId", assessmentID),
				zap.Error(err))
			errChan <- err
		}
	}()

	return out, errChan, nil
}

// Complete closes the interview, asks the model for its JSON analysis, and
// stores the reply verbatim. The analysis is not validated here; the report
// engine absorbs whatever shape came back.
func (s *AssessmentService) Complete(assessmentID string, userID uint) (*model.Assessment, error) {
	assessment, err := s.findOwned(assessmentID, userID)
	if err != nil {
		return nil, err
	}
	if assessment.Status == model.AssessmentCompleted {
		return nil, util.ErrAssessmentCompleted
	}

	history, err := s.history(assessmentID)
	if err != nil {
		return nil, err
	}

	analysis, err := s.AIService.GenerateAnalysis(assessment.Questionnaire.PromptContext, history)
	if err != nil {
		logger.Log.Error("AI analysis generation failed",
			zap.String("assessmentId", assessmentID),
			zap.Error(err))
		return nil, err
	}

	now := time.Now()
	assessment.Status = model.AssessmentCompleted
	assessment.Results = analysis
	assessment.CompletedAt = &now

	if err := s.AssessmentRepo.Update(assessment); err != nil {
		return nil, err
	}

	s.ReportService.InvalidateUserReport(userID)

	logger.Log.Info("assessment completed",
		zap.String("assessmentId", assessmentID),
		zap.Uint("userId", userID),
		zap.Uint("questionnaireId", assessment.QuestionnaireID))

	return assessment, nil
}

func (s *AssessmentService) Get(assessmentID string, userID uint) (*model.Assessment, error) {
	return s.findOwned(assessmentID, userID)
}

func (s *AssessmentService) Messages(assessmentID string, userID uint) ([]model.AssessmentMessage, error) {
	if _, err := s.findOwned(assessmentID, userID); err != nil {
		return nil, err
	}
	return s.AssessmentRepo.FindMessages(assessmentID)
}

func (s *AssessmentService) history(assessmentID string) ([]AIChatMessage, error) {
	messages, err := s.AssessmentRepo.FindMessages(assessmentID)
	if err != nil {
		return nil, err
	}
	history := make([]AIChatMessage, 0, len(messages))
	for _, m := range messages {
		history = append(history, AIChatMessage{Role: m.Role, Content: m.Content})
	}
	return history, nil
}
