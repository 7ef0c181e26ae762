package controller

import (
	"errors"
	"growthpath_backend/internal/service"
	"growthpath_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(s *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: s}
}

type ChatMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func (c *AssessmentController) handleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrAssessmentNotFound), errors.Is(err, util.ErrQuestionnaireNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrAssessmentCompleted):
		util.Error(ctx, 409, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// Start godoc
// @Summary Start an assessment attempt
// @Description Opens a new AI-interview attempt for a questionnaire
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.StartAssessmentInput true "questionnaire"
// @Success 201 {object} util.Response{data=service.StartAssessmentResult}
// @Failure 404 {object} util.Response
// @Router /api/assessments [post]
func (c *AssessmentController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.StartAssessmentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AssessmentService.Start(claims.UserID, input)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// Get godoc
// @Summary Assessment detail
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path string true "assessment id"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id} [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	assessment, err := c.AssessmentService.Get(ctx.Param("id"), claims.UserID)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, assessment)
}

// Messages godoc
// @Summary Interview transcript
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path string true "assessment id"
// @Success 200 {object} util.Response{data=[]model.AssessmentMessage}
// @Router /api/assessments/{id}/messages [get]
func (c *AssessmentController) Messages(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	messages, err := c.AssessmentService.Messages(ctx.Param("id"), claims.UserID)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, messages)
}

// SendMessage godoc
// @Summary Send an interview answer
// @Description Records the answer and returns the interviewer's next turn
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "assessment id"
// @Param body body ChatMessageRequest true "message"
// @Success 200 {object} util.Response{data=service.ChatTurnResult}
// @Failure 409 {object} util.Response
// @Router /api/assessments/{id}/messages [post]
func (c *AssessmentController) SendMessage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ChatMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AssessmentService.SendMessage(ctx.Param("id"), claims.UserID, req.Content)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// StreamMessage godoc
// @Summary Send an interview answer over SSE
// @Description Records the answer and streams the interviewer's reply as server-sent events
// @Tags assessments
// @Produce text/event-stream
// @Security BearerAuth
// @Param id path string true "assessment id"
// @Param content query string true "message"
// @Success 200 {string} string "event stream"
// @Failure 409 {object} util.Response
// @Router /api/assessments/{id}/messages/stream [get]
func (c *AssessmentController) StreamMessage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	content := strings.TrimSpace(ctx.Query("content"))
	if content == "" {
		util.BadRequest(ctx, "content is required")
		return
	}

	stream, errChan, err := c.AssessmentService.StreamMessage(ctx.Param("id"), claims.UserID, content)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("Transfer-Encoding", "chunked")

	for token := range stream {
		ctx.SSEvent("message", token)
		ctx.Writer.Flush()
	}

	if err := <-errChan; err != nil {
		ctx.SSEvent("error", err.Error())
		ctx.Writer.Flush()
		return
	}

	ctx.SSEvent("end", "done")
	ctx.Writer.Flush()
}

// Complete godoc
// @Summary Finish an assessment
// @Description Closes the interview and stores the AI analysis
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path string true "assessment id"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Failure 409 {object} util.Response
// @Router /api/assessments/{id}/complete [post]
func (c *AssessmentController) Complete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	assessment, err := c.AssessmentService.Complete(ctx.Param("id"), claims.UserID)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, assessment)
}
