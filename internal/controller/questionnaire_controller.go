package controller

import (
	"errors"
	"growthpath_backend/internal/service"
	"growthpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionnaireController struct {
	QuestionnaireService *service.QuestionnaireService
}

func NewQuestionnaireController(s *service.QuestionnaireService) *QuestionnaireController {
	return &QuestionnaireController{QuestionnaireService: s}
}

// List godoc
// @Summary List enabled questionnaires
// @Tags questionnaires
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Questionnaire}
// @Router /api/questionnaires [get]
func (c *QuestionnaireController) List(ctx *gin.Context) {
	questionnaires, err := c.QuestionnaireService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questionnaires)
}

// Get godoc
// @Summary Questionnaire detail
// @Tags questionnaires
// @Produce json
// @Param id path int true "questionnaire id"
// @Success 200 {object} util.Response{data=model.Questionnaire}
// @Failure 404 {object} util.Response
// @Router /api/questionnaires/{id} [get]
func (c *QuestionnaireController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid questionnaire id")
		return
	}

	q, err := c.QuestionnaireService.Get(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrQuestionnaireNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, q)
}

// Create godoc
// @Summary Create a questionnaire
// @Tags questionnaires
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.QuestionnaireInput true "questionnaire"
// @Success 201 {object} util.Response{data=model.Questionnaire}
// @Failure 400 {object} util.Response
// @Router /api/admin/questionnaires [post]
func (c *QuestionnaireController) Create(ctx *gin.Context) {
	var input service.QuestionnaireInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.QuestionnaireService.Create(input)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// Update godoc
// @Summary Update a questionnaire
// @Tags questionnaires
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "questionnaire id"
// @Param body body service.QuestionnaireInput true "questionnaire"
// @Success 200 {object} util.Response{data=model.Questionnaire}
// @Failure 404 {object} util.Response
// @Router /api/admin/questionnaires/{id} [put]
func (c *QuestionnaireController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid questionnaire id")
		return
	}

	var input service.QuestionnaireInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.QuestionnaireService.Update(uint(id), input)
	if err != nil {
		if errors.Is(err, util.ErrQuestionnaireNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, q)
}
