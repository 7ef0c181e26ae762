package controller

import (
	"errors"
	"growthpath_backend/internal/service"
	"growthpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(s *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: s}
}

// ListMine godoc
// @Summary Current user's assessment plan
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.AssessmentAssignment}
// @Router /api/assignments [get]
func (c *AssignmentController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	assignments, err := c.AssignmentService.ListForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

// ListForUser godoc
// @Summary A user's assessment plan
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param userId path int true "user id"
// @Success 200 {object} util.Response{data=[]model.AssessmentAssignment}
// @Router /api/admin/users/{userId}/assignments [get]
func (c *AssignmentController) ListForUser(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("userId"))
	if userID == 0 {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	assignments, err := c.AssignmentService.ListForUser(uint(userID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

// Assign godoc
// @Summary Replace a user's assessment plan
// @Description Overwrites the plan with the given questionnaire list
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "user id"
// @Param body body service.AssignInput true "plan items"
// @Success 200 {object} util.Response{data=[]model.AssessmentAssignment}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/users/{userId}/assignments [put]
func (c *AssignmentController) Assign(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	userID := util.MustParseUint(ctx.Param("userId"))
	if userID == 0 {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	var input service.AssignInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignments, err := c.AssignmentService.Assign(uint(userID), claims.UserID, input)
	if err != nil {
		if errors.Is(err, util.ErrQuestionnaireNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, assignments)
}
