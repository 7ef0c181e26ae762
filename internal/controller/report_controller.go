package controller

import (
	"errors"
	"growthpath_backend/internal/service"
	"growthpath_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(s *service.ReportService) *ReportController {
	return &ReportController{ReportService: s}
}

func (c *ReportController) handleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrNoReportData):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrUserNotFound):
		util.NotFound(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// GetMyReport godoc
// @Summary Current user's aggregated final report
// @Description Scores, category roll-ups, chart data and merged insights
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=report.AggregatedFinalReport}
// @Failure 404 {object} util.Response
// @Router /api/report [get]
func (c *ReportController) GetMyReport(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	r, err := c.ReportService.GetUserReport(ctx.Request.Context(), claims.UserID)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, r)
}

// GetUserReport godoc
// @Summary A user's aggregated final report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param userId path int true "user id"
// @Success 200 {object} util.Response{data=report.AggregatedFinalReport}
// @Failure 404 {object} util.Response
// @Router /api/admin/users/{userId}/report [get]
func (c *ReportController) GetUserReport(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("userId"))
	if userID == 0 {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	r, err := c.ReportService.GetUserReport(ctx.Request.Context(), uint(userID))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, r)
}

// ListReports godoc
// @Summary Cohort report overview
// @Description Per-user readiness and score summaries for admins
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param page query int false "page number" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.PageResponse{data=[]service.UserReportSummary}
// @Router /api/admin/reports [get]
func (c *ReportController) ListReports(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	summaries, total, err := c.ReportService.ListUserReports(ctx.Request.Context(), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.SuccessPage(ctx, summaries, total, page, limit)
}
