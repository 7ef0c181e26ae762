package app

import (
	"growthpath_backend/docs"
	"growthpath_backend/internal/config"
	"growthpath_backend/internal/middleware"
	"growthpath_backend/internal/model"
	"growthpath_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/questionnaires", c.questionnaire.List)
		public.GET("/questionnaires/:id", c.questionnaire.Get)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.user.GetProfile)
		authGroup.PUT("/profile", c.user.UpdateProfile)
		authGroup.POST("/profile/avatar", c.user.UploadAvatar)

		authGroup.GET("/assignments", c.assignment.ListMine)

		authGroup.POST("/assessments", c.assessment.Start)
		authGroup.GET("/assessments/:id", c.assessment.Get)
		authGroup.GET("/assessments/:id/messages", c.assessment.Messages)
		authGroup.POST("/assessments/:id/messages", c.assessment.SendMessage)
		authGroup.GET("/assessments/:id/messages/stream", c.assessment.StreamMessage)
		authGroup.POST("/assessments/:id/complete", c.assessment.Complete)

		authGroup.GET("/report", c.report.GetMyReport)
	}

	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		adminGroup.POST("/questionnaires", c.questionnaire.Create)
		adminGroup.PUT("/questionnaires/:id", c.questionnaire.Update)

		adminGroup.GET("/users/:userId/assignments", c.assignment.ListForUser)
		adminGroup.PUT("/users/:userId/assignments", c.assignment.Assign)

		adminGroup.GET("/users/:userId/report", c.report.GetUserReport)
		adminGroup.GET("/reports", c.report.ListReports)
	}
}
