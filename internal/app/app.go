package app

import (
	"context"
	"growthpath_backend/internal/config"
	"growthpath_backend/internal/controller"
	"growthpath_backend/internal/repository"
	"growthpath_backend/internal/service"
	"growthpath_backend/pkg/database"
	"growthpath_backend/pkg/logger"
	"growthpath_backend/pkg/monitoring"
	"growthpath_backend/pkg/security"
	"growthpath_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user          *repository.UserRepository
	questionnaire *repository.QuestionnaireRepository
	assignment    *repository.AssignmentRepository
	assessment    *repository.AssessmentRepository
}

type services struct {
	auth          *service.AuthService
	storage       *service.StorageService
	user          *service.UserService
	questionnaire *service.QuestionnaireService
	assignment    *service.AssignmentService
	assessment    *service.AssessmentService
	ai            *service.AIService
	report        *service.ReportService
}

type controllers struct {
	auth          *controller.AuthController
	user          *controller.UserController
	questionnaire *controller.QuestionnaireController
	assignment    *controller.AssignmentController
	assessment    *controller.AssessmentController
	report        *controller.ReportController
	health        *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig fans a reloaded config out to every registered callback.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db),
		questionnaire: repository.NewQuestionnaireRepository(db),
		assignment:    repository.NewAssignmentRepository(db),
		assessment:    repository.NewAssessmentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, s.storage)
	s.questionnaire = service.NewQuestionnaireService(repos.questionnaire)
	s.ai = service.NewAIService(cfg.AI)
	s.report = service.NewReportService(repos.user, repos.assignment, repos.assessment, rdb, cfg)
	s.assignment = service.NewAssignmentService(repos.assignment, repos.questionnaire, s.report)
	s.assessment = service.NewAssessmentService(repos.assessment, repos.questionnaire, s.ai, s.report)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:          controller.NewAuthController(s.auth),
		user:          controller.NewUserController(s.user),
		questionnaire: controller.NewQuestionnaireController(s.questionnaire),
		assignment:    controller.NewAssignmentController(s.assignment),
		assessment:    controller.NewAssessmentController(s.assessment),
		report:        controller.NewReportController(s.report),
		health:        controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// the report cache degrades to direct builds without redis
		logger.Log.Warn("Redis unavailable, report caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	app.RegisterConfigCallback(services.report.ApplyConfig)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("growthpath-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
