package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizhub_backend/internal/config"
	"quizhub_backend/internal/controller"
	"quizhub_backend/internal/repository"
	"quizhub_backend/internal/service"
	"quizhub_backend/pkg/database"
	"quizhub_backend/pkg/logger"
	"quizhub_backend/pkg/monitoring"
	"quizhub_backend/pkg/security"
	"quizhub_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user     *repository.UserRepository
	topic    *repository.TopicRepository
	question *repository.QuestionRepository
	exam     *repository.ExamRepository
	session  *repository.SessionRepository
	comment  *repository.CommentRepository
	contact  *repository.ContactRepository
}

type services struct {
	auth     *service.AuthService
	user     *service.UserService
	topic    *service.TopicService
	question *service.QuestionService
	exam     *service.ExamService
	session  *service.SessionService
	comment  *service.CommentService
	contact  *service.ContactService
	chat     *service.ChatService
	email    *service.EmailService
	storage  *service.StorageService
}

type controllers struct {
	auth     *controller.AuthController
	user     *controller.UserController
	topic    *controller.TopicController
	question *controller.QuestionController
	exam     *controller.ExamController
	session  *controller.SessionController
	result   *controller.ResultController
	comment  *controller.CommentController
	contact  *controller.ContactController
	chat     *controller.ChatController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		topic:    repository.NewTopicRepository(db),
		question: repository.NewQuestionRepository(db),
		exam:     repository.NewExamRepository(db),
		session:  repository.NewSessionRepository(db),
		comment:  repository.NewCommentRepository(db),
		contact:  repository.NewContactRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	storage, err := service.NewStorageService(cfg.Storage, logger.Log)
	if err != nil {
		return nil, err
	}

	s := &services{storage: storage}
	s.email = service.NewEmailService(cfg.SMTP, logger.Log)
	s.auth = service.NewAuthService(repos.user, s.email, cfg, logger.Log)
	s.user = service.NewUserService(repos.user, logger.Log)
	s.topic = service.NewTopicService(repos.topic)
	s.question = service.NewQuestionService(repos.question, repos.topic)
	s.exam = service.NewExamService(repos.exam, repos.topic, rdb, logger.Log)
	s.session = service.NewSessionService(repos.exam, repos.question, repos.session, logger.Log)
	s.comment = service.NewCommentService(repos.comment, repos.exam)
	s.contact = service.NewContactService(repos.contact)
	s.chat = service.NewChatService(repos.session, repos.exam, cfg.AI, logger.Log)
	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth, s.user),
		user:     controller.NewUserController(s.user, s.storage),
		topic:    controller.NewTopicController(s.topic),
		question: controller.NewQuestionController(s.question, s.storage),
		exam:     controller.NewExamController(s.exam),
		session:  controller.NewSessionController(s.session),
		result:   controller.NewResultController(s.session),
		comment:  controller.NewCommentController(s.comment),
		contact:  controller.NewContactController(s.contact),
		chat:     controller.NewChatController(s.chat),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
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
	logger.Log.Info("Logger initialized")

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Redis only backs the open-exam cache; run without it.
		logger.Log.Warn("Redis unavailable, caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("quizhub-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type != "minio" {
		path := cfg.Storage.LocalPath
		if path == "" {
			path = "uploads"
		}
		router.Static("/uploads", path)
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
