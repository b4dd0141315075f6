package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skinconsult-api/config"
	deliveryHttp "skinconsult-api/internal/delivery/http"
	"skinconsult-api/internal/delivery/http/handler"
	"skinconsult-api/internal/delivery/http/middleware"
	"skinconsult-api/internal/delivery/ws"
	"skinconsult-api/internal/infrastructure/cache"
	"skinconsult-api/internal/infrastructure/database"
	"skinconsult-api/internal/repository"
	"skinconsult-api/internal/service"
	"skinconsult-api/internal/usecase"
	"skinconsult-api/pkg/jwt"
	"skinconsult-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Hub         *ws.Hub
	Notifier    *service.NotifierService
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if err := database.RunMigrations(db); err != nil {
		return nil, err
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	if err := app.initializeServer(); err != nil {
		return nil, err
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer wires repositories, usecases, handlers and the router
// into the HTTP server.
func (app *App) initializeServer() error {
	cfg := app.Config
	db := app.DB
	log := logrus.StandardLogger()

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	// Repositories
	txManager := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	doctorProfileRepo := repository.NewDoctorProfileRepository(db)
	patientProfileRepo := repository.NewPatientProfileRepository(db)
	caseRepo := repository.NewDiseaseCaseRepository(db)
	consultationRepo := repository.NewConsultationRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	assetStore, err := service.NewDiskStore(cfg.Upload.Dir)
	if err != nil {
		return err
	}
	predictor := service.NewHTTPPredictor(cfg.AI)
	pushRelay := service.NewHTTPRelay(cfg.Push)

	hub := ws.NewHub(log)
	app.Hub = hub

	notifier := service.NewNotifierService(log, notificationRepo, pushRelay, hub)
	notifier.Start()
	app.Notifier = notifier

	// Usecases
	authUsecase := usecase.NewAuthUsecase(log, txManager, userRepo, doctorProfileRepo, patientProfileRepo, jwtService, app.RedisClient)
	skinCaseUsecase := usecase.NewSkinCaseUsecase(log, caseRepo, assetStore, predictor, cfg.App.BaseURL)
	consultationUsecase := usecase.NewConsultationUsecase(log, txManager, consultationRepo, caseRepo, offerRepo, userRepo, notifier, cfg.App.BaseURL)
	offerUsecase := usecase.NewOfferUsecase(log, txManager, offerRepo, consultationRepo, doctorProfileRepo, notifier)
	paymentUsecase := usecase.NewPaymentUsecase(log, txManager, paymentRepo, consultationRepo, caseRepo, notifier)
	chatUsecase := usecase.NewChatUsecase(log, messageRepo, consultationRepo, userRepo, assetStore, hub, notifier)
	reviewUsecase := usecase.NewReviewUsecase(log, txManager, reviewRepo, consultationRepo, doctorProfileRepo)
	doctorUsecase := usecase.NewDoctorUsecase(log, doctorProfileRepo)
	notificationUsecase := usecase.NewNotificationUsecase(log, notificationRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	caseHandler := handler.NewCaseHandler(skinCaseUsecase)
	consultationHandler := handler.NewConsultationHandler(consultationUsecase, customValidator)
	offerHandler := handler.NewOfferHandler(offerUsecase, customValidator)
	paymentHandler := handler.NewPaymentHandler(paymentUsecase, customValidator)
	chatHandler := handler.NewChatHandler(chatUsecase, customValidator)
	reviewHandler := handler.NewReviewHandler(reviewUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase)
	notificationHandler := handler.NewNotificationHandler(notificationUsecase)
	wsHandler := handler.NewWebSocketHandler(hub)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, app.RedisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Router
	router := deliveryHttp.NewRouter(
		authHandler,
		caseHandler,
		consultationHandler,
		offerHandler,
		paymentHandler,
		chatHandler,
		reviewHandler,
		doctorHandler,
		notificationHandler,
		wsHandler,
		authMiddleware,
		corsMiddleware,
		cfg.Upload.Dir,
	)
	httpRouter := router.Setup()

	app.Server = &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.App.Port),
		Handler: httpRouter,
	}
	return nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close drains the notifier, disconnects WebSocket clients and closes
// database and Redis connections.
func (app *App) Close() {
	if app.Hub != nil {
		app.Hub.Stop()
	}

	// flushes queued notifications before the DB goes away
	if app.Notifier != nil {
		app.Notifier.Stop()
	}

	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
