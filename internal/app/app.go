package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/database"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/auth"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/config"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/handlers"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/logger"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/middleware"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/pkg/email"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/repositories"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/routes"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/services"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/validator"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	tokens, err := auth.NewTokenManager(
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		time.Duration(cfg.JWT.TTL)*time.Minute,
	)
	if err != nil {
		logger.Fatal("Failed to initialize token manager", "error", err)
	}

	serviceContainer := initializeServices(cfg, tokens)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, tokens)

	return ginRouter
}

func initializeServices(cfg *config.Config, tokens *auth.TokenManager) *services.ServiceContainer {
	var mailer email.Provider
	mailer, err := email.NewSMTPSender(email.Config{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseTLS:    cfg.Email.UseTLS,
		BaseURL:   cfg.App.BaseURL,
	})
	if err != nil {
		logger.Warn("SMTP sender unavailable, falling back to mock provider", "error", err)
		mailer = email.NewMockProvider()
	}

	userRepo := repositories.NewUserRepository()
	blogRepo := repositories.NewBlogRepository()
	keywordRepo := repositories.NewKeywordRepository()

	return &services.ServiceContainer{
		AuthService:    services.NewAuthService(userRepo, tokens, mailer),
		UserService:    services.NewUserService(userRepo),
		BlogService:    services.NewBlogService(blogRepo, keywordRepo),
		KeywordService: services.NewKeywordService(keywordRepo),
		EmailService:   mailer,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:    handlers.NewAuthHandler(baseHandler, services.AuthService),
		UserHandler:    handlers.NewUserHandler(baseHandler, services.UserService),
		BlogHandler:    handlers.NewBlogHandler(baseHandler, services.BlogService),
		KeywordHandler: handlers.NewKeywordHandler(baseHandler, services.KeywordService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.TransactionMiddleware(db))
	return router
}
