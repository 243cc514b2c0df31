package main

import (
	"net/http"

	_ "eduhub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"eduhub/internal/auth"
	"eduhub/internal/cache"
	"eduhub/internal/config"
	"eduhub/internal/db"
	"eduhub/internal/handler"
	"eduhub/internal/model"
	"eduhub/internal/repository"
	"eduhub/internal/router"
	"eduhub/internal/service"
)

// @title EduHub Consultancy API
// @version 1.0
// @description Educational consultancy backend with program recommendations, consultant booking, and JWT authentication.
// @host localhost:8080
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	logger := newLogger(cfg.Environment)
	defer logger.Sync()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("database init", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.LearnerProfile{},
		&model.ConsultantProfile{},
		&model.University{},
		&model.Program{},
		&model.TimeSlot{},
		&model.Booking{},
	); err != nil {
		logger.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	programRepo := repository.NewProgramRepository(gormDB)
	slotRepo := repository.NewSlotRepository(gormDB)
	bookingRepo := repository.NewBookingRepository(gormDB)
	analyticsRepo := repository.NewAnalyticsRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	recommendationService := service.NewRecommendationService(programRepo)
	consultantService := service.NewConsultantService(userRepo, cacheClient)
	slotService := service.NewSlotService(userRepo, slotRepo)
	bookingService := service.NewBookingService(userRepo, slotRepo, bookingRepo, service.NewDummyGateway())
	analyticsService := service.NewAnalyticsService(analyticsRepo, programRepo, slotRepo, userRepo)
	programService := service.NewProgramService(programRepo)
	learnerService := service.NewUserService(userRepo)

	authHandler := handler.NewAuthHandler(authService)
	recommendationHandler := handler.NewRecommendationHandler(recommendationService)
	consultationHandler := handler.NewConsultationHandler(consultantService)
	bookingHandler := handler.NewBookingHandler(slotService, bookingService, consultantService)
	adminHandler := handler.NewAdminHandler(
		consultantService,
		bookingService,
		slotService,
		analyticsService,
		programService,
		learnerService,
	)

	router.Register(
		e,
		cfg,
		userRepo,
		authHandler,
		recommendationHandler,
		consultationHandler,
		bookingHandler,
		adminHandler,
	)

	logger.Info("starting server",
		zap.String("port", cfg.ServerPort),
		zap.String("environment", cfg.Environment),
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server start", zap.Error(err))
	}
}

func newLogger(environment string) *zap.Logger {
	if environment == "production" {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}
