package main

import (
	"net/http"

	_ "decora/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"decora/internal/asset"
	"decora/internal/auth"
	"decora/internal/cache"
	"decora/internal/config"
	"decora/internal/db"
	"decora/internal/handler"
	"decora/internal/logging"
	"decora/internal/mail"
	"decora/internal/model"
	"decora/internal/repository"
	"decora/internal/router"
	"decora/internal/service"
)

// @title Decora API
// @version 1.0
// @description Backend API for the Decora studio site: gallery, contact enquiries, reviews, and the admin dashboard.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin token.
func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Error("database init", "error", err)
		return
	}

	if err := gormDB.AutoMigrate(
		&model.Admin{},
		&model.GalleryImage{},
		&model.Enquiry{},
		&model.Review{},
	); err != nil {
		log.Error("auto-migrate", "error", err)
		return
	}

	// A missing signing secret is fatal at boot, never surfaced per request.
	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		log.Error("token service init", "error", err)
		return
	}

	assets, err := asset.NewCloudinary(cfg.CloudinaryURL, cfg.CloudinaryFolder)
	if err != nil {
		log.Error("asset store init", "error", err)
		return
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	var mailer mail.Mailer
	if cfg.SMTPUser != "" && cfg.AdminEmail != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPUser, cfg.AdminEmail)
	} else {
		log.Warn("mailer disabled, EMAIL_USER or ADMIN_EMAIL not set")
	}

	// Initialize repositories
	adminRepo := repository.NewAdminRepository(gormDB)
	galleryRepo := repository.NewGalleryRepository(gormDB)
	enquiryRepo := repository.NewEnquiryRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)

	// Initialize services
	authService := service.NewAuthService(adminRepo, tokens)
	galleryService := service.NewGalleryService(galleryRepo, assets, cacheClient, log)
	enquiryService := service.NewEnquiryService(enquiryRepo, mailer, log)
	reviewService := service.NewReviewService(reviewRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.Development)
	galleryHandler := handler.NewGalleryHandler(galleryService)
	enquiryHandler := handler.NewEnquiryHandler(enquiryService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	// Register routes
	router.Register(
		e,
		cfg,
		tokens,
		authHandler,
		galleryHandler,
		enquiryHandler,
		reviewHandler,
	)

	addr := ":" + cfg.ServerPort
	log.Info("starting server", "addr", addr)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Error("server start", "error", err)
	}
}
