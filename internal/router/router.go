package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"decora/internal/auth"
	"decora/internal/config"
	"decora/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokens *auth.TokenService,
	authHandler *handler.AuthHandler,
	galleryHandler *handler.GalleryHandler,
	enquiryHandler *handler.EnquiryHandler,
	reviewHandler *handler.ReviewHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/admin/login", authHandler.Login)
	api.GET("/gallery", galleryHandler.List)
	api.GET("/gallery/:category", galleryHandler.ByCategory)
	api.POST("/contact", enquiryHandler.Create)
	api.POST("/reviews", reviewHandler.Create)
	api.GET("/reviews", reviewHandler.List)

	// Secured routes (require a valid admin token)
	secured := api.Group("", Auth(tokens))

	secured.GET("/admin/me", authHandler.Me)

	// Gallery management. Upload is reachable on both the legacy and the
	// admin path; both are guarded.
	secured.POST("/admin/gallery", galleryHandler.Upload)
	secured.POST("/gallery/upload", galleryHandler.Upload)
	secured.PUT("/admin/gallery/:id", galleryHandler.Update)
	secured.DELETE("/admin/gallery/:id", galleryHandler.Delete)
	secured.DELETE("/gallery/:id", galleryHandler.Delete)

	secured.GET("/contact", enquiryHandler.List)
	secured.DELETE("/reviews/:id", reviewHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
