package router

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"reviewboard/internal/auth"
	"reviewboard/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	reviewHandler *handler.ReviewHandler,
	adminHandler *handler.AdminHandler,
	systemHandler *handler.SystemHandler,
	backupHandler *handler.BackupHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	// The review form and admin dashboard are static pages served elsewhere.
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", systemHandler.Index)
	e.GET("/admin", systemHandler.AdminInfo)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	api.GET("/health", systemHandler.Health)

	// Review routes
	api.GET("/reviews", reviewHandler.ListReviews)
	api.GET("/reviews/:id", reviewHandler.GetReview)
	api.POST("/reviews", reviewHandler.CreateReview)
	api.DELETE("/reviews/:id", reviewHandler.DeleteReview)
	api.GET("/stats", reviewHandler.GetStats)

	// Admin routes
	api.POST("/admin/login", adminHandler.Login)
	api.POST("/admin/change-password", adminHandler.ChangePassword)

	// Backup routes
	api.GET("/backup/reviews", backupHandler.DownloadReviews)

	// Secured routes (require a session token from login)
	secured := api.Group("/admin", echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(strings.TrimSpace(token))
		},
	}))
	secured.GET("/me", adminHandler.Me)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
