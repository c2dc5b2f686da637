package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reviewboard/internal/auth"
	"reviewboard/internal/errors"
	"reviewboard/internal/service"
)

// AdminHandler handles admin authentication endpoints.
type AdminHandler struct {
	adminService service.AdminService
	jwtService   *auth.JWTService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService, jwtService *auth.JWTService) *AdminHandler {
	return &AdminHandler{adminService: adminService, jwtService: jwtService}
}

// LoginRequest represents an admin login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// ChangePasswordRequest represents a password change request.
type ChangePasswordRequest struct {
	Username    string `json:"username" validate:"required"`
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// ChangePasswordResponse represents a successful password change.
type ChangePasswordResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MeResponse represents the authenticated admin identity.
type MeResponse struct {
	Username string `json:"username"`
}

// Login godoc
// @Summary Admin login
// @Tags admin
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/login [post]
func (h *AdminHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "VALIDATION_ERROR",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "username and password required",
			Code:  "VALIDATION_ERROR",
		})
	}

	admin, err := h.adminService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	token, err := h.jwtService.GenerateAccessToken(admin.Username)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Success:  true,
		Message:  "login successful",
		Username: admin.Username,
		Token:    token,
	})
}

// ChangePassword godoc
// @Summary Change admin password
// @Tags admin
// @Accept json
// @Produce json
// @Param payload body ChangePasswordRequest true "Password change payload"
// @Success 200 {object} ChangePasswordResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/change-password [post]
func (h *AdminHandler) ChangePassword(c echo.Context) error {
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "VALIDATION_ERROR",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "all fields are required",
			Code:  "VALIDATION_ERROR",
		})
	}

	if err := h.adminService.ChangePassword(c.Request().Context(), req.Username, req.OldPassword, req.NewPassword); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, ChangePasswordResponse{
		Success: true,
		Message: "password changed successfully",
	})
}

// Me godoc
// @Summary Current admin session
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MeResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/me [get]
func (h *AdminHandler) Me(c echo.Context) error {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "invalid token",
			Code:  "INVALID_TOKEN",
		})
	}
	return c.JSON(http.StatusOK, MeResponse{Username: claims.Username})
}
