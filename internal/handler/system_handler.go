package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"reviewboard/internal/repository"
	"reviewboard/internal/store"
)

// SystemHandler handles liveness and informational endpoints.
type SystemHandler struct {
	store *store.Store
}

// NewSystemHandler creates a new system handler.
func NewSystemHandler(st *store.Store) *SystemHandler {
	return &SystemHandler{store: st}
}

// HealthResponse reports service health and table file presence.
type HealthResponse struct {
	Status    string          `json:"status"`
	Message   string          `json:"message"`
	Storage   string          `json:"storage"`
	Files     map[string]bool `json:"files"`
	Timestamp time.Time       `json:"timestamp"`
}

// Index returns API metadata and the endpoint map.
func (h *SystemHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Review Board API",
		"version": "2.0",
		"storage": "excel",
		"status":  "online",
		"endpoints": map[string]string{
			"GET /api/health":                 "Health check",
			"GET /api/reviews":                "Get all reviews",
			"GET /api/reviews?limit=5":        "Get limited reviews",
			"POST /api/reviews":               "Submit a new review",
			"GET /api/reviews/:id":            "Get specific review",
			"DELETE /api/reviews/:id":         "Delete a review",
			"GET /api/stats":                  "Get statistics",
			"POST /api/admin/login":           "Admin login",
			"POST /api/admin/change-password": "Change admin password",
			"GET /api/backup/reviews":         "Download reviews backup",
		},
	})
}

// AdminInfo points callers at the admin dashboard and login route.
func (h *SystemHandler) AdminInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Admin Dashboard",
		"login":   "POST /api/admin/login with username and password",
	})
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *SystemHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Message: "API is running correctly",
		Storage: "excel",
		Files: map[string]bool{
			repository.ReviewsTable: h.store.Exists(repository.ReviewsTable),
			repository.AdminsTable:  h.store.Exists(repository.AdminsTable),
		},
		Timestamp: time.Now().UTC(),
	})
}
