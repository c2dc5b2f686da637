package handler

import (
	"github.com/labstack/echo/v4"

	"reviewboard/internal/errors"
	"reviewboard/internal/repository"
	"reviewboard/internal/store"
)

// BackupHandler serves table file downloads.
type BackupHandler struct {
	store *store.Store
}

// NewBackupHandler creates a new backup handler.
func NewBackupHandler(st *store.Store) *BackupHandler {
	return &BackupHandler{store: st}
}

// DownloadReviews godoc
// @Summary Download the reviews table as a backup
// @Tags backup
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 404 {object} errors.ErrorResponse
// @Router /backup/reviews [get]
func (h *BackupHandler) DownloadReviews(c echo.Context) error {
	if !h.store.Exists(repository.ReviewsTable) {
		httpErr := errors.MapErrorToHTTP(errors.ErrBackupUnavailable)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.Attachment(h.store.Path(repository.ReviewsTable), repository.ReviewsTable+".xlsx")
}
