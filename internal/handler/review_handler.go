package handler

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"reviewboard/internal/errors"
	"reviewboard/internal/model"
	"reviewboard/internal/service"
)

// ReviewHandler handles review endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReviewRequest represents a review submission.
type CreateReviewRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Review string `json:"review"`
	Rating int    `json:"rating"`
}

// CreateReviewResponse represents a successful review submission.
type CreateReviewResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	ID      int           `json:"id"`
	Review  *model.Review `json:"review"`
}

// DeleteReviewResponse represents a successful review deletion.
type DeleteReviewResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ListReviews godoc
// @Summary List reviews, newest first
// @Tags reviews
// @Produce json
// @Param limit query int false "Maximum number of reviews to return"
// @Success 200 {array} model.Review
// @Failure 500 {object} errors.ErrorResponse
// @Router /reviews [get]
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	reviews, err := h.reviewService.List(c.Request().Context(), limit)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	return c.JSON(http.StatusOK, reviews)
}

// GetReview godoc
// @Summary Get review by id
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} model.Review
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /reviews/{id} [get]
func (h *ReviewHandler) GetReview(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: errors.ErrReviewNotFound.Error(),
			Code:  "REVIEW_NOT_FOUND",
		})
	}

	review, err := h.reviewService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, review)
}

// CreateReview godoc
// @Summary Submit a new review
// @Tags reviews
// @Accept json
// @Produce json
// @Param review body CreateReviewRequest true "Review payload"
// @Success 201 {object} CreateReviewResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /reviews [post]
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		msg := "invalid request body"
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) && typeErr.Field == "rating" {
			msg = "rating must be a number between 1 and 5"
		}
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: msg,
			Code:  "VALIDATION_ERROR",
		})
	}

	review, err := h.reviewService.Create(c.Request().Context(), service.CreateReviewInput{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Review: req.Review,
		Rating: req.Rating,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, CreateReviewResponse{
		Success: true,
		Message: "review submitted successfully",
		ID:      review.ID,
		Review:  review,
	})
}

// DeleteReview godoc
// @Summary Delete a review
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} DeleteReviewResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: errors.ErrReviewNotFound.Error(),
			Code:  "REVIEW_NOT_FOUND",
		})
	}

	if err := h.reviewService.Delete(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, DeleteReviewResponse{
		Success: true,
		Message: "review deleted successfully",
	})
}

// GetStats godoc
// @Summary Aggregate review statistics
// @Tags reviews
// @Produce json
// @Success 200 {object} model.Statistics
// @Failure 500 {object} errors.ErrorResponse
// @Router /stats [get]
func (h *ReviewHandler) GetStats(c echo.Context) error {
	stats, err := h.reviewService.Stats(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stats)
}
