package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	errs "reviewboard/internal/errors"
	"reviewboard/internal/model"
	"reviewboard/internal/service"
)

// MockReviewService is a mock implementation of service.ReviewService.
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) List(ctx context.Context, limit int) ([]model.Review, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewService) Get(ctx context.Context, id int) (*model.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) Create(ctx context.Context, input service.CreateReviewInput) (*model.Review, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewService) Stats(ctx context.Context) (*model.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Statistics), args.Error(1)
}

func newReviewTestServer(svc service.ReviewService) *echo.Echo {
	e := echo.New()
	h := NewReviewHandler(svc)
	e.GET("/api/reviews", h.ListReviews)
	e.GET("/api/reviews/:id", h.GetReview)
	e.POST("/api/reviews", h.CreateReview)
	e.DELETE("/api/reviews/:id", h.DeleteReview)
	e.GET("/api/stats", h.GetStats)
	return e
}

func TestReviewHandler_ListPassesLimit(t *testing.T) {
	mockSvc := new(MockReviewService)
	mockSvc.On("List", mock.Anything, 2).Return([]model.Review{
		{ID: 2, Rating: 5, CreatedAt: time.Now().UTC()},
		{ID: 1, Rating: 4, CreatedAt: time.Now().UTC().Add(-time.Hour)},
	}, nil)
	e := newReviewTestServer(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/reviews?limit=2", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got []model.Review
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
	mockSvc.AssertExpectations(t)
}

func TestReviewHandler_ListEmptyReturnsArray(t *testing.T) {
	mockSvc := new(MockReviewService)
	mockSvc.On("List", mock.Anything, 0).Return([]model.Review{}, nil)
	e := newReviewTestServer(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestReviewHandler_StorageFailureMapsTo500(t *testing.T) {
	mockSvc := new(MockReviewService)
	mockSvc.On("List", mock.Anything, 0).
		Return(nil, fmt.Errorf("read table reviews: %w", assert.AnError))
	e := newReviewTestServer(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp errs.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INTERNAL_ERROR", resp.Code)
	// internal details must not leak to the client
	assert.Equal(t, "internal server error", resp.Error)
}

func TestReviewHandler_GetNotFound(t *testing.T) {
	mockSvc := new(MockReviewService)
	mockSvc.On("Get", mock.Anything, 42).Return(nil, errs.ErrReviewNotFound)
	e := newReviewTestServer(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/reviews/42", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReviewHandler_GetNonNumericID(t *testing.T) {
	mockSvc := new(MockReviewService)
	e := newReviewTestServer(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/reviews/abc", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockSvc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestReviewHandler_CreateSuccess(t *testing.T) {
	created := &model.Review{
		ID: 7, Name: "Alice", Email: "a@example.com", Phone: "555",
		Review: "nice", Rating: 5, CreatedAt: time.Now().UTC(),
	}
	mockSvc := new(MockReviewService)
	mockSvc.On("Create", mock.Anything, service.CreateReviewInput{
		Name: "Alice", Email: "a@example.com", Phone: "555", Review: "nice", Rating: 5,
	}).Return(created, nil)
	e := newReviewTestServer(mockSvc)

	body := `{"name":"Alice","email":"a@example.com","phone":"555","review":"nice","rating":5}`
	req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp CreateReviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 7, resp.ID)
	require.NotNil(t, resp.Review)
	assert.Equal(t, "Alice", resp.Review.Name)
	mockSvc.AssertExpectations(t)
}

func TestReviewHandler_CreateValidationError(t *testing.T) {
	mockSvc := new(MockReviewService)
	mockSvc.On("Create", mock.Anything, mock.Anything).
		Return(nil, errs.MissingFields([]string{"name", "rating"}))
	e := newReviewTestServer(mockSvc)

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(`{"email":"a@example.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errs.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "name")
	assert.Contains(t, resp.Error, "rating")
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
}

func TestReviewHandler_CreateNonNumericRating(t *testing.T) {
	mockSvc := new(MockReviewService)
	e := newReviewTestServer(mockSvc)

	body := `{"name":"Alice","email":"a@example.com","phone":"555","review":"nice","rating":"lots"}`
	req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errs.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "rating must be a number between 1 and 5", resp.Error)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewHandler_CreateMalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "broken json", body: `{"name":`},
		{name: "wrong type on non-rating field", body: `{"name":7,"email":"a@example.com","phone":"555","review":"ok","rating":5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockReviewService)
			e := newReviewTestServer(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp errs.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			// the rating message is reserved for rating failures
			assert.Equal(t, "invalid request body", resp.Error)
			mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestReviewHandler_DeleteSuccess(t *testing.T) {
	mockSvc := new(MockReviewService)
	mockSvc.On("Delete", mock.Anything, 3).Return(nil)
	e := newReviewTestServer(mockSvc)

	req := httptest.NewRequest(http.MethodDelete, "/api/reviews/3", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp DeleteReviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestReviewHandler_Stats(t *testing.T) {
	mockSvc := new(MockReviewService)
	mockSvc.On("Stats", mock.Anything).Return(&model.Statistics{
		TotalReviews:  2,
		AverageRating: 4.5,
		RatingDistribution: map[string]int{
			"1_star": 0, "2_star": 0, "3_star": 0, "4_star": 1, "5_star": 1,
		},
		TodayReviews: 1,
	}, nil)
	e := newReviewTestServer(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got model.Statistics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 2, got.TotalReviews)
	assert.Equal(t, 4.5, got.AverageRating)
	assert.Len(t, got.RatingDistribution, 5)
}
