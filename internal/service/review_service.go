package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	errs "reviewboard/internal/errors"
	"reviewboard/internal/model"
	"reviewboard/internal/repository"
)

// CreateReviewInput carries the fields of a review submission.
type CreateReviewInput struct {
	Name   string
	Email  string
	Phone  string
	Review string
	Rating int
}

// ReviewService exposes domain operations on reviews.
type ReviewService interface {
	List(ctx context.Context, limit int) ([]model.Review, error)
	Get(ctx context.Context, id int) (*model.Review, error)
	Create(ctx context.Context, input CreateReviewInput) (*model.Review, error)
	Delete(ctx context.Context, id int) error
	Stats(ctx context.Context) (*model.Statistics, error)
}

type reviewService struct {
	repo repository.ReviewRepository
}

// NewReviewService builds a ReviewService over the repository.
func NewReviewService(repo repository.ReviewRepository) ReviewService {
	return &reviewService{repo: repo}
}

// List returns reviews newest first. A positive limit truncates the result.
func (s *reviewService) List(ctx context.Context, limit int) ([]model.Review, error) {
	reviews, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	if limit > 0 && limit < len(reviews) {
		reviews = reviews[:limit]
	}
	return reviews, nil
}

func (s *reviewService) Get(ctx context.Context, id int) (*model.Review, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates the submission, stamps it and persists it. All missing
// fields are reported together; a zero rating counts as missing, any other
// out-of-range rating is rejected separately.
func (s *reviewService) Create(ctx context.Context, input CreateReviewInput) (*model.Review, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Review = strings.TrimSpace(input.Review)

	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"name", input.Name},
		{"email", input.Email},
		{"phone", input.Phone},
		{"review", input.Review},
	} {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	if input.Rating == 0 {
		missing = append(missing, "rating")
	}
	if len(missing) > 0 {
		return nil, errs.MissingFields(missing)
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errs.InvalidRating()
	}

	review := &model.Review{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Review:    input.Review,
		Rating:    input.Rating,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, review); err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// Stats aggregates the whole table. The distribution always carries all five
// star buckets, and the average is rounded to two decimal places.
func (s *reviewService) Stats(ctx context.Context) (*model.Statistics, error) {
	reviews, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	distribution := make(map[string]int, 5)
	for star := 1; star <= 5; star++ {
		distribution[fmt.Sprintf("%d_star", star)] = 0
	}

	stats := &model.Statistics{
		TotalReviews:       len(reviews),
		RatingDistribution: distribution,
	}

	today := time.Now().UTC().Format(time.DateOnly)
	sum := 0
	for _, review := range reviews {
		sum += review.Rating
		distribution[fmt.Sprintf("%d_star", review.Rating)]++
		if review.CreatedAt.UTC().Format(time.DateOnly) == today {
			stats.TodayReviews++
		}
	}
	if len(reviews) > 0 {
		avg := float64(sum) / float64(len(reviews))
		stats.AverageRating = math.Round(avg*100) / 100
	}
	return stats, nil
}
