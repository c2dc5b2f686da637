package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	errs "reviewboard/internal/errors"
	"reviewboard/internal/model"
	"reviewboard/internal/store"
)

// ReviewsTable is the table name backing customer reviews.
const ReviewsTable = "reviews"

var reviewHeader = []string{"id", "name", "email", "phone", "review", "rating", "created_at"}

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	Init(ctx context.Context) error
	List(ctx context.Context) ([]model.Review, error)
	FindByID(ctx context.Context, id int) (*model.Review, error)
	Insert(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id int) error
}

type reviewRepository struct {
	store *store.Store
}

// NewReviewRepository builds a store-backed repository.
func NewReviewRepository(st *store.Store) ReviewRepository {
	return &reviewRepository{store: st}
}

// Init creates an empty reviews table on first run.
func (r *reviewRepository) Init(ctx context.Context) error {
	if r.store.Exists(ReviewsTable) {
		return nil
	}
	return r.store.Write(ReviewsTable, reviewHeader, nil)
}

func (r *reviewRepository) List(ctx context.Context) ([]model.Review, error) {
	rows, err := r.store.Read(ReviewsTable)
	if err != nil {
		return nil, err
	}
	reviews := make([]model.Review, 0, len(rows))
	for _, row := range rows {
		review, err := decodeReview(row)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id int) (*model.Review, error) {
	reviews, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range reviews {
		if reviews[i].ID == id {
			return &reviews[i], nil
		}
	}
	return nil, errs.ErrReviewNotFound
}

// Insert appends the review and assigns its id inside the store's locked
// update, so concurrent inserts never mint the same id.
func (r *reviewRepository) Insert(ctx context.Context, review *model.Review) error {
	return r.store.Update(ReviewsTable, reviewHeader, func(rows [][]string) ([][]string, error) {
		next := 1
		for _, row := range rows {
			if len(row) == 0 {
				continue
			}
			id, err := strconv.Atoi(row[0])
			if err != nil {
				return nil, fmt.Errorf("reviews table: malformed id %q", row[0])
			}
			if id >= next {
				next = id + 1
			}
		}
		review.ID = next
		return append(rows, encodeReview(review)), nil
	})
}

func (r *reviewRepository) Delete(ctx context.Context, id int) error {
	want := strconv.Itoa(id)
	return r.store.Update(ReviewsTable, reviewHeader, func(rows [][]string) ([][]string, error) {
		kept := make([][]string, 0, len(rows))
		found := false
		for _, row := range rows {
			if len(row) > 0 && row[0] == want {
				found = true
				continue
			}
			kept = append(kept, row)
		}
		if !found {
			return nil, errs.ErrReviewNotFound
		}
		return kept, nil
	})
}

func encodeReview(r *model.Review) []string {
	return []string{
		strconv.Itoa(r.ID),
		r.Name,
		r.Email,
		r.Phone,
		r.Review,
		strconv.Itoa(r.Rating),
		r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func decodeReview(row []string) (model.Review, error) {
	if len(row) < len(reviewHeader) {
		return model.Review{}, fmt.Errorf("reviews table: malformed row %v", row)
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return model.Review{}, fmt.Errorf("reviews table: malformed id %q", row[0])
	}
	rating, err := strconv.Atoi(row[5])
	if err != nil {
		return model.Review{}, fmt.Errorf("reviews table: malformed rating %q", row[5])
	}
	createdAt, err := time.Parse(time.RFC3339, row[6])
	if err != nil {
		return model.Review{}, fmt.Errorf("reviews table: malformed created_at %q", row[6])
	}
	return model.Review{
		ID:        id,
		Name:      row[1],
		Email:     row[2],
		Phone:     row[3],
		Review:    row[4],
		Rating:    rating,
		CreatedAt: createdAt,
	}, nil
}
