package rating_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listindia/listindia-api/internal/models"
	"github.com/listindia/listindia-api/internal/rating"
)

type fakeStore struct {
	reviews   []models.Review
	listErr   error
	updateErr error

	updates    int
	lastRating float64
	lastCount  int
}

func (f *fakeStore) ListReviewsByBusiness(_ context.Context, _ uint) ([]models.Review, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.reviews, nil
}

func (f *fakeStore) UpdateBusinessAggregate(_ context.Context, _ uint, r float64, c int) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates++
	f.lastRating = r
	f.lastCount = c
	return nil
}

func reviewsWithRatings(ratings ...int) []models.Review {
	out := make([]models.Review, 0, len(ratings))
	for i, r := range ratings {
		out = append(out, models.Review{ID: uint(i + 1), BusinessID: 1, UserID: uint(i + 1), Rating: r})
	}
	return out
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name       string
		ratings    []int
		wantRating float64
		wantCount  int
	}{
		{"empty_set", nil, 0.0, 0},
		{"single_review", []int{5}, 5.0, 1},
		{"exact_mean", []int{5, 4, 3}, 4.0, 3},
		{"half_step", []int{5, 4}, 4.5, 2},
		{"rounds_up", []int{2, 3, 3}, 2.7, 3},
		{"rounds_down", []int{1, 1, 2}, 1.3, 3},
		{"all_minimum", []int{1, 1, 1}, 1.0, 3},
		{"all_maximum", []int{5, 5, 5, 5}, 5.0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotRating, gotCount := rating.Summarize(reviewsWithRatings(tt.ratings...))
			assert.Equal(t, tt.wantRating, gotRating)
			assert.Equal(t, tt.wantCount, gotCount)
		})
	}
}

func TestAggregator_Recompute(t *testing.T) {
	store := &fakeStore{reviews: reviewsWithRatings(5, 4, 3)}
	agg := rating.NewAggregator(store, zerolog.Nop())

	agg.Recompute(context.Background(), 1)

	require.Equal(t, 1, store.updates)
	assert.Equal(t, 4.0, store.lastRating)
	assert.Equal(t, 3, store.lastCount)

	// Deleting the 3-star review moves the mean to 4.5.
	store.reviews = reviewsWithRatings(5, 4)
	agg.Recompute(context.Background(), 1)

	assert.Equal(t, 4.5, store.lastRating)
	assert.Equal(t, 2, store.lastCount)

	// No reviews resets the aggregate.
	store.reviews = nil
	agg.Recompute(context.Background(), 1)

	assert.Equal(t, 0.0, store.lastRating)
	assert.Equal(t, 0, store.lastCount)
}

func TestAggregator_Recompute_Idempotent(t *testing.T) {
	store := &fakeStore{reviews: reviewsWithRatings(4, 2, 5)}
	agg := rating.NewAggregator(store, zerolog.Nop())

	agg.Recompute(context.Background(), 1)
	first, firstCount := store.lastRating, store.lastCount

	agg.Recompute(context.Background(), 1)

	assert.Equal(t, first, store.lastRating)
	assert.Equal(t, firstCount, store.lastCount)
	assert.Equal(t, 2, store.updates)
}

func TestAggregator_Recompute_FailuresAreSwallowed(t *testing.T) {
	t.Run("list_failure_writes_nothing", func(t *testing.T) {
		store := &fakeStore{listErr: errors.New("connection reset")}
		agg := rating.NewAggregator(store, zerolog.Nop())

		// Must not panic or write a partial aggregate.
		agg.Recompute(context.Background(), 1)

		assert.Equal(t, 0, store.updates)
	})

	t.Run("write_failure_does_not_propagate", func(t *testing.T) {
		store := &fakeStore{
			reviews:   reviewsWithRatings(3),
			updateErr: errors.New("connection reset"),
		}
		agg := rating.NewAggregator(store, zerolog.Nop())

		agg.Recompute(context.Background(), 1)

		assert.Equal(t, 0, store.updates)
	})
}
