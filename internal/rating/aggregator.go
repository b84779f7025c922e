package rating

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/listindia/listindia-api/internal/models"
)

// Store is the slice of the review repository the aggregator needs.
type Store interface {
	ListReviewsByBusiness(ctx context.Context, businessID uint) ([]models.Review, error)

	UpdateBusinessAggregate(ctx context.Context, businessID uint, rating float64, reviewCount int) error
}

// Aggregator keeps a business's rating and review_count in step with its
// review set. It is called synchronously after every committed review
// mutation, before the response goes out.
type Aggregator struct {
	store  Store
	logger zerolog.Logger
}

func NewAggregator(store Store, logger zerolog.Logger) *Aggregator {
	return &Aggregator{store: store, logger: logger}
}

// Recompute re-reads the full review set and writes the derived fields.
// It never reports failure to the caller: the review mutation that
// triggered it has already committed and must not be rolled back by a
// failed aggregate refresh. A failed or partial read writes nothing, so
// the previous aggregate stays in place.
func (a *Aggregator) Recompute(ctx context.Context, businessID uint) {
	reviews, err := a.store.ListReviewsByBusiness(ctx, businessID)
	if err != nil {
		a.logger.Error().
			Err(err).
			Uint("business_id", businessID).
			Msg("rating recompute: loading reviews failed")
		return
	}

	avg, count := Summarize(reviews)

	if err := a.store.UpdateBusinessAggregate(ctx, businessID, avg, count); err != nil {
		a.logger.Error().
			Err(err).
			Uint("business_id", businessID).
			Msg("rating recompute: aggregate write failed")
	}
}

// Summarize computes the mean rating rounded to one decimal place and the
// review count. An empty set yields 0.0 and 0.
func Summarize(reviews []models.Review) (float64, int) {
	if len(reviews) == 0 {
		return 0.0, 0
	}

	sum := 0
	for _, rv := range reviews {
		sum += rv.Rating
	}

	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10, len(reviews)
}
