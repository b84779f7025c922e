package review

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/listindia/listindia-api/internal/audit"
	domain "github.com/listindia/listindia-api/internal/domain/review"
	"github.com/listindia/listindia-api/internal/httperr"
	"github.com/listindia/listindia-api/internal/models"
	"github.com/listindia/listindia-api/internal/rating"
)

type UpdateReviewInput struct {
	ReviewID uint
	UserID   uint

	Rating  *int
	Comment *string
}

type UpdateReview struct {
	repo       domain.Repository
	aggregator *rating.Aggregator
	audit      *audit.Dispatcher
}

func NewUpdateReview(
	repo domain.Repository,
	aggregator *rating.Aggregator,
	audit *audit.Dispatcher,
) *UpdateReview {
	return &UpdateReview{
		repo:       repo,
		aggregator: aggregator,
		audit:      audit,
	}
}

func (uc *UpdateReview) Execute(
	ctx context.Context,
	in UpdateReviewInput,
) (*models.Review, error) {

	rv, err := uc.repo.GetReviewByID(ctx, in.ReviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("review_not_found")
		}
		return nil, err
	}

	// Only the author may change a review.
	if rv.UserID != in.UserID {
		return nil, httperr.ErrBusiness("not_review_owner")
	}

	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return nil, httperr.ErrBusiness("invalid_rating")
		}
		rv.Rating = *in.Rating
	}
	if in.Comment != nil {
		rv.Comment = *in.Comment
	}

	if err := uc.repo.UpdateReview(ctx, rv); err != nil {
		return nil, err
	}

	uc.aggregator.Recompute(ctx, rv.BusinessID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "review_updated",
		Entity:   "review",
		EntityID: &rv.ID,
	})

	return rv, nil
}
