package review

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/listindia/listindia-api/internal/audit"
	domain "github.com/listindia/listindia-api/internal/domain/review"
	"github.com/listindia/listindia-api/internal/httperr"
	"github.com/listindia/listindia-api/internal/rating"
)

type DeleteReview struct {
	repo       domain.Repository
	aggregator *rating.Aggregator
	audit      *audit.Dispatcher
}

func NewDeleteReview(
	repo domain.Repository,
	aggregator *rating.Aggregator,
	audit *audit.Dispatcher,
) *DeleteReview {
	return &DeleteReview{
		repo:       repo,
		aggregator: aggregator,
		audit:      audit,
	}
}

func (uc *DeleteReview) Execute(
	ctx context.Context,
	reviewID uint,
	userID uint,
) error {

	rv, err := uc.repo.GetReviewByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("review_not_found")
		}
		return err
	}

	if rv.UserID != userID {
		return httperr.ErrBusiness("not_review_owner")
	}

	if err := uc.repo.DeleteReview(ctx, rv); err != nil {
		return err
	}

	uc.aggregator.Recompute(ctx, rv.BusinessID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "review_deleted",
		Entity:   "review",
		EntityID: &rv.ID,
	})

	return nil
}
