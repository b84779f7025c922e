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

// ======================================================
// INPUT
// ======================================================

type CreateReviewInput struct {
	BusinessID uint
	UserID     uint

	Rating  int
	Comment string
}

// ======================================================
// USE CASE
// ======================================================

type CreateReview struct {
	repo       domain.Repository
	aggregator *rating.Aggregator
	audit      *audit.Dispatcher
}

func NewCreateReview(
	repo domain.Repository,
	aggregator *rating.Aggregator,
	audit *audit.Dispatcher,
) *CreateReview {
	return &CreateReview{
		repo:       repo,
		aggregator: aggregator,
		audit:      audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateReview) Execute(
	ctx context.Context,
	in CreateReviewInput,
) (*models.Review, error) {

	if in.Rating < 1 || in.Rating > 5 {
		return nil, httperr.ErrBusiness("invalid_rating")
	}

	// Only approved listings accept reviews.
	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("business_not_found")
		}
		return nil, err
	}
	if !biz.IsApproved {
		return nil, httperr.ErrBusiness("business_not_found")
	}

	rv := &models.Review{
		BusinessID: in.BusinessID,
		UserID:     in.UserID,
		Rating:     in.Rating,
		Comment:    in.Comment,
	}

	// The unique (business_id, user_id) index arbitrates concurrent
	// duplicates; the store either inserts or rejects atomically.
	if err := uc.repo.CreateReview(ctx, rv); err != nil {
		if errors.Is(err, domain.ErrDuplicateReview) {
			return nil, httperr.ErrBusiness("duplicate_review")
		}
		return nil, err
	}

	// Must finish before the response so the caller observes an
	// aggregate consistent with the review it just wrote.
	uc.aggregator.Recompute(ctx, in.BusinessID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "review_created",
		Entity:   "review",
		EntityID: &rv.ID,
	})

	return rv, nil
}
