package review

import (
	"context"
	"errors"

	"github.com/listindia/listindia-api/internal/models"
)

// ErrDuplicateReview is returned by CreateReview when the store's unique
// (business_id, user_id) constraint rejects the insert.
var ErrDuplicateReview = errors.New("duplicate review")

type Repository interface {
	// -------- Business --------
	GetBusinessByID(
		ctx context.Context,
		id uint,
	) (*models.Business, error)

	// UpdateBusinessAggregate writes the derived rating fields. A missing
	// business is not an error; the update simply matches no row.
	UpdateBusinessAggregate(
		ctx context.Context,
		businessID uint,
		rating float64,
		reviewCount int,
	) error

	// -------- Review --------
	GetReviewByID(
		ctx context.Context,
		id uint,
	) (*models.Review, error)

	ListReviewsByBusiness(
		ctx context.Context,
		businessID uint,
	) ([]models.Review, error)

	CreateReview(
		ctx context.Context,
		rv *models.Review,
	) error

	UpdateReview(
		ctx context.Context,
		rv *models.Review,
	) error

	DeleteReview(
		ctx context.Context,
		rv *models.Review,
	) error
}
