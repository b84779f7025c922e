package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/listindia/listindia-api/internal/domain/review"
	"github.com/listindia/listindia-api/internal/models"
)

// Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *ReviewGormRepository) GetBusinessByID(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var biz models.Business
	if err := r.db.WithContext(ctx).First(&biz, id).Error; err != nil {
		return nil, err
	}
	return &biz, nil
}

func (r *ReviewGormRepository) UpdateBusinessAggregate(
	ctx context.Context,
	businessID uint,
	rating float64,
	reviewCount int,
) error {

	// Single UPDATE touching only the derived columns. Zero rows matched
	// means the business raced a delete; that is not a failure.
	return r.db.WithContext(ctx).
		Model(&models.Business{}).
		Where("id = ?", businessID).
		Updates(map[string]any{
			"rating":       rating,
			"review_count": reviewCount,
		}).Error
}

// --------------------------------------------------
// Review
// --------------------------------------------------

func (r *ReviewGormRepository) GetReviewByID(
	ctx context.Context,
	id uint,
) (*models.Review, error) {

	var rv models.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewGormRepository) ListReviewsByBusiness(
	ctx context.Context,
	businessID uint,
) ([]models.Review, error) {

	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewGormRepository) CreateReview(
	ctx context.Context,
	rv *models.Review,
) error {

	err := r.db.WithContext(ctx).Create(rv).Error
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrDuplicateReview
	}
	return err
}

func (r *ReviewGormRepository) UpdateReview(
	ctx context.Context,
	rv *models.Review,
) error {
	return r.db.WithContext(ctx).Save(rv).Error
}

func (r *ReviewGormRepository) DeleteReview(
	ctx context.Context,
	rv *models.Review,
) error {
	return r.db.WithContext(ctx).Delete(rv).Error
}

// Compile-time check
var _ domain.Repository = (*ReviewGormRepository)(nil)
