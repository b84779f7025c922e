package review_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/listindia/listindia-api/internal/audit"
	domain "github.com/listindia/listindia-api/internal/domain/review"
	"github.com/listindia/listindia-api/internal/httperr"
	"github.com/listindia/listindia-api/internal/models"
	"github.com/listindia/listindia-api/internal/rating"
	ucReview "github.com/listindia/listindia-api/internal/usecase/review"
)

// fakeRepo is an in-memory domain.Repository. Its unique-pair check
// stands in for the store's composite index.
type fakeRepo struct {
	businesses map[uint]*models.Business
	reviews    map[uint]*models.Review
	nextID     uint
}

func newFakeRepo(businesses ...*models.Business) *fakeRepo {
	f := &fakeRepo{
		businesses: map[uint]*models.Business{},
		reviews:    map[uint]*models.Review{},
	}
	for _, b := range businesses {
		f.businesses[b.ID] = b
	}
	return f
}

func (f *fakeRepo) GetBusinessByID(_ context.Context, id uint) (*models.Business, error) {
	b, ok := f.businesses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (f *fakeRepo) UpdateBusinessAggregate(_ context.Context, id uint, r float64, c int) error {
	if b, ok := f.businesses[id]; ok {
		b.Rating = r
		b.ReviewCount = c
	}
	return nil
}

func (f *fakeRepo) GetReviewByID(_ context.Context, id uint) (*models.Review, error) {
	rv, ok := f.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rv
	return &cp, nil
}

func (f *fakeRepo) ListReviewsByBusiness(_ context.Context, businessID uint) ([]models.Review, error) {
	var out []models.Review
	for _, rv := range f.reviews {
		if rv.BusinessID == businessID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateReview(_ context.Context, rv *models.Review) error {
	for _, existing := range f.reviews {
		if existing.BusinessID == rv.BusinessID && existing.UserID == rv.UserID {
			return domain.ErrDuplicateReview
		}
	}
	f.nextID++
	rv.ID = f.nextID
	cp := *rv
	f.reviews[rv.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateReview(_ context.Context, rv *models.Review) error {
	cp := *rv
	f.reviews[rv.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteReview(_ context.Context, rv *models.Review) error {
	delete(f.reviews, rv.ID)
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

func newUseCases(repo *fakeRepo) (*ucReview.CreateReview, *ucReview.UpdateReview, *ucReview.DeleteReview) {
	agg := rating.NewAggregator(repo, zerolog.Nop())
	d := audit.NewDispatcher(audit.New(nil))
	return ucReview.NewCreateReview(repo, agg, d),
		ucReview.NewUpdateReview(repo, agg, d),
		ucReview.NewDeleteReview(repo, agg, d)
}

func approvedBusiness(id uint) *models.Business {
	return &models.Business{ID: id, Name: "Taj Spices", IsApproved: true}
}

func TestCreateReview_UpdatesAggregateBeforeReturning(t *testing.T) {
	repo := newFakeRepo(approvedBusiness(1))
	createUC, _, _ := newUseCases(repo)

	for i, r := range []int{5, 4, 3} {
		_, err := createUC.Execute(context.Background(), ucReview.CreateReviewInput{
			BusinessID: 1,
			UserID:     uint(i + 1),
			Rating:     r,
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 4.0, repo.businesses[1].Rating)
	assert.Equal(t, 3, repo.businesses[1].ReviewCount)
}

func TestCreateReview_DuplicatePair(t *testing.T) {
	repo := newFakeRepo(approvedBusiness(1))
	createUC, _, _ := newUseCases(repo)

	_, err := createUC.Execute(context.Background(), ucReview.CreateReviewInput{
		BusinessID: 1, UserID: 9, Rating: 5,
	})
	require.NoError(t, err)

	_, err = createUC.Execute(context.Background(), ucReview.CreateReviewInput{
		BusinessID: 1, UserID: 9, Rating: 1,
	})
	assert.True(t, httperr.IsBusiness(err, "duplicate_review"))

	// The first review and its aggregate are untouched.
	assert.Equal(t, 5.0, repo.businesses[1].Rating)
	assert.Equal(t, 1, repo.businesses[1].ReviewCount)
}

func TestCreateReview_Rejections(t *testing.T) {
	repo := newFakeRepo(
		approvedBusiness(1),
		&models.Business{ID: 2, Name: "Pending Place", IsApproved: false},
	)
	createUC, _, _ := newUseCases(repo)

	tests := []struct {
		name     string
		in       ucReview.CreateReviewInput
		wantCode string
	}{
		{
			name:     "missing_business",
			in:       ucReview.CreateReviewInput{BusinessID: 99, UserID: 1, Rating: 4},
			wantCode: "business_not_found",
		},
		{
			name:     "unapproved_business",
			in:       ucReview.CreateReviewInput{BusinessID: 2, UserID: 1, Rating: 4},
			wantCode: "business_not_found",
		},
		{
			name:     "rating_too_low",
			in:       ucReview.CreateReviewInput{BusinessID: 1, UserID: 1, Rating: 0},
			wantCode: "invalid_rating",
		},
		{
			name:     "rating_too_high",
			in:       ucReview.CreateReviewInput{BusinessID: 1, UserID: 1, Rating: 6},
			wantCode: "invalid_rating",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := createUC.Execute(context.Background(), tt.in)
			assert.True(t, httperr.IsBusiness(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestUpdateReview(t *testing.T) {
	repo := newFakeRepo(approvedBusiness(1))
	createUC, updateUC, _ := newUseCases(repo)

	rv, err := createUC.Execute(context.Background(), ucReview.CreateReviewInput{
		BusinessID: 1, UserID: 9, Rating: 2,
	})
	require.NoError(t, err)

	t.Run("owner_can_update_and_aggregate_follows", func(t *testing.T) {
		newRating := 4
		updated, err := updateUC.Execute(context.Background(), ucReview.UpdateReviewInput{
			ReviewID: rv.ID,
			UserID:   9,
			Rating:   &newRating,
		})
		require.NoError(t, err)

		assert.Equal(t, 4, updated.Rating)
		assert.Equal(t, 4.0, repo.businesses[1].Rating)
		assert.Equal(t, 1, repo.businesses[1].ReviewCount)
	})

	t.Run("non_owner_is_rejected", func(t *testing.T) {
		newRating := 1
		_, err := updateUC.Execute(context.Background(), ucReview.UpdateReviewInput{
			ReviewID: rv.ID,
			UserID:   1000,
			Rating:   &newRating,
		})
		assert.True(t, httperr.IsBusiness(err, "not_review_owner"))
	})

	t.Run("missing_review", func(t *testing.T) {
		_, err := updateUC.Execute(context.Background(), ucReview.UpdateReviewInput{
			ReviewID: 777,
			UserID:   9,
		})
		assert.True(t, httperr.IsBusiness(err, "review_not_found"))
	})
}

func TestDeleteReview(t *testing.T) {
	repo := newFakeRepo(approvedBusiness(1))
	createUC, _, deleteUC := newUseCases(repo)

	var ids []uint
	for i, r := range []int{5, 4, 3} {
		rv, err := createUC.Execute(context.Background(), ucReview.CreateReviewInput{
			BusinessID: 1, UserID: uint(i + 1), Rating: r,
		})
		require.NoError(t, err)
		ids = append(ids, rv.ID)
	}

	t.Run("non_owner_cannot_delete", func(t *testing.T) {
		err := deleteUC.Execute(context.Background(), ids[2], 999)
		assert.True(t, httperr.IsBusiness(err, "not_review_owner"))
	})

	t.Run("deleting_recomputes", func(t *testing.T) {
		// Removing the 3-star review leaves [5,4].
		require.NoError(t, deleteUC.Execute(context.Background(), ids[2], 3))

		assert.Equal(t, 4.5, repo.businesses[1].Rating)
		assert.Equal(t, 2, repo.businesses[1].ReviewCount)
	})

	t.Run("deleting_last_reviews_resets_aggregate", func(t *testing.T) {
		require.NoError(t, deleteUC.Execute(context.Background(), ids[0], 1))
		require.NoError(t, deleteUC.Execute(context.Background(), ids[1], 2))

		assert.Equal(t, 0.0, repo.businesses[1].Rating)
		assert.Equal(t, 0, repo.businesses[1].ReviewCount)
	})
}
