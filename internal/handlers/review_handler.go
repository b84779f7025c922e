package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/listindia/listindia-api/internal/httperr"
	"github.com/listindia/listindia-api/internal/httpresp"
	"github.com/listindia/listindia-api/internal/middleware"
	"github.com/listindia/listindia-api/internal/models"
	ucReview "github.com/listindia/listindia-api/internal/usecase/review"
)

type ReviewHandler struct {
	db *gorm.DB

	createUC *ucReview.CreateReview
	updateUC *ucReview.UpdateReview
	deleteUC *ucReview.DeleteReview
}

func NewReviewHandler(
	db *gorm.DB,
	createUC *ucReview.CreateReview,
	updateUC *ucReview.UpdateReview,
	deleteUC *ucReview.DeleteReview,
) *ReviewHandler {
	return &ReviewHandler{
		db:       db,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

// --------- Requests ---------

type CreateReviewRequest struct {
	BusinessID uint   `json:"business_id" binding:"required"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment" binding:"omitempty,max=1000"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=1000"`
}

// --------- Mutations ---------

func (h *ReviewHandler) Create(c *gin.Context) {
	ident, ok := middleware.Identity(c)
	if !ok {
		httperr.Unauthorized(c, "token_required", "access token required")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	rv, err := h.createUC.Execute(c.Request.Context(), ucReview.CreateReviewInput{
		BusinessID: req.BusinessID,
		UserID:     ident.UserID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	})
	if err != nil {
		writeReviewError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": rv})
}

func (h *ReviewHandler) Update(c *gin.Context) {
	ident, ok := middleware.Identity(c)
	if !ok {
		httperr.Unauthorized(c, "token_required", "access token required")
		return
	}

	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_review_id", "invalid review ID format")
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	rv, err := h.updateUC.Execute(c.Request.Context(), ucReview.UpdateReviewInput{
		ReviewID: id,
		UserID:   ident.UserID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		writeReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": rv})
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	ident, ok := middleware.Identity(c)
	if !ok {
		httperr.Unauthorized(c, "token_required", "access token required")
		return
	}

	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_review_id", "invalid review ID format")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id, ident.UserID); err != nil {
		writeReviewError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func writeReviewError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "duplicate_review"):
		httperr.Conflict(c, "duplicate_review", "you have already reviewed this business")
	case httperr.IsBusiness(err, "business_not_found"):
		httperr.NotFound(c, "business_not_found", "business not found or not approved")
	case httperr.IsBusiness(err, "review_not_found"):
		httperr.NotFound(c, "review_not_found", "review not found")
	case httperr.IsBusiness(err, "not_review_owner"):
		httperr.Forbidden(c, "not_review_owner", "you can only modify your own reviews")
	case httperr.IsBusiness(err, "invalid_rating"):
		httperr.BadRequest(c, "invalid_rating", "rating must be between 1 and 5")
	default:
		httperr.Unavailable(c, "store_unavailable", "please try again later")
	}
}

// --------- Reads ---------

var reviewSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"rating":     true,
}

func (h *ReviewHandler) ListByBusiness(c *gin.Context) {
	businessID, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_business_id", "invalid business ID format")
		return
	}

	limit, offset := pagination(c, 20, 50)

	sort := c.DefaultQuery("sort", "created_at")
	order := strings.ToUpper(c.DefaultQuery("order", "DESC"))
	if !reviewSortFields[sort] || (order != "ASC" && order != "DESC") {
		sort, order = "created_at", "DESC"
	}

	q := h.db.Model(&models.Review{}).Where("business_id = ?", businessID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Unavailable(c, "store_unavailable", "please try again later")
		return
	}

	var reviews []models.Review
	if err := q.Order(sort + " " + order).
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		httperr.Unavailable(c, "store_unavailable", "please try again later")
		return
	}

	httpresp.Page(c, reviews, httpresp.NewPagination(total, limit, offset))
}

type starCount struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

// Stats returns the review count, average and per-star distribution for a
// business.
func (h *ReviewHandler) Stats(c *gin.Context) {
	businessID, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_business_id", "invalid business ID format")
		return
	}

	var biz models.Business
	if err := h.db.Select("id", "rating", "review_count").
		First(&biz, businessID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "business_not_found", "business not found")
			return
		}
		httperr.Unavailable(c, "store_unavailable", "please try again later")
		return
	}

	var distribution []starCount
	if err := h.db.Model(&models.Review{}).
		Select("rating, COUNT(*) AS count").
		Where("business_id = ?", businessID).
		Group("rating").
		Order("rating DESC").
		Scan(&distribution).Error; err != nil {
		httperr.Unavailable(c, "store_unavailable", "please try again later")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business_id":  biz.ID,
		"rating":       biz.Rating,
		"review_count": biz.ReviewCount,
		"distribution": distribution,
	})
}

func (h *ReviewHandler) MyReviews(c *gin.Context) {
	ident, ok := middleware.Identity(c)
	if !ok {
		httperr.Unauthorized(c, "token_required", "access token required")
		return
	}

	limit, offset := pagination(c, 20, 50)

	q := h.db.Model(&models.Review{}).Where("user_id = ?", ident.UserID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Unavailable(c, "store_unavailable", "please try again later")
		return
	}

	var reviews []models.Review
	if err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		httperr.Unavailable(c, "store_unavailable", "please try again later")
		return
	}

	httpresp.Page(c, reviews, httpresp.NewPagination(total, limit, offset))
}
