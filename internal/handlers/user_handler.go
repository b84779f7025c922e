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
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"required,min=2,max=50"`
	LastName  string `json:"last_name" binding:"required,min=2,max=50"`
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	ident, ok := middleware.Identity(c)
	if !ok {
		httperr.Unauthorized(c, "token_required", "access token required")
		return
	}

	var user models.User
	if err := h.db.First(&user, ident.UserID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "user not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	ident, ok := middleware.Identity(c)
	if !ok {
		httperr.Unauthorized(c, "token_required", "access token required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var user models.User
	if err := h.db.First(&user, ident.UserID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "user not found")
		return
	}

	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "could not update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// MyBusinesses lists the listings owned by the caller, approved or not.
func (h *UserHandler) MyBusinesses(c *gin.Context) {
	ident, ok := middleware.Identity(c)
	if !ok {
		httperr.Unauthorized(c, "token_required", "access token required")
		return
	}

	limit, offset := pagination(c, 20, 50)

	var (
		businesses []models.Business
		total      int64
	)

	q := h.db.Model(&models.Business{}).Where("owner_id = ?", ident.UserID)
	if err := q.Count(&total).Error; err != nil {
		httperr.Unavailable(c, "store_unavailable", "please try again later")
		return
	}

	if err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&businesses).Error; err != nil {
		httperr.Unavailable(c, "store_unavailable", "please try again later")
		return
	}

	httpresp.Page(c, businesses, httpresp.NewPagination(total, limit, offset))
}
