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
	"github.com/listindia/listindia-api/internal/validators"
)

type BusinessHandler struct {
	db *gorm.DB
}

func NewBusinessHandler(db *gorm.DB) *BusinessHandler {
	return &BusinessHandler{db: db}
}

// --------- Requests ---------

type CreateBusinessRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=255"`
	Description string `json:"description" binding:"required,min=10,max=2000"`
	Category    string `json:"category" binding:"required"`
	Address     string `json:"address" binding:"required"`
	City        string `json:"city" binding:"required,max=100"`
	State       string `json:"state" binding:"required,max=100"`
	ZipCode     string `json:"zip_code" binding:"required,max=20"`
	Phone       string `json:"phone" binding:"required,max=20"`
	Email       string `json:"email" binding:"required,email"`
	Website     string `json:"website" binding:"omitempty,url"`
}

type UpdateBusinessRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=255"`
	Description *string `json:"description" binding:"omitempty,min=10,max=2000"`
	Category    *string `json:"category"`
	Address     *string `json:"address"`
	City        *string `json:"city" binding:"omitempty,max=100"`
	State       *string `json:"state" binding:"omitempty,max=100"`
	ZipCode     *string `json:"zip_code" binding:"omitempty,max=20"`
	Phone       *string `json:"phone" binding:"omitempty,max=20"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Website     *string `json:"website" binding:"omitempty,url"`
}

// --------- Read side ---------

var businessSortFields = map[string]bool{
	"name":         true,
	"rating":       true,
	"review_count": true,
	"created_at":   true,
}

// List serves the public directory: approved listings with filter, search,
// sort and pagination.
func (h *BusinessHandler) List(c *gin.Context) {
	limit, offset := pagination(c, 50, 100)

	q := h.db.Model(&models.Business{}).Where("is_approved = ?", true)

	if category := c.Query("category"); category != "" && category != "all" {
		q = q.Where("category = ?", strings.ToLower(category))
	}
	if city := c.Query("city"); city != "" {
		q = q.Where("city ILIKE ?", city)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}
	if c.Query("featured") == "true" {
		q = q.Where("is_featured = ?", true)
	}

	sort := c.DefaultQuery("sort", "created_at")
	order := strings.ToUpper(c.DefaultQuery("order", "DESC"))
	if !businessSortFields[sort] || (order != "ASC" && order != "DESC") {
		sort, order = "created_at", "DESC"
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Unavailable(c, "store_unavailable", "please try again later")
		return
	}

	var businesses []models.Business
	if err := q.Order(sort + " " + order).
		Limit(limit).
		Offset(offset).
		Find(&businesses).Error; err != nil {
		httperr.Unavailable(c, "store_unavailable", "please try again later")
		return
	}

	httpresp.Page(c, businesses, httpresp.NewPagination(total, limit, offset))
}

func (h *BusinessHandler) Featured(c *gin.Context) {
	var businesses []models.Business
	if err := h.db.
		Where("is_featured = ? AND is_approved = ?", true, true).
		Order("rating DESC, review_count DESC, created_at DESC").
		Limit(10).
		Find(&businesses).Error; err != nil {
		httperr.Unavailable(c, "store_unavailable", "please try again later")
		return
	}

	httpresp.List(c, businesses)
}

type categoryCount struct {
	Category string `json:"value"`
	Count    int    `json:"count"`
}

func (h *BusinessHandler) Categories(c *gin.Context) {
	var rows []categoryCount
	if err := h.db.Model(&models.Business{}).
		Select("category, COUNT(*) AS count").
		Where("is_approved = ?", true).
		Group("category").
		Order("count DESC, category ASC").
		Scan(&rows).Error; err != nil {
		httperr.Unavailable(c, "store_unavailable", "please try again later")
		return
	}

	httpresp.List(c, rows)
}

type cityCount struct {
	City  string `json:"city"`
	State string `json:"state"`
	Count int    `json:"count"`
}

func (h *BusinessHandler) Cities(c *gin.Context) {
	var rows []cityCount
	if err := h.db.Model(&models.Business{}).
		Select("city, state, COUNT(*) AS count").
		Where("is_approved = ?", true).
		Group("city, state").
		Order("count DESC, city ASC").
		Scan(&rows).Error; err != nil {
		httperr.Unavailable(c, "store_unavailable", "please try again later")
		return
	}

	httpresp.List(c, rows)
}

func (h *BusinessHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_business_id", "invalid business ID format")
		return
	}

	var biz models.Business
	err := h.db.Where("id = ? AND is_approved = ?", id, true).First(&biz).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "business_not_found", "business not found or not approved")
			return
		}
		httperr.Unavailable(c, "store_unavailable", "please try again later")
		return
	}

	httpresp.OK(c, biz)
}

// --------- Write side ---------

func (h *BusinessHandler) Create(c *gin.Context) {
	ident, ok := middleware.Identity(c)
	if !ok {
		httperr.Unauthorized(c, "token_required", "access token required")
		return
	}

	var req CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	category := strings.ToLower(strings.TrimSpace(req.Category))
	if !validators.IsValidCategory(category) {
		httperr.BadRequest(c, "invalid_category", "unknown business category")
		return
	}

	name := strings.TrimSpace(req.Name)
	address := strings.TrimSpace(req.Address)

	var count int64
	h.db.Model(&models.Business{}).
		Where("name ILIKE ? AND address ILIKE ?", name, address).
		Count(&count)
	if count > 0 {
		httperr.Conflict(c, "business_already_exists",
			"a business with this name and address already exists")
		return
	}

	ownerID := ident.UserID
	biz := models.Business{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Category:    category,
		Address:     address,
		City:        strings.TrimSpace(req.City),
		State:       strings.TrimSpace(req.State),
		ZipCode:     strings.TrimSpace(req.ZipCode),
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Website:     strings.TrimSpace(req.Website),
		OwnerID:     &ownerID,
	}

	if err := h.db.Create(&biz).Error; err != nil {
		httperr.Internal(c, "failed_to_create_business", "could not create business")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"business": biz})
}

// Update lets the owner edit their own listing. Derived rating fields and
// moderation flags are untouchable here.
func (h *BusinessHandler) Update(c *gin.Context) {
	ident, ok := middleware.Identity(c)
	if !ok {
		httperr.Unauthorized(c, "token_required", "access token required")
		return
	}

	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_business_id", "invalid business ID format")
		return
	}

	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var biz models.Business
	if err := h.db.First(&biz, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "business_not_found", "business not found")
			return
		}
		httperr.Unavailable(c, "store_unavailable", "please try again later")
		return
	}

	if biz.OwnerID == nil || *biz.OwnerID != ident.UserID {
		httperr.Forbidden(c, "not_business_owner", "you do not own this business")
		return
	}

	if req.Category != nil {
		category := strings.ToLower(strings.TrimSpace(*req.Category))
		if !validators.IsValidCategory(category) {
			httperr.BadRequest(c, "invalid_category", "unknown business category")
			return
		}
		biz.Category = category
	}
	if req.Name != nil {
		biz.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		biz.Description = strings.TrimSpace(*req.Description)
	}
	if req.Address != nil {
		biz.Address = strings.TrimSpace(*req.Address)
	}
	if req.City != nil {
		biz.City = strings.TrimSpace(*req.City)
	}
	if req.State != nil {
		biz.State = strings.TrimSpace(*req.State)
	}
	if req.ZipCode != nil {
		biz.ZipCode = strings.TrimSpace(*req.ZipCode)
	}
	if req.Phone != nil {
		biz.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		biz.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Website != nil {
		biz.Website = strings.TrimSpace(*req.Website)
	}

	if err := h.db.Save(&biz).Error; err != nil {
		httperr.Internal(c, "failed_to_update_business", "could not update business")
		return
	}

	c.JSON(http.StatusOK, gin.H{"business": biz})
}
