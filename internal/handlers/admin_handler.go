package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/listindia/listindia-api/internal/audit"
	"github.com/listindia/listindia-api/internal/httperr"
	"github.com/listindia/listindia-api/internal/httpresp"
	"github.com/listindia/listindia-api/internal/middleware"
	"github.com/listindia/listindia-api/internal/models"
)

// AdminHandler covers moderation: approving and featuring listings, and
// reading the audit trail. All routes sit behind RequireRole(admin).
type AdminHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminHandler(db *gorm.DB, audit *audit.Dispatcher) *AdminHandler {
	return &AdminHandler{db: db, audit: audit}
}

type ModerationRequest struct {
	Value *bool `json:"value" binding:"required"`
}

func (h *AdminHandler) setFlag(c *gin.Context, column, action string) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_business_id", "invalid business ID format")
		return
	}

	var req ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	res := h.db.Model(&models.Business{}).
		Where("id = ?", id).
		Update(column, *req.Value)
	if res.Error != nil {
		httperr.Unavailable(c, "store_unavailable", "please try again later")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "business_not_found", "business not found")
		return
	}

	if ident, ok := middleware.Identity(c); ok {
		h.audit.Dispatch(audit.Event{
			UserID:   &ident.UserID,
			Action:   action,
			Entity:   "business",
			EntityID: &id,
			Metadata: gin.H{column: *req.Value},
		})
	}

	c.JSON(http.StatusOK, gin.H{"id": id, column: *req.Value})
}

func (h *AdminHandler) Approve(c *gin.Context) {
	h.setFlag(c, "is_approved", "business_approval_changed")
}

func (h *AdminHandler) Feature(c *gin.Context) {
	h.setFlag(c, "is_featured", "business_featured_changed")
}

func (h *AdminHandler) AuditLogs(c *gin.Context) {
	limit, offset := pagination(c, 50, 200)

	var (
		logs  []models.AuditLog
		total int64
	)

	if err := h.db.Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		httperr.Unavailable(c, "store_unavailable", "please try again later")
		return
	}

	if err := h.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		httperr.Unavailable(c, "store_unavailable", "please try again later")
		return
	}

	httpresp.Page(c, logs, httpresp.NewPagination(total, limit, offset))
}
