package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/listindia/listindia-api/internal/httperr"
	"github.com/listindia/listindia-api/internal/middleware"
	"github.com/listindia/listindia-api/internal/models"
	"github.com/listindia/listindia-api/internal/storage"
)

const maxUploadBytes = 10 << 20 // 10 MB, same cap the API puts on bodies

type UploadHandler struct {
	db       *gorm.DB
	uploader storage.Uploader
}

func NewUploadHandler(db *gorm.DB, uploader storage.Uploader) *UploadHandler {
	return &UploadHandler{db: db, uploader: uploader}
}

// BusinessImage replaces a listing's image. Owner only; the file is
// normalized to webp and served from object storage.
func (h *UploadHandler) BusinessImage(c *gin.Context) {
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

	fileHeader, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "image_required", "an image file is required")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		httperr.BadRequest(c, "image_too_large", "image must be 10MB or smaller")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "could not read uploaded file")
		return
	}
	defer file.Close()

	url, err := h.uploader.UploadBusinessImage(c.Request.Context(), biz.ID, file)
	if err != nil {
		httperr.Internal(c, "upload_failed", "could not store image")
		return
	}

	if err := h.db.Model(&biz).Update("image_url", url).Error; err != nil {
		httperr.Unavailable(c, "store_unavailable", "please try again later")
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}
