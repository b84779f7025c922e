package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/listindia/listindia-api/internal/audit"
	"github.com/listindia/listindia-api/internal/auth"
	"github.com/listindia/listindia-api/internal/httperr"
	"github.com/listindia/listindia-api/internal/middleware"
	"github.com/listindia/listindia-api/internal/models"
	"github.com/listindia/listindia-api/internal/validators"
)

const bcryptCost = 12

type AuthHandler struct {
	db     *gorm.DB
	tokens *auth.TokenService
	audit  *audit.Dispatcher
}

func NewAuthHandler(db *gorm.DB, tokens *auth.TokenService, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens, audit: audit}
}

// --------- Requests ---------

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,min=2,max=50"`
	LastName  string `json:"last_name" binding:"required,min=2,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	role := models.RoleCustomer
	if req.Role != "" {
		role = models.Role(strings.ToLower(req.Role))
		// Admin accounts are provisioned out of band, never self-registered.
		if !role.Valid() || role == models.RoleAdmin {
			httperr.BadRequest(c, "invalid_role", "role must be customer or business")
			return
		}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "the email domain does not appear to be valid")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "email_already_registered", "an account with this email already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "could not process password")
		return
	}

	user := models.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "could not create account")
		return
	}

	token, err := h.tokens.Issue(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "could not generate token")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials", "invalid email or password")
			return
		}
		httperr.Unavailable(c, "store_unavailable", "please try again later")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "invalid email or password")
		return
	}

	token, err := h.tokens.Issue(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "could not generate token")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_logged_in",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	ident, ok := middleware.Identity(c)
	if !ok {
		httperr.Unauthorized(c, "token_required", "access token required")
		return
	}

	var user models.User
	if err := h.db.First(&user, ident.UserID).Error; err != nil {
		httperr.Unauthorized(c, "subject_not_found", "user account not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
