package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/listindia/listindia-api/internal/auth"
	"github.com/listindia/listindia-api/internal/httperr"
	"github.com/listindia/listindia-api/internal/models"
)

const ContextIdentity = "identity"

// SubjectFinder re-resolves a token's subject against the credential
// store. Claims embedded in a token can be stale; role and verified
// status always come from the current row.
type SubjectFinder interface {
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
}

// Identity returns the authenticated caller, if any. Optional-auth routes
// get (nil, false) for anonymous requests.
func Identity(c *gin.Context) (*auth.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return nil, false
	}
	ident, ok := v.(*auth.Identity)
	return ident, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

type rejection struct {
	status  int
	code    string
	message string
}

func resolveIdentity(
	c *gin.Context,
	tokens *auth.TokenService,
	subjects SubjectFinder,
	tokenString string,
) (*auth.Identity, *rejection) {

	ident, err := tokens.Verify(tokenString)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenExpired):
			return nil, &rejection{http.StatusUnauthorized, "token_expired", "token has expired, please log in again"}
		case errors.Is(err, auth.ErrTokenNotYetValid):
			return nil, &rejection{http.StatusUnauthorized, "token_not_yet_valid", "token is not active yet"}
		default:
			return nil, &rejection{http.StatusUnauthorized, "invalid_token", "invalid token"}
		}
	}

	user, err := subjects.FindUserByID(c.Request.Context(), ident.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &rejection{http.StatusUnauthorized, "subject_not_found", "user account not found"}
		}
		// Store trouble is not an authorization verdict.
		return nil, &rejection{http.StatusServiceUnavailable, "store_unavailable", "please try again later"}
	}

	ident.Email = user.Email
	ident.Role = user.Role
	ident.Verified = user.IsVerified
	return ident, nil
}

// RequireAuth walks the request from bearer extraction through token
// verification to subject resolution, rejecting with the specific failure
// at each stage.
func RequireAuth(tokens *auth.TokenService, subjects SubjectFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			httperr.Unauthorized(c, "token_required", "access token required")
			c.Abort()
			return
		}

		ident, rej := resolveIdentity(c, tokens, subjects, tokenString)
		if rej != nil {
			httperr.Write(c, rej.status, rej.code, rej.message)
			c.Abort()
			return
		}

		c.Set(ContextIdentity, ident)
		c.Next()
	}
}

// OptionalAuth runs the same pipeline but any failure, at any stage,
// proceeds anonymously instead of rejecting. Used by endpoints that
// personalize output for authenticated callers.
func OptionalAuth(tokens *auth.TokenService, subjects SubjectFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if ident, rej := resolveIdentity(c, tokens, subjects, tokenString); rej == nil {
				c.Set(ContextIdentity, ident)
			}
		}
		c.Next()
	}
}

// RequireRole gates a route on the subject's current role. Runs after
// RequireAuth.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := Identity(c)
		if !ok {
			httperr.Unauthorized(c, "token_required", "access token required")
			c.Abort()
			return
		}
		if ident.Role != role {
			httperr.Forbidden(c, "role_forbidden", string(role)+" access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireVerified gates a route on the subject's verified flag.
func RequireVerified() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := Identity(c)
		if !ok {
			httperr.Unauthorized(c, "token_required", "access token required")
			c.Abort()
			return
		}
		if !ident.Verified {
			httperr.Forbidden(c, "not_verified", "email verification required")
			c.Abort()
			return
		}
		c.Next()
	}
}
