package middleware

import (
	"errors"
	"net/http"
	"strings"

	apperrors "github.com/emx/guzellikharitam-backend/internal/errors"
	"github.com/emx/guzellikharitam-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

// Context keys for the authenticated subject
const (
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"
	VenueIDKey  = "venue_id"
)

// Roles carried in access tokens. Operators manage every venue from the platform panel;
// business accounts are bound to a single venue.
const (
	RoleOperator = "operator"
	RoleBusiness = "business"
)

type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
	}
}

// Authenticate validates the Bearer access token (required)
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			apperrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "Yetkilendirme başlığı geçersiz")
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(parts[1], m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			if errors.Is(err, util.ErrExpiredToken) {
				apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenExpired, "Oturumunuzun süresi doldu")
			} else {
				apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "Geçersiz erişim anahtarı")
			}
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserRoleKey, claims.Role)
		if claims.VenueID != "" {
			c.Set(VenueIDKey, claims.VenueID)
		}

		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id":  claims.UserID,
			"role":     claims.Role,
			"venue_id": claims.VenueID,
		})

		c.Next()
	}
}

// RequireRole checks if user has one of the given roles
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		role, exists := GetUserRole(c)
		if !exists {
			log.Warn("Role information not found in context", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			apperrors.Forbidden(c, "", "")
			c.Abort()
			return
		}

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		userID, _ := GetUserID(c)
		log.Warn("Insufficient permissions", map[string]interface{}{
			"user_id":        userID,
			"user_role":      role,
			"required_roles": roles,
			"path":           c.Request.URL.Path,
		})
		code := apperrors.AuthzForbidden
		if len(roles) == 1 && roles[0] == RoleOperator {
			code = apperrors.AuthzOperatorOnly
		}
		apperrors.Forbidden(c, code, "")
		c.Abort()
	}
}

// RequireVenueAccess lets operators through and limits business accounts to the venue
// named by the route parameter.
func (m *AuthMiddleware) RequireVenueAccess(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := GetUserRole(c)
		if role == RoleOperator {
			c.Next()
			return
		}

		venueID, ok := GetVenueID(c)
		if role == RoleBusiness && ok && venueID == c.Param(param) {
			c.Next()
			return
		}

		GetLoggerFromContext(c).Warn("Venue access denied", map[string]interface{}{
			"user_role":      role,
			"token_venue_id": venueID,
			"venue_id":       c.Param(param),
		})
		apperrors.Forbidden(c, apperrors.AuthzVenueAccess, "Bu işletmeye erişim yetkiniz yok")
		c.Abort()
	}
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	return c.GetString(UserIDKey), c.GetString(UserIDKey) != ""
}

// GetUserRole extracts user role from context
func GetUserRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	s, ok := role.(string)
	return s, ok
}

// GetVenueID extracts the venue a business token is bound to
func GetVenueID(c *gin.Context) (string, bool) {
	venueID := c.GetString(VenueIDKey)
	return venueID, venueID != ""
}
