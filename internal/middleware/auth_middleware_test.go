package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emx/guzellikharitam-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testJWTSecret = "test-jwt-secret-for-middleware"
	testVenueID   = "0f6b9c1e-2d3a-4b5c-8d7e-9f0a1b2c3d4e"
)

func setupMiddlewareTest() (*gin.Engine, *AuthMiddleware) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	middleware := NewAuthMiddleware(testJWTSecret)
	return router, middleware
}

func generateTestToken(t *testing.T, role, venueID string) string {
	tokens, err := util.GenerateTokenPair(
		util.TokenSubject{UserID: "user-1", Email: "panel@example.com", Role: role, VenueID: venueID},
		testJWTSecret,
		15*time.Minute,
		7*24*time.Hour,
	)
	require.NoError(t, err)
	return tokens.AccessToken
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_Authenticate_Success(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest()
	token := generateTestToken(t, RoleBusiness, testVenueID)

	router.GET("/test", authMiddleware.Authenticate(), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		role, _ := GetUserRole(c)
		venueID, _ := GetVenueID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role, "venue_id": venueID})
	})

	w := doRequest(router, "/test", "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"user-1","role":"business","venue_id":"`+testVenueID+`"}`, w.Body.String())
}

func TestAuthMiddleware_Authenticate_NoToken(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest()
	router.GET("/test", authMiddleware.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := doRequest(router, "/test", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_UNAUTHORIZED")
}

func TestAuthMiddleware_Authenticate_InvalidFormat(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest()
	router.GET("/test", authMiddleware.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name   string
		header string
	}{
		{name: "Missing Bearer prefix", header: "invalid-token"},
		{name: "Wrong prefix", header: "Basic token123"},
		{name: "Empty token", header: "Bearer "},
		{name: "Garbage token", header: "Bearer invalid.jwt.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, "/test", tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "AUTH_TOKEN_INVALID")
		})
	}
}

func TestAuthMiddleware_Authenticate_ExpiredToken(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest()
	router.GET("/test", authMiddleware.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tokens, err := util.GenerateTokenPair(
		util.TokenSubject{UserID: "user-1", Role: RoleOperator},
		testJWTSecret,
		-time.Minute,
		time.Hour,
	)
	require.NoError(t, err)

	w := doRequest(router, "/test", "Bearer "+tokens.AccessToken)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_EXPIRED")
}

func TestAuthMiddleware_Authenticate_RejectsRefreshToken(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest()
	router.GET("/test", authMiddleware.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tokens, err := util.GenerateTokenPair(
		util.TokenSubject{UserID: "user-1", Role: RoleOperator},
		testJWTSecret,
		time.Minute,
		time.Hour,
	)
	require.NoError(t, err)

	w := doRequest(router, "/test", "Bearer "+tokens.RefreshToken)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest()
	router.GET("/panel",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(RoleOperator),
		func(c *gin.Context) {
			c.Status(http.StatusOK)
		},
	)

	t.Run("Operator allowed", func(t *testing.T) {
		w := doRequest(router, "/panel", "Bearer "+generateTestToken(t, RoleOperator, ""))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Business forbidden", func(t *testing.T) {
		w := doRequest(router, "/panel", "Bearer "+generateTestToken(t, RoleBusiness, testVenueID))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "AUTHZ_OPERATOR_ONLY")
	})
}

func TestAuthMiddleware_RequireVenueAccess(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest()
	router.GET("/venues/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(RoleOperator, RoleBusiness),
		authMiddleware.RequireVenueAccess("id"),
		func(c *gin.Context) {
			c.Status(http.StatusOK)
		},
	)

	tests := []struct {
		name   string
		role   string
		venue  string
		path   string
		status int
	}{
		{name: "Operator any venue", role: RoleOperator, path: "/venues/other", status: http.StatusOK},
		{name: "Business own venue", role: RoleBusiness, venue: testVenueID, path: "/venues/" + testVenueID, status: http.StatusOK},
		{name: "Business other venue", role: RoleBusiness, venue: testVenueID, path: "/venues/other", status: http.StatusForbidden},
		{name: "Business without venue", role: RoleBusiness, path: "/venues/" + testVenueID, status: http.StatusForbidden},
		{name: "Unknown role", role: "customer", venue: testVenueID, path: "/venues/" + testVenueID, status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.path, "Bearer "+generateTestToken(t, tt.role, tt.venue))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
