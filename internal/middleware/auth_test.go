package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/auth"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/models"
)

func newTestTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	m, err := auth.NewTokenManager(
		"test-secret-that-is-32-bytes-long!!",
		"snapdi-api", "snapdi-clients", time.Hour,
	)
	require.NoError(t, err)
	return m
}

func newTestRouter(tokens *auth.TokenManager, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	group := router.Group("/protected")
	group.Use(AuthMiddleware(tokens))
	group.Use(extra...)
	group.GET("", func(c *gin.Context) {
		userID, _ := GetUserID(c)
		role, _ := GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"id": userID, "role": role})
	})
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingOrMalformedHeader(t *testing.T) {
	router := newTestRouter(newTestTokenManager(t))

	assert.Equal(t, http.StatusUnauthorized, doRequest(router, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(router, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(router, "Bearer not-a-token").Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := newTestTokenManager(t)
	router := newTestRouter(tokens)

	token, err := tokens.GenerateToken(7, "Linh", "linh@snapdi.vn", models.RoleCustomer)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":7`)
	assert.Contains(t, w.Body.String(), `"role":"Customer"`)
}

func TestRequireRoles(t *testing.T) {
	tokens := newTestTokenManager(t)
	router := newTestRouter(tokens, RequireRoles(models.RoleAdmin))

	customerToken, err := tokens.GenerateToken(1, "C", "c@snapdi.vn", models.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, doRequest(router, "Bearer "+customerToken).Code)

	adminToken, err := tokens.GenerateToken(2, "A", "a@snapdi.vn", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doRequest(router, "Bearer "+adminToken).Code)
}

func TestRequireRoles_CaseInsensitive(t *testing.T) {
	tokens := newTestTokenManager(t)
	router := newTestRouter(tokens, RequireRoles(models.RoleAdmin))

	// Tokens minted by older releases carry upper-case role names.
	legacyToken, err := tokens.GenerateToken(3, "L", "l@snapdi.vn", models.RoleName("ADMIN"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doRequest(router, "Bearer "+legacyToken).Code)
}
