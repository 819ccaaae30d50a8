package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tawzif_backend/internal/auth"
	"tawzif_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAdminID = "1b4e28ba-2fa1-41d2-883f-0016d3cca427"
	testUserID  = "6fa459ea-ee8a-4ca4-894e-db77e160355e"
)

func setupRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("userID"), "role": c.GetString("role")})
	})
	r.GET("/", handlers...)
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	v := auth.NewVerifier("secret", "")
	r := setupRouter(AuthMiddleware(v))

	w := do(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := v.Sign(testAdminID, "admin", "Admin", time.Hour)
	require.NoError(t, err)
	w = do(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"`+testAdminID+`","role":"admin"}`, w.Body.String())
}

func TestOptionalAuthMiddleware(t *testing.T) {
	v := auth.NewVerifier("secret", "")
	r := setupRouter(OptionalAuthMiddleware(v))

	w := do(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"","role":""}`, w.Body.String())

	w = do(r, "garbage")
	assert.Equal(t, http.StatusOK, w.Code)

	token, _ := v.Sign(testUserID, "", "", time.Hour)
	w = do(r, token)
	assert.JSONEq(t, `{"user_id":"`+testUserID+`","role":"user"}`, w.Body.String())
}

func TestRequireRoles(t *testing.T) {
	v := auth.NewVerifier("secret", "")
	r := setupRouter(AuthMiddleware(v), RequireRoles(models.UserRoleAdmin))

	userToken, _ := v.Sign(testUserID, "user", "", time.Hour)
	assert.Equal(t, http.StatusForbidden, do(r, userToken).Code)

	adminToken, _ := v.Sign(testAdminID, "admin", "", time.Hour)
	assert.Equal(t, http.StatusOK, do(r, adminToken).Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := setupRouter(RequestIDMiddleware())

	w := do(r, "")
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "0b8a3c2e-5d7f-4e1a-9c6b-2f4d8e0a1b3c")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "0b8a3c2e-5d7f-4e1a-9c6b-2f4d8e0a1b3c", w.Header().Get(RequestIDHeader))
}
