package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mentorship-system/config"
	"mentorship-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(expire time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{Secret: "test-secret", Issuer: "test", ExpireTime: expire})
}

func TestGenerateAndValidateAccountToken(t *testing.T) {
	svc := newTestService(time.Hour)

	token, err := svc.GenerateAccountToken(42, model.RoleMentor, "m@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	id, err := claims.AccountID()
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)
	assert.Equal(t, model.RoleMentor, claims.Role())
}

func TestValidateTokenRejects(t *testing.T) {
	svc := newTestService(time.Hour)

	t.Run("expired", func(t *testing.T) {
		token, err := newTestService(-time.Minute).GenerateAccountToken(1, model.RoleUser, "")
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})
	t.Run("other issuer", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "test-secret", Issuer: "other", ExpireTime: time.Hour})
		token, err := other.GenerateAccountToken(1, model.RoleUser, "")
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})
	t.Run("missing role", func(t *testing.T) {
		token, err := svc.GenerateToken("1", nil)
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})
	t.Run("empty", func(t *testing.T) {
		_, err := svc.ValidateToken("")
		assert.Error(t, err)
	})
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newTestService(time.Hour)

	router := gin.New()
	router.GET("/me", svc.AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": GetAccountID(c), "role": GetRole(c)})
	})
	router.GET("/mentor-only", svc.AuthMiddleware(), RequireRole(model.RoleMentor), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	token, err := svc.GenerateAccountToken(7, model.RoleUser, "")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"role":"user"}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"detail"`)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer short")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/mentor-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
