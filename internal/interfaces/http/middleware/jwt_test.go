package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kerp/backend/internal/infrastructure/auth"
	"github.com/kerp/backend/internal/infrastructure/config"
	"github.com/kerp/backend/internal/infrastructure/logger"
	"github.com/kerp/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestJWTService(expiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: expiration,
		Issuer:                "test-issuer",
	})
}

func newTestToken(t *testing.T, svc *auth.JWTService) string {
	t.Helper()
	factoryID := 241
	token, err := svc.GenerateToken(auth.GenerateTokenInput{
		UserID:      "u-100",
		Username:    "testuser",
		FactoryID:   &factoryID,
		FactoryName: "Stargard",
	})
	require.NoError(t, err)
	return token.AccessToken
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	token := newTestToken(t, svc)

	var current auth.Claims
	var userInLog, factoryInLog string
	router := gin.New()
	router.Use(JWTAuthMiddleware(svc))
	router.GET("/protected", func(c *gin.Context) {
		claims := GetJWTClaims(c)
		require.NotNil(t, claims)
		current = *claims
		user := auth.ClaimsCurrentUser{}.Current(c.Request.Context())
		assert.True(t, user.IsAuthenticated)
		userInLog = logger.GetUserID(c.Request.Context())
		factoryInLog = logger.GetFactoryID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-100", current.UserID)
	assert.Equal(t, "u-100", userInLog)
	assert.Equal(t, "241", factoryInLog)
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	expired := newTestToken(t, newTestJWTService(-time.Hour))

	tests := []struct {
		name     string
		header   string
		wantCode string
	}{
		{"missing header", "", dto.ErrCodeUnauthorized},
		{"wrong scheme", "Basic dXNlcjpwYXNz", dto.ErrCodeUnauthorized},
		{"empty token", "Bearer ", dto.ErrCodeUnauthorized},
		{"garbage token", "Bearer not-a-jwt", dto.ErrCodeUnauthorized},
		{"expired token", "Bearer " + expired, dto.ErrCodeTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			called := false
			router := gin.New()
			router.Use(RequestID(), JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{JWTService: svc, Logger: zap.New(core)}))
			router.GET("/protected", func(c *gin.Context) {
				called = true
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set(AuthHeaderKey, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Bearer")
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.RequestID)
			require.Len(t, resp.Errors, 1)
			assert.Equal(t, tt.wantCode, resp.Errors[0].Code)
			assert.Equal(t, 1, logs.FilterMessage("JWT authentication failed").Len())
		})
	}
}

func TestGetJWTClaims_Absent(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetJWTClaims(c))
}
