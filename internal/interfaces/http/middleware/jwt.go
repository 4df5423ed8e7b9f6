package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kerp/backend/internal/infrastructure/auth"
	"github.com/kerp/backend/internal/infrastructure/logger"
	"github.com/kerp/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT keys
const (
	JWTClaimsKey  = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// Logger for authentication failures; nil disables logging
	Logger *zap.Logger
}

// JWTAuthMiddleware requires a valid bearer token
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{JWTService: jwtService})
}

// JWTAuthMiddlewareWithConfig requires a valid bearer token. The claims are stored in the
// gin context and in the request context, where auth.ClaimsCurrentUser reads them.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			handleAuthError(c, cfg, auth.ErrInvalidToken, "Missing authorization header")
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			handleAuthError(c, cfg, auth.ErrInvalidToken, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
		if tokenString == "" {
			handleAuthError(c, cfg, auth.ErrInvalidToken, "Missing token")
			return
		}

		claims, err := cfg.JWTService.ValidateToken(tokenString)
		if err != nil {
			handleAuthError(c, cfg, err, "Token validation failed")
			return
		}

		c.Set(JWTClaimsKey, claims)

		ctx := auth.WithClaims(c.Request.Context(), claims)
		ctx = logger.WithUserID(ctx, claims.UserID)
		if claims.FactoryID != nil {
			ctx = logger.WithFactoryID(ctx, *claims.FactoryID)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// handleAuthError answers 401
func handleAuthError(c *gin.Context, cfg JWTMiddlewareConfig, err error, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("JWT authentication failed",
			zap.Error(err),
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", GetRequestID(c)),
		)
	}

	info := dto.ErrorInfo{Code: dto.ErrCodeUnauthorized, Description: "Authentication required"}
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		info = dto.ErrorInfo{Code: dto.ErrCodeTokenExpired, Description: "Token has expired"}
	case errors.Is(err, auth.ErrTokenNotYetValid):
		info.Description = "Token is not yet valid"
	}

	c.Header("WWW-Authenticate", `Bearer realm="kerp"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(GetRequestID(c), info))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}
