package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainerrors "payzen.backend/internal/domain/errors"
	"payzen.backend/internal/interfaces/http/response"
	"payzen.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for the authenticated user id
	UserIDKey = "userId"
	// WalletAddressKey is the context key for the authenticated wallet
	WalletAddressKey = "walletAddress"
)

// AuthMiddleware validates the bearer token and stores the wallet identity
// in the request context. A missing header is unauthenticated (401); a
// present but invalid or expired token is forbidden (403) — distinct
// outcomes the client reacts to differently.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" || !strings.HasPrefix(authHeader, BearerPrefix) {
			response.Error(c, domainerrors.Unauthorized("authorization header is required"))
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			if err == jwt.ErrExpiredToken {
				response.Error(c, domainerrors.Forbidden("token has expired"))
			} else {
				response.Error(c, domainerrors.Forbidden("invalid token"))
			}
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(WalletAddressKey, claims.WalletAddress)

		c.Next()
	}
}

// GetUserID gets the authenticated user id from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return userID.(uuid.UUID), true
}

// GetWalletAddress gets the authenticated wallet address from context
func GetWalletAddress(c *gin.Context) (string, bool) {
	wallet, exists := c.Get(WalletAddressKey)
	if !exists {
		return "", false
	}
	return wallet.(string), true
}
