// Package http provides HTTP middleware for API key authentication and rate limiting.
package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/allisson/cardvault/internal/auth/service"
	apperrors "github.com/allisson/cardvault/internal/errors"
	"github.com/allisson/cardvault/internal/httputil"
)

// APIKeyMiddleware authenticates requests via Bearer token in the Authorization header.
//
// The presented key is verified against the single configured Argon2id hash.
// There is no client store: the vault is a single-operator service and one
// key guards the whole API.
//
// Authorization header format: "Bearer <key>" (case-insensitive "bearer")
//
// Error handling:
//   - Missing Authorization header -> 401 Unauthorized
//   - Malformed Authorization header -> 401 Unauthorized
//   - Key does not match the configured hash -> 401 Unauthorized
func APIKeyMiddleware(
	hashedKey string,
	keyService authService.APIKeyService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		plainKey := authHeader[len(bearerPrefix):]
		if plainKey == "" || !keyService.CompareKey(plainKey, hashedKey) {
			logger.Debug("authentication failed: invalid api key")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
