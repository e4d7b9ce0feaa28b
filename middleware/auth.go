package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/threadbbs/utils"
)

const (
	// ContextUserIDKey is the key used to store authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextTokenKey stores the raw bearer token.
	ContextTokenKey = "token"
	// ContextTokenExpiryKey stores the token expiry as time.Time.
	ContextTokenExpiryKey = "token_expires_at"
)

// AuthRequired ensures the request carries a valid, unrevoked bearer token.
// revoker may be nil.
func AuthRequired(tokens *utils.TokenManager, revoker utils.TokenRevoker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.Abort(ctx, utils.Unauthorized(40101, "authorization header missing"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Abort(ctx, utils.Unauthorized(40102, "invalid authorization header format"))
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			utils.Abort(ctx, utils.Unauthorized(40103, "empty bearer token"))
			return
		}

		claims, err := tokens.ParseToken(tokenString)
		if err != nil {
			utils.Abort(ctx, utils.Unauthorized(40105, "invalid token"))
			return
		}

		if revoker != nil {
			revoked, err := revoker.IsRevoked(ctx.Request.Context(), tokenString)
			if err != nil {
				utils.Abort(ctx, utils.Internal(50002, "failed to verify token", err))
				return
			}
			if revoked {
				utils.Abort(ctx, utils.Unauthorized(40104, "token revoked"))
				return
			}
		}

		var expiresAt time.Time
		if claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}
		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextTokenKey, tokenString)
		ctx.Set(ContextTokenExpiryKey, expiresAt)
		ctx.Next()
	}
}

// UserID returns the authenticated user id, or "" outside AuthRequired.
func UserID(ctx *gin.Context) string {
	return ctx.GetString(ContextUserIDKey)
}

// RequireUserID returns the authenticated user id or aborts with 401.
func RequireUserID(ctx *gin.Context) (string, bool) {
	id := UserID(ctx)
	if id == "" {
		utils.Abort(ctx, utils.Unauthorized(40110, "unauthorized"))
		return "", false
	}
	return id, true
}
