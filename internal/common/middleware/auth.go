package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Mustafaygt66/EMKO/internal/common/errors"
	"github.com/Mustafaygt66/EMKO/internal/common/logger"
	"github.com/Mustafaygt66/EMKO/internal/domain/user"
)

const (
	identityKey = "identity"
	tokenKey    = "session_token"
)

// SessionResolver turns a bearer token into an identity.
type SessionResolver interface {
	Session(ctx context.Context, token string) (user.Identity, error)
}

// BanChecker reports whether an identity is banned.
type BanChecker interface {
	IsBanned(ctx context.Context, userID string) (bool, error)
}

// Session resolves the optional bearer token. A missing token leaves the
// request anonymous; an invalid one is rejected.
func Session(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		identity, err := resolver.Session(c.Request.Context(), token)
		if err != nil {
			RespondError(c, err)
			return
		}

		c.Set(identityKey, identity)
		c.Set(tokenKey, token)
		c.Next()
	}
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c).IsAnonymous() {
			RespondError(c, errors.NewUnauthorizedError("sign in required"))
			return
		}
		c.Next()
	}
}

// RequireAdmin trusts only the server-computed IsAdmin flag.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity.IsAnonymous() {
			RespondError(c, errors.NewUnauthorizedError("sign in required"))
			return
		}
		if !identity.IsAdmin {
			RespondError(c, errors.NewForbiddenError("administrator access required"))
			return
		}
		c.Next()
	}
}

// CheckBanned blocks banned identities. Administrators are never blocked.
func CheckBanned(checker BanChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity.IsAnonymous() || identity.IsAdmin {
			c.Next()
			return
		}

		banned, err := checker.IsBanned(c.Request.Context(), identity.UserID)
		if err != nil {
			logger.Warn().Err(err).Str("user_id", identity.UserID).Msg("Ban check failed")
			RespondError(c, err)
			return
		}
		if banned {
			RespondError(c, errors.NewUserBannedError(identity.UserID))
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the caller, or the anonymous zero value.
func CurrentIdentity(c *gin.Context) user.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(user.Identity); ok {
			return identity
		}
	}
	return user.Identity{}
}

// SessionToken returns the bearer token the identity was resolved from.
func SessionToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}

func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
