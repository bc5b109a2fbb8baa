package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/anousone23/twitter-clone/internal/domain"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "jwt"

const contextKeyUser = "current_user"

// UserFinder resolves a verified token to a live account.
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (domain.User, error)
}

// CurrentUser returns the user set by RequireAuth.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return domain.User{}, false
	}
	u, ok := v.(domain.User)
	return u, ok
}

// RequireAuth returns a middleware that verifies the session cookie and sets
// the current user in context. Missing or invalid tokens get 401; so does a
// token whose account no longer exists, rather than letting the request run
// with no identity.
func RequireAuth(tokens *TokenManager, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(CookieName)
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: no token provided"})
			return
		}
		userID, err := tokens.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: invalid token"})
			return
		}
		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: invalid token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
			return
		}
		c.Set(contextKeyUser, user)
		c.Next()
	}
}
