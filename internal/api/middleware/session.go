package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/martijn/clubhouse/internal/core/domain"
	"github.com/martijn/clubhouse/internal/core/service"
)

const (
	// SessionCookieName is the opaque session cookie issued per browser.
	SessionCookieName = "clubhouse_session"

	identityContextKey = "identity"
)

// SessionMiddleware deserializes the session cookie into a bound identity
// around every request. A missing, invalid or stale cookie simply leaves the
// request with no identity; it never fails the request.
func SessionMiddleware(sessionService *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err == nil && token != "" {
			user, err := sessionService.Resolve(c.Request.Context(), token)
			if err == nil && user != nil {
				c.Set(identityContextKey, user)
			}
		}

		c.Next()
	}
}

// CurrentUser retrieves the bound identity from the request context. The
// second return reports whether an identity is bound at all.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(identityContextKey)
	if !exists {
		return nil, false
	}

	user, ok := v.(*domain.User)
	return user, ok
}
