// Package session binds every request to a workspace id carried by a cookie
// or, for API clients, the X-Session-ID header.
package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderKey lets non-browser clients pin a workspace without cookies.
	HeaderKey  = "X-Session-ID"
	contextKey = "session_id"
)

// Options configures the session cookie.
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Middleware resolves the session id for the request, minting a new one when
// the client presents none or an id that does not parse as a UUID.
func Middleware(opts Options) gin.HandlerFunc {
	if opts.CookieName == "" {
		opts.CookieName = "codereg_session"
	}
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderKey))
		if id == "" {
			if cookie, err := c.Cookie(opts.CookieName); err == nil {
				id = cookie
			}
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		http.SetCookie(c.Writer, &http.Cookie{
			Name:     opts.CookieName,
			Value:    id,
			Path:     "/",
			MaxAge:   int(opts.TTL.Seconds()),
			HttpOnly: true,
			Secure:   opts.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		c.Writer.Header().Set(HeaderKey, id)
		c.Set(contextKey, id)

		c.Next()
	}
}

// ID returns the session id stored in the Gin context.
func ID(c *gin.Context) string {
	if v, exists := c.Get(contextKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// Short trims a session id for log lines.
func Short(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
