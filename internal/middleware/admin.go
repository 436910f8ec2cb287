package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petarpopovic013-oss/barbershop/internal/session"
)

func authed(c *gin.Context, gate session.Gate) bool {
	token, err := c.Cookie(session.CookieName)
	return err == nil && gate.VerifyToken(token)
}

// AdminAPIAuth guards /api/admin endpoints. API clients get JSON, never a
// redirect.
func AdminAPIAuth(gate session.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authed(c, gate) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok":      false,
				"message": "Authentication required",
			})
			return
		}
		c.Next()
	}
}

// AdminPageAuth guards the server-rendered admin pages: unauthenticated
// visitors land on the login form instead of a JSON error.
func AdminPageAuth(gate session.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authed(c, gate) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RedirectIfAuthed sends an already-authenticated visitor from the login
// page straight to the dashboard.
func RedirectIfAuthed(gate session.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authed(c, gate) {
			c.Redirect(http.StatusFound, "/admin")
			c.Abort()
			return
		}
		c.Next()
	}
}
