package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAuth sends anonymous visitors to the login page. A bad token and a
// deleted account both count as anonymous.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetViewContext(c).LoggedIn() {
			c.Redirect(http.StatusFound, "/auth/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects everyone without the Admin role. Role membership is
// compared by value on the loaded role set, not by matching strings from the
// request.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetViewContext(c).IsAdmin() {
			c.String(http.StatusForbidden, "Přístup odepřen")
			c.Abort()
			return
		}
		c.Next()
	}
}
