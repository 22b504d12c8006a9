package middleware

import (
	"net/http"

	"github.com/ameen01/Bad-Trade/internal/session"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware lets the request through only when allow accepts the session
func RoleMiddleware(allow func(*session.Session) bool, deny gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if !allow(sess) {
			deny(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoginMiddleware sends logged out visitors back to the login page
func LoginMiddleware() gin.HandlerFunc {
	return RoleMiddleware(
		func(s *session.Session) bool { return s.LoggedIn },
		func(c *gin.Context) { c.Redirect(http.StatusSeeOther, "/") },
	)
}

// AdminMiddleware checks if the admin account is logged in
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(
		(*session.Session).IsAdmin,
		func(c *gin.Context) {
			c.String(http.StatusForbidden, "You do not have permission to access this resource")
		},
	)
}
