package middleware

import (
	"net/http"

	"github.com/ameen01/Bad-Trade/internal/session"
	"github.com/ameen01/Bad-Trade/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	SessionCookieName = "bad_trade_session"
	SessionKey        = "session"
)

// SessionMiddleware resolves the caller's session from the signed session
// cookie and holds the session lock until the handler chain returns.
// A missing or invalid cookie starts a fresh session and issues a new cookie.
func SessionMiddleware(manager *session.Manager, jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sessionID string
		if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
			sid, err := jwtUtil.ValidateToken(cookie)
			if err != nil {
				logrus.WithError(err).Debug("Discarding invalid session cookie")
			} else {
				sessionID = sid
			}
		}

		sess, err := manager.Get(c.Request.Context(), sessionID)
		if err != nil {
			logrus.WithError(err).Error("Failed to load session")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		if sess.ID != sessionID {
			token, err := jwtUtil.GenerateToken(sess.ID)
			if err != nil {
				logrus.WithError(err).Error("Failed to sign session cookie")
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookieName, token, 0, "/", "", false, true)
		}

		sess.Lock()
		defer sess.Unlock()

		c.Set(SessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session stored by SessionMiddleware
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	val, exists := c.Get(SessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := val.(*session.Session)
	return sess, ok
}
