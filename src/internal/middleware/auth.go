package middleware

import (
	"net/http"
	"studysphere-svc/src/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthMiddleware resolves the session cookie into an authenticated identity.
type AuthMiddleware struct {
	sessions *session.Manager
}

func NewAuthMiddleware(sessions *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireAuth validates the session token carried in the request cookie.
// Every failure produces the same 401 body; the claims' user id becomes the
// tenant key every downstream query filters by.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil {
			token = ""
		}

		claims, err := m.sessions.Verify(c.Request.Context(), token)
		if err != nil {
			logrus.WithField("path", c.FullPath()).Debug("Session verification failed")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Not authenticated",
			})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)

		logrus.WithFields(logrus.Fields{
			"user_id": claims.UserID,
			"path":    c.FullPath(),
		}).Debug("User authenticated successfully")

		c.Next()
	}
}

// UserID returns the authenticated user id stashed by RequireAuth.
func UserID(c *gin.Context) string {
	id, _ := c.Get("user_id")
	userID, _ := id.(string)
	return userID
}
