package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pagos/internal/session"
)

// SessionRequired redirects to the login page when no complete session is
// persisted. The remote API still authorizes every forwarded call; this only
// keeps the UI out of views that cannot render without a session.
func SessionRequired(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := store.Current()
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set("session", sess)
		c.Next()
	}
}
