package middleware

import (
	"net/http"

	goSession "github.com/MrEthical07/goSession"
	"github.com/gin-gonic/gin"
)

// GinSessionKey is the gin context key holding the *goSession.Session.
const GinSessionKey = "gosession.session"

// GinRequireSession is the gin counterpart of [RequireSession]. The session
// is available via c.Get(GinSessionKey) and from the request context.
func GinRequireSession(v SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		token, ok := TokenFromRequest(c.Request, v.CookieConfig().Name)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		sess, err := v.ValidateSessionToken(c.Request.Context(), token)
		if err != nil {
			status := StatusForError(err)
			c.AbortWithStatusJSON(status, gin.H{"error": http.StatusText(status)})
			return
		}

		c.Set(GinSessionKey, sess)
		c.Request = c.Request.WithContext(goSession.WithSession(c.Request.Context(), sess))
		c.Next()
	}
}

// GinSession returns the session stored by [GinRequireSession].
func GinSession(c *gin.Context) (*goSession.Session, bool) {
	v, ok := c.Get(GinSessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*goSession.Session)
	return s, ok && s != nil
}
