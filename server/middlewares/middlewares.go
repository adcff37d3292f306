package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nwk-labs/network-backend/utils"
)

// viewerKey is the gin context key carrying the authenticated user's id.
const viewerKey = "viewerID"

// TokenParser validates a token and returns the user id it carries. The auth
// service satisfies this; middleware depends on the interface so tests can
// stub it.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// tokenFromRequest looks for the token in the Authorization header (Bearer
// scheme), a bare "token" header, or the session cookie, in that order.
func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if strings.HasPrefix(header, "Bearer ") {
			return strings.TrimPrefix(header, "Bearer ")
		}
		return header
	}
	if token := c.GetHeader("token"); token != "" {
		return token
	}
	if token, err := c.Cookie("token"); err == nil {
		return token
	}
	return ""
}

// JWT requires a valid token and aborts with 401 otherwise. On success the
// viewer's id is stored on the context for handlers to read.
func JWT(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": utils.ErrorTokenAuthFail,
				"msg":  "empty token",
			})
			c.Abort()
			return
		}
		viewerID, err := parser.ParseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": utils.ErrorTokenAuthFail,
				"msg":  err.Error(),
			})
			c.Abort()
			return
		}
		c.Set(viewerKey, viewerID)
		c.Next()
	}
}

// OptionalJWT sets the viewer when a valid token is present and never
// aborts. Endpoints that render for anonymous viewers use this.
func OptionalJWT(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFromRequest(c); token != "" {
			if viewerID, err := parser.ParseToken(token); err == nil {
				c.Set(viewerKey, viewerID)
			}
		}
		c.Next()
	}
}

// ViewerID returns the authenticated user's id, if any.
func ViewerID(c *gin.Context) (string, bool) {
	viewerID := c.GetString(viewerKey)
	return viewerID, viewerID != ""
}
