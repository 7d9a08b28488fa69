package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/hotend/giveaway-backend/pkg/response"
)

// AdminSecretHeader is the header checked when no query token is supplied.
const AdminSecretHeader = "X-Admin-Secret"

// AdminSecret returns a middleware that gates a route behind the shared
// operator secret. The token comes from the "secret" query parameter, or the
// X-Admin-Secret header when the query parameter is absent. Any mismatch is
// rejected with the same 401, and an empty configured secret rejects all
// requests rather than waving everyone through.
func AdminSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("secret")
		if token == "" {
			token = c.GetHeader(AdminSecretHeader)
		}
		if secret == "" || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			response.Unauthorized(c, "unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}
