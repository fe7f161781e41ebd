package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/oksasatya/majesty-shop/pkg/helpers"
)

const CtxClientIDKey = "client_id"

// ClientScope resolves the storage scope of the calling browser. A missing or
// malformed client_id cookie is replaced by a fresh one.
func ClientScope(cookies *helpers.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(helpers.ClientCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			cookies.SetClientID(c, id)
		}
		c.Set(CtxClientIDKey, id)
		c.Next()
	}
}

// ClientID returns the scope set by ClientScope.
func ClientID(c *gin.Context) string {
	return c.GetString(CtxClientIDKey)
}
