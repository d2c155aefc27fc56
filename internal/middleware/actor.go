package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/JoyChela/Epidemiology/internal/auth"
)

// ActorKey is the gin context key holding the acting user's id.
const ActorKey = "actor_id"

// Actor resolves an optional bearer token into the acting user. Requests
// without a token, or with one that does not verify, proceed anonymously.
func Actor(issuer *auth.Issuer, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !issuer.Enabled() {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.Next()
			return
		}

		id, err := issuer.Parse(token)
		if err != nil {
			log.Debug().Err(err).Str("request_id", GetRequestID(c)).Msg("ignoring invalid actor token")
			c.Next()
			return
		}
		c.Set(ActorKey, id)
		c.Next()
	}
}

// GetActor returns the acting user id, or nil when the request is anonymous.
func GetActor(c *gin.Context) *uint {
	v, ok := c.Get(ActorKey)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}
