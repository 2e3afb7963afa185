package helpers

import "github.com/gin-gonic/gin"

// UserIDKey is the gin context key the identity middleware stores the
// authenticated user id under. Authentication itself happens upstream; the
// core only receives the resulting identity.
const UserIDKey = "user_id"

// UserIDHeader is the header the external identity layer forwards.
const UserIDHeader = "X-User-ID"

// ActorID returns the authenticated user id for the request, or "" when the
// request carries no identity.
func ActorID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
