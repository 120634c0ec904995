package middleware

import (
	"github.com/gin-gonic/gin"

	"catalog/internal/shared/constants"
	"catalog/internal/shared/id"
)

// RequestID tags every request with an identifier, honoring one supplied by
// the client so identifiers survive proxy hops.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = id.NewRequestID()
		}

		c.Set(constants.ContextKeyRequestID, requestID)
		c.Writer.Header().Set(constants.HeaderXRequestID, requestID)

		c.Next()
	}
}

// GetRequestID returns the identifier assigned by RequestID, or an empty
// string when the middleware did not run.
func GetRequestID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyRequestID)
}
