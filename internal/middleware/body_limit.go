package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartexam/backend/internal/app/models/dto"
)

// MaxBodyBytes caps request bodies at 16KB
const MaxBodyBytes = 16 << 10

// BodyLimit rejects request bodies larger than MaxBodyBytes. Bodies without a
// declared Content-Length are wrapped with http.MaxBytesReader instead, so an
// oversized payload fails mid-read during binding; HandleValidationError turns
// that MaxBytesError into the same 413.
func BodyLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > MaxBodyBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse("Request body too large"))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
		c.Next()
	}
}
