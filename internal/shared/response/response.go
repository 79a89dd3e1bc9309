package response

import (
	"go-timetrack/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details"`
}

// JSON writes a success payload as the bare resource (or list), matching the
// upstream product's response shapes.
func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// NoContent writes an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(204)
}

// Error writes the error envelope {"error": <message>, "details": {...}}.
func Error(c *gin.Context, status int, message string, details any) {
	if details == nil {
		details = gin.H{}
	}
	c.JSON(status, errorBody{Error: message, Details: details})
}

// FromError maps any error through the apperror taxonomy and writes it.
func FromError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	Error(c, httpErr.Status, httpErr.Message, httpErr.Details)
}

// AbortError writes the envelope and aborts the middleware chain.
func AbortError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	c.Abort()
	Error(c, httpErr.Status, httpErr.Message, httpErr.Details)
}
