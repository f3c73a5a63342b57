package response

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/hamroguru/tutor-api/pkg/errors"
)

// The frontend consumes two failure shapes: the teacher-directory endpoints
// return {success:false, error:...} while the auth endpoints return
// {message:...}. Both map typed errors to their HTTP status.

// Fail sends a directory-style failure body.
func Fail(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, gin.H{"success": false, "error": appErr.Message})
}

// FailMessage sends an auth-style failure body.
func FailMessage(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, gin.H{"message": appErr.Message})
}
