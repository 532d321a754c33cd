package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/survey-admin-api/pkg/errors"
)

// ErrorBody is the payload written for every failed request.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON sends a 200 envelope keyed by the resource name, e.g. {"courses": [...]}.
func JSON(c *gin.Context, key string, data interface{}) {
	noStore(c)
	c.JSON(http.StatusOK, gin.H{key: data})
}

// Message sends a 200 envelope carrying a human readable message.
func Message(c *gin.Context, message string) {
	JSON(c, "message", message)
}

// Error converts err into {"error": message}. The wrapped cause is never serialised.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	noStore(c)
	c.JSON(appErr.Status, ErrorBody{Error: appErr.Message})
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
