// Package responses writes the JSON envelope shared by every API route.
package responses

import "github.com/gin-gonic/gin"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func failure(err error, message string) APIResponse {
	resp := APIResponse{Status: StatusError, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

func Success(c *gin.Context, statusCode int, data any, message string) {
	c.JSON(statusCode, APIResponse{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	})
}

func Fail(c *gin.Context, statusCode int, err error, message string) {
	c.JSON(statusCode, failure(err, message))
}

// Abort writes a failure and stops the handler chain.
func Abort(c *gin.Context, statusCode int, err error, message string) {
	c.AbortWithStatusJSON(statusCode, failure(err, message))
}
