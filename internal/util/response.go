package util

import (
	"github.com/gin-gonic/gin"
)

// Response is the data payload of a successful reply.
type Response map[string]interface{}

// Success writes the standard success envelope.
func Success(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// Error writes the standard failure envelope.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// ErrorDetail writes a failure envelope carrying diagnostic detail.
// The detail is suppressed in release mode so driver errors never
// reach clients in production.
func ErrorDetail(c *gin.Context, status int, message string, err error) {
	body := gin.H{
		"success": false,
		"message": message,
	}
	if err != nil && gin.Mode() != gin.ReleaseMode {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}
