package util

import "github.com/gin-gonic/gin"

// Success writes the standard success envelope: {"message": ..., "data": ...}.
func Success(c *gin.Context, status int, message string, data gin.H) {
	body := gin.H{"message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// Error writes the standard error envelope: {"error": ...}.
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}
