package middleware

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/capstonec242/Tabungin-API/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// sensitiveKeys are request fields that must never reach the audit trail.
var sensitiveKeys = []string{"password", "newPassword"}

// redactBody masks credential fields in a JSON request body before it is
// stored. Non-JSON bodies pass through unchanged.
func redactBody(body []byte) string {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return string(body)
	}
	redacted := false
	for _, key := range sensitiveKeys {
		if _, ok := fields[key]; ok {
			fields[key] = "[REDACTED]"
			redacted = true
		}
	}
	if !redacted {
		return string(body)
	}
	out, err := json.Marshal(fields)
	if err != nil {
		return string(body)
	}
	return string(out)
}

// AuditMiddleware records one audit row per authenticated request.
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// read the request body so it can be included in the audit action
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		// only record operations of logged-in users
		user := CurrentUser(c)
		if user == nil {
			return
		}

		path := c.Request.URL.Path
		action := c.Request.Method + " " + path
		if len(bodyBytes) > 0 && len(bodyBytes) < 2000 {
			action += " " + redactBody(bodyBytes)
		}

		userID := user.ID
		entry := models.AuditLog{
			UserID:    &userID,
			Path:      path,
			Method:    c.Request.Method,
			Action:    action,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}

		_ = db.Create(&entry).Error
	}
}
