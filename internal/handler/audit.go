package handler

import (
	"net/http"
	"strconv"

	"github.com/capstonec242/Tabungin-API/internal/middleware"
	"github.com/capstonec242/Tabungin-API/internal/models"
	"github.com/capstonec242/Tabungin-API/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LogHandler lists the current user's audit trail.
type LogHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewLogHandler(db *gorm.DB, pageSize int) *LogHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &LogHandler{DB: db, PageSize: pageSize}
}

// ListLogs returns the user's audit entries, newest first, paginated.
func (h *LogHandler) ListLogs(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, "Unauthorized: Token is required.")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.PageSize)))
	if size <= 0 || size > 100 {
		size = h.PageSize
	}
	offset := (page - 1) * size

	base := h.DB.Model(&models.AuditLog{}).Where("user_id = ?", user.ID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error fetching logs!")
		return
	}

	var logs []models.AuditLog
	if err := base.Session(&gorm.Session{}).
		Order("created_at DESC, id DESC").
		Limit(size).
		Offset(offset).
		Find(&logs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error fetching logs!")
		return
	}

	items := make([]gin.H, 0, len(logs))
	for _, l := range logs {
		items = append(items, gin.H{
			"id":        l.ID,
			"method":    l.Method,
			"path":      l.Path,
			"action":    l.Action,
			"ip":        l.IP,
			"createdAt": l.CreatedAt,
		})
	}

	util.Success(c, http.StatusOK, "Logs fetched successfully.", gin.H{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	})
}
