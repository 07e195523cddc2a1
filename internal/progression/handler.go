package progression

import (
	"net/http"

	"github.com/echo-insight/echo-insight-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// Handler 处理用户进度与埋点相关的HTTP请求。
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetProgress 处理 GET /api/user/progress 请求
func (h *Handler) GetProgress(c *gin.Context) {
	userID, ok := user.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "访问令牌缺失"})
		return
	}

	progress, err := h.service.GetProgress(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取进度失败"})
		return
	}

	c.JSON(http.StatusOK, progress)
}

type recordEventRequest struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// RecordEvent 处理 POST /api/events 请求
func (h *Handler) RecordEvent(c *gin.Context) {
	userID, ok := user.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "访问令牌缺失"})
		return
	}

	var req recordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少事件类型"})
		return
	}

	id, err := h.service.RecordEvent(userID, req.Type, req.Payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "记录事件失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}
