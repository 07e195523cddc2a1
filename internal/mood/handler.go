package mood

import (
	"net/http"

	"github.com/echo-insight/echo-insight-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// Handler 处理心情记录相关的HTTP请求。
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type recordMoodRequest struct {
	OverallMood string   `json:"overall_mood" binding:"required"`
	EnergyLevel string   `json:"energy_level" binding:"required"`
	Concerns    []string `json:"concerns"`
}

// RecordMood 处理 POST /api/mood 请求
func (h *Handler) RecordMood(c *gin.Context) {
	userID, ok := user.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "访问令牌缺失"})
		return
	}

	var req recordMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}

	id, err := h.service.Record(userID, req.OverallMood, req.EnergyLevel, req.Concerns)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "记录心情失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "心情记录成功", "id": id})
}
