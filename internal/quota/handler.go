package quota

import (
	"net/http"

	"github.com/echo-insight/echo-insight-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// Handler 处理翻卡配额相关的HTTP请求。
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetDailyDraws 处理 GET /api/user/daily-draws 请求
func (h *Handler) GetDailyDraws(c *gin.Context) {
	userID, ok := user.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "访问令牌缺失"})
		return
	}

	stats, err := h.service.GetTodayCount(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取翻卡次数失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"draw_count": stats.DrawCount,
		"max_draws":  stats.MaxDraws,
		"remaining":  stats.Remaining,
		"can_draw":   stats.DrawCount < stats.MaxDraws,
	})
}
