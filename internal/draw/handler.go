package draw

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/echo-insight/echo-insight-backend/internal/card"
	"github.com/echo-insight/echo-insight-backend/internal/quota"
	"github.com/echo-insight/echo-insight-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// Handler 处理抽卡、回答、背面生成与历史记录的HTTP请求。
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type drawCardRequest struct {
	MoodTags []string `json:"mood_tags"`
}

// drawCardResponse 在卡牌字段之外附带当日配额信息。
type drawCardResponse struct {
	card.Card
	DailyDrawInfo DailyDrawInfo `json:"daily_draw_info"`
}

// DrawCard 处理 POST /api/cards/draw 请求
func (h *Handler) DrawCard(c *gin.Context) {
	userID, ok := user.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "访问令牌缺失"})
		return
	}

	var req drawCardRequest
	_ = c.ShouldBindJSON(&req) // 空请求体等价于不带心情标签

	result, err := h.service.DrawCard(userID, req.MoodTags)
	if err != nil {
		switch {
		case errors.Is(err, quota.ErrDrawLimitExceeded):
			stats, serr := h.service.quota.GetTodayCount(userID)
			resp := gin.H{
				"error":      "今日翻卡次数已用完",
				"remaining":  0,
				"reset_info": "明日00:00重置",
			}
			if serr == nil {
				resp["draw_count"] = stats.DrawCount
				resp["max_draws"] = stats.MaxDraws
			}
			c.JSON(http.StatusTooManyRequests, resp)
		case errors.Is(err, card.ErrNoEligibleCards):
			c.JSON(http.StatusNotFound, gin.H{"error": "没有找到合适的卡牌"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "抽取卡牌失败"})
		}
		return
	}

	c.JSON(http.StatusOK, drawCardResponse{
		Card:          *result.Card,
		DailyDrawInfo: result.DailyDrawInfo,
	})
}

type submitResponseRequest struct {
	Response string `json:"response"`
}

// SubmitResponse 处理 POST /api/cards/:cardId/response 请求
func (h *Handler) SubmitResponse(c *gin.Context) {
	userID, ok := user.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "访问令牌缺失"})
		return
	}
	cardID, err := parseUintParam(c.Param("cardId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的卡牌ID"})
		return
	}

	var req submitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}

	respLen, xpGained, err := h.service.SubmitResponse(userID, cardID, req.Response)
	if err != nil {
		if errors.Is(err, ErrNoSuchDraw) {
			c.JSON(http.StatusNotFound, gin.H{"error": "没有找到对应的抽卡记录，请先抽卡"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存回答失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "回答保存成功",
		"response_length": respLen,
		"xp_gained":       xpGained,
	})
}

type generateBackRequest struct {
	Mood string `json:"mood"`
}

// GenerateBack 处理 POST /api/cards/:cardId/generate-back 请求
func (h *Handler) GenerateBack(c *gin.Context) {
	userID, ok := user.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "访问令牌缺失"})
		return
	}
	cardID, err := parseUintParam(c.Param("cardId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的卡牌ID"})
		return
	}

	var req generateBackRequest
	_ = c.ShouldBindJSON(&req)

	content, err := h.service.GenerateBack(c.Request.Context(), userID, cardID, req.Mood)
	if err != nil {
		if errors.Is(err, ErrNoSuchDraw) {
			c.JSON(http.StatusNotFound, gin.H{"error": "卡牌不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成背面内容失败"})
		return
	}

	c.JSON(http.StatusOK, content)
}

// History 处理 GET /api/user/history 请求
func (h *Handler) History(c *gin.Context) {
	userID, ok := user.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "访问令牌缺失"})
		return
	}

	entries, err := h.service.History(userID, c.Query("card_type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取历史记录失败"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// DeleteHistory 处理 DELETE /api/user/history/:drawId 请求
func (h *Handler) DeleteHistory(c *gin.Context) {
	userID, ok := user.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "访问令牌缺失"})
		return
	}
	drawID, err := parseUintParam(c.Param("drawId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的记录ID"})
		return
	}

	if err := h.service.DeleteHistory(userID, drawID); err != nil {
		switch {
		case errors.Is(err, ErrNoSuchDraw):
			c.JSON(http.StatusNotFound, gin.H{"error": "记录不存在"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "无权限删除此记录"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "删除失败"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "删除成功"})
}

func parseUintParam(raw string) (uint, error) {
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
