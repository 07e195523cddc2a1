package api

import (
	"net/http"
	"time"

	"github.com/echo-insight/echo-insight-backend/internal/draw"
	"github.com/echo-insight/echo-insight-backend/internal/mood"
	"github.com/echo-insight/echo-insight-backend/internal/platform/database"
	"github.com/echo-insight/echo-insight-backend/internal/progression"
	"github.com/echo-insight/echo-insight-backend/internal/quota"
	"github.com/echo-insight/echo-insight-backend/internal/user"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handlers 汇集各模块的控制器，由main在装配阶段填充。
type Handlers struct {
	DB          *gorm.DB
	User        *user.Handler
	Mood        *mood.Handler
	Quota       *quota.Handler
	Progression *progression.Handler
	Draw        *draw.Handler
}

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine, h *Handlers) {
	api := router.Group("/api")
	{
		// 健康检查与公开路由
		api.GET("/health", healthHandler(h.DB))
		api.POST("/register", h.User.Register)
		api.POST("/login", h.User.Login)
		api.GET("/mbti-types", h.User.ListMBTITypes)

		// 需要认证的路由
		authed := api.Group("")
		authed.Use(user.RequireAuthMiddleware())
		{
			authed.GET("/user/info", h.User.GetInfo)
			authed.PUT("/user/mbti", h.User.UpdateMBTI)

			authed.POST("/mood", h.Mood.RecordMood)

			// 卡牌相关的路由组 /api/cards
			cardRoutes := authed.Group("/cards")
			{
				cardRoutes.POST("/draw", h.Draw.DrawCard)
				cardRoutes.POST("/:cardId/response", h.Draw.SubmitResponse)
				cardRoutes.POST("/:cardId/generate-back", h.Draw.GenerateBack)
			}

			authed.GET("/user/daily-draws", h.Quota.GetDailyDraws)
			authed.GET("/user/progress", h.Progression.GetProgress)
			authed.POST("/events", h.Progression.RecordEvent)
			authed.GET("/user/history", h.Draw.History)
			authed.DELETE("/user/history/:drawId", h.Draw.DeleteHistory)
		}
	}
}

// healthHandler 返回服务自身与依赖存储的健康状态。
func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "ok"
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "unavailable"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database":  dbStatus,
			"redis":     database.IsRedisHealthy(),
		})
	}
}
