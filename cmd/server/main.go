package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/echo-insight/echo-insight-backend/api"
	"github.com/echo-insight/echo-insight-backend/internal/card"
	"github.com/echo-insight/echo-insight-backend/internal/draw"
	"github.com/echo-insight/echo-insight-backend/internal/insight"
	"github.com/echo-insight/echo-insight-backend/internal/mood"
	"github.com/echo-insight/echo-insight-backend/internal/platform/config"
	"github.com/echo-insight/echo-insight-backend/internal/platform/database"
	"github.com/echo-insight/echo-insight-backend/internal/platform/startup"
	"github.com/echo-insight/echo-insight-backend/internal/progression"
	"github.com/echo-insight/echo-insight-backend/internal/quota"
	"github.com/echo-insight/echo-insight-backend/internal/user"
	"github.com/echo-insight/echo-insight-backend/pkg/llm"
	"github.com/echo-insight/echo-insight-backend/pkg/logger"
	"github.com/echo-insight/echo-insight-backend/pkg/token"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// .env 仅用于本地开发，文件不存在不是错误
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}

	log, err := logger.New(cfg.Server.Mode)
	if err != nil {
		panic(fmt.Sprintf("初始化日志器失败: %v", err))
	}
	defer log.Sync()

	token.GenerateSecretKey()

	db, err := database.OpenDB(cfg.Database)
	if err != nil {
		panic(fmt.Sprintf("初始化数据库失败: %v", err))
	}

	// Redis只承担卡牌池缓存，连接失败时降级为纯SQL路径
	var cardRepo *card.Repository
	rdb, err := database.OpenRedis(cfg.Database.Redis)
	if err != nil {
		log.Warn("Redis不可用，卡牌缓存已禁用", "error", err)
	} else {
		cardRepo = card.NewRepository(rdb, log)
	}

	// 1. 执行应用首次启动初始化流程（迁移 + 播种）
	if err := startup.InitializeApplication(db); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}
	startup.WarmupCardCache(db, cardRepo)

	// 2. 异步启动后台的持续健康检查器
	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	if rdb != nil {
		go database.StartRedisHealthCheck(healthCtx, rdb)
	}

	// 3. 装配各模块的服务与控制器
	userSvc := user.NewService(db, log)
	cardSvc := card.NewService(db, cardRepo, log)
	moodSvc := mood.NewService(db, log)
	quotaSvc := quota.NewService(db, log, cfg.Quota)
	progressionSvc := progression.NewService(db, log)
	insightSvc := insight.NewService(db, moodSvc, log)
	drawSvc := draw.NewService(db, log, cardSvc, quotaSvc, progressionSvc, insightSvc, llm.NewClient(cfg.LLM))

	handlers := &api.Handlers{
		DB:          db,
		User:        user.NewHandler(userSvc),
		Mood:        mood.NewHandler(moodSvc),
		Quota:       quota.NewHandler(quotaSvc),
		Progression: progression.NewHandler(progressionSvc),
		Draw:        draw.NewHandler(drawSvc),
	}

	// 4. 定时任务：每天00:05清理过期的每日计数行
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("5 0 * * *", func() {
		if _, err := quotaSvc.SweepExpired(); err != nil {
			log.Error("每日配额清理任务失败", "error", err)
		}
	}); err != nil {
		panic(fmt.Sprintf("注册定时任务失败: %v", err))
	}
	scheduler.Start()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r, handlers)

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic("Failed to start server: " + err.Error())
		}
	}()

	// 5. 优雅停机：收到信号后停止接收新请求，放空在途请求
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	fmt.Println("收到停机信号，开始优雅停机...")

	cronCtx := scheduler.Stop()
	stopHealth()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP服务停机超时", "error", err)
	}
	<-cronCtx.Done()

	if rdb != nil {
		_ = rdb.Close()
	}
	fmt.Println("服务已退出。")
}
