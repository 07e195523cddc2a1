package database

import (
	"context"
	"fmt"

	"github.com/echo-insight/echo-insight-backend/internal/platform/config"
	"github.com/redis/go-redis/v9"
)

// Ctx 是Redis操作使用的基础上下文
var Ctx = context.Background()

// OpenRedis 初始化与Redis的连接并返回客户端。
// Redis在本服务中只承担静态卡牌池的预热缓存，不缓存任何按用户维度的行，
// 因此它不可用时应用依然可以在纯SQL路径上工作。
func OpenRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 使用Ping命令来测试连接是否成功
	if _, err := rdb.Ping(Ctx).Result(); err != nil {
		return nil, fmt.Errorf("无法连接到Redis: %w", err)
	}

	fmt.Println("Redis 连接成功！")
	return rdb, nil
}
