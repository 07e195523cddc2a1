package startup

import (
	"fmt"

	"github.com/echo-insight/echo-insight-backend/internal/card"
	"github.com/echo-insight/echo-insight-backend/internal/draw"
	"github.com/echo-insight/echo-insight-backend/internal/mood"
	"github.com/echo-insight/echo-insight-backend/internal/progression"
	"github.com/echo-insight/echo-insight-backend/internal/quota"
	"github.com/echo-insight/echo-insight-backend/internal/user"
	"gorm.io/gorm"
)

// InitializeApplication 是应用首次启动时执行的总入口：
// 依次迁移各模块的表结构并播种静态数据（16型MBTI描述、内置卡牌包）。
func InitializeApplication(db *gorm.DB) error {
	fmt.Println("开始应用首次初始化...")

	if err := user.SetupModule(db); err != nil {
		return err
	}
	if err := card.SetupModule(db); err != nil {
		return err
	}
	if err := mood.SetupModule(db); err != nil {
		return err
	}
	if err := quota.SetupModule(db); err != nil {
		return err
	}
	if err := progression.SetupModule(db); err != nil {
		return err
	}
	if err := draw.SetupModule(db); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}

// WarmupCardCache 在Redis可用时把静态卡牌池预热到缓存。
// 预热失败不阻塞启动，读取路径会自动回落到SQL。
func WarmupCardCache(db *gorm.DB, repo *card.Repository) {
	if repo == nil {
		return
	}
	if err := repo.WarmupCache(db); err != nil {
		fmt.Printf("警告: 卡牌缓存预热失败，将使用SQL直读: %v\n", err)
	}
}
