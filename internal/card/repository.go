package card

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/echo-insight/echo-insight-backend/internal/platform/database"
	"github.com/echo-insight/echo-insight-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// 定义与卡牌相关的Redis键名
const (
	// InfoKey 是一个Redis Hash，存储所有卡牌的静态数据
	InfoKey = "card_info"
	// IDSetKey 是一个Redis Set，存储卡牌池中所有卡牌的ID
	IDSetKey = "card_ids"
)

// CardInfo 定义了在Redis card_info Hash中存储的卡牌静态数据
type CardInfo struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	CardType string `json:"card_type"`
	MoodTags string `json:"mood_tags"`
}

// Repository 管理卡牌静态数据在Redis中的预热缓存。
// 卡牌池启动后只读，因此缓存无需失效策略；Redis不可用时调用方退回SQL。
type Repository struct {
	rdb *redis.Client
	log *logger.Logger
}

func NewRepository(rdb *redis.Client, log *logger.Logger) *Repository {
	return &Repository{rdb: rdb, log: log}
}

// WarmupCache 从数据库加载全部卡牌静态数据，预热到Redis。
func (r *Repository) WarmupCache(db *gorm.DB) error {
	if r.rdb == nil {
		return nil
	}

	var cards []Card
	if err := db.Order("id asc").Find(&cards).Error; err != nil {
		return fmt.Errorf("无法从数据库读取卡牌数据: %w", err)
	}

	pipe := r.rdb.Pipeline()
	pipe.Del(database.Ctx, InfoKey, IDSetKey)
	for _, c := range cards {
		info := CardInfo{
			Title:    c.Title,
			Content:  c.Content,
			Category: c.Category,
			CardType: c.CardType,
			MoodTags: c.MoodTags,
		}
		infoJSON, _ := json.Marshal(info)
		field := strconv.FormatUint(uint64(c.ID), 10)
		pipe.HSet(database.Ctx, InfoKey, field, infoJSON)
		pipe.SAdd(database.Ctx, IDSetKey, field)
	}
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热卡牌静态数据到Redis失败: %w", err)
	}

	fmt.Printf("成功预热 %d 条卡牌静态数据到Redis。\n", len(cards))
	return nil
}

// GetCachedInfo 从Redis读取一张卡牌的静态数据。
// 第二个返回值为false时表示缓存未命中或Redis异常，调用方应退回SQL。
func (r *Repository) GetCachedInfo(id uint) (*Card, bool) {
	if r.rdb == nil || !database.IsRedisHealthy() {
		return nil, false
	}

	field := strconv.FormatUint(uint64(id), 10)
	raw, err := r.rdb.HGet(database.Ctx, InfoKey, field).Result()
	if err != nil {
		return nil, false
	}

	var info CardInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		r.log.Warn("卡牌缓存数据损坏", "cardId", id, "error", err)
		return nil, false
	}
	return &Card{
		ID:       id,
		Title:    info.Title,
		Content:  info.Content,
		Category: info.Category,
		CardType: info.CardType,
		MoodTags: info.MoodTags,
	}, true
}
