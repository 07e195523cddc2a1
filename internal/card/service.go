package card

import (
	"errors"
	"fmt"

	"github.com/echo-insight/echo-insight-backend/pkg/logger"
	"gorm.io/gorm"
)

// ErrNoEligibleCards 表示按当前条件没有可抽取的卡牌。
var ErrNoEligibleCards = errors.New("没有找到合适的卡牌")

// drawableCategories 是可被抽取的卡牌类别。
var drawableCategories = []string{"情绪类", "成长类", "关系类", "自我力量类"}

// Service 提供卡牌池的读取能力。
type Service struct {
	db   *gorm.DB
	repo *Repository
	log  *logger.Logger
}

func NewService(db *gorm.DB, repo *Repository, log *logger.Logger) *Service {
	return &Service{db: db, repo: repo, log: log}
}

// PickRandom 从可抽取类别中随机选取一张卡牌。
// moodTag非空时，只匹配首个心情标签：未标注标签的卡牌视为通配。
func (s *Service) PickRandom(moodTag string) (*Card, error) {
	query := s.db.Where("category IN ?", drawableCategories)
	if moodTag != "" {
		query = query.Where("(mood_tags IS NULL OR mood_tags = '' OR mood_tags LIKE ?)", "%"+moodTag+"%")
	}

	var c Card
	// RANDOM()在SQLite和Postgres下行为一致
	if err := query.Order("RANDOM()").First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEligibleCards
		}
		return nil, fmt.Errorf("抽取卡牌失败: %w", err)
	}
	return &c, nil
}

// GetByID 按ID读取一张卡牌，优先命中Redis缓存，失败时退回SQL。
func (s *Service) GetByID(id uint) (*Card, error) {
	if s.repo != nil {
		if c, ok := s.repo.GetCachedInfo(id); ok {
			return c, nil
		}
	}

	var c Card
	if err := s.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEligibleCards
		}
		return nil, fmt.Errorf("读取卡牌失败: %w", err)
	}
	return &c, nil
}
