package draw

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/echo-insight/echo-insight-backend/internal/card"
	"github.com/echo-insight/echo-insight-backend/internal/insight"
	"github.com/echo-insight/echo-insight-backend/internal/progression"
	"github.com/echo-insight/echo-insight-backend/internal/quota"
	"github.com/echo-insight/echo-insight-backend/pkg/llm"
	"github.com/echo-insight/echo-insight-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	// ErrNoSuchDraw 表示没有找到对应的抽卡记录。
	ErrNoSuchDraw = errors.New("没有找到对应的抽卡记录")
	// ErrNotOwner 表示记录不属于当前用户。
	ErrNotOwner = errors.New("无权限操作此记录")
)

// Service 编排抽卡全流程：配额、选卡、落记录、成长奖励。
type Service struct {
	db          *gorm.DB
	log         *logger.Logger
	cards       *card.Service
	quota       *quota.Service
	progression *progression.Service
	insight     *insight.Service
	llm         llm.Client
}

func NewService(
	db *gorm.DB,
	log *logger.Logger,
	cards *card.Service,
	quotaSvc *quota.Service,
	progressionSvc *progression.Service,
	insightSvc *insight.Service,
	llmClient llm.Client,
) *Service {
	return &Service{
		db:          db,
		log:         log,
		cards:       cards,
		quota:       quotaSvc,
		progression: progressionSvc,
		insight:     insightSvc,
		llm:         llmClient,
	}
}

// DailyDrawInfo 是抽卡响应里附带的配额快照。
type DailyDrawInfo struct {
	DrawCount int `json:"draw_count"`
	MaxDraws  int `json:"max_draws"`
	Remaining int `json:"remaining"`
}

// DrawResult 是一次成功抽卡的结果。
type DrawResult struct {
	Card          *card.Card
	DailyDrawInfo DailyDrawInfo
}

// DrawCard 执行一次抽卡。
// 流程：配额预检查 -> 随机选卡 -> 落抽卡记录 -> 原子消耗配额 -> 成长奖励。
// 预检查只为了快速拒绝；真正防超发的是IncrementIfAllowed的条件更新。
// 并发竞争下可能留下一条未消耗配额的抽卡记录，保留它：记录的是事实。
func (s *Service) DrawCard(userID string, moodTags []string) (*DrawResult, error) {
	stats, err := s.quota.GetTodayCount(userID)
	if err != nil {
		return nil, err
	}
	if stats.DrawCount >= stats.MaxDraws {
		return nil, quota.ErrDrawLimitExceeded
	}

	moodTag := ""
	if len(moodTags) > 0 {
		moodTag = moodTags[0]
	}
	picked, err := s.cards.PickRandom(moodTag)
	if err != nil {
		return nil, err
	}

	event := CardDrawEvent{UserID: userID, CardID: picked.ID}
	if err := s.db.Create(&event).Error; err != nil {
		return nil, fmt.Errorf("记录抽卡失败: %w", err)
	}

	if err := s.quota.IncrementIfAllowed(userID); err != nil {
		return nil, err
	}

	// 成长奖励失败不影响抽卡结果
	if err := s.progression.UpdateConsecutiveDays(userID); err != nil {
		s.log.Warn("更新连续天数失败", "userId", userID, "error", err)
	}
	if err := s.progression.AddExperience(userID, 10, "抽卡"); err != nil {
		s.log.Warn("发放抽卡经验失败", "userId", userID, "error", err)
	}

	updated, err := s.quota.GetTodayCount(userID)
	if err != nil {
		updated = stats
	}
	return &DrawResult{
		Card: picked,
		DailyDrawInfo: DailyDrawInfo{
			DrawCount: updated.DrawCount,
			MaxDraws:  updated.MaxDraws,
			Remaining: updated.Remaining,
		},
	}, nil
}

// SubmitResponse 把回答写到该用户对这张卡最近一次的抽卡记录上。
// 返回按字符计的回答长度和本次获得的经验值。
func (s *Service) SubmitResponse(userID string, cardID uint, response string) (respLen int, xpGained int, err error) {
	trimmed := strings.TrimSpace(response)
	respLen = len([]rune(trimmed))

	var event CardDrawEvent
	err = s.db.Where("user_id = ? AND card_id = ?", userID, cardID).
		Order("id DESC").
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, ErrNoSuchDraw
		}
		return 0, 0, fmt.Errorf("检查抽卡记录失败: %w", err)
	}

	uerr := s.db.Model(&CardDrawEvent{}).
		Where("id = ?", event.ID).
		Updates(map[string]interface{}{
			"user_response":   trimmed,
			"response_length": respLen,
		}).Error
	if uerr != nil {
		return 0, 0, fmt.Errorf("保存回答失败: %w", uerr)
	}

	if err := s.progression.UpdateConsecutiveDays(userID); err != nil {
		s.log.Warn("更新连续天数失败", "userId", userID, "error", err)
	}

	// 基础10XP + 每10字符1XP，封顶50XP；空回答不给经验
	if respLen > 0 {
		xpGained = respLen/10 + 10
		if xpGained > 50 {
			xpGained = 50
		}
		if err := s.progression.AddExperience(userID, xpGained, "记录回答"); err != nil {
			s.log.Warn("发放回答经验失败", "userId", userID, "error", err)
		}
	}
	return respLen, xpGained, nil
}

// HistoryEntry 是历史记录的一行：每张卡只保留最近一次抽取。
type HistoryEntry struct {
	ID             uint      `json:"id"`
	UserID         string    `json:"user_id"`
	CardID         uint      `json:"card_id"`
	UserResponse   string    `json:"user_response"`
	ResponseLength int       `json:"response_length"`
	DrawnAt        time.Time `json:"drawn_at"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Category       string    `json:"category"`
}

// History 返回用户的抽卡历史，按类别筛选，每张卡取最近一次，最多50条。
func (s *Service) History(userID, cardType string) ([]HistoryEntry, error) {
	query := `WITH ranked AS (
		SELECT cd.id, cd.user_id, cd.card_id, cd.user_response, cd.response_length, cd.drawn_at,
		       c.title, c.content, c.category,
		       ROW_NUMBER() OVER (PARTITION BY cd.card_id ORDER BY cd.drawn_at DESC) AS rn
		FROM card_draws cd
		JOIN cards c ON cd.card_id = c.id
		WHERE cd.user_id = ?`
	args := []interface{}{userID}
	if cardType != "" && cardType != "全部" {
		query += " AND c.category = ?"
		args = append(args, cardType)
	}
	query += `)
	SELECT id, user_id, card_id, user_response, response_length, drawn_at, title, content, category
	FROM ranked WHERE rn = 1
	ORDER BY drawn_at DESC
	LIMIT 50`

	var entries []HistoryEntry
	if err := s.db.Raw(query, args...).Scan(&entries).Error; err != nil {
		return nil, fmt.Errorf("获取历史记录失败: %w", err)
	}
	return entries, nil
}

// DeleteHistory 删除一条属于当前用户的抽卡记录。
func (s *Service) DeleteHistory(userID string, drawID uint) error {
	var event CardDrawEvent
	if err := s.db.First(&event, drawID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoSuchDraw
		}
		return fmt.Errorf("查询记录失败: %w", err)
	}
	if event.UserID != userID {
		return ErrNotOwner
	}

	if err := s.db.Where("id = ? AND user_id = ?", drawID, userID).
		Delete(&CardDrawEvent{}).Error; err != nil {
		return fmt.Errorf("删除失败: %w", err)
	}
	return nil
}
