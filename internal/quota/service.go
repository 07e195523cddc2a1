package quota

import (
	"errors"
	"fmt"
	"time"

	"github.com/echo-insight/echo-insight-backend/internal/platform/config"
	"github.com/echo-insight/echo-insight-backend/pkg/logger"
	"gorm.io/gorm"
)

// ErrDrawLimitExceeded 表示今日翻卡次数已用完。
var ErrDrawLimitExceeded = errors.New("今日翻卡次数已用完")

// DrawStats 是某个用户当日的翻卡配额快照。
type DrawStats struct {
	DrawCount int `json:"draw_count"`
	MaxDraws  int `json:"max_draws"`
	Remaining int `json:"remaining"`
}

// Service 管理每日翻卡配额。
// 配额的最终裁决发生在数据库的条件更新上，而不是读到的快照上。
type Service struct {
	db            *gorm.DB
	log           *logger.Logger
	maxDraws      int
	retentionDays int
}

func NewService(db *gorm.DB, log *logger.Logger, cfg config.QuotaConfig) *Service {
	maxDraws := cfg.MaxDrawsPerDay
	if maxDraws <= 0 {
		maxDraws = 3
	}
	retentionDays := cfg.RetentionDays
	if retentionDays <= 0 {
		retentionDays = 7
	}
	return &Service{db: db, log: log, maxDraws: maxDraws, retentionDays: retentionDays}
}

// today 返回本地日历日期，作为计数器的行键。
func (s *Service) today() string {
	return time.Now().Format("2006-01-02")
}

// ensureTodayRow 惰性创建今日的计数器行。
// 并发插入撞唯一键时吞掉错误，由随后的读取或条件更新兜底。
func (s *Service) ensureTodayRow(userID string) (*DailyDrawCounter, error) {
	today := s.today()
	counter := DailyDrawCounter{UserID: userID, DrawDate: today}
	err := s.db.Where("user_id = ? AND draw_date = ?", userID, today).
		Attrs(DailyDrawCounter{DrawCount: 0, MaxDraws: s.maxDraws}).
		FirstOrCreate(&counter).Error
	if err != nil {
		// 两个请求同时首次创建时，其中一个的INSERT会撞唯一约束，重读即可
		if rerr := s.db.Where("user_id = ? AND draw_date = ?", userID, today).
			First(&counter).Error; rerr != nil {
			return nil, fmt.Errorf("无法创建今日翻卡计数: %w", err)
		}
	}
	return &counter, nil
}

// GetTodayCount 返回用户今日的翻卡配额快照，首次访问时创建计数行。
func (s *Service) GetTodayCount(userID string) (*DrawStats, error) {
	counter, err := s.ensureTodayRow(userID)
	if err != nil {
		return nil, err
	}
	remaining := counter.MaxDraws - counter.DrawCount
	if remaining < 0 {
		remaining = 0
	}
	return &DrawStats{
		DrawCount: counter.DrawCount,
		MaxDraws:  counter.MaxDraws,
		Remaining: remaining,
	}, nil
}

// IncrementIfAllowed 原子地消耗一次今日配额。
// 单条带守卫的条件更新保证并发下不会超发；没有行被更新即视为已达上限。
func (s *Service) IncrementIfAllowed(userID string) error {
	if _, err := s.ensureTodayRow(userID); err != nil {
		return err
	}

	result := s.db.Model(&DailyDrawCounter{}).
		Where("user_id = ? AND draw_date = ? AND draw_count < max_draws", userID, s.today()).
		UpdateColumn("draw_count", gorm.Expr("draw_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("更新翻卡次数失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDrawLimitExceeded
	}
	return nil
}

// SweepExpired 删除保留窗口之外的历史计数行。
// 计数行只约束当天，过期行仅是垃圾数据，删除失败不影响正确性。
func (s *Service) SweepExpired() (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays).Format("2006-01-02")
	result := s.db.Where("draw_date < ?", cutoff).Delete(&DailyDrawCounter{})
	if result.Error != nil {
		return 0, fmt.Errorf("清理过期翻卡计数失败: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		s.log.Info("已清理过期翻卡计数", "rows", result.RowsAffected, "cutoff", cutoff)
	}
	return result.RowsAffected, nil
}
