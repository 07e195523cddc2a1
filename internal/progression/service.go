package progression

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/echo-insight/echo-insight-backend/pkg/logger"
	"gorm.io/gorm"
)

// Service 管理用户的经验值、等级与连续天数。
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewService(db *gorm.DB, log *logger.Logger) *Service {
	return &Service{db: db, log: log}
}

// today 返回本地日历日期。
func today() string {
	return time.Now().Format("2006-01-02")
}

// GetProgress 返回用户的进度；尚无记录时返回初始快照而不是错误。
func (s *Service) GetProgress(userID string) (*UserProgress, error) {
	var progress UserProgress
	err := s.db.Where("user_id = ?", userID).First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &UserProgress{UserID: userID, Level: 1}, nil
		}
		return nil, fmt.Errorf("获取进度失败: %w", err)
	}
	return &progress, nil
}

// AddExperience 为用户增加经验值并重算等级，同时落一条xp_gained事件。
// 读改写之间存在竞争窗口：并发加经验时可能少算一次，奖励值不敏感，接受该窗口。
func (s *Service) AddExperience(userID string, amount int, reason string) error {
	var progress UserProgress
	err := s.db.Where("user_id = ?", userID).First(&progress).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("读取进度失败: %w", err)
	}

	newXP := progress.ExperiencePoints + amount
	newLevel := CalculateLevel(newXP)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = UserProgress{
			UserID:           userID,
			Level:            newLevel,
			ExperiencePoints: newXP,
			ConsecutiveDays:  1,
			LastActivityDate: today(),
		}
		if cerr := s.db.Create(&progress).Error; cerr != nil {
			return fmt.Errorf("创建进度记录失败: %w", cerr)
		}
	} else {
		uerr := s.db.Model(&UserProgress{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"experience_points": newXP,
				"level":             newLevel,
			}).Error
		if uerr != nil {
			return fmt.Errorf("更新经验值失败: %w", uerr)
		}
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"amount":   amount,
		"reason":   reason,
		"newXP":    newXP,
		"newLevel": newLevel,
	})
	event := AnalyticsEvent{UserID: userID, Type: "xp_gained", Payload: string(payload)}
	if eerr := s.db.Create(&event).Error; eerr != nil {
		// 埋点失败不回滚经验值
		s.log.Warn("记录经验值事件失败", "userId", userID, "error", eerr)
	}
	return nil
}

// UpdateConsecutiveDays 按本地日历日期维护连续打卡天数。
// 同一天内重复活动不更新；隔了一天递增；中断则重置为1；
// 上次日期晚于今天（时钟回拨）时不做任何修改。
func (s *Service) UpdateConsecutiveDays(userID string) error {
	todayStr := today()

	var progress UserProgress
	err := s.db.Where("user_id = ?", userID).First(&progress).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("读取进度失败: %w", err)
		}
		progress = UserProgress{
			UserID:           userID,
			Level:            1,
			ConsecutiveDays:  1,
			LastActivityDate: todayStr,
		}
		if cerr := s.db.Create(&progress).Error; cerr != nil {
			return fmt.Errorf("创建进度记录失败: %w", cerr)
		}
		return nil
	}

	newConsecutiveDays := 1
	if progress.LastActivityDate != "" {
		diffDays, derr := dayDiff(progress.LastActivityDate, todayStr)
		if derr == nil {
			switch {
			case diffDays == 0:
				return nil
			case diffDays == 1:
				newConsecutiveDays = progress.ConsecutiveDays + 1
			case diffDays < 0:
				return nil
			}
		}
	}

	uerr := s.db.Model(&UserProgress{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"consecutive_days":   newConsecutiveDays,
			"last_activity_date": todayStr,
		}).Error
	if uerr != nil {
		return fmt.Errorf("更新连续天数失败: %w", uerr)
	}
	return nil
}

// dayDiff 计算两个"YYYY-MM-DD"日期相差的天数（to - from）。
// 以UTC解析纯日期串，避免夏令时导致相邻两天不足24小时。
func dayDiff(from, to string) (int, error) {
	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return 0, err
	}
	toDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		return 0, err
	}
	return int(toDate.Sub(fromDate).Hours() / 24), nil
}

// RecordEvent 写入一条埋点事件，返回事件ID。
func (s *Service) RecordEvent(userID, eventType string, payload interface{}) (uint, error) {
	payloadJSON := "{}"
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, fmt.Errorf("序列化事件负载失败: %w", err)
		}
		payloadJSON = string(raw)
	}

	event := AnalyticsEvent{UserID: userID, Type: eventType, Payload: payloadJSON}
	if err := s.db.Create(&event).Error; err != nil {
		return 0, fmt.Errorf("记录事件失败: %w", err)
	}
	return event.ID, nil
}
