package mood

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/echo-insight/echo-insight-backend/pkg/logger"
	"gorm.io/gorm"
)

// Service 负责心情记录的写入与读取。
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewService(db *gorm.DB, log *logger.Logger) *Service {
	return &Service{db: db, log: log}
}

// Record 写入一条心情记录，返回新记录的ID。
func (s *Service) Record(userID, overallMood, energyLevel string, concerns []string) (uint, error) {
	concernsJSON, _ := json.Marshal(concerns)
	record := MoodRecord{
		UserID:      userID,
		OverallMood: overallMood,
		EnergyLevel: energyLevel,
		Concerns:    string(concernsJSON),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return 0, fmt.Errorf("记录心情失败: %w", err)
	}
	return record.ID, nil
}

// RecentSince 按时间倒序返回用户在since之后的心情记录，最多limit条。
func (s *Service) RecentSince(userID string, since time.Time, limit int) ([]MoodRecord, error) {
	var records []MoodRecord
	err := s.db.Where("user_id = ? AND recorded_at >= ?", userID, since).
		Order("recorded_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("读取心情记录失败: %w", err)
	}
	return records, nil
}
