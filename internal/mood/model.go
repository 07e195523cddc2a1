package mood

import "time"

// MoodRecord 是一条用户心情记录。
// Concerns 存储为JSON数组字符串，例如 ["工作","睡眠"]。
type MoodRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	OverallMood string    `gorm:"not null" json:"overall_mood"`
	EnergyLevel string    `gorm:"not null" json:"energy_level"`
	Concerns    string    `json:"concerns"`
	RecordedAt  time.Time `gorm:"autoCreateTime" json:"recorded_at"`
}
