package progression

import "time"

// UserProgress 是每个用户一行的成长进度。
// LastActivityDate 存储本地日历日期的"YYYY-MM-DD"字符串，空串表示尚无活动。
type UserProgress struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	UserID             string `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Level              int    `gorm:"not null;default:1" json:"level"`
	ExperiencePoints   int    `gorm:"not null;default:0" json:"experience_points"`
	ConsecutiveDays    int    `gorm:"not null;default:0" json:"consecutive_days"`
	LastActivityDate   string `gorm:"type:varchar(10)" json:"last_activity_date"`
	UnlockedCategories string `json:"unlocked_categories"`
	StarterPassed      bool   `gorm:"default:false" json:"starter_passed"`
	StarterScore       int    `gorm:"default:0" json:"starter_score"`
	StarterActionsDone int    `gorm:"default:0" json:"starter_actions_done"`
	StarterDays        int    `gorm:"default:0" json:"starter_days"`
}

// TableName 指定表名
func (UserProgress) TableName() string {
	return "user_progress"
}

// AnalyticsEvent 是一条埋点事件，Payload为JSON字符串。
type AnalyticsEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Type      string    `gorm:"not null" json:"type"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (AnalyticsEvent) TableName() string {
	return "events"
}
