package quota

import "time"

// DailyDrawCounter 是每个用户每天一行的翻卡计数器。
// DrawDate 存储本地日历日期的"YYYY-MM-DD"字符串，跨数据库后端行为一致。
type DailyDrawCounter struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_draw_date" json:"user_id"`
	DrawDate  string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_user_draw_date" json:"draw_date"`
	DrawCount int       `gorm:"not null;default:0" json:"draw_count"`
	MaxDraws  int       `gorm:"not null;default:3" json:"max_draws"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (DailyDrawCounter) TableName() string {
	return "daily_draws"
}
