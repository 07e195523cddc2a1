package draw

import "time"

// CardDrawEvent 是一次抽卡的事实记录，回答提交后在原行上补写。
type CardDrawEvent struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         string     `gorm:"type:varchar(36);not null;index" json:"user_id"`
	CardID         uint       `gorm:"not null;index" json:"card_id"`
	UserResponse   string     `json:"user_response"`
	ResponseLength int        `gorm:"default:0" json:"response_length"`
	DrawnAt        time.Time  `gorm:"autoCreateTime;index" json:"drawn_at"`
	IsEdited       bool       `gorm:"default:false" json:"is_edited"`
	EditCount      int        `gorm:"default:0" json:"edit_count"`
	LastEditedAt   *time.Time `json:"last_edited_at"`
}

// TableName 指定表名
func (CardDrawEvent) TableName() string {
	return "card_draws"
}
