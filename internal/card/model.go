package card

import "time"

// Card 是卡牌池中的一张卡牌。
// title为"名称+emoji"，content为通用象征解读，mood_tags为以逗号分隔的关键词。
type Card struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"not null" json:"content"`
	Category  string    `gorm:"not null;index" json:"category"`
	CardType  string    `gorm:"default:情绪类" json:"card_type"`
	MBTIType  *string   `gorm:"column:mbti_type" json:"mbti_type"`
	IsStarter bool      `gorm:"default:false" json:"is_starter"`
	MoodTags  string    `json:"mood_tags"`
	CreatedAt time.Time `json:"created_at"`
}
