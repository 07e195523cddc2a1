package mood

import (
	"fmt"

	"gorm.io/gorm"
)

// SetupModule 迁移mood_records表。
func SetupModule(db *gorm.DB) error {
	if err := db.AutoMigrate(&MoodRecord{}); err != nil {
		return fmt.Errorf("无法迁移mood表: %w", err)
	}
	fmt.Println("Mood数据库表迁移成功。")
	return nil
}
