package progression

import (
	"fmt"

	"gorm.io/gorm"
)

// SetupModule 迁移user_progress与events表。
func SetupModule(db *gorm.DB) error {
	if err := db.AutoMigrate(&UserProgress{}, &AnalyticsEvent{}); err != nil {
		return fmt.Errorf("无法迁移progression表: %w", err)
	}
	fmt.Println("Progression数据库表迁移成功。")
	return nil
}
