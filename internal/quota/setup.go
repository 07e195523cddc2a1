package quota

import (
	"fmt"

	"gorm.io/gorm"
)

// SetupModule 迁移daily_draws表。
func SetupModule(db *gorm.DB) error {
	if err := db.AutoMigrate(&DailyDrawCounter{}); err != nil {
		return fmt.Errorf("无法迁移quota表: %w", err)
	}
	fmt.Println("Quota数据库表迁移成功。")
	return nil
}
