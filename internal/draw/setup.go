package draw

import (
	"fmt"

	"gorm.io/gorm"
)

// SetupModule 迁移card_draws表。
func SetupModule(db *gorm.DB) error {
	if err := db.AutoMigrate(&CardDrawEvent{}); err != nil {
		return fmt.Errorf("无法迁移draw表: %w", err)
	}
	fmt.Println("Draw数据库表迁移成功。")
	return nil
}
