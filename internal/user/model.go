package user

import (
	"time"

	"gorm.io/gorm"
)

// User 定义了用户在数据库中的持久化模型。
type User struct {
	// ID 是用户的主键，注册时生成的UUID
	ID       string `gorm:"primarykey;type:varchar(36)"`
	Username string `gorm:"uniqueIndex;type:varchar(64);not null"`
	Email    string `gorm:"uniqueIndex;type:varchar(128);not null"`
	// Password 存储bcrypt哈希，永远不回传给客户端
	Password string `gorm:"not null" json:"-"`
	// MBTIType 是用户自报的人格类型代码（如 INFP），未设置时为空
	MBTIType string `gorm:"type:varchar(8)"`

	// 部分gorm.Model，由GORM自动管理
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// MBTIType 定义了16型人格的静态描述表，启动时播种。
type MBTIType struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	TypeCode    string `gorm:"uniqueIndex;type:varchar(8);not null" json:"type_code"`
	TypeName    string `gorm:"not null" json:"type_name"`
	Description string `gorm:"not null" json:"description"`
	Traits      string `gorm:"not null" json:"traits"`
}
