package user

import (
	"errors"
	"fmt"

	"github.com/echo-insight/echo-insight-backend/pkg/logger"
	"github.com/echo-insight/echo-insight-backend/pkg/token"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrUserExists 表示用户名或邮箱已被占用
	ErrUserExists = errors.New("用户名或邮箱已存在")
	// ErrInvalidCredentials 表示邮箱或密码错误
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	// ErrUserNotFound 表示用户不存在
	ErrUserNotFound = errors.New("用户不存在")
)

// Service 封装了账户与个人资料的业务逻辑。
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewService 构造用户服务。
func NewService(db *gorm.DB, log *logger.Logger) *Service {
	return &Service{db: db, log: log.With("module", "user")}
}

// AuthResult 是注册/登录成功后返回给控制器的数据包。
type AuthResult struct {
	Token string
	User  User
}

// Register 创建新用户并签发访问令牌。
func (s *Service) Register(username, email, password string) (*AuthResult, error) {
	// 检查用户是否已存在
	var count int64
	if err := s.db.Model(&User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("加密密码失败: %w", err)
	}

	newUUID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("无法生成UUID v7: %w", err)
	}

	newUser := User{
		ID:       newUUID.String(),
		Username: username,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.db.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}

	signed, err := token.GenerateToken(newUser.ID, newUser.Username)
	if err != nil {
		return nil, err
	}

	s.log.Info("新用户注册成功", "userID", newUser.ID, "username", username)
	return &AuthResult{Token: signed, User: newUser}, nil
}

// Login 校验邮箱与密码并签发访问令牌。
func (s *Service) Login(email, password string) (*AuthResult, error) {
	var u User
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	signed, err := token.GenerateToken(u.ID, u.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: signed, User: u}, nil
}

// GetByID 按主键获取用户。
func (s *Service) GetByID(userID string) (*User, error) {
	var u User
	if err := s.db.Where("id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &u, nil
}

// UpdateMBTI 更新用户自报的人格类型代码。
func (s *Service) UpdateMBTI(userID, mbtiType string) error {
	res := s.db.Model(&User{}).Where("id = ?", userID).Update("mbti_type", mbtiType)
	if res.Error != nil {
		return fmt.Errorf("更新MBTI类型失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ListMBTITypes 返回全部16型人格的静态描述，按类型代码排序。
func (s *Service) ListMBTITypes() ([]MBTIType, error) {
	var types []MBTIType
	if err := s.db.Order("type_code").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("获取MBTI类型失败: %w", err)
	}
	return types, nil
}
