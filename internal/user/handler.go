package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler 持有用户相关路由的处理函数。
type Handler struct {
	service *Service
}

// NewHandler 构造用户控制器。
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRequestBody 定义了注册请求体的JSON结构
type RegisterRequestBody struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequestBody 定义了登录请求体的JSON结构
type LoginRequestBody struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateMBTIRequestBody 定义了更新MBTI类型请求体的JSON结构
type UpdateMBTIRequestBody struct {
	MBTIType string `json:"mbti_type" binding:"required"`
}

func userPayload(u User) gin.H {
	return gin.H{
		"id":        u.ID,
		"username":  u.Username,
		"email":     u.Email,
		"mbti_type": u.MBTIType,
	}
}

// Register 处理用户注册
func (h *Handler) Register(c *gin.Context) {
	var body RegisterRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "用户名、邮箱和密码都是必填项"})
		return
	}

	result, err := h.service.Register(body.Username, body.Email, body.Password)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "用户名或邮箱已存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建用户失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "注册成功",
		"token":   result.Token,
		"user":    userPayload(result.User),
	})
}

// Login 处理用户登录
func (h *Handler) Login(c *gin.Context) {
	var body LoginRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "邮箱和密码都是必填项"})
		return
	}

	result, err := h.service.Login(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "邮箱或密码错误"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "数据库错误"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "登录成功",
		"token":   result.Token,
		"user":    userPayload(result.User),
	})
}

// GetInfo 返回当前认证用户的基本信息（用于验证token）
func (h *Handler) GetInfo(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "访问令牌缺失"})
		return
	}

	u, err := h.service.GetByID(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "用户不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取用户信息失败"})
		return
	}

	c.JSON(http.StatusOK, userPayload(*u))
}

// UpdateMBTI 更新当前用户的MBTI类型
func (h *Handler) UpdateMBTI(c *gin.Context) {
	var body UpdateMBTIRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	userID, ok := CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "访问令牌缺失"})
		return
	}

	if err := h.service.UpdateMBTI(userID, body.MBTIType); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "用户不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新MBTI类型失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "MBTI类型更新成功", "mbti_type": body.MBTIType})
}

// ListMBTITypes 返回16型人格的静态描述列表
func (h *Handler) ListMBTITypes(c *gin.Context) {
	types, err := h.service.ListMBTITypes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取MBTI类型失败"})
		return
	}
	c.JSON(http.StatusOK, types)
}
