package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// secretKey 是服务器启动时生成（或从环境变量加载）的HMAC签名密钥。
var secretKey []byte

// tokenTTL 是访问令牌的有效期，与原有客户端的24小时约定保持一致。
const tokenTTL = 24 * time.Hour

// Claims 定义了访问令牌中携带的声明。
// 核心业务只消费UserID，把它当作不透明的已认证用户标识。
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateSecretKey 初始化签名密钥。
// 优先使用JWT_SECRET环境变量（多实例部署时必须设置，否则实例间令牌互不可验），
// 未设置时生成一个密码学安全的32字节随机密钥。
func GenerateSecretKey() {
	if env := os.Getenv("JWT_SECRET"); env != "" {
		secretKey = []byte(env)
		fmt.Println("已从环境变量加载JWT签名密钥。")
		return
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic("无法生成安全的密钥: " + err.Error())
	}
	secretKey = key
	fmt.Println("JWT签名密钥已成功生成。")
}

// GenerateToken 为给定用户签发一个带有效期的访问令牌。
func GenerateToken(userID, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("无法签发访问令牌: %w", err)
	}
	return signed, nil
}

// ValidateToken 验证令牌签名与有效期，并返回其中的声明。
func ValidateToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// 拒绝算法混淆：只接受启动时约定的HMAC签名
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("意外的签名算法: %v", t.Header["alg"])
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return nil, errors.New("无效的访问令牌")
	}
	return claims, nil
}
