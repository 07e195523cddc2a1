package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config 结构体定义了应用程序的所有配置项
// 它与 config.yaml 文件的结构完全对应
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Quota    QuotaConfig    `mapstructure:"quota"`
	LLM      LLMConfig      `mapstructure:"llm"`
}

// ServerConfig 定义了服务器相关的配置
type ServerConfig struct {
	Mode    string     `mapstructure:"mode"`
	Address string     `mapstructure:"address"`
	Cors    CorsConfig `mapstructure:"cors"`
}

// CorsConfig 定义了CORS相关的配置
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig 定义了数据库和缓存相关的配置
type DatabaseConfig struct {
	// Driver 选择底层数据存储：sqlite（内嵌单文件引擎）或 postgres（托管关系型服务）
	Driver   string         `mapstructure:"driver"`
	Sqlite   SqliteConfig   `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// SqliteConfig 定义了内嵌SQLite引擎的配置
type SqliteConfig struct {
	Path string `mapstructure:"path"`
}

// PostgresConfig 定义了托管Postgres服务的配置
type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig 定义了Redis的配置
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// QuotaConfig 定义了每日翻卡配额的配置
type QuotaConfig struct {
	// MaxDrawsPerDay 是每个用户每天允许的翻卡次数上限
	MaxDrawsPerDay int `mapstructure:"maxDrawsPerDay"`
	// RetentionDays 是每日计数行的保留天数，过期行由定时清理任务删除
	RetentionDays int `mapstructure:"retentionDays"`
}

// LLMConfig 定义了大模型补全服务的配置
type LLMConfig struct {
	Provider string `mapstructure:"provider"`
	BaseURL  string `mapstructure:"baseURL"`
	Model    string `mapstructure:"model"`
	// APIKeyEnv 是存放API密钥的环境变量名，密钥本身不进入配置文件
	APIKeyEnv      string `mapstructure:"apiKeyEnv"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
}

// LoadConfig 函数负责查找、加载和解析配置文件
// 它会在指定的路径中查找名为 config.yaml 的文件
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. 设置配置文件名和类型
	v.SetConfigName("config") // 文件名 (不带扩展名)
	v.SetConfigType("yaml")   // 文件类型

	// 2. 添加配置文件搜索路径
	v.AddConfigPath("./config") // `config/config.yaml`
	v.AddConfigPath(".")        // `./config.yaml` (如果在根目录)

	// 3. 设置环境变量支持
	// 允许通过环境变量覆盖配置，例如 DATABASE_DRIVER=postgres
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. 设置默认值，保证配置文件缺项时应用仍可启动
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.address", ":3000")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.sqlite.path", "echo_insight.db")
	v.SetDefault("database.redis.address", "localhost:6379")
	v.SetDefault("quota.maxDrawsPerDay", 3)
	v.SetDefault("quota.retentionDays", 7)
	v.SetDefault("llm.provider", "dashscope")
	v.SetDefault("llm.baseURL", "https://dashscope.aliyuncs.com/compatible-mode/v1")
	v.SetDefault("llm.model", "qwen-plus")
	v.SetDefault("llm.apiKeyEnv", "DASHSCOPE_API_KEY")
	v.SetDefault("llm.timeoutSeconds", 20)

	// 5. 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		// 配置文件缺失时退回默认值，其他错误仍然上报
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// 6. 将配置反序列化到结构体中
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
