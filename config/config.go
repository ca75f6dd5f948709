package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 应用配置结构体
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Log       LogConfig       `yaml:"log"`
	Redis     RedisConfig     `yaml:"redis"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	Feed      FeedConfig      `yaml:"feed"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port         string        `yaml:"port"`         // 服务器监听端口
	ReadTimeout  time.Duration `yaml:"readTimeout"`  // 读取超时时间
	WriteTimeout time.Duration `yaml:"writeTimeout"` // 写入超时时间
	IdleTimeout  time.Duration `yaml:"idleTimeout"`  // 空闲超时时间
}

// DatabaseConfig 数据库配置
// Driver 支持 mysql / postgres / sqlite；sqlite 时 Database 为文件路径
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`   // 数据库驱动类型
	Host     string `yaml:"host"`     // 数据库主机地址
	Port     int    `yaml:"port"`     // 数据库端口
	Username string `yaml:"username"` // 数据库用户名
	Password string `yaml:"password"` // 数据库密码
	Database string `yaml:"database"` // 数据库名称
	Charset  string `yaml:"charset"`  // 字符集（mysql）
	SSLMode  string `yaml:"sslMode"`  // SSL模式（postgres）
	MaxIdle  int    `yaml:"maxIdle"`  // 最大空闲连接数
	MaxOpen  int    `yaml:"maxOpen"`  // 最大打开连接数
	LogSQL   bool   `yaml:"logSQL"`   // 是否打印SQL
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret     string        `yaml:"secret"`     // JWT密钥
	ExpireTime time.Duration `yaml:"expireTime"` // JWT过期时间
	Issuer     string        `yaml:"issuer"`     // JWT签发者
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level"`      // 日志级别
	Filename   string `yaml:"filename"`   // 日志文件名
	MaxSize    int    `yaml:"maxSize"`    // 单个日志文件最大大小(MB)
	MaxBackups int    `yaml:"maxBackups"` // 最大备份文件数
	MaxAge     int    `yaml:"maxAge"`     // 最大保存天数
	Compress   bool   `yaml:"compress"`   // 是否压缩
}

// RedisConfig Redis配置，Host为空表示不启用缓存
type RedisConfig struct {
	Host     string `yaml:"host"`     // Redis主机地址
	Port     int    `yaml:"port"`     // Redis端口
	Password string `yaml:"password"` // Redis密码
	DB       int    `yaml:"db"`       // Redis数据库编号
}

// WebSocketConfig WebSocket 心跳配置
type WebSocketConfig struct {
	PingInterval time.Duration `yaml:"pingInterval"` // 发送ping的间隔
	ReadTimeout  time.Duration `yaml:"readTimeout"`  // 读超时时间（未收到任何数据则断开）
}

// CORSConfig 跨域配置（前端为浏览器应用）
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// RateLimitConfig 限流配置（按客户端IP）
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	Burst             int     `yaml:"burst"`
}

// FeedConfig 推荐流配置
type FeedConfig struct {
	CacheTTL        time.Duration `yaml:"cacheTTL"`        // 分页缓存时间
	DefaultPageSize int           `yaml:"defaultPageSize"` // 默认每页数量
}

// ConfigPath 默认配置文件路径
const ConfigPath = "config/config.yaml"

// LoadConfig 加载配置（混合方式：YAML文件 + .env + 环境变量）
func LoadConfig() *Config {
	// 1. 首先从YAML文件加载默认配置
	config := loadFromYAML(ConfigPath)

	// 2. 加载.env（不存在时忽略）
	_ = godotenv.Load()

	// 3. 用环境变量覆盖配置（环境变量优先级更高）
	overrideWithEnvVars(config)

	return config
}

// loadFromYAML 从YAML文件加载配置
func loadFromYAML(filePath string) *Config {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return GetDefaultConfig()
	}

	// 在默认值之上解析，文件中缺省的字段保留默认值
	config := GetDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return GetDefaultConfig()
	}

	return config
}

// overrideWithEnvVars 用环境变量覆盖配置
// 未设置或无法解析的变量保持原值
func overrideWithEnvVars(config *Config) {
	setString(&config.Server.Port, "SERVER_PORT")
	setDuration(&config.Server.ReadTimeout, "SERVER_READ_TIMEOUT")
	setDuration(&config.Server.WriteTimeout, "SERVER_WRITE_TIMEOUT")
	setDuration(&config.Server.IdleTimeout, "SERVER_IDLE_TIMEOUT")

	setString(&config.Database.Driver, "DB_DRIVER")
	setString(&config.Database.Host, "DB_HOST")
	setInt(&config.Database.Port, "DB_PORT")
	setString(&config.Database.Username, "DB_USERNAME")
	setString(&config.Database.Password, "DB_PASSWORD")
	setString(&config.Database.Database, "DB_DATABASE")
	setString(&config.Database.Charset, "DB_CHARSET")
	setString(&config.Database.SSLMode, "DB_SSLMODE")
	setInt(&config.Database.MaxIdle, "DB_MAX_IDLE")
	setInt(&config.Database.MaxOpen, "DB_MAX_OPEN")
	setBool(&config.Database.LogSQL, "DB_LOG_SQL")

	setString(&config.JWT.Secret, "JWT_SECRET")
	setDuration(&config.JWT.ExpireTime, "JWT_EXPIRE_TIME")
	setString(&config.JWT.Issuer, "JWT_ISSUER")

	setString(&config.Log.Level, "LOG_LEVEL")
	setString(&config.Log.Filename, "LOG_FILENAME")
	setInt(&config.Log.MaxSize, "LOG_MAX_SIZE")
	setInt(&config.Log.MaxBackups, "LOG_MAX_BACKUPS")
	setInt(&config.Log.MaxAge, "LOG_MAX_AGE")

	// REDIS_HOST 显式设为空表示关闭缓存
	if host, ok := os.LookupEnv("REDIS_HOST"); ok {
		config.Redis.Host = host
	}
	setInt(&config.Redis.Port, "REDIS_PORT")
	setString(&config.Redis.Password, "REDIS_PASSWORD")
	setInt(&config.Redis.DB, "REDIS_DB")

	setDuration(&config.WebSocket.PingInterval, "WS_PING_INTERVAL")
	setDuration(&config.WebSocket.ReadTimeout, "WS_READ_TIMEOUT")

	// 逗号分隔
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		config.CORS.AllowedOrigins = splitList(origins)
	}

	// RATE_LIMIT_RPS=0 关闭限流
	setFloat(&config.RateLimit.RequestsPerSecond, "RATE_LIMIT_RPS")
	setInt(&config.RateLimit.Burst, "RATE_LIMIT_BURST")

	setDuration(&config.Feed.CacheTTL, "FEED_CACHE_TTL")
	setInt(&config.Feed.DefaultPageSize, "FEED_DEFAULT_PAGE_SIZE")
}

// GetDefaultConfig 获取默认配置
func GetDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8000",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:   "postgres",
			Host:     "localhost",
			Port:     5432,
			Username: "postgres",
			Password: "postgres",
			Database: "app",
			Charset:  "utf8mb4",
			SSLMode:  "disable",
			MaxIdle:  10,
			MaxOpen:  100,
		},
		JWT: JWTConfig{
			Secret:     "your-secret-key-for-development",
			ExpireTime: 30 * time.Minute,
			Issuer:     "mentorship-system",
		},
		Log: LogConfig{
			Level:      "info",
			Filename:   "logs/app.log",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   true,
		},
		Redis: RedisConfig{
			Host:     "localhost",
			Port:     6379,
			Password: "",
			DB:       0,
		},
		WebSocket: WebSocketConfig{
			PingInterval: 30 * time.Second,
			ReadTimeout:  90 * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             30,
		},
		Feed: FeedConfig{
			CacheTTL:        time.Minute,
			DefaultPageSize: 10,
		},
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		*dst = v
	}
}

func setFloat(dst *float64, key string) {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		*dst = v
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
