package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置，来源优先级：环境变量 > config.yaml > 默认值。
// 环境变量前缀 MCTT，层级用下划线，如 MCTT_DATABASE_DSN。
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Form     FormConfig     `mapstructure:"form"`
	Sync     SyncConfig     `mapstructure:"sync"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin 运行模式 debug|release
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	AccessTTL  time.Duration `mapstructure:"access_ttl"`
	RefreshTTL time.Duration `mapstructure:"refresh_ttl"`
}

type StorageConfig struct {
	Provider  string `mapstructure:"provider"` // s3 | local
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Endpoint  string `mapstructure:"endpoint"`
	CDNDomain string `mapstructure:"cdn_domain"`
	BasePath  string `mapstructure:"base_path"`
}

// AdminConfig 首次启动引导的默认管理员
type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type FormConfig struct {
	WebhookURL string `mapstructure:"webhook_url"`
}

type SyncConfig struct {
	// RetrySchedule 脏记录补写调度表达式（cron 含秒位）
	RetrySchedule string `mapstructure:"retry_schedule"`
}

// Load 读取配置，config.yaml 缺失时只用环境变量和默认值
func Load() *Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("MCTT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("读取配置文件失败: %v", err)
		}
		log.Println("未找到 config.yaml，使用环境变量与默认值")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("解析配置失败: %v", err)
	}
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.dsn",
		"host=localhost user=mctt password=mctt dbname=mctt_cms port=5432 sslmode=disable TimeZone=Asia/Ho_Chi_Minh")

	v.SetDefault("jwt.secret", "mctt-cms-secret-key-change-in-production")
	v.SetDefault("jwt.access_ttl", 2*time.Hour)
	v.SetDefault("jwt.refresh_ttl", 7*24*time.Hour)

	v.SetDefault("storage.provider", "local")
	v.SetDefault("storage.base_path", "./uploads")
	v.SetDefault("storage.endpoint", "http://localhost:8080/uploads")

	v.SetDefault("admin.email", "admin@alomuachung.vn")
	v.SetDefault("admin.password", "admin123")

	v.SetDefault("sync.retry_schedule", "0 * * * * *")
}
