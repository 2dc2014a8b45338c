package config

import (
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// PlaceholderJWTSecret is the sample secret from the docs; it is never
// accepted as a real key.
const PlaceholderJWTSecret = "change-me"

type Config struct {
	App struct {
		Name  string
		Port  string
		Since string
	}
	Database struct {
		Dsn          string
		MaxIdleConns int
		MaxOpenConns int
	}
	Redis struct {
		Addr     string
		DB       int
		Password string
	}
	RabbitMQ struct {
		Url   string
		Queue string
	}
	Auth  AuthConfig
	Admin struct {
		Username string
		Password string
	}
	Log struct {
		Level  string
		Format string
	}
	Cors struct {
		AllowOrigins []string
	}
}

// AuthConfig selects how the admin backend recognises a logged-in user.
type AuthConfig struct {
	Mode       string // "session" or "jwt"
	JWTSecret  string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

var AppConfig *Config

func InitConfig() {
	cfg, err := LoadConfig("./config")
	if err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}
	AppConfig = cfg

	initLogger()
	initDB()
	initRedis()
	initRabbit()
}

// LoadConfig reads config.yml from dir and applies defaults and
// environment overrides.
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(dir)

	v.SetDefault("app.name", "blog")
	v.SetDefault("app.port", ":8080")
	v.SetDefault("database.maxidleconns", 10)
	v.SetDefault("database.maxopenconns", 100)
	v.SetDefault("rabbitmq.queue", "blog.article.events")
	v.SetDefault("auth.mode", "session")
	v.SetDefault("auth.ttl", "24h")
	v.SetDefault("admin.username", "admin")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	cfg.Database.Dsn = getEnvOrDefault("BLOG_DATABASE_DSN", cfg.Database.Dsn)
	cfg.Auth.JWTSecret = getEnvOrDefault("BLOG_JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Admin.Password = getEnvOrDefault("BLOG_ADMIN_PASSWORD", cfg.Admin.Password)
	if cfg.Auth.TTL <= 0 {
		cfg.Auth.TTL = 24 * time.Hour
	}
	if err := cfg.Auth.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (a AuthConfig) validate() error {
	switch a.Mode {
	case "session":
		return nil
	case "jwt":
		if a.JWTSecret == "" || a.JWTSecret == PlaceholderJWTSecret {
			return errors.New("auth.mode jwt needs a real auth.jwtsecret (or BLOG_JWT_SECRET)")
		}
		return nil
	default:
		return errors.Errorf("unknown auth.mode %q", a.Mode)
	}
}

// getEnvOrDefault 获取环境变量，如果不存在则返回默认值
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
