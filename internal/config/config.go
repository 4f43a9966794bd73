package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 服务全量配置；viper 从文件 + 环境变量加载
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"db"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Page    PageConfig    `mapstructure:"page"`
	Media   MediaConfig   `mapstructure:"media"`
	Log     LogConfig     `mapstructure:"log"`
	Sentry  SentryConfig  `mapstructure:"sentry"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"` // debug / release / test
}

type DBConfig struct {
	Driver string `mapstructure:"driver"` // sqlite / postgres
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"` // 为空则禁用页面缓存
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
	// 登录接口限速（次/秒，突发上限）
	LoginRate  float64 `mapstructure:"login_rate"`
	LoginBurst int     `mapstructure:"login_burst"`
}

type CacheConfig struct {
	// 页面快照有效期；缓存是否启用由 redis.addr 决定
	PageTTL time.Duration `mapstructure:"page_ttl"`
}

type PageConfig struct {
	Size int `mapstructure:"size"` // 每页条数
}

type MediaConfig struct {
	Root string `mapstructure:"root"` // 图片落盘根目录
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type SentryConfig struct {
	DSN string `mapstructure:"dsn"` // 为空则不上报
}

type TracingConfig struct {
	Endpoint string `mapstructure:"endpoint"` // OTLP/HTTP，为空则不启用
}

// Load 读取配置；path 为空时只用默认值 + YATUBE_ 环境变量
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("YATUBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "yatube.db")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.login_rate", 5.0)
	v.SetDefault("auth.login_burst", 10)
	v.SetDefault("cache.page_ttl", 20*time.Second)
	v.SetDefault("page.size", 10)
	v.SetDefault("media.root", "media")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("tracing.endpoint", "")
}
