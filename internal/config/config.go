package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config carries everything the service needs at startup. Values come from
// environment variables, optionally overridden by a stock-ledger.yaml next to
// the binary.
type Config struct {
	HTTPAddr    string        `mapstructure:"http_addr"`
	DatabaseURL string        `mapstructure:"database_url"`
	RedisAddr   string        `mapstructure:"redis_addr"`
	JWTSecret   string        `mapstructure:"jwt_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("token_ttl", 15*time.Minute)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees keys viper already tracks, so bind every key
	// explicitly or env-only values never surface.
	for _, key := range []string{"http_addr", "database_url", "redis_addr", "jwt_secret", "token_ttl"} {
		_ = v.BindEnv(key)
	}

	v.SetConfigName("stock-ledger")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database_url is required (set DATABASE_URL)")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt_secret is required (set JWT_SECRET)")
	}
	return cfg, nil
}
