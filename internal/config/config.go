package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Server
	ServerPort string `env:"PORT" envDefault:"3000"`

	// Database
	DatabaseURL          string `env:"DATABASE_URL,required,notEmpty"`
	DatabaseMaxOpenConns int    `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"1"`

	// Token
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Rate Limit（req/min、0で無効）
	RateLimitGeneral int `env:"RATE_LIMIT_GENERAL" envDefault:"0"`
	RateLimitAuth    int `env:"RATE_LIMIT_AUTH" envDefault:"0"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合、または値が解析できない場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.DatabaseMaxOpenConns < 0 {
		return nil, fmt.Errorf("DATABASE_MAX_OPEN_CONNS must not be negative: %d", cfg.DatabaseMaxOpenConns)
	}
	if cfg.RateLimitGeneral < 0 || cfg.RateLimitAuth < 0 {
		return nil, fmt.Errorf("rate limits must not be negative")
	}

	return cfg, nil
}
