// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config 程序啟動時載入一次，之後視為唯讀
type Config struct {
	Port        string
	Env         string // development 或 production
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret  string
	AccessTTL  time.Duration // 預設 168h（7 天，與原系統一致）
	RefreshTTL time.Duration // 固定 30 天
	Issuer     string
	Audience   string

	RateLimitWindow  time.Duration
	RateLimitMax     int
	APIRateLimitMax  int
	AuthRateLimitMax int

	WorkerCount int

	// 視訊房間服務憑證，未設定時 accept 端點回 503
	HMSAccessKey string
	HMSSecret    string
}

// IsDevelopment 回報是否為開發模式（錯誤回應會附加細節）
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}

// Load 從環境變數建立 Config，缺少必要變數時回傳錯誤
func Load() (*Config, error) {
	cfg := &Config{
		Port:          envOr("PORT", "8001"),
		Env:           envOr("APP_ENV", "development"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		Issuer:        envOr("JWT_ISSUER", "mamacare-api"),
		Audience:      envOr("JWT_AUDIENCE", "mamacare-client"),
		RefreshTTL:    30 * 24 * time.Hour,
		HMSAccessKey:  os.Getenv("HMS_ACCESS_KEY"),
		HMSSecret:     os.Getenv("HMS_SECRET"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("環境變數 REDIS_ADDR 未設定")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("環境變數 JWT_SECRET 未設定")
	}

	var err error
	if cfg.RedisDB, err = envInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.AccessTTL, err = envDuration("JWT_EXPIRE", 168*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = envDuration("RATE_LIMIT_WINDOW", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RateLimitMax, err = envInt("RATE_LIMIT_MAX", 100); err != nil {
		return nil, err
	}
	if cfg.APIRateLimitMax, err = envInt("API_RATE_LIMIT_MAX", 200); err != nil {
		return nil, err
	}
	if cfg.AuthRateLimitMax, err = envInt("AUTH_RATE_LIMIT_MAX", 5); err != nil {
		return nil, err
	}
	if cfg.WorkerCount, err = envInt("WORKER_COUNT", 1); err != nil {
		return nil, err
	}
	if cfg.WorkerCount <= 0 {
		return nil, fmt.Errorf("無效的 WORKER_COUNT: %d", cfg.WorkerCount)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %v", key, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %v", key, err)
	}
	return d, nil
}
