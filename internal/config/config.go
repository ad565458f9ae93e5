package config

import (
	"log"
	"os"
)

type Config struct {
	AppPort string

	// 流水线产出的静态数据地址（items.json / topics.json / meta.json 所在目录）
	DataBaseURL string
	RefreshCron string

	RedisAddr   string
	PostgresDSN string // 为空时关闭条目归档

	// 可选的要点摘要服务地址，为空时功能关闭
	BulletsURL string

	BasicAuthUser string
	BasicAuthPass string
	WebRoot       string
}

func Load() *Config {
	cfg := &Config{
		AppPort:       getEnv("APP_PORT", "9000"),
		DataBaseURL:   getEnv("DATA_BASE_URL", "http://localhost:8000/data"),
		RefreshCron:   getEnv("REFRESH_CRON", "*/30 * * * *"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		PostgresDSN:   getEnv("POSTGRES_DSN", ""),
		BulletsURL:    getEnv("AI_BULLETS_URL", ""),
		BasicAuthUser: getEnv("APP_BASIC_USER", ""),
		BasicAuthPass: getEnv("APP_BASIC_PASS", ""),
		WebRoot:       getEnv("WEB_ROOT", ""),
	}

	log.Printf("config loaded: port=%s data=%s cron=%s", cfg.AppPort, cfg.DataBaseURL, cfg.RefreshCron)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
