package main

import (
	"log"

	"github.com/yulei/news-hub/internal/config"
	"github.com/yulei/news-hub/internal/loader"
	"github.com/yulei/news-hub/internal/scheduler"
	"github.com/yulei/news-hub/internal/storage"
)

// 一个只执行一次快照拉取与归档的命令行入口：适合手动触发或排查数据问题
func main() {
	cfg := config.Load()

	store, err := storage.NewStore(cfg.PostgresDSN, cfg.RedisAddr)
	if err != nil {
		log.Fatalf("init store failed: %v", err)
	}

	s, err := scheduler.New(cfg.RefreshCron, loader.New(cfg.DataBaseURL), store)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}

	// 只执行一轮刷新后退出
	if err := s.RunOnce(); err != nil {
		log.Fatalf("refresh failed: %v", err)
	}
}
