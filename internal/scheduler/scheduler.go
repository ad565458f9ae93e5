package scheduler

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/yulei/news-hub/internal/feed"
	"github.com/yulei/news-hub/internal/loader"
	"github.com/yulei/news-hub/internal/storage"
)

const refreshTimeout = 60 * time.Second

// Scheduler 按 cron 周期重新拉取数据快照。拉取成功后整体替换当前快照，
// 失败则保留旧快照继续服务；请求侧始终看到一份完整一致的数据
type Scheduler struct {
	cron    *cron.Cron
	loader  *loader.Loader
	store   *storage.Store
	current atomic.Pointer[feed.Snapshot]
}

// New 创建调度器。store 可为 nil，表示不做条目归档
func New(spec string, l *loader.Loader, store *storage.Store) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:   c,
		loader: l,
		store:  store,
	}

	if _, err := c.AddFunc(spec, s.refresh); err != nil {
		return nil, err
	}

	return s, nil
}

// Snapshot 返回当前快照。首次加载完成前为 nil，由 API 层呈现「数据不可用」
func (s *Scheduler) Snapshot() *feed.Snapshot {
	return s.current.Load()
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RunOnce 对外暴露的单次刷新入口：启动时拉首份快照，或手动触发
func (s *Scheduler) RunOnce() error {
	log.Println("start snapshot refresh...")

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	snap, err := s.loader.Load(ctx)
	if err != nil {
		return err
	}

	s.current.Store(snap)
	log.Printf("snapshot refreshed: items=%d topics=%d failures=%d",
		len(snap.Items), len(snap.Topics), snap.Meta.FailureCount())

	// 归档失败只告警：历史库是锦上添花，不能拖垮出图
	if s.store != nil && s.store.Archiving() {
		if err := s.store.ArchiveBatch(snap.Items, snap.Scores); err != nil {
			log.Printf("warn: archive batch error: %v", err)
		}
	}

	return nil
}

func (s *Scheduler) refresh() {
	if err := s.RunOnce(); err != nil {
		log.Printf("refresh snapshot error: %v", err)
	}
}
