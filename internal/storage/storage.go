package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yulei/news-hub/internal/feed"
)

// ArchivedItem 条目归档表。快照每次刷新后按 ID 幂等落库，
// 保留静态 JSON 文件不具备的跨期历史
type ArchivedItem struct {
	ID          string            `gorm:"primaryKey;size:40" json:"id"`
	Title       string            `gorm:"size:512" json:"title"`
	Link        string            `gorm:"size:1024" json:"link"`
	Source      string            `gorm:"size:128;index" json:"source"`
	Summary     string            `gorm:"size:600" json:"summary"`
	PublishedAt time.Time         `gorm:"index" json:"publishedAt"`
	Region      string            `gorm:"size:16;index" json:"region"`
	HotScore    float64           `gorm:"index" json:"hotScore"`
	ExtraData   datatypes.JSONMap `gorm:"type:jsonb" json:"extraData"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store 归档库（Postgres，可选）加 Redis。Redis 同时服务于
// 用户状态持久化与归档查询缓存
type Store struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// NewStore 初始化存储。dsn 为空时不开归档库，归档相关操作整体跳过；
// Redis 连不上只告警，后续读写按未命中处理
func NewStore(dsn, redisAddr string) (*Store, error) {
	var db *gorm.DB
	if dsn != "" {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		if err := db.AutoMigrate(&ArchivedItem{}); err != nil {
			return nil, err
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("warn: redis ping failed: %v", err)
	}

	return &Store{DB: db, Redis: rdb}, nil
}

// Archiving 是否配置了归档库
func (s *Store) Archiving() bool {
	return s.DB != nil
}

// toValidUTF8 将字符串规范为合法 UTF-8，避免 PostgreSQL invalid byte sequence 错误
func toValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "�")
}

// truncateRunesDB 按 rune 数截断字符串，保证不超过数据库字段长度（例如 varchar(600)）。
// 防止上游偶发的超长摘要导致入库失败
func truncateRunesDB(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}

// ArchiveBatch 归档一批快照条目，以条目 ID 作为幂等键。
// 已存在的条目更新标题、摘要与热度分，热度分取当期话题索引的值
func (s *Store) ArchiveBatch(items []feed.Item, scores feed.ScoreIndex) error {
	if s.DB == nil {
		return nil
	}

	for _, it := range items {
		title := toValidUTF8(it.Title)
		summary := truncateRunesDB(toValidUTF8(it.Summary), 600)

		extra := datatypes.JSONMap{}
		if len(it.Tags) > 0 {
			tags := make([]any, 0, len(it.Tags))
			for _, t := range it.Tags {
				tags = append(tags, t)
			}
			extra["tags"] = tags
		}
		if it.Lang != "" {
			extra["lang"] = it.Lang
		}
		if it.SourceID != "" {
			extra["sourceId"] = it.SourceID
		}

		rec := &ArchivedItem{
			ID:          it.ID,
			Title:       title,
			Link:        it.Link,
			Source:      it.Source,
			Summary:     summary,
			PublishedAt: it.PublishedTime(),
			Region:      it.Region,
			HotScore:    scores.Score(it.ID),
			ExtraData:   extra,
		}

		if err := s.DB.Where("id = ?", it.ID).FirstOrCreate(rec).Error; err != nil {
			return fmt.Errorf("storage: archive %s: %w", it.ID, err)
		}
		_ = s.DB.Model(rec).Updates(map[string]any{
			"title":     title,
			"summary":   summary,
			"hot_score": scores.Score(it.ID),
		}).Error
	}

	// 不做按 key 通配删除，依赖短 TTL 的缓存自然过期
	return nil
}

// ListArchived 按地区与排序返回归档条目，Redis 做短 TTL 缓存。
// region 为空表示不筛选；sort 取 hot / latest（默认 latest）
func (s *Store) ListArchived(region, sort string, limit int) ([]ArchivedItem, error) {
	if s.DB == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	if sort == "" {
		sort = "latest"
	}

	ctx := context.Background()
	cacheKey := fmt.Sprintf("news:archive:%s:%s:%d", region, sort, limit)

	if s.Redis != nil {
		if bs, err := s.Redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached []ArchivedItem
			if err := json.Unmarshal(bs, &cached); err == nil {
				return cached, nil
			}
		}
	}

	var list []ArchivedItem
	db := s.DB.Model(&ArchivedItem{})
	if region != "" {
		db = db.Where("region = ?", region)
	}
	switch sort {
	case "hot":
		db = db.Order("hot_score DESC").Order("published_at DESC")
	default:
		db = db.Order("published_at DESC")
	}
	if err := db.Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}

	const listCacheTTL = 5 * time.Minute
	if s.Redis != nil && len(list) > 0 {
		if bs, err := json.Marshal(list); err == nil {
			_ = s.Redis.Set(ctx, cacheKey, bs, listCacheTTL).Err()
		}
	}

	return list, nil
}
