package userstate

import (
	"context"
	"encoding/json"
	"log"

	"github.com/yulei/news-hub/internal/view"
)

// 持久化键。单用户场景下固定三个键：偏好、已读集合、收藏集合
const (
	keyPrefs = "news:prefs"
	keyRead  = "news:read"
	keyStar  = "news:star"
)

// PrefStore 读写用户展示偏好
type PrefStore struct {
	kv KV
}

func NewPrefStore(kv KV) *PrefStore {
	return &PrefStore{kv: kv}
}

// Load 返回默认值与已存字段的浅合并结果。
// 整条记录无法解析时回退到默认值；个别字段类型损坏时保留解出的
// 合法字段，坏字段落在默认值上。任何解析失败都不向调用方报错
func (s *PrefStore) Load(ctx context.Context) view.Preferences {
	p := view.DefaultPreferences()
	raw, ok := s.kv.Get(ctx, keyPrefs)
	if !ok {
		return p
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		log.Printf("warn: userstate: prefs decode: %v", err)
	}
	return p.Normalize()
}

// Save 持久化偏好。搜索词带 json:"-" 标记，天然不落盘，每个会话重置
func (s *PrefStore) Save(ctx context.Context, p view.Preferences) error {
	buf, err := json.Marshal(p.Normalize())
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, keyPrefs, string(buf))
}
