package userstate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
)

// SetStore 维护一个条目 ID 集合（已读或收藏），以 JSON 数组形式持久化。
// 只有成员关系一种语义，不记录顺序或附加信息
type SetStore struct {
	mu  sync.Mutex
	kv  KV
	key string
}

func NewReadStore(kv KV) *SetStore {
	return &SetStore{kv: kv, key: keyRead}
}

func NewStarStore(kv KV) *SetStore {
	return &SetStore{kv: kv, key: keyStar}
}

// Load 读出集合。内容缺失或损坏时返回空集合，不向调用方报错
func (s *SetStore) Load(ctx context.Context) map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *SetStore) load(ctx context.Context) map[string]bool {
	set := make(map[string]bool)
	raw, ok := s.kv.Get(ctx, s.key)
	if !ok {
		return set
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		log.Printf("warn: userstate: set %s decode, resetting: %v", s.key, err)
		return set
	}
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// Toggle 翻转 id 的成员关系并落盘，返回更新后的集合。
// 读-改-写全程持锁，并发请求下的切换不会互相覆盖
func (s *SetStore) Toggle(ctx context.Context, id string) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.load(ctx)
	if set[id] {
		delete(set, id)
	} else {
		set[id] = true
	}

	ids := make([]string, 0, len(set))
	for v := range set {
		ids = append(ids, v)
	}
	// 落盘内容排序，便于人工排查
	sort.Strings(ids)

	buf, err := json.Marshal(ids)
	if err != nil {
		return set, err
	}
	if err := s.kv.Set(ctx, s.key, string(buf)); err != nil {
		return set, fmt.Errorf("userstate: persist %s: %w", s.key, err)
	}
	return set, nil
}
