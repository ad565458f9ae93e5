package userstate

import (
	"context"
	"testing"

	"github.com/yulei/news-hub/internal/feed"
	"github.com/yulei/news-hub/internal/view"
)

func TestPrefStoreDefaultsWhenEmpty(t *testing.T) {
	s := NewPrefStore(NewMemoryKV())
	p := s.Load(context.Background())
	if p != view.DefaultPreferences() {
		t.Fatalf("empty store should yield defaults, got %+v", p)
	}
}

func TestPrefStoreCorruptRecordFallsBackToDefaults(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()
	if err := kv.Set(ctx, keyPrefs, "{not json"); err != nil {
		t.Fatalf("seed kv: %v", err)
	}

	s := NewPrefStore(kv)
	p := s.Load(ctx)
	if p != view.DefaultPreferences() {
		t.Fatalf("corrupt record should yield exactly the defaults, got %+v", p)
	}
}

func TestPrefStorePartialRecordMergesOverDefaults(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()
	// 只存了两个字段，其余字段应落在默认值上
	if err := kv.Set(ctx, keyPrefs, `{"category":"AI","sort":"new"}`); err != nil {
		t.Fatalf("seed kv: %v", err)
	}

	p := NewPrefStore(kv).Load(ctx)
	if p.Category != "AI" || p.Sort != view.SortNew {
		t.Fatalf("stored fields should survive the merge: %+v", p)
	}
	if p.Region != view.RegionMix || p.OnlyUnread || p.OnlyStar {
		t.Fatalf("missing fields should stay at defaults: %+v", p)
	}
}

func TestPrefStoreInvalidEnumNormalizedOnLoad(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()
	if err := kv.Set(ctx, keyPrefs, `{"region":"EU","sort":"top","onlyStar":true}`); err != nil {
		t.Fatalf("seed kv: %v", err)
	}

	p := NewPrefStore(kv).Load(ctx)
	if p.Region != view.RegionMix || p.Sort != view.SortHot {
		t.Fatalf("invalid enum values should fall back: %+v", p)
	}
	if !p.OnlyStar {
		t.Fatalf("valid boolean should be recovered: %+v", p)
	}
}

func TestPrefStoreSaveExcludesQuery(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()
	s := NewPrefStore(kv)

	p := view.DefaultPreferences()
	p.Query = "transient search"
	p.Region = feed.RegionCN
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("save: %v", err)
	}

	// 搜索词是会话态，落盘后重新读出必须为空
	got := s.Load(ctx)
	if got.Query != "" {
		t.Fatalf("query must not be persisted, got %q", got.Query)
	}
	if got.Region != feed.RegionCN {
		t.Fatalf("region should round-trip, got %+v", got)
	}
}

func TestSetStoreToggleIdempotence(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()
	star := NewStarStore(kv)

	set, err := star.Toggle(ctx, "id-1")
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !set["id-1"] {
		t.Fatalf("first toggle should add the id")
	}

	set, err = star.Toggle(ctx, "id-1")
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if set["id-1"] {
		t.Fatalf("second toggle should remove the id")
	}

	// 落盘的最终状态也回到原点
	if got := star.Load(ctx); got["id-1"] {
		t.Fatalf("persisted state should be back to empty, got %v", got)
	}
}

func TestSetStoresAreIndependent(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()
	read := NewReadStore(kv)
	star := NewStarStore(kv)

	if _, err := read.Toggle(ctx, "id-1"); err != nil {
		t.Fatalf("toggle read: %v", err)
	}

	if got := star.Load(ctx); len(got) != 0 {
		t.Fatalf("read toggle must not leak into star set: %v", got)
	}
	if got := read.Load(ctx); !got["id-1"] {
		t.Fatalf("read set should contain toggled id: %v", got)
	}
}

func TestSetStoreCorruptValueYieldsEmptySet(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()
	if err := kv.Set(ctx, keyRead, `{"oops":`); err != nil {
		t.Fatalf("seed kv: %v", err)
	}

	if got := NewReadStore(kv).Load(ctx); len(got) != 0 {
		t.Fatalf("corrupt set should load as empty, got %v", got)
	}
}
