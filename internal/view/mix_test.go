package view

import (
	"testing"

	"github.com/yulei/news-hub/internal/feed"
)

func regions(rs ...string) []feed.Item {
	out := make([]feed.Item, len(rs))
	for i, r := range rs {
		out[i] = feed.Item{ID: string(rune('a' + i)), Region: r}
	}
	return out
}

func TestMixRegionsSixtyFortySplit(t *testing.T) {
	// N=10，CN 和 Global 各自充足：精确的 6 CN + 4 Global，块内保持名次顺序
	items := regions(
		feed.RegionGlobal, feed.RegionCN, feed.RegionCN, feed.RegionGlobal, feed.RegionCN,
		feed.RegionCN, feed.RegionGlobal, feed.RegionCN, feed.RegionCN, feed.RegionGlobal,
	)

	out := MixRegions(items, RegionMix)
	if len(out) != 10 {
		t.Fatalf("output length = %d, want 10", len(out))
	}
	for i := 0; i < 6; i++ {
		if out[i].Region != feed.RegionCN {
			t.Fatalf("position %d region = %q, want CN block first", i, out[i].Region)
		}
	}
	for i := 6; i < 10; i++ {
		if out[i].Region != feed.RegionGlobal {
			t.Fatalf("position %d region = %q, want Global block", i, out[i].Region)
		}
	}

	// 两个块内部均维持混排前的名次顺序
	wantCN := []string{"b", "c", "e", "f", "h", "i"}
	for i, id := range wantCN {
		if out[i].ID != id {
			t.Fatalf("CN block order: position %d = %q, want %q", i, out[i].ID, id)
		}
	}
	wantGlobal := []string{"a", "d", "g", "j"}
	for i, id := range wantGlobal {
		if out[6+i].ID != id {
			t.Fatalf("Global block order: position %d = %q, want %q", 6+i, out[6+i].ID, id)
		}
	}
}

func TestMixRegionsShortfallNotBackfilled(t *testing.T) {
	// N=10 但只有 3 条 CN：CN 块只有 3 条，缺口不从 Global 补，产出短于 N
	items := regions(
		feed.RegionCN, feed.RegionCN, feed.RegionCN,
		feed.RegionGlobal, feed.RegionGlobal, feed.RegionGlobal, feed.RegionGlobal,
		feed.RegionGlobal, feed.RegionGlobal, feed.RegionGlobal,
	)

	out := MixRegions(items, RegionMix)
	if len(out) != 7 { // 3 CN + min(4, 7) Global
		t.Fatalf("output length = %d, want 7", len(out))
	}
	for i := 0; i < 3; i++ {
		if out[i].Region != feed.RegionCN {
			t.Fatalf("position %d should be CN", i)
		}
	}
	for i := 3; i < 7; i++ {
		if out[i].Region != feed.RegionGlobal {
			t.Fatalf("position %d should be Global", i)
		}
	}
}

func TestMixRegionsRoundHalfUp(t *testing.T) {
	// N=5：5*0.6=3，目标 3 CN + 2 Global；N=1：0.6 四舍五入到 1 CN
	items := regions(feed.RegionCN, feed.RegionCN, feed.RegionCN, feed.RegionGlobal, feed.RegionGlobal)
	out := MixRegions(items, RegionMix)
	if len(out) != 5 || out[2].Region != feed.RegionCN || out[3].Region != feed.RegionGlobal {
		t.Fatalf("N=5 should split 3 CN + 2 Global, got %v", ids(out))
	}

	single := regions(feed.RegionCN)
	if out := MixRegions(single, RegionMix); len(out) != 1 {
		t.Fatalf("N=1 with one CN item should keep it, got %d", len(out))
	}
	// N=1 目标是 1 CN + 0 Global：单条 Global 会被截掉
	if out := MixRegions(regions(feed.RegionGlobal), RegionMix); len(out) != 0 {
		t.Fatalf("N=1 with one Global item targets 1 CN + 0 Global, got %d", len(out))
	}
}

func TestMixRegionsPassThrough(t *testing.T) {
	items := regions(feed.RegionGlobal, feed.RegionCN)
	out := MixRegions(items, feed.RegionCN)
	if len(out) != 2 || out[0].ID != "a" || out[1].ID != "b" {
		t.Fatalf("non-mix mode must be an identity pass-through, got %v", ids(out))
	}
}
