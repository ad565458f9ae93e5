package view

import (
	"fmt"

	"github.com/yulei/news-hub/internal/feed"
)

// MaxItems 最终视图的长度上限，控制渲染开销
const MaxItems = 120

// View 渲染用的最终条目列表与计数文案
type View struct {
	Items     []feed.Item
	CountText string
}

// Assemble 截断到长度上限并生成计数文案。直接丢弃尾部，不做重采样；
// 计数按截断后的长度计，不是截断前的候选数
func Assemble(items []feed.Item) View {
	if len(items) > MaxItems {
		items = items[:MaxItems]
	}
	return View{
		Items:     items,
		CountText: fmt.Sprintf("共 %d 条", len(items)),
	}
}

// Build 完整执行 过滤 → 排序 → 混排 → 截断 流水线。
// 对满足数据模型的输入是全函数：任何条目、任何偏好组合都不会失败，
// 相同输入重复调用产出完全相同的结果
func Build(snap *feed.Snapshot, p Preferences, read, star map[string]bool) View {
	p = p.Normalize()
	filtered := Filter(snap.Items, p, read, star)
	ranked := Rank(filtered, p.Sort, snap.Scores)
	mixed := MixRegions(ranked, p.Region)
	return Assemble(mixed)
}
