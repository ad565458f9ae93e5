package view

import (
	"sort"
	"time"

	"github.com/yulei/news-hub/internal/feed"
)

type rankedItem struct {
	item  feed.Item
	score float64
	ts    time.Time
}

// Rank 按排序模式返回新的有序切片，不修改输入。
// new：发布时间降序；hot：热度分降序，同分按发布时间降序。
// 时间缺失或无法解析按零值参与比较，降序下沉底但仍保留在结果中。
// 使用稳定排序，两个键都相同的条目维持输入相对顺序，结果可复现
func Rank(items []feed.Item, mode string, scores feed.ScoreIndex) []feed.Item {
	ranked := make([]rankedItem, 0, len(items))
	for _, it := range items {
		ranked = append(ranked, rankedItem{
			item:  it,
			score: scores.Score(it.ID),
			ts:    it.PublishedTime(),
		})
	}

	switch mode {
	case SortNew:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].ts.After(ranked[j].ts)
		})
	default: // hot
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].score != ranked[j].score {
				return ranked[i].score > ranked[j].score
			}
			return ranked[i].ts.After(ranked[j].ts)
		})
	}

	out := make([]feed.Item, len(ranked))
	for i, r := range ranked {
		out[i] = r.item
	}
	return out
}
