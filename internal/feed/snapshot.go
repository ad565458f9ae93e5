package feed

import "time"

// Snapshot 一次数据加载的不可变快照：条目、话题、元信息与派生的热度索引。
// 除用户偏好和已读/收藏集合外，视图流水线的全部输入都来自这里
type Snapshot struct {
	Items    []Item
	Topics   []Topic
	Meta     *Meta
	Scores   ScoreIndex
	LoadedAt time.Time
}

// NewSnapshot 组装快照并重建热度索引
func NewSnapshot(items []Item, topics []Topic, meta *Meta) *Snapshot {
	return &Snapshot{
		Items:    items,
		Topics:   topics,
		Meta:     meta,
		Scores:   BuildScoreIndex(topics),
		LoadedAt: time.Now(),
	}
}
