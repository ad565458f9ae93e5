package feed

// ScoreIndex 条目 ID 到其所属话题最高热度分的映射
type ScoreIndex map[string]float64

// BuildScoreIndex 从话题列表整体构建热度索引。
// 同一条目属于多个话题时取最大分而非求和，避免弱相关话题的
// 零碎分数叠加盖过真正的强聚类。话题列表变化时整体重建，不做增量合并
func BuildScoreIndex(topics []Topic) ScoreIndex {
	idx := make(ScoreIndex)
	for _, t := range topics {
		for _, id := range t.Items {
			if t.Score > idx[id] {
				idx[id] = t.Score
			}
		}
	}
	return idx
}

// Score 查询条目热度分，未出现在任何话题中的条目为 0
func (idx ScoreIndex) Score(id string) float64 {
	return idx[id]
}
