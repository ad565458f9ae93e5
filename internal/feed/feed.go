package feed

import (
	"encoding/json"
	"time"
)

// 条目地区取值，由上游流水线标注
const (
	RegionCN     = "CN"
	RegionGlobal = "Global"
)

// Item 上游流水线产出的单条新闻记录。加载进快照后整个会话周期内只读
type Item struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Link      string   `json:"link"`
	Source    string   `json:"source"`
	SourceID  string   `json:"source_id,omitempty"`
	Summary   string   `json:"summary,omitempty"`
	Published string   `json:"published,omitempty"`
	Region    string   `json:"region"`
	Lang      string   `json:"lang,omitempty"`
	Tags      []string `json:"tags"`
	Weight    float64  `json:"weight,omitempty"`
}

// PublishedTime 解析发布时间。缺失或无法解析一律按零值时间处理：
// 按时间降序排序时这类条目沉到末尾，但绝不会被丢弃
func (it Item) PublishedTime() time.Time {
	return ParseTime(it.Published)
}

// ParseTime 按 ISO-8601 解析时间戳字符串，解析失败返回零值时间
func ParseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	// 个别源会产出不带时区的时间戳
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t
	}
	return time.Time{}
}

// Topic 上游聚类产出的话题：一组相关条目加一个热度分
type Topic struct {
	ID       string   `json:"id"`
	Headline string   `json:"headline"`
	Count    int      `json:"count"`
	Sources  []string `json:"sources"`
	Items    []string `json:"items"`
	Score    float64  `json:"score"`
}

// Meta 数据构建元信息，缺失时整体按 nil 处理
type Meta struct {
	GeneratedAt string            `json:"generated_at"`
	CountItems  int               `json:"count_items"`
	CountTopics int               `json:"count_topics,omitempty"`
	Failures    []json.RawMessage `json:"failures,omitempty"`
}

// FailureCount 上游构建时失败的源数量，只用长度不关心内容
func (m *Meta) FailureCount() int {
	if m == nil {
		return 0
	}
	return len(m.Failures)
}
