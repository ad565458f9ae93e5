package view

import "github.com/yulei/news-hub/internal/feed"

// 排序模式与混合地区模式取值
const (
	SortHot = "hot"
	SortNew = "new"

	RegionMix = "mix"

	CategoryAll = "all"
)

// Preferences 用户展示偏好。Query 只在当前会话内有效，刻意不参与持久化
type Preferences struct {
	Category   string `json:"category"`
	Region     string `json:"region"`
	Sort       string `json:"sort"`
	OnlyUnread bool   `json:"onlyUnread"`
	OnlyStar   bool   `json:"onlyStar"`
	Query      string `json:"-"`
}

// DefaultPreferences 默认偏好：全部分类、混合地区、热度排序
func DefaultPreferences() Preferences {
	return Preferences{
		Category: CategoryAll,
		Region:   RegionMix,
		Sort:     SortHot,
	}
}

// Normalize 把非法或缺失的枚举取值回退到默认值，布尔字段原样保留
func (p Preferences) Normalize() Preferences {
	if p.Category == "" {
		p.Category = CategoryAll
	}
	switch p.Region {
	case feed.RegionCN, feed.RegionGlobal, RegionMix:
	default:
		p.Region = RegionMix
	}
	switch p.Sort {
	case SortHot, SortNew:
	default:
		p.Sort = SortHot
	}
	return p
}
