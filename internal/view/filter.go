package view

import (
	"strings"

	"github.com/yulei/news-hub/internal/feed"
)

// Include 判断单条条目在当前偏好与标记集合下是否进入工作视图。
// 各规则之间取交集，条目必须通过所有启用的规则。
// region=mix 在谓词阶段不过滤：混排需要两个地区各自完整的排序池，
// 配比由排序之后的 MixRegions 统一执行，这是一个刻意的两阶段契约
func Include(it feed.Item, p Preferences, read, star map[string]bool) bool {
	if q := strings.ToLower(strings.TrimSpace(p.Query)); q != "" {
		hay := strings.ToLower(it.Title + " " + it.Summary + " " + it.Source + " " + strings.Join(it.Tags, " "))
		if !strings.Contains(hay, q) {
			return false
		}
	}

	// 分类为精确标签匹配：区分大小写，不做子串匹配；无标签条目自然不命中
	if p.Category != CategoryAll {
		matched := false
		for _, tag := range it.Tags {
			if tag == p.Category {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if p.Region != RegionMix && it.Region != p.Region {
		return false
	}

	if p.OnlyUnread && read[it.ID] {
		return false
	}
	if p.OnlyStar && !star[it.ID] {
		return false
	}

	return true
}

// Filter 返回通过谓词的条目子集，不修改输入，只会删减不会新增
func Filter(items []feed.Item, p Preferences, read, star map[string]bool) []feed.Item {
	out := make([]feed.Item, 0, len(items))
	for _, it := range items {
		if Include(it, p, read, star) {
			out = append(out, it)
		}
	}
	return out
}
