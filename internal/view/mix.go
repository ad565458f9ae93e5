package view

import (
	"math"

	"github.com/yulei/news-hub/internal/feed"
)

// MixRegions 在 region=mix 时把已排序的列表重排为「CN 块 + Global 块」。
// 以混排前的总长 N 计算目标配比：targetCN = round(N*0.6)（0.5 进位），
// targetGlobal = N - targetCN。按原有名次顺序切出两个地区的子序列，
// 各取目标数量后先 CN 后 Global 拼接，块内维持名次顺序。
// 某一侧池子不足时不从另一侧补齐，产出可能短于 N；固定块布局优先于凑满长度。
// 其它模式下原样透传（谓词阶段已经只留下单一地区）
func MixRegions(items []feed.Item, regionMode string) []feed.Item {
	if regionMode != RegionMix {
		return items
	}

	n := len(items)
	targetCN := int(math.Floor(float64(n)*0.6 + 0.5))
	targetGlobal := n - targetCN

	var cn, global []feed.Item
	for _, it := range items {
		switch it.Region {
		case feed.RegionCN:
			cn = append(cn, it)
		case feed.RegionGlobal:
			global = append(global, it)
		}
	}

	if len(cn) > targetCN {
		cn = cn[:targetCN]
	}
	if len(global) > targetGlobal {
		global = global[:targetGlobal]
	}

	out := make([]feed.Item, 0, len(cn)+len(global))
	out = append(out, cn...)
	out = append(out, global...)
	return out
}
