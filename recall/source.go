package recall

import (
	"context"
	"sort"

	"github.com/rushteam/shoprec/core"
)

// Source 表示一个可复用的召回源（warm/协同/内容/热销）。
//
// exclude 是调用方给定的硬排除集合（商品 ID）。三层策略的排除集是
// 逐层累积的：上一层选中的商品自动进入下一层的 exclude，已购商品
// 始终在内。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext, exclude map[string]struct{}) ([]*core.Item, error)
}

// excludeFrom 由请求的已购集合与已累积的结果推导当前层的排除集。
func excludeFrom(rctx *core.RecommendContext, items []*core.Item) map[string]struct{} {
	exclude := make(map[string]struct{}, len(rctx.Purchased)+len(items))
	for id := range rctx.Purchased {
		exclude[id] = struct{}{}
	}
	for _, it := range items {
		if it != nil {
			exclude[it.ID] = struct{}{}
		}
	}
	return exclude
}

// sortByScore 按分数降序排序；分数相同按商品 ID 升序，保证输出确定。
func sortByScore(items []*core.Item) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].ID < items[j].ID
	})
}
