package core

import "github.com/rushteam/shoprec/pkg/utils"

// Source 表示推荐结果的来源层级（tier）。
// 三层策略：WARM（已互动未购买）→ COLLAB（协同过滤）→ CONTENT/POPULAR（发现层）。
type Source string

const (
	SourceWarm    Source = "WARM"    // 第一层：用户已互动但未购买的商品
	SourceCollab  Source = "COLLAB"  // 第二层：相似用户贡献的商品
	SourceContent Source = "CONTENT" // 第三层：内容匹配（类目/热度/价格）
	SourcePopular Source = "POPULAR" // 兜底：热销商品
)

// Item 是推荐链路中的统一承载结构：分数、来源层级、元信息、标签。
// Labels 用于解释与策略驱动；Score 只在同一层级内可比较，跨层不重排。
type Item struct {
	ID     string // 商品稳定 ID（内部结构一律按 ID 关联，展示名只做展示）
	Name   string // 商品展示名
	Score  float64
	Source Source
	Meta   map[string]any
	Labels map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:     id,
		Score:  0,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
