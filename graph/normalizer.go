// Package graph 把原始互动事件归一化为带权的用户-商品二分图。
//
// 两个概念：
//   - WeightNormalizer：互动类型 → 兴趣权重（区间中点）
//   - Builder：事件流 → 累加权重的不可变 Graph
package graph

import "github.com/rushteam/shoprec/core"

// WeightBand 是某种互动类型的兴趣置信区间 [Min, Max]。
type WeightBand struct {
	Min float64
	Max float64
}

// WeightNormalizer 把互动类型映射为数值兴趣权重。
//
// 每种已知类型返回配置区间的中点；未知类型返回 0（不是错误，贡献为零）。
// 纯函数、无副作用，构造后不可变，可被任意并发读取。
type WeightNormalizer struct {
	bands map[core.InteractionKind]WeightBand
}

// NewWeightNormalizer 创建带默认区间的归一化器：
//
//	purchase [0.95, 1.00]  购买 = 兴趣最高
//	cart     [0.70, 0.85]  加购 = 兴趣较高
//	like     [0.50, 0.65]  点赞 = 中等兴趣
//	view     [0.30, 0.45]  浏览 = 低兴趣
//	skip     [0.00, 0.15]  划过 = 无兴趣
func NewWeightNormalizer() *WeightNormalizer {
	return &WeightNormalizer{
		bands: map[core.InteractionKind]WeightBand{
			core.KindPurchase: {0.95, 1.00},
			core.KindCart:     {0.70, 0.85},
			core.KindLike:     {0.50, 0.65},
			core.KindView:     {0.30, 0.45},
			core.KindSkip:     {0.00, 0.15},
		},
	}
}

// Weight 返回互动类型的兴趣权重（区间中点）；未知类型返回 0。
func (n *WeightNormalizer) Weight(kind core.InteractionKind) float64 {
	band, ok := n.bands[kind]
	if !ok {
		return 0.0
	}
	return (band.Min + band.Max) / 2
}

// AllWeights 返回全部已知类型的权重表，用于展示与调试。
func (n *WeightNormalizer) AllWeights() map[core.InteractionKind]float64 {
	out := make(map[core.InteractionKind]float64, len(n.bands))
	for kind := range n.bands {
		out[kind] = n.Weight(kind)
	}
	return out
}
