package graph

import "github.com/rushteam/shoprec/core"

// Builder 把按用户分组的互动事件构建成 Graph。
//
// 构建是纯累加：对每条事件取归一化权重并加进两个方向的映射，
// 加法满足交换律/结合律，所以事件顺序不影响结果（浮点舍入除外）。
// 无错误路径：空输入得到空图。
type Builder struct {
	Normalizer *WeightNormalizer
}

// NewBuilder 创建 Builder；normalizer 为 nil 时使用默认权重表。
func NewBuilder(normalizer *WeightNormalizer) *Builder {
	if normalizer == nil {
		normalizer = NewWeightNormalizer()
	}
	return &Builder{Normalizer: normalizer}
}

// Build 从完整互动快照构建图。
//
// 出现在 events 键上的用户即使没有任何有效边也计入用户集合；
// 商品只在出现过事件时计入。每次推荐批次重建一次全量图是刻意的
// 简单性取舍（见 engine），不做增量更新。
func (b *Builder) Build(events map[string][]core.InteractionEvent) *Graph {
	g := &Graph{
		userToProducts: make(map[string]map[string]float64, len(events)),
		productToUsers: make(map[string]map[string]float64),
		users:          make(map[string]struct{}, len(events)),
		products:       make(map[string]struct{}),
	}

	for user, evs := range events {
		g.users[user] = struct{}{}
		if g.userToProducts[user] == nil {
			g.userToProducts[user] = make(map[string]float64, len(evs))
		}

		for _, ev := range evs {
			w := b.Normalizer.Weight(ev.Kind)

			g.userToProducts[user][ev.ProductID] += w

			if g.productToUsers[ev.ProductID] == nil {
				g.productToUsers[ev.ProductID] = make(map[string]float64)
			}
			g.productToUsers[ev.ProductID][user] += w

			g.products[ev.ProductID] = struct{}{}
		}
	}

	return g
}
