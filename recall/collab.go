package recall

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/graph"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/pkg/utils"
)

// PurchaseTierWeight 是“购买级互动”的权重门槛。
// purchase 的归一化权重为 0.975，单次其它互动都到不了 0.9。
const PurchaseTierWeight = 0.9

// Collab 是第二层召回源：基于共同互动商品的协同过滤。
//
// 对用户互动过的每个商品 A（权重 w_ua），找同样碰过 A 的其他用户 U'
// （权重 w_other），以 similarity = min(w_ua, w_other) 连通；U' 自己的
// 每个未被排除的商品 B 累加：
//
//	score[B] += similarity * weight(U', B) * confidence(U')
//
// 多条 (A, U') 路径的贡献全部求和，买家置信度高的用户话语权更大。
// Collab 同时实现了 Source 和 Node 接口。
type Collab struct {
	Graph *graph.Graph

	// TopK 返回 TopK 个商品，<=0 时取 5
	TopK int
}

func (r *Collab) Name() string        { return "recall.collab" }
func (r *Collab) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口：按层级预算追加协同贡献。
// 预算 = min(TopK, rctx.TopN - 已累积数量)，层级顺序优先于分数大小。
func (r *Collab) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	remaining := rctx.TopN - len(items)
	if remaining <= 0 {
		return items, nil
	}
	out, err := r.Recall(ctx, rctx, excludeFrom(rctx, items))
	if err != nil {
		return nil, err
	}
	if len(out) > remaining {
		out = out[:remaining]
	}
	return append(items, out...), nil
}

// Recall 实现 Source 接口。
func (r *Collab) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
	exclude map[string]struct{},
) ([]*core.Item, error) {
	if r.Graph == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}

	userProducts := r.Graph.UserProducts(rctx.UserID)
	if len(userProducts) == 0 {
		return nil, nil
	}

	// score[B] 跨所有 (A, U') 路径累加
	candidateScores := make(map[string]float64)

	for productA, weightUA := range userProducts {
		otherUsers := r.Graph.ProductUsers(productA)

		for otherUser, weightOther := range otherUsers {
			if otherUser == rctx.UserID {
				continue // 跳过自己
			}

			similarity := minFloat(weightUA, weightOther)
			confidence := UserConfidence(r.Graph, otherUser)

			otherProducts := r.Graph.UserProducts(otherUser)
			for productB, weightB := range otherProducts {
				if _, ok := exclude[productB]; ok {
					continue
				}
				candidateScores[productB] += similarity * weightB * confidence
			}
		}
	}

	topK := r.TopK
	if topK <= 0 {
		topK = 5
	}

	out := make([]*core.Item, 0, len(candidateScores))
	for productID, score := range candidateScores {
		it := core.NewItem(productID)
		it.Score = score
		it.Source = core.SourceCollab
		it.PutLabel("recall_source", utils.Label{Value: "collab", Source: "recall"})
		out = append(out, it)
	}

	sortByScore(out)
	if len(out) > topK {
		out = out[:topK]
	}
	return out, nil
}

// UserConfidence 计算贡献用户的置信度：买得多的用户更值得信。
//
//	purchase 级商品 >= 5 → 1.5（重度买家）
//	purchase 级商品 >= 2 → 1.2（普通买家）
//	其它               → 1.0（只逛不买）
//
// 图里不存在的用户按 1.0 处理（防御默认值）。
func UserConfidence(g *graph.Graph, userID string) float64 {
	products := g.UserProducts(userID)
	if products == nil {
		return 1.0
	}

	purchaseCount := 0
	for _, weight := range products {
		if weight >= PurchaseTierWeight {
			purchaseCount++
		}
	}

	switch {
	case purchaseCount >= 5:
		return 1.5
	case purchaseCount >= 2:
		return 1.2
	default:
		return 1.0
	}
}

// ConfidenceClass 把置信度映射为解释用的用户分类。
func ConfidenceClass(confidence float64) string {
	switch {
	case confidence >= 1.5:
		return "heavy_buyer"
	case confidence >= 1.2:
		return "regular_buyer"
	default:
		return "user"
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
