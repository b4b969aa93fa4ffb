package engine

import (
	"context"
	"math"
	"sort"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/recall"
)

// Explanation 是 Explain 的结构化结果：逐层说明某个商品为什么会被推荐。
// 只读诊断视图，与 Recommend 使用完全相同的数据与公式。
type Explanation struct {
	UserID      string
	ProductID   string
	ProductName string

	// Known 用户是否在互动图中；false 时其余字段均为零值
	Known bool

	// Warm 非空表示该商品在用户自己的互动集合里
	Warm *WarmDetail

	// Collab 非空表示存在相似用户贡献
	Collab *CollabDetail

	// Content 非空表示与用户的类目偏好匹配
	Content *ContentDetail

	// PopularFallback 以上层级都不适用时为 true（纯热销商品）
	PopularFallback bool
}

// WarmDetail 是 WARM 层贡献：原始权重与加权后的分数。
type WarmDetail struct {
	RawWeight     float64
	BoostedWeight float64

	// GuessedKind 按权重反推的最可能互动类型（仅用于展示）
	GuessedKind core.InteractionKind
}

// CollabDetail 是协同层贡献：总分与得分最高的若干条贡献路径。
type CollabDetail struct {
	Total float64

	// Paths 最多 5 条，按路径分数降序
	Paths []CollabPath
}

// CollabPath 是一条协同贡献路径：经由哪个共同商品、哪个用户、多大贡献。
type CollabPath struct {
	ViaProductID    string  // 双方共同互动的商品
	OtherUserID     string  // 贡献用户
	Confidence      float64 // 贡献用户的买家置信度
	ConfidenceClass string  // heavy_buyer / regular_buyer / user
	Score           float64 // similarity * weight * confidence
}

// ContentDetail 是内容层贡献：类目匹配、热度与价格距离。
type ContentDetail struct {
	Category            string
	SharedCategoryCount int     // 用户互动过的同类目商品数
	SoldCount           int     // 候选商品销量
	PriceDiffPercent    float64 // 与用户均价的偏差百分比
}

// Explain 解释“为什么会（或不会）把 productID 推荐给 userID”。
//
// 不在图中的用户返回 Known=false；目录里查不到的商品只影响内容层，
// 其余层级照常计算。整个过程不修改任何状态。
func (e *Engine) Explain(ctx context.Context, userID, productID string) (*Explanation, error) {
	out := &Explanation{
		UserID:    userID,
		ProductID: productID,
	}

	if !e.graph.HasUser(userID) {
		return out, nil
	}
	out.Known = true

	product, inCatalog, err := e.catalog.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if inCatalog {
		out.ProductName = product.Name
	}

	userProducts := e.graph.UserProducts(userID)

	// 1. WARM：商品在用户自己的互动集合里
	interacted := false
	if weight, ok := userProducts[productID]; ok {
		interacted = true
		out.Warm = &WarmDetail{
			RawWeight:     weight,
			BoostedWeight: weight * e.warm.Boost,
			GuessedKind:   guessKind(weight),
		}
	}

	// 2. COLLAB：枚举所有 (共同商品, 相似用户) 贡献路径
	var paths []CollabPath
	var total float64
	for productA, weightUA := range userProducts {
		otherUsers := e.graph.ProductUsers(productA)
		for otherUser, weightOther := range otherUsers {
			if otherUser == userID {
				continue
			}
			weightB := e.graph.Weight(otherUser, productID)
			if weightB == 0 {
				continue
			}
			similarity := math.Min(weightUA, weightOther)
			confidence := recall.UserConfidence(e.graph, otherUser)
			score := similarity * weightB * confidence
			total += score
			paths = append(paths, CollabPath{
				ViaProductID:    productA,
				OtherUserID:     otherUser,
				Confidence:      confidence,
				ConfidenceClass: recall.ConfidenceClass(confidence),
				Score:           score,
			})
		}
	}
	if total > 0 {
		// 路径按分数降序，同分按用户/商品 ID 升序，最多展示 5 条
		sort.Slice(paths, func(i, j int) bool {
			if paths[i].Score != paths[j].Score {
				return paths[i].Score > paths[j].Score
			}
			if paths[i].OtherUserID != paths[j].OtherUserID {
				return paths[i].OtherUserID < paths[j].OtherUserID
			}
			return paths[i].ViaProductID < paths[j].ViaProductID
		})
		if len(paths) > 5 {
			paths = paths[:5]
		}
		out.Collab = &CollabDetail{Total: total, Paths: paths}
	}

	// 3. CONTENT：类目匹配（只对用户没互动过、目录可解析的商品有意义）
	if inCatalog && !interacted {
		shared := 0
		for pid := range userProducts {
			p, ok, err := e.catalog.FindByID(ctx, pid)
			if err != nil || !ok {
				continue
			}
			if p.Category == product.Category {
				shared++
			}
		}
		if shared > 0 {
			detail := &ContentDetail{
				Category:            product.Category,
				SharedCategoryCount: shared,
				SoldCount:           product.SoldCount,
			}
			avgPrice := e.discovery.Content.UserAvgPrice(ctx, userID)
			if avgPrice > 0 {
				detail.PriceDiffPercent = math.Abs(product.Price-avgPrice) / avgPrice * 100
			}
			out.Content = detail
		}
	}

	// 4. 兜底说明：前面三层都没贡献 → 纯热销商品
	if out.Warm == nil && out.Collab == nil && out.Content == nil {
		out.PopularFallback = true
	}

	return out, nil
}

// guessKind 按权重反推最可能的互动类型（权重区间与 WeightNormalizer 对应）。
func guessKind(weight float64) core.InteractionKind {
	switch {
	case weight >= 0.9:
		return core.KindPurchase
	case weight >= 0.7:
		return core.KindCart
	case weight >= 0.5:
		return core.KindLike
	case weight >= 0.3:
		return core.KindView
	default:
		return core.KindSkip
	}
}
