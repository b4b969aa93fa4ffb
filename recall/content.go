package recall

import (
	"context"
	"math"
	"sort"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/graph"
	"github.com/rushteam/shoprec/pkg/utils"
)

// 内容层打分的默认配比与基准。
const (
	DefaultCategoryWeight   = 0.6 // 类目亲和度占 60%
	DefaultPopularityWeight = 0.3 // 热度占 30%
	DefaultPriceWeight      = 0.1 // 价格贴近度占 10%

	// DefaultAvgPrice 是用户没有可解析商品时的参考均价兜底
	DefaultAvgPrice = 500000

	// popularityNormalize 是内容打分里热度项的归一化基准（500 销量封顶）。
	// 注意与热销兜底的 sold/2000 基准刻意不同，二者分别保留原始行为。
	popularityNormalize = 500
)

// PreferenceProvider 提供用户的类目亲和度特征（例如来自 Feast 在线特征）。
// 返回空 map 或错误都视为“没有外部特征”，内容层回退到图上推导。
type PreferenceProvider interface {
	CategoryAffinity(ctx context.Context, userID string) (map[string]float64, error)
}

// Content 是内容匹配召回源：类目亲和 + 热度 + 价格贴近度的组合打分。
//
// 打分不带随机性：
//  1. 类目亲和度（60%）：用户在该类目上的互动权重之和
//  2. 热度（30%）：min(1, sold/500)
//  3. 价格贴近度（10%）：1 - min(1, |price-avg|/avg)；均价 <= 0 时取中性 0.5
//
// 类目亲和度优先从 Prefs（外部特征）获取，取不到再从图+目录推导，
// 查不到目录的商品直接跳过，不报错。
type Content struct {
	Graph   *graph.Graph
	Catalog core.Catalog

	// Prefs 可选的外部偏好特征源（Feast 等）
	Prefs PreferenceProvider

	// CategoryWeight / PopularityWeight / PriceWeight <=0 时取默认配比
	CategoryWeight   float64
	PopularityWeight float64
	PriceWeight      float64

	// TopCategories 只看最喜欢的前几个类目，<=0 时取 2
	TopCategories int

	// TopPerCategory 每个类目最多取几个候选，<=0 时取 5
	TopPerCategory int
}

func (r *Content) Name() string { return "recall.content" }

// Recall 实现 Source 接口。
func (r *Content) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
	exclude map[string]struct{},
) ([]*core.Item, error) {
	if r.Graph == nil || r.Catalog == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}

	affinities := r.categoryAffinities(ctx, rctx.UserID)
	if len(affinities) == 0 {
		return nil, nil
	}

	topCategories := r.TopCategories
	if topCategories <= 0 {
		topCategories = 2
	}
	topPerCategory := r.TopPerCategory
	if topPerCategory <= 0 {
		topPerCategory = 5
	}

	categoryWeight := r.CategoryWeight
	if categoryWeight <= 0 {
		categoryWeight = DefaultCategoryWeight
	}
	popularityWeight := r.PopularityWeight
	if popularityWeight <= 0 {
		popularityWeight = DefaultPopularityWeight
	}
	priceWeight := r.PriceWeight
	if priceWeight <= 0 {
		priceWeight = DefaultPriceWeight
	}

	// 亲和度降序取前 N 个类目；同分按类目名升序，保证确定性
	type categoryScore struct {
		category string
		score    float64
	}
	ranked := make([]categoryScore, 0, len(affinities))
	for category, score := range affinities {
		ranked = append(ranked, categoryScore{category, score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].category < ranked[j].category
	})
	if len(ranked) > topCategories {
		ranked = ranked[:topCategories]
	}

	avgPrice := r.UserAvgPrice(ctx, rctx.UserID)

	all, err := r.Catalog.All(ctx)
	if err != nil {
		return nil, err
	}
	byCategory := make(map[string][]core.Product)
	for _, p := range all {
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}

	out := make([]*core.Item, 0, topCategories*topPerCategory)
	for _, cat := range ranked {
		candidates := make([]*core.Item, 0, len(byCategory[cat.category]))

		for _, product := range byCategory[cat.category] {
			if _, ok := exclude[product.ID]; ok {
				continue
			}

			baseScore := cat.score * categoryWeight

			popularity := math.Min(1.0, float64(product.SoldCount)/popularityNormalize)
			popularityScore := popularity * popularityWeight

			var priceSimilarity float64
			if avgPrice > 0 {
				priceDiff := math.Abs(product.Price-avgPrice) / avgPrice
				priceSimilarity = 1 - math.Min(1.0, priceDiff)
			} else {
				priceSimilarity = 0.5 // 没有参考均价时取中性值，避免除零
			}
			priceScore := priceSimilarity * priceWeight

			it := core.NewItem(product.ID)
			it.Name = product.Name
			it.Score = baseScore + popularityScore + priceScore
			it.Source = core.SourceContent
			it.Meta["category"] = product.Category
			it.PutLabel("recall_source", utils.Label{Value: "content", Source: "recall"})
			it.PutLabel("category", utils.Label{Value: product.Category, Source: "recall"})
			candidates = append(candidates, it)
		}

		// 每个类目内部先排序取 TopK，再参与总排序
		sortByScore(candidates)
		if len(candidates) > topPerCategory {
			candidates = candidates[:topPerCategory]
		}
		out = append(out, candidates...)
	}

	sortByScore(out)
	return out, nil
}

// categoryAffinities 返回用户的类目亲和度：优先外部特征，回退到图上推导。
// 图上推导 = 对用户互动过的每个商品，把互动权重累加到其类目上；
// 目录里查不到的商品跳过（可能已下架/改名），不影响其它商品。
func (r *Content) categoryAffinities(ctx context.Context, userID string) map[string]float64 {
	if r.Prefs != nil {
		if prefs, err := r.Prefs.CategoryAffinity(ctx, userID); err == nil && len(prefs) > 0 {
			return prefs
		}
	}

	userProducts := r.Graph.UserProducts(userID)
	if len(userProducts) == 0 {
		return nil
	}

	affinities := make(map[string]float64)
	for productID, weight := range userProducts {
		product, ok, err := r.Catalog.FindByID(ctx, productID)
		if err != nil || !ok {
			continue
		}
		affinities[product.Category] += weight
	}
	return affinities
}

// UserAvgPrice 计算用户互动商品的目录均价；没有可解析的商品时返回兜底值。
// Explain 与内容打分共用同一口径。
func (r *Content) UserAvgPrice(ctx context.Context, userID string) float64 {
	userProducts := r.Graph.UserProducts(userID)
	if len(userProducts) == 0 {
		return DefaultAvgPrice
	}

	var sum float64
	var count int
	for productID := range userProducts {
		product, ok, err := r.Catalog.FindByID(ctx, productID)
		if err != nil || !ok {
			continue
		}
		sum += product.Price
		count++
	}
	if count == 0 {
		return DefaultAvgPrice
	}
	return sum / float64(count)
}
