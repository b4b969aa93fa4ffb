// Package engine 把互动图、商品目录与三层召回源组装成推荐引擎。
//
// 引擎在构造时固定一份不可变的图/目录快照，之后的 Recommend / Explain
// 都是纯只读计算，无锁、无 I/O 副作用，天然支持并发请求。
// 想要新数据就重建图、重建引擎（批量重算换简单性，不做增量更新）。
package engine

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/graph"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/recall"
	"github.com/rushteam/shoprec/rerank"
)

// Engine 是三层推荐引擎：WARM → COLLAB → DISCOVERY，外加冷启动热销兜底。
type Engine struct {
	graph   *graph.Graph
	catalog core.Catalog
	orders  core.OrderStore

	warm      *recall.Warm
	collab    *recall.Collab
	discovery *recall.Discovery
	hot       *recall.Hot

	pipe *pipeline.Pipeline

	maxConcurrent int
}

// Option 配置引擎的可选项。
type Option func(*Engine)

// WithOrderStore 配置订单侧存储；BatchRecommend 用它解析各用户的已购集合。
func WithOrderStore(orders core.OrderStore) Option {
	return func(e *Engine) { e.orders = orders }
}

// WithPreferences 配置外部偏好特征源（例如 Feast），供内容层优先使用。
func WithPreferences(prefs recall.PreferenceProvider) Option {
	return func(e *Engine) { e.discovery.Content.Prefs = prefs }
}

// WithWarmBoost 覆盖 WARM 层加权系数（默认 1.5）。
func WithWarmBoost(boost float64) Option {
	return func(e *Engine) { e.warm.Boost = boost }
}

// WithMaxConcurrent 配置 BatchRecommend 的最大并发数（默认 8）。
func WithMaxConcurrent(n int) Option {
	return func(e *Engine) { e.maxConcurrent = n }
}

// New 用不可变的图快照和商品目录构建引擎。
func New(g *graph.Graph, catalog core.Catalog, opts ...Option) *Engine {
	e := &Engine{
		graph:         g,
		catalog:       catalog,
		maxConcurrent: 8,
	}

	e.warm = &recall.Warm{Graph: g, Boost: recall.DefaultWarmBoost, TopK: 3}
	e.collab = &recall.Collab{Graph: g, TopK: 5}
	e.hot = &recall.Hot{Catalog: catalog, Scan: 50}
	e.discovery = &recall.Discovery{
		Content: &recall.Content{Graph: g, Catalog: catalog},
		Hot:     e.hot,
		TopK:    3,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.pipe = &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			e.warm,
			e.collab,
			e.discovery,
			&rerank.TopNNode{},              // 收口到 rctx.TopN
			&annotateNode{catalog: catalog}, // 补齐展示名等元信息
		},
	}

	return e
}

// Recommend 为单个用户计算推荐。
//
// purchased 是该用户的已购商品 ID 集合（可为 nil）。topN <= 0 时返回空结果。
// 冷启动用户（图里没有互动记录）直接走热销兜底，全部打 POPULAR 标。
// 返回空列表表示“当前没有可推荐的商品”，不是错误。
func (e *Engine) Recommend(
	ctx context.Context,
	userID string,
	topN int,
	purchased map[string]struct{},
) ([]*core.Item, error) {
	if topN <= 0 || userID == "" {
		return nil, nil
	}

	rctx := &core.RecommendContext{
		UserID:    userID,
		TopN:      topN,
		Purchased: purchased,
	}

	// 冷启动：没有互动记录的用户只能靠热销榜
	if !e.graph.HasUser(userID) {
		hot := *e.hot
		hot.TopK = topN
		items, err := hot.Recall(ctx, rctx, purchasedSet(purchased))
		if err != nil {
			return nil, err
		}
		ann := &annotateNode{catalog: e.catalog}
		return ann.Process(ctx, rctx, items)
	}

	return e.pipe.Run(ctx, rctx, nil)
}

// BatchRecommend 并发地为一批用户计算推荐。
//
// 已购集合从 OrderStore 解析（未配置或查询失败时按空集处理）。
// 各用户之间只读共享同一份图/目录快照，互不干扰。
func (e *Engine) BatchRecommend(
	ctx context.Context,
	userIDs []string,
	topN int,
) (map[string][]*core.Item, error) {
	var (
		mu        sync.Mutex
		results   = make(map[string][]*core.Item, len(userIDs))
		eg, egCtx = errgroup.WithContext(ctx)
	)

	eg.SetLimit(e.maxConcurrent)

	for _, userID := range userIDs {
		uid := userID
		eg.Go(func() error {
			var purchased map[string]struct{}
			if e.orders != nil {
				if p, err := e.orders.PurchasedProducts(egCtx, uid); err == nil {
					purchased = p
				}
			}

			items, err := e.Recommend(egCtx, uid, topN, purchased)
			if err != nil {
				return err
			}

			mu.Lock()
			results[uid] = items
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func purchasedSet(purchased map[string]struct{}) map[string]struct{} {
	if purchased == nil {
		return map[string]struct{}{}
	}
	return purchased
}
