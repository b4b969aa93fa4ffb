package recall

import (
	"context"
	"math"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/pkg/utils"
)

// hotScoreNormalize 是热销分数的归一化基准：min(0.3, sold/2000)。
// 分数刻意压低（封顶 0.3），热销兜底永远不该盖过个性化层级。
const hotScoreNormalize = 2000

// Hot 是热销召回源：按销量榜返回 TopN 商品，用于冷启动和发现层兜底。
// Hot 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Hot struct {
	Catalog core.Catalog

	// Scan 从销量榜扫描前多少个候选（排除后再截断），<=0 时取 50
	Scan int

	// TopK 返回 TopK 个商品，<=0 时不截断
	TopK int
}

func (r *Hot) Name() string        { return "recall.hot" }
func (r *Hot) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口：补足剩余名额。
func (r *Hot) Process(
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
// 销量榜本身降序，分数单调不增，因此结果天然有序。
func (r *Hot) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
	exclude map[string]struct{},
) ([]*core.Item, error) {
	if r.Catalog == nil {
		return nil, nil
	}

	scan := r.Scan
	if scan <= 0 {
		scan = 50
	}

	topSelling, err := r.Catalog.TopSelling(ctx, scan)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(topSelling))
	for _, product := range topSelling {
		if _, ok := exclude[product.ID]; ok {
			continue
		}
		it := core.NewItem(product.ID)
		it.Name = product.Name
		it.Score = math.Min(0.3, float64(product.SoldCount)/hotScoreNormalize)
		it.Source = core.SourcePopular
		it.Meta["sold_count"] = product.SoldCount
		it.PutLabel("recall_source", utils.Label{Value: "hot", Source: "recall"})
		out = append(out, it)

		if r.TopK > 0 && len(out) >= r.TopK {
			break
		}
	}
	return out, nil
}
