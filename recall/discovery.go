package recall

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pipeline"
)

// Discovery 是第三层召回源：内容匹配优先，不足时用热销兜底。
//
// 规则：内容层给出 >= 3 个候选就直接取前 3（全部 CONTENT）；
// 否则从热销榜补位（POPULAR），按先到顺序合并去重，封顶 3 个。
// Discovery 同时实现了 Source 和 Node 接口。
type Discovery struct {
	Content *Content
	Hot     *Hot

	// TopK 返回 TopK 个商品，<=0 时取 3
	TopK int

	// HotBackfill 兜底时向热销源要多少个候选，<=0 时取 5
	HotBackfill int
}

func (r *Discovery) Name() string        { return "recall.discovery" }
func (r *Discovery) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口：用第三层贡献补足剩余名额。
func (r *Discovery) Process(
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
func (r *Discovery) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
	exclude map[string]struct{},
) ([]*core.Item, error) {
	topK := r.TopK
	if topK <= 0 {
		topK = 3
	}

	var content []*core.Item
	if r.Content != nil {
		var err error
		content, err = r.Content.Recall(ctx, rctx, exclude)
		if err != nil {
			return nil, err
		}
	}

	// 内容层够 3 个就不再兜底
	if len(content) >= topK {
		return content[:topK], nil
	}

	var popular []*core.Item
	if r.Hot != nil {
		backfill := r.HotBackfill
		if backfill <= 0 {
			backfill = 5
		}
		hot := *r.Hot
		hot.TopK = backfill

		var err error
		popular, err = hot.Recall(ctx, rctx, exclude)
		if err != nil {
			return nil, err
		}
	}

	// 先到顺序合并（content 在前），按商品 ID 去重
	seen := make(map[string]struct{}, len(content)+len(popular))
	out := make([]*core.Item, 0, topK)
	for _, it := range append(content, popular...) {
		if it == nil {
			continue
		}
		if _, ok := seen[it.ID]; ok {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
		if len(out) >= topK {
			break
		}
	}
	return out, nil
}
