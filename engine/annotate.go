package engine

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pipeline"
)

// annotateNode 是后处理节点：给结果补齐展示名与目录元信息。
//
// 召回层内部只认商品 ID；展示名、类目、价格统一在链路末端从目录补齐，
// 目录里查不到的商品保留 ID 原样返回（可能已下架），不报错。
type annotateNode struct {
	catalog core.Catalog
}

func (n *annotateNode) Name() string        { return "postprocess.annotate" }
func (n *annotateNode) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *annotateNode) Process(
	ctx context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.catalog == nil {
		return items, nil
	}

	for _, it := range items {
		if it == nil || it.Name != "" {
			continue
		}
		product, ok, err := n.catalog.FindByID(ctx, it.ID)
		if err != nil || !ok {
			continue
		}
		it.Name = product.Name
		if it.Meta == nil {
			it.Meta = make(map[string]any)
		}
		if _, exists := it.Meta["category"]; !exists {
			it.Meta["category"] = product.Category
		}
		if _, exists := it.Meta["price"]; !exists {
			it.Meta["price"] = product.Price
		}
	}
	return items, nil
}
