package rerank

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，放在三层召回之后收口结果数量。
//
// 注意它只截断、不重排：层级顺序（WARM → COLLAB → DISCOVERY）是策略的
// 一部分，跨层按绝对分数重排会破坏层级优先级。
//
// 示例：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        warm, collab, discovery,      // 三层召回
//	        &rerank.TopNNode{N: 10},      // 收口到 Top 10
//	    },
//	}
type TopNNode struct {
	// N 要保留的商品数量（Top N）
	// 如果 N <= 0，则使用 rctx.TopN；两者都无效时不截断
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	limit := n.N
	if limit <= 0 && rctx != nil {
		limit = rctx.TopN
	}
	if limit <= 0 {
		return items, nil
	}

	if len(items) <= limit {
		return items, nil
	}

	return items[:limit], nil
}
