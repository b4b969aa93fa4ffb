package filter

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/dsl"
)

// RuleFilter 是规则过滤器：用 CEL 表达式描述“命中即过滤”的规则。
//
// 示例：
//
//	// 过滤掉分数过低的 WARM 候选
//	&filter.RuleFilter{Expr: `label.recall_source == "warm" && item.score < 0.1`}
//
//	// 运营位按类目屏蔽
//	&filter.RuleFilter{Expr: `label.category != null && label.category == "Phone"`}
type RuleFilter struct {
	// Expr CEL 表达式，空表达式不过滤任何商品
	Expr string
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Expr == "" {
		return false, nil
	}

	matched, err := dsl.NewEval(item, rctx).Evaluate(f.Expr)
	if err != nil {
		// 规则写错不应拖垮推荐链路：报错时保留商品，由 FilterNode 记录
		return false, err
	}
	return matched, nil
}
