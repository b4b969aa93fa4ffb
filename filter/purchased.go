package filter

import (
	"context"

	"github.com/rushteam/shoprec/core"
)

// PurchasedFilter 过滤掉用户已购买的商品。
//
// 三层召回的排除集已经包含已购商品，这个过滤器是自定义 Pipeline
// （比如只跑热销召回的运营位）里的独立兜底。
type PurchasedFilter struct {
	// Store 可选：未在请求里携带已购集合时，从订单侧查询
	Store core.OrderStore
}

func (f *PurchasedFilter) Name() string {
	return "filter.purchased"
}

func (f *PurchasedFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if rctx == nil || rctx.UserID == "" {
		return false, nil
	}

	// 优先用请求里的已购集合
	if rctx.HasPurchased(item.ID) {
		return true, nil
	}

	// 回退到订单存储；查询失败时放行，不中断链路
	if f.Store != nil && rctx.Purchased == nil {
		purchased, err := f.Store.PurchasedProducts(ctx, rctx.UserID)
		if err == nil {
			if _, ok := purchased[item.ID]; ok {
				return true, nil
			}
		}
	}

	return false, nil
}
