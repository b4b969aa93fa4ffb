package core

import "github.com/rushteam/shoprec/pkg/utils"

// RecommendContext 承载单次推荐请求的用户/场景信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID string // 使用 string 类型（通用，支持所有 ID 格式）
	Scene  string

	// TopN 本次请求的结果上限，各层级节点据此计算自己还能补多少
	TopN int

	// Purchased 用户已购买的商品 ID 集合。
	// 已购买是唯一的硬排除条件：view/like/cart 过的商品仍可被再次推荐。
	Purchased map[string]struct{}

	// Labels 是用户级标签，可驱动整个 Pipeline 行为
	// 例如：新用户、重度买家、价格敏感等
	Labels map[string]utils.Label

	// Params 请求级上下文参数（latitude、device_type、query 等）
	Params map[string]any
}

// HasPurchased 判断商品是否在已购集合中。
func (rctx *RecommendContext) HasPurchased(productID string) bool {
	if rctx.Purchased == nil {
		return false
	}
	_, ok := rctx.Purchased[productID]
	return ok
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
