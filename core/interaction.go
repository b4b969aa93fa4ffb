package core

import "context"

// InteractionKind 是用户对商品的互动类型（封闭枚举）。
type InteractionKind string

const (
	KindPurchase InteractionKind = "purchase" // 购买 = 兴趣最高
	KindCart     InteractionKind = "cart"     // 加入购物车 = 兴趣较高
	KindLike     InteractionKind = "like"     // 点赞/收藏 = 中等兴趣
	KindView     InteractionKind = "view"     // 浏览 = 低兴趣
	KindSkip     InteractionKind = "skip"     // 划过 = 无兴趣
)

// InteractionEvent 是一条用户-商品互动记录，由外部埋点侧产出。
// 引擎只读：按时间倒序（最新在前）的事件序列。
type InteractionEvent struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       float64         `json:"price"`
	Category    string          `json:"category"`
	Kind        InteractionKind `json:"kind"`
}

// InteractionStore 是互动日志的领域接口。
//
// AllInteractionsForRecommendation 返回按用户分组的事件序列：
//   - 每个用户的序列按时间倒序（最新在前）
//   - 每用户最多 100 条
//   - 相同 (product, kind) 只保留最近一次
type InteractionStore interface {
	AllInteractionsForRecommendation(ctx context.Context) (map[string][]InteractionEvent, error)
}

// OrderStore 是订单侧的领域接口，只暴露推荐需要的已购集合。
type OrderStore interface {
	// PurchasedProducts 返回用户已购买的商品 ID 集合
	PurchasedProducts(ctx context.Context, userID string) (map[string]struct{}, error)
}
