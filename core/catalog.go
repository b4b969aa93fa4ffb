package core

import "context"

// Product 是商品目录中的一条商品，引擎只读。
type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	SoldCount int     `json:"sold_count"`
}

// Catalog 是商品目录的领域接口。
//
// 内部结构一律以稳定的商品 ID 为键；展示名可能重复/改名，只做展示。
type Catalog interface {
	// All 返回全部商品（引擎在内容层做类目筛选时遍历）
	All(ctx context.Context) ([]Product, error)

	// FindByID 按商品 ID 查找；不存在时返回 (Product{}, false, nil)，不是错误
	FindByID(ctx context.Context, productID string) (Product, bool, error)

	// TopSelling 按销量降序返回前 n 个商品（销量相同按 ID 升序，保证确定性）
	TopSelling(ctx context.Context, n int) ([]Product, error)
}
