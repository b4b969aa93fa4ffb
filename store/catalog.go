package store

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/rushteam/shoprec/core"
)

const (
	catalogHashKey = "shoprec:products"
	soldZSetKey    = "shoprec:sold"
)

// CatalogStore 基于 KeyValueStore 的商品目录，实现 core.Catalog。
// 商品详情存 hash（field 为商品 ID），销量存 zset 用于 TopSelling。
type CatalogStore struct {
	kv core.KeyValueStore
}

var _ core.Catalog = (*CatalogStore)(nil)

func NewCatalogStore(kv core.KeyValueStore) *CatalogStore {
	return &CatalogStore{kv: kv}
}

// Put 写入或覆盖一个商品，同时刷新销量榜。
func (c *CatalogStore) Put(ctx context.Context, p core.Product) error {
	if p.ID == "" {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "商品 ID 不能为空")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInternalError, "商品序列化失败: "+err.Error())
	}
	if err := c.kv.HSet(ctx, catalogHashKey, p.ID, data); err != nil {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeUnavailable, "写入商品失败: "+err.Error())
	}
	return c.kv.ZAdd(ctx, soldZSetKey, float64(p.SoldCount), p.ID)
}

func (c *CatalogStore) All(ctx context.Context) ([]core.Product, error) {
	fields, err := c.kv.HGetAll(ctx, catalogHashKey)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeUnavailable, "读取商品目录失败: "+err.Error())
	}

	products := make([]core.Product, 0, len(fields))
	for _, data := range fields {
		var p core.Product
		if err := json.Unmarshal(data, &p); err != nil {
			continue
		}
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].ID < products[j].ID
	})
	return products, nil
}

func (c *CatalogStore) FindByID(ctx context.Context, id string) (core.Product, bool, error) {
	data, err := c.kv.HGet(ctx, catalogHashKey, id)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return core.Product{}, false, nil
		}
		return core.Product{}, false, core.NewDomainError(core.ModuleStore, core.ErrorCodeUnavailable, "读取商品失败: "+err.Error())
	}
	var p core.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return core.Product{}, false, core.NewDomainError(core.ModuleStore, core.ErrorCodeInternalError, "商品解析失败: "+err.Error())
	}
	return p, true, nil
}

// TopSelling 返回销量前 n 的商品，销量降序，同销量按商品 ID 升序。
// 排序在本地兜底一次，不依赖后端 zset 对同分成员的顺序约定。
func (c *CatalogStore) TopSelling(ctx context.Context, n int) ([]core.Product, error) {
	if n <= 0 {
		return nil, nil
	}
	ids, err := c.kv.ZRange(ctx, soldZSetKey, 0, int64(n-1))
	if err != nil {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeUnavailable, "读取销量榜失败: "+err.Error())
	}

	products := make([]core.Product, 0, len(ids))
	for _, id := range ids {
		p, ok, err := c.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].SoldCount != products[j].SoldCount {
			return products[i].SoldCount > products[j].SoldCount
		}
		return products[i].ID < products[j].ID
	})
	return products, nil
}
