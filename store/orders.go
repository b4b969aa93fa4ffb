package store

import (
	"context"
	"encoding/json"

	"github.com/rushteam/shoprec/core"
)

const ordersHashKey = "shoprec:orders"

// OrderLog 基于 KeyValueStore 的已购记录，实现 core.OrderStore。
// 每个用户一条 hash field，值为已购商品 ID 的 JSON 数组。
type OrderLog struct {
	kv core.KeyValueStore
}

var _ core.OrderStore = (*OrderLog)(nil)

func NewOrderLog(kv core.KeyValueStore) *OrderLog {
	return &OrderLog{kv: kv}
}

// RecordPurchase 追加一条购买记录，重复购买同一商品不会产生重复条目。
func (o *OrderLog) RecordPurchase(ctx context.Context, userID, productID string) error {
	if userID == "" || productID == "" {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "用户 ID 和商品 ID 不能为空")
	}
	ids, err := o.purchasedIDs(ctx, userID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == productID {
			return nil
		}
	}
	ids = append(ids, productID)
	data, err := json.Marshal(ids)
	if err != nil {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInternalError, "购买记录序列化失败: "+err.Error())
	}
	return o.kv.HSet(ctx, ordersHashKey, userID, data)
}

// PurchasedProducts 返回用户已购商品 ID 集合，无记录时返回空集合。
func (o *OrderLog) PurchasedProducts(ctx context.Context, userID string) (map[string]struct{}, error) {
	ids, err := o.purchasedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (o *OrderLog) purchasedIDs(ctx context.Context, userID string) ([]string, error) {
	data, err := o.kv.HGet(ctx, ordersHashKey, userID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeUnavailable, "读取购买记录失败: "+err.Error())
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeInternalError, "购买记录解析失败: "+err.Error())
	}
	return ids, nil
}
