package store

import (
	"context"
	"encoding/json"

	"github.com/rushteam/shoprec/core"
)

// 每个用户保留的互动条数上限，超出后丢弃最旧的记录。
const maxEventsPerUser = 100

const interactionHashKey = "shoprec:interactions"

// InteractionLog 基于 KeyValueStore 的互动日志，实现 core.InteractionStore。
// 每个用户一条 hash field，值为 JSON 数组，最新的互动在最前面。
// 同一 (商品, 行为) 只保留最近一次，旧记录在写入时被挤掉。
type InteractionLog struct {
	kv core.KeyValueStore
}

var _ core.InteractionStore = (*InteractionLog)(nil)

func NewInteractionLog(kv core.KeyValueStore) *InteractionLog {
	return &InteractionLog{kv: kv}
}

// AddInteraction 记录一次用户互动。
func (l *InteractionLog) AddInteraction(ctx context.Context, userID string, ev core.InteractionEvent) error {
	if userID == "" || ev.ProductID == "" {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "用户 ID 和商品 ID 不能为空")
	}

	events, err := l.userEvents(ctx, userID)
	if err != nil {
		return err
	}

	// 新事件放最前，剔除同 (商品, 行为) 的旧记录
	merged := make([]core.InteractionEvent, 0, len(events)+1)
	merged = append(merged, ev)
	for _, old := range events {
		if old.ProductID == ev.ProductID && old.Kind == ev.Kind {
			continue
		}
		merged = append(merged, old)
	}
	if len(merged) > maxEventsPerUser {
		merged = merged[:maxEventsPerUser]
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInternalError, "互动日志序列化失败: "+err.Error())
	}
	return l.kv.HSet(ctx, interactionHashKey, userID, data)
}

// UserInteractions 返回单个用户的互动历史（最新在前），无记录时返回空切片。
func (l *InteractionLog) UserInteractions(ctx context.Context, userID string) ([]core.InteractionEvent, error) {
	return l.userEvents(ctx, userID)
}

// AllInteractionsForRecommendation 返回全量用户互动，供图构建使用。
func (l *InteractionLog) AllInteractionsForRecommendation(ctx context.Context) (map[string][]core.InteractionEvent, error) {
	fields, err := l.kv.HGetAll(ctx, interactionHashKey)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeUnavailable, "读取互动日志失败: "+err.Error())
	}

	result := make(map[string][]core.InteractionEvent, len(fields))
	for userID, data := range fields {
		var events []core.InteractionEvent
		if err := json.Unmarshal(data, &events); err != nil {
			// 单个用户的脏数据不应拖垮全量读取
			continue
		}
		result[userID] = events
	}
	return result, nil
}

func (l *InteractionLog) userEvents(ctx context.Context, userID string) ([]core.InteractionEvent, error) {
	data, err := l.kv.HGet(ctx, interactionHashKey, userID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return []core.InteractionEvent{}, nil
		}
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeUnavailable, "读取互动日志失败: "+err.Error())
	}
	var events []core.InteractionEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeInternalError, "互动日志解析失败: "+err.Error())
	}
	return events, nil
}
