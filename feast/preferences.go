package feast

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/conv"
	"github.com/rushteam/shoprec/recall"
)

// PreferenceAdapter 把 Feast 在线特征适配成 recall.PreferenceProvider。
//
// 特征可以按 "特征视图:affinity_<类目>" 的约定组织，构造时传入
// 特征名到类目名的映射，例如：
//
//	feast.NewPreferenceAdapter(client, map[string]string{
//	    "user_preferences:affinity_electronics": "electronics",
//	    "user_preferences:affinity_books":       "books",
//	})
type PreferenceAdapter struct {
	client Client

	// EntityKey 实体字段名，默认 "user_id"
	EntityKey string

	// features 特征名 -> 类目名
	features map[string]string
}

var _ recall.PreferenceProvider = (*PreferenceAdapter)(nil)

func NewPreferenceAdapter(client Client, features map[string]string) *PreferenceAdapter {
	return &PreferenceAdapter{
		client:    client,
		EntityKey: "user_id",
		features:  features,
	}
}

// CategoryAffinity 读取用户的类目亲和度特征。
// 缺失或解析不了的特征直接跳过，调用方拿到空 map 时回退到图上推导。
func (a *PreferenceAdapter) CategoryAffinity(ctx context.Context, userID string) (map[string]float64, error) {
	if userID == "" || len(a.features) == 0 {
		return map[string]float64{}, nil
	}

	names := make([]string, 0, len(a.features))
	for name := range a.features {
		names = append(names, name)
	}

	resp, err := a.client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   names,
		EntityRows: []map[string]interface{}{{a.EntityKey: userID}},
	})
	if err != nil {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeUnavailable, "读取偏好特征失败: "+err.Error())
	}
	if len(resp.FeatureVectors) == 0 {
		return map[string]float64{}, nil
	}

	affinities := make(map[string]float64)
	for name, category := range a.features {
		raw, ok := resp.FeatureVectors[0].Values[name]
		if !ok {
			continue
		}
		f, ok := conv.ToFloat64(raw)
		if !ok || f <= 0 {
			continue
		}
		affinities[category] = f
	}
	return affinities, nil
}
