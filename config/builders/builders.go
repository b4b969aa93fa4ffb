// Package builders 注册内置 Node 的配置构建器。
//
// 图、商品目录这类运行期依赖没法写进 YAML，入口处先调用 Install 注入：
//
//	import _ "github.com/rushteam/shoprec/config/builders"
//
//	builders.Install(builders.Deps{Graph: g, Catalog: catalog, Orders: orders})
//	factory := config.DefaultFactory()
//	pipe, err := cfg.BuildPipeline(factory)
package builders

import (
	"fmt"
	"sync"

	"github.com/rushteam/shoprec/config"
	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/filter"
	"github.com/rushteam/shoprec/graph"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/pkg/conv"
	"github.com/rushteam/shoprec/recall"
	"github.com/rushteam/shoprec/rerank"
)

// Deps 是配置驱动模式下各 Node 共享的运行期依赖。
type Deps struct {
	Graph   *graph.Graph
	Catalog core.Catalog
	Orders  core.OrderStore
	Prefs   recall.PreferenceProvider
}

var (
	depsMu      sync.RWMutex
	currentDeps Deps
)

// Install 注入运行期依赖。图重建后需要重新调用。
func Install(deps Deps) {
	depsMu.Lock()
	defer depsMu.Unlock()
	currentDeps = deps
}

func installedDeps() Deps {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return currentDeps
}

func init() {
	config.Register("recall.warm", BuildWarmNode)
	config.Register("recall.collab", BuildCollabNode)
	config.Register("recall.discovery", BuildDiscoveryNode)
	config.Register("recall.hot", BuildHotNode)
	config.Register("filter", BuildFilterNode)
	config.Register("rerank.topn", BuildTopNNode)
}

func BuildWarmNode(cfg map[string]interface{}) (pipeline.Node, error) {
	deps := installedDeps()
	if deps.Graph == nil {
		return nil, fmt.Errorf("recall.warm: graph not installed (call builders.Install first)")
	}
	return &recall.Warm{
		Graph: deps.Graph,
		Boost: conv.ConfigGetFloat64(cfg, "boost", 0),
		TopK:  conv.ConfigGetInt(cfg, "top_k", 0),
	}, nil
}

func BuildCollabNode(cfg map[string]interface{}) (pipeline.Node, error) {
	deps := installedDeps()
	if deps.Graph == nil {
		return nil, fmt.Errorf("recall.collab: graph not installed (call builders.Install first)")
	}
	return &recall.Collab{
		Graph: deps.Graph,
		TopK:  conv.ConfigGetInt(cfg, "top_k", 0),
	}, nil
}

func BuildDiscoveryNode(cfg map[string]interface{}) (pipeline.Node, error) {
	deps := installedDeps()
	if deps.Graph == nil || deps.Catalog == nil {
		return nil, fmt.Errorf("recall.discovery: graph and catalog not installed (call builders.Install first)")
	}
	content := &recall.Content{
		Graph:            deps.Graph,
		Catalog:          deps.Catalog,
		Prefs:            deps.Prefs,
		CategoryWeight:   conv.ConfigGetFloat64(cfg, "category_weight", 0),
		PopularityWeight: conv.ConfigGetFloat64(cfg, "popularity_weight", 0),
		PriceWeight:      conv.ConfigGetFloat64(cfg, "price_weight", 0),
		TopCategories:    conv.ConfigGetInt(cfg, "top_categories", 0),
		TopPerCategory:   conv.ConfigGetInt(cfg, "top_per_category", 0),
	}
	hot := &recall.Hot{
		Catalog: deps.Catalog,
		Scan:    conv.ConfigGetInt(cfg, "hot_scan", 0),
	}
	return &recall.Discovery{
		Content:     content,
		Hot:         hot,
		TopK:        conv.ConfigGetInt(cfg, "top_k", 0),
		HotBackfill: conv.ConfigGetInt(cfg, "hot_backfill", 0),
	}, nil
}

func BuildHotNode(cfg map[string]interface{}) (pipeline.Node, error) {
	deps := installedDeps()
	if deps.Catalog == nil {
		return nil, fmt.Errorf("recall.hot: catalog not installed (call builders.Install first)")
	}
	return &recall.Hot{
		Catalog: deps.Catalog,
		Scan:    conv.ConfigGetInt(cfg, "scan", 0),
		TopK:    conv.ConfigGetInt(cfg, "top_k", 0),
	}, nil
}

func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "purchased":
			filters = append(filters, &filter.PurchasedFilter{Store: installedDeps().Orders})
		case "rule":
			expr := conv.ConfigGet(filterMap, "expr", "")
			if expr == "" {
				return nil, fmt.Errorf("rule filter: expr is required")
			}
			filters = append(filters, &filter.RuleFilter{Expr: expr})
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{N: conv.ConfigGetInt(cfg, "n", 0)}, nil
}
