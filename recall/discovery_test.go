package recall

import (
	"context"
	"testing"

	"github.com/rushteam/shoprec/core"
)

func TestDiscovery_Recall_ContentOnly(t *testing.T) {
	g := buildGraph(t, map[string][]core.InteractionEvent{
		"u1": {{ProductID: "p0", Kind: core.KindLike}},
	})
	catalog := &testCatalog{products: []core.Product{
		{ID: "p0", Category: "electronics", Price: 100, SoldCount: 100},
		{ID: "a", Category: "electronics", Price: 100, SoldCount: 400},
		{ID: "b", Category: "electronics", Price: 100, SoldCount: 300},
		{ID: "c", Category: "electronics", Price: 100, SoldCount: 200},
		{ID: "d", Category: "electronics", Price: 100, SoldCount: 100},
	}}

	d := &Discovery{
		Content: &Content{Graph: g, Catalog: catalog},
		Hot:     &Hot{Catalog: catalog},
	}
	rctx := &core.RecommendContext{UserID: "u1", TopN: 10}

	items, err := d.Recall(context.Background(), rctx, map[string]struct{}{"p0": {}})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}

	// 内容候选已够 3 个，不触发热销兜底
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for i, it := range items {
		if it.Source != core.SourceContent {
			t.Errorf("items[%d].Source = %s, want %s", i, it.Source, core.SourceContent)
		}
	}
}

func TestDiscovery_Recall_HotBackfill(t *testing.T) {
	g := buildGraph(t, map[string][]core.InteractionEvent{
		"u1": {{ProductID: "p0", Kind: core.KindLike}},
	})
	catalog := &testCatalog{products: []core.Product{
		{ID: "p0", Category: "electronics", Price: 100, SoldCount: 100},
		{ID: "a", Category: "electronics", Price: 100, SoldCount: 400},
		{ID: "h1", Category: "home", Price: 100, SoldCount: 900},
		{ID: "h2", Category: "home", Price: 100, SoldCount: 800},
	}}

	d := &Discovery{
		Content: &Content{Graph: g, Catalog: catalog},
		Hot:     &Hot{Catalog: catalog},
	}
	rctx := &core.RecommendContext{UserID: "u1", TopN: 10}

	items, err := d.Recall(context.Background(), rctx, map[string]struct{}{"p0": {}})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}

	// 内容只有 1 个候选（a），热销补足到 3，内容在前且不重复
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if items[0].ID != "a" || items[0].Source != core.SourceContent {
		t.Errorf("items[0] = %s/%s, want a/%s", items[0].ID, items[0].Source, core.SourceContent)
	}
	seen := map[string]bool{}
	for _, it := range items {
		if seen[it.ID] {
			t.Errorf("duplicate product %s in discovery output", it.ID)
		}
		seen[it.ID] = true
	}
	if items[1].Source != core.SourcePopular || items[2].Source != core.SourcePopular {
		t.Errorf("backfill items should come from the hot source")
	}
}

func TestDiscovery_Recall_NothingAvailable(t *testing.T) {
	g := buildGraph(t, map[string][]core.InteractionEvent{})
	catalog := &testCatalog{}

	d := &Discovery{
		Content: &Content{Graph: g, Catalog: catalog},
		Hot:     &Hot{Catalog: catalog},
	}
	rctx := &core.RecommendContext{UserID: "ghost", TopN: 10}

	items, err := d.Recall(context.Background(), rctx, nil)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items, want 0", len(items))
	}
}
