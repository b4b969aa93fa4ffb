package recall

import (
	"context"
	"math"
	"sort"
	"testing"

	"github.com/rushteam/shoprec/core"
)

// testCatalog 是测试用的内存目录。
type testCatalog struct {
	products []core.Product
}

func (c *testCatalog) All(_ context.Context) ([]core.Product, error) {
	return c.products, nil
}

func (c *testCatalog) FindByID(_ context.Context, id string) (core.Product, bool, error) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true, nil
		}
	}
	return core.Product{}, false, nil
}

func (c *testCatalog) TopSelling(_ context.Context, n int) ([]core.Product, error) {
	sorted := make([]core.Product, len(c.products))
	copy(sorted, c.products)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].SoldCount != sorted[j].SoldCount {
			return sorted[i].SoldCount > sorted[j].SoldCount
		}
		return sorted[i].ID < sorted[j].ID
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted, nil
}

type staticPrefs struct {
	affinities map[string]float64
}

func (p *staticPrefs) CategoryAffinity(_ context.Context, _ string) (map[string]float64, error) {
	return p.affinities, nil
}

func TestContent_Recall_ScoreFormula(t *testing.T) {
	g := buildGraph(t, map[string][]core.InteractionEvent{
		"u1": {{ProductID: "p1", Kind: core.KindLike}},
	})
	catalog := &testCatalog{products: []core.Product{
		{ID: "p1", Category: "electronics", Price: 100, SoldCount: 250},
		{ID: "p2", Category: "electronics", Price: 100, SoldCount: 250},
		{ID: "p3", Category: "books", Price: 100, SoldCount: 9999},
	}}

	c := &Content{Graph: g, Catalog: catalog}
	rctx := &core.RecommendContext{UserID: "u1", TopN: 10}

	items, err := c.Recall(context.Background(), rctx, map[string]struct{}{"p1": {}})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}

	// 亲和度只覆盖 electronics（like = 0.575），books 没有亲和度不参与
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].ID != "p2" {
		t.Errorf("items[0].ID = %s, want p2", items[0].ID)
	}

	// 0.575*0.6 + min(1, 250/500)*0.3 + (1 - 0)*0.1
	want := 0.575*0.6 + 0.5*0.3 + 1.0*0.1
	if math.Abs(items[0].Score-want) > eps {
		t.Errorf("items[0].Score = %v, want %v", items[0].Score, want)
	}
	if items[0].Source != core.SourceContent {
		t.Errorf("items[0].Source = %s, want %s", items[0].Source, core.SourceContent)
	}
}

func TestContent_Recall_PrefsOverrideGraph(t *testing.T) {
	g := buildGraph(t, map[string][]core.InteractionEvent{
		"u1": {{ProductID: "p1", Kind: core.KindLike}},
	})
	catalog := &testCatalog{products: []core.Product{
		{ID: "p1", Category: "electronics", Price: 100, SoldCount: 100},
		{ID: "p2", Category: "books", Price: 100, SoldCount: 100},
	}}

	c := &Content{
		Graph:   g,
		Catalog: catalog,
		Prefs:   &staticPrefs{affinities: map[string]float64{"books": 0.9}},
	}
	rctx := &core.RecommendContext{UserID: "u1", TopN: 10}

	items, err := c.Recall(context.Background(), rctx, nil)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != "p2" {
		t.Fatalf("external prefs should drive category choice, got %v items", len(items))
	}
}

func TestContent_Recall_PerCategoryCap(t *testing.T) {
	g := buildGraph(t, map[string][]core.InteractionEvent{
		"u1": {{ProductID: "p0", Kind: core.KindLike}},
	})
	products := []core.Product{{ID: "p0", Category: "electronics", Price: 100, SoldCount: 100}}
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		products = append(products, core.Product{ID: id, Category: "electronics", Price: 100, SoldCount: 100})
	}
	catalog := &testCatalog{products: products}

	c := &Content{Graph: g, Catalog: catalog}
	rctx := &core.RecommendContext{UserID: "u1", TopN: 10}

	items, err := c.Recall(context.Background(), rctx, map[string]struct{}{"p0": {}})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	// 单类目最多贡献 5 个候选
	if len(items) != 5 {
		t.Fatalf("got %d items, want 5", len(items))
	}
}

func TestContent_Recall_NoAffinities(t *testing.T) {
	g := buildGraph(t, map[string][]core.InteractionEvent{})
	catalog := &testCatalog{products: []core.Product{
		{ID: "p1", Category: "electronics", Price: 100, SoldCount: 100},
	}}

	c := &Content{Graph: g, Catalog: catalog}
	rctx := &core.RecommendContext{UserID: "ghost", TopN: 10}

	items, err := c.Recall(context.Background(), rctx, nil)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items for user without history, want 0", len(items))
	}
}

func TestContent_UserAvgPrice(t *testing.T) {
	g := buildGraph(t, map[string][]core.InteractionEvent{
		"u1": {
			{ProductID: "p1", Kind: core.KindLike},
			{ProductID: "p2", Kind: core.KindView},
		},
	})
	catalog := &testCatalog{products: []core.Product{
		{ID: "p1", Category: "electronics", Price: 100, SoldCount: 100},
		{ID: "p2", Category: "electronics", Price: 300, SoldCount: 100},
	}}

	c := &Content{Graph: g, Catalog: catalog}

	if got := c.UserAvgPrice(context.Background(), "u1"); math.Abs(got-200) > eps {
		t.Errorf("UserAvgPrice(u1) = %v, want 200", got)
	}
	// 没有历史的用户取兜底均价
	if got := c.UserAvgPrice(context.Background(), "ghost"); got != DefaultAvgPrice {
		t.Errorf("UserAvgPrice(ghost) = %v, want %v", got, DefaultAvgPrice)
	}
}
