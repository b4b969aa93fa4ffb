package store

import (
	"context"
	"testing"

	"github.com/rushteam/shoprec/core"
)

func newTestCatalog(t *testing.T) (*CatalogStore, func()) {
	t.Helper()
	ms := NewMemoryStore()
	return NewCatalogStore(ms), func() { ms.Close() }
}

func TestCatalogStore_PutAndFind(t *testing.T) {
	c, cleanup := newTestCatalog(t)
	defer cleanup()
	ctx := context.Background()

	p := core.Product{ID: "p1", Name: "键盘", Category: "electronics", Price: 100, SoldCount: 10}
	if err := c.Put(ctx, p); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := c.FindByID(ctx, "p1")
	if err != nil || !ok {
		t.Fatalf("FindByID(p1) = (_, %v, %v), want found", ok, err)
	}
	if got != p {
		t.Errorf("FindByID(p1) = %+v, want %+v", got, p)
	}

	// 缺失商品不是错误
	_, ok, err = c.FindByID(ctx, "missing")
	if err != nil || ok {
		t.Errorf("FindByID(missing) = (_, %v, %v), want (false, nil)", ok, err)
	}

	if err := c.Put(ctx, core.Product{}); err == nil {
		t.Error("empty product ID should be rejected")
	}
}

func TestCatalogStore_All(t *testing.T) {
	c, cleanup := newTestCatalog(t)
	defer cleanup()
	ctx := context.Background()

	c.Put(ctx, core.Product{ID: "b", SoldCount: 1})
	c.Put(ctx, core.Product{ID: "a", SoldCount: 2})
	c.Put(ctx, core.Product{ID: "c", SoldCount: 3})

	all, err := c.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	// ID 升序
	want := []string{"a", "b", "c"}
	if len(all) != len(want) {
		t.Fatalf("got %d products, want %d", len(all), len(want))
	}
	for i, p := range all {
		if p.ID != want[i] {
			t.Errorf("all[%d].ID = %s, want %s", i, p.ID, want[i])
		}
	}
}

func TestCatalogStore_TopSelling(t *testing.T) {
	c, cleanup := newTestCatalog(t)
	defer cleanup()
	ctx := context.Background()

	c.Put(ctx, core.Product{ID: "p1", SoldCount: 100})
	c.Put(ctx, core.Product{ID: "p3", SoldCount: 300})
	c.Put(ctx, core.Product{ID: "p2", SoldCount: 300})
	c.Put(ctx, core.Product{ID: "p4", SoldCount: 50})

	got, err := c.TopSelling(ctx, 3)
	if err != nil {
		t.Fatalf("TopSelling() error = %v", err)
	}
	// 销量降序，同销量按 ID 升序
	want := []string{"p2", "p3", "p1"}
	if len(got) != len(want) {
		t.Fatalf("got %d products, want %d", len(got), len(want))
	}
	for i, p := range got {
		if p.ID != want[i] {
			t.Errorf("top[%d].ID = %s, want %s", i, p.ID, want[i])
		}
	}

	if empty, err := c.TopSelling(ctx, 0); err != nil || empty != nil {
		t.Errorf("TopSelling(0) = (%v, %v), want (nil, nil)", empty, err)
	}
}

func TestCatalogStore_PutUpdatesSoldRank(t *testing.T) {
	c, cleanup := newTestCatalog(t)
	defer cleanup()
	ctx := context.Background()

	c.Put(ctx, core.Product{ID: "p1", SoldCount: 10})
	c.Put(ctx, core.Product{ID: "p2", SoldCount: 20})
	// p1 销量反超
	c.Put(ctx, core.Product{ID: "p1", SoldCount: 30})

	got, err := c.TopSelling(ctx, 2)
	if err != nil {
		t.Fatalf("TopSelling() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "p1" {
		t.Errorf("TopSelling after update = %v, want p1 first", got)
	}
}
