package graph

import (
	"math"
	"testing"

	"github.com/rushteam/shoprec/core"
)

func TestBuilder_Build_AccumulatesWeights(t *testing.T) {
	b := NewBuilder(nil)

	g := b.Build(map[string][]core.InteractionEvent{
		"u1": {
			{ProductID: "p1", Kind: core.KindView},
			{ProductID: "p1", Kind: core.KindCart},
		},
	})

	// view 0.375 + cart 0.775 = 1.15
	got := g.Weight("u1", "p1")
	if math.Abs(got-1.15) > eps {
		t.Errorf("Weight(u1, p1) = %v, want 1.15", got)
	}
}

func TestBuilder_Build_Symmetric(t *testing.T) {
	b := NewBuilder(nil)

	g := b.Build(map[string][]core.InteractionEvent{
		"u1": {
			{ProductID: "p1", Kind: core.KindPurchase},
			{ProductID: "p2", Kind: core.KindLike},
		},
		"u2": {
			{ProductID: "p1", Kind: core.KindView},
		},
	})

	for _, user := range g.Users() {
		for product, w := range g.UserProducts(user) {
			back := g.ProductUsers(product)[user]
			if math.Abs(w-back) > eps {
				t.Errorf("edge %s-%s asymmetric: %v vs %v", user, product, w, back)
			}
		}
	}
}

func TestBuilder_Build_OrderIndependent(t *testing.T) {
	b := NewBuilder(nil)

	forward := b.Build(map[string][]core.InteractionEvent{
		"u1": {
			{ProductID: "p1", Kind: core.KindView},
			{ProductID: "p1", Kind: core.KindCart},
			{ProductID: "p2", Kind: core.KindLike},
		},
	})
	reversed := b.Build(map[string][]core.InteractionEvent{
		"u1": {
			{ProductID: "p2", Kind: core.KindLike},
			{ProductID: "p1", Kind: core.KindCart},
			{ProductID: "p1", Kind: core.KindView},
		},
	})

	for _, p := range []string{"p1", "p2"} {
		if math.Abs(forward.Weight("u1", p)-reversed.Weight("u1", p)) > eps {
			t.Errorf("weight of %s depends on event order", p)
		}
	}
}

func TestBuilder_Build_EmptyInput(t *testing.T) {
	g := NewBuilder(nil).Build(nil)

	if g.UserCount() != 0 || g.ProductCount() != 0 {
		t.Errorf("empty input produced %d users / %d products", g.UserCount(), g.ProductCount())
	}
	if g.HasUser("anyone") {
		t.Error("empty graph should not contain users")
	}
}

func TestBuilder_Build_UserWithoutEvents(t *testing.T) {
	g := NewBuilder(nil).Build(map[string][]core.InteractionEvent{
		"u1": {},
	})

	if !g.HasUser("u1") {
		t.Error("user present in snapshot should be in graph even without events")
	}
	if g.ProductCount() != 0 {
		t.Errorf("ProductCount() = %d, want 0", g.ProductCount())
	}
}

func TestBuilder_Build_UnknownKindZeroWeightEdge(t *testing.T) {
	g := NewBuilder(nil).Build(map[string][]core.InteractionEvent{
		"u1": {{ProductID: "p1", Kind: core.InteractionKind("share")}},
	})

	// 未知类型贡献为零，但商品仍计入图
	if g.Weight("u1", "p1") != 0 {
		t.Errorf("Weight(u1, p1) = %v, want 0", g.Weight("u1", "p1"))
	}
	if g.ProductCount() != 1 {
		t.Errorf("ProductCount() = %d, want 1", g.ProductCount())
	}
}

func TestGraph_AccessorsReturnCopies(t *testing.T) {
	g := NewBuilder(nil).Build(map[string][]core.InteractionEvent{
		"u1": {{ProductID: "p1", Kind: core.KindLike}},
	})

	m := g.UserProducts("u1")
	m["p1"] = 42

	if got := g.Weight("u1", "p1"); math.Abs(got-0.575) > eps {
		t.Errorf("mutating UserProducts result leaked into graph: Weight = %v", got)
	}
}

func TestGraph_MissingLookups(t *testing.T) {
	g := NewBuilder(nil).Build(map[string][]core.InteractionEvent{
		"u1": {{ProductID: "p1", Kind: core.KindLike}},
	})

	if g.UserProducts("ghost") != nil {
		t.Error("UserProducts for absent user should be nil")
	}
	if g.ProductUsers("ghost") != nil {
		t.Error("ProductUsers for absent product should be nil")
	}
	if g.Weight("ghost", "p1") != 0 {
		t.Error("Weight for absent user should be 0")
	}
}
