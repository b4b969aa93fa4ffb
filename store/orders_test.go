package store

import (
	"context"
	"testing"
)

func TestOrderLog_RecordAndQuery(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	orders := NewOrderLog(ms)
	ctx := context.Background()

	if err := orders.RecordPurchase(ctx, "u1", "p1"); err != nil {
		t.Fatalf("RecordPurchase() error = %v", err)
	}
	orders.RecordPurchase(ctx, "u1", "p2")
	// 重复购买不产生重复条目
	orders.RecordPurchase(ctx, "u1", "p1")

	got, err := orders.PurchasedProducts(ctx, "u1")
	if err != nil {
		t.Fatalf("PurchasedProducts() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d products, want 2", len(got))
	}
	for _, id := range []string{"p1", "p2"} {
		if _, ok := got[id]; !ok {
			t.Errorf("purchased set missing %s", id)
		}
	}
}

func TestOrderLog_EmptyUser(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	orders := NewOrderLog(ms)
	ctx := context.Background()

	got, err := orders.PurchasedProducts(ctx, "nobody")
	if err != nil {
		t.Fatalf("PurchasedProducts() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d products for user without orders, want 0", len(got))
	}

	if err := orders.RecordPurchase(ctx, "", "p1"); err == nil {
		t.Error("empty user ID should be rejected")
	}
	if err := orders.RecordPurchase(ctx, "u1", ""); err == nil {
		t.Error("empty product ID should be rejected")
	}
}
