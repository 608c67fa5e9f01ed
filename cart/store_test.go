package cart

import (
	"context"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	c := New()
	c.Add(LineItem{ProductID: 1, Name: "Apple", UnitPrice: 2.00, Unit: "kg"}, 3)
	c.Add(LineItem{ProductID: 2, Name: "Bread", UnitPrice: 4.50}, 1)

	if err := store.Save(ctx, "user-7", c); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load(ctx, "user-7")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if len(loaded.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(loaded.Items))
	}
	if loaded.Subtotal() != 10.50 {
		t.Fatalf("expected subtotal 10.50, got %v", loaded.Subtotal())
	}
	if loaded.Items[0].Unit != "kg" {
		t.Fatalf("unit label lost in snapshot: %+v", loaded.Items[0])
	}
}

func TestMemoryStoreUnknownOwnerYieldsEmptyCart(t *testing.T) {
	store := NewMemoryStore()

	c, err := store.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !c.IsEmpty() {
		t.Fatalf("expected empty cart, got %d items", len(c.Items))
	}
}

func TestMemoryStoreLastWriterWins(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := New()
	first.Add(LineItem{ProductID: 1, Name: "Apple", UnitPrice: 2.00}, 1)
	store.Save(ctx, "user-7", first)

	second := New()
	second.Add(LineItem{ProductID: 2, Name: "Bread", UnitPrice: 4.50}, 2)
	store.Save(ctx, "user-7", second)

	loaded, _ := store.Load(ctx, "user-7")
	if len(loaded.Items) != 1 || loaded.Items[0].ProductID != 2 {
		t.Fatalf("expected second snapshot to replace the first, got %+v", loaded.Items)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	c := New()
	c.Add(LineItem{ProductID: 1, Name: "Apple", UnitPrice: 2.00}, 1)
	store.Save(ctx, "user-7", c)

	if err := store.Delete(ctx, "user-7"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	loaded, _ := store.Load(ctx, "user-7")
	if !loaded.IsEmpty() {
		t.Fatal("expected empty cart after delete")
	}
}
