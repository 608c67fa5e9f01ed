package cart

import "testing"

func TestAddMergesSameProduct(t *testing.T) {
	c := New()
	c.Add(LineItem{ProductID: 1, Name: "Apple", UnitPrice: 2.00}, 3)
	c.Add(LineItem{ProductID: 1, Name: "Apple", UnitPrice: 2.00}, 2)

	if len(c.Items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", c.Items[0].Quantity)
	}
}

func TestAddDefaultsToOne(t *testing.T) {
	c := New()
	c.Add(LineItem{ProductID: 1, Name: "Apple", UnitPrice: 2.00}, 0)

	if c.ItemCount() != 1 {
		t.Fatalf("expected count 1, got %d", c.ItemCount())
	}
}

func TestAddPreservesOrder(t *testing.T) {
	c := New()
	c.Add(LineItem{ProductID: 3, Name: "Milk", UnitPrice: 1.20}, 1)
	c.Add(LineItem{ProductID: 1, Name: "Apple", UnitPrice: 2.00}, 1)
	c.Add(LineItem{ProductID: 3, Name: "Milk", UnitPrice: 1.20}, 1)
	c.Add(LineItem{ProductID: 2, Name: "Bread", UnitPrice: 4.50}, 1)

	want := []int{3, 1, 2}
	for i, id := range want {
		if c.Items[i].ProductID != id {
			t.Fatalf("expected product %d at position %d, got %d", id, i, c.Items[i].ProductID)
		}
	}
}

func TestSetQuantity(t *testing.T) {
	t.Run("updates existing line", func(t *testing.T) {
		c := New()
		c.Add(LineItem{ProductID: 1, Name: "Apple", UnitPrice: 2.00}, 3)
		c.SetQuantity(1, 7)

		if c.Items[0].Quantity != 7 {
			t.Fatalf("expected quantity 7, got %d", c.Items[0].Quantity)
		}
	})

	t.Run("zero removes the line", func(t *testing.T) {
		c := New()
		c.Add(LineItem{ProductID: 1, Name: "Apple", UnitPrice: 2.00}, 3)
		c.SetQuantity(1, 0)

		if !c.IsEmpty() {
			t.Fatalf("expected empty cart, got %d items", len(c.Items))
		}
	})

	t.Run("negative removes the line", func(t *testing.T) {
		c := New()
		c.Add(LineItem{ProductID: 1, Name: "Apple", UnitPrice: 2.00}, 3)
		c.SetQuantity(1, -2)

		if !c.IsEmpty() {
			t.Fatalf("expected empty cart, got %d items", len(c.Items))
		}
	})

	t.Run("unknown product is a no-op", func(t *testing.T) {
		c := New()
		c.Add(LineItem{ProductID: 1, Name: "Apple", UnitPrice: 2.00}, 3)
		c.SetQuantity(99, 5)

		if len(c.Items) != 1 || c.Items[0].Quantity != 3 {
			t.Fatalf("cart changed unexpectedly: %+v", c.Items)
		}
	})
}

func TestRemove(t *testing.T) {
	c := New()
	c.Add(LineItem{ProductID: 1, Name: "Apple", UnitPrice: 2.00}, 3)
	c.Add(LineItem{ProductID: 2, Name: "Bread", UnitPrice: 4.50}, 1)
	c.Remove(1)

	if len(c.Items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(c.Items))
	}
	if c.Items[0].ProductID != 2 {
		t.Fatalf("wrong item removed, remaining product %d", c.Items[0].ProductID)
	}
}

func TestSubtotalAndCount(t *testing.T) {
	c := New()
	c.Add(LineItem{ProductID: 1, Name: "Apple", UnitPrice: 2.00}, 3)
	c.Add(LineItem{ProductID: 2, Name: "Bread", UnitPrice: 4.50}, 1)

	if got := c.Subtotal(); got != 10.50 {
		t.Fatalf("expected subtotal 10.50, got %v", got)
	}
	if got := c.ItemCount(); got != 4 {
		t.Fatalf("expected count 4, got %d", got)
	}
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(LineItem{ProductID: 1, Name: "Apple", UnitPrice: 2.00}, 3)
	c.Clear()

	if !c.IsEmpty() {
		t.Fatal("expected empty cart after clear")
	}
	if c.ItemCount() != 0 {
		t.Fatalf("expected count 0, got %d", c.ItemCount())
	}
	if c.Subtotal() != 0 {
		t.Fatalf("expected subtotal 0, got %v", c.Subtotal())
	}
}
