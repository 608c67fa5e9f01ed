package cart

import "testing"

func TestDiscountAmount(t *testing.T) {
	t.Run("percentage of subtotal", func(t *testing.T) {
		if got := DiscountAmount(10.50, DiscountPercentage, 10); got != 1.05 {
			t.Fatalf("expected 1.05, got %v", got)
		}
	})

	t.Run("fixed amount", func(t *testing.T) {
		if got := DiscountAmount(50, DiscountFixed, 5); got != 5 {
			t.Fatalf("expected 5, got %v", got)
		}
	})

	t.Run("fixed discount capped at subtotal", func(t *testing.T) {
		if got := DiscountAmount(3.50, DiscountFixed, 10); got != 3.50 {
			t.Fatalf("expected 3.50, got %v", got)
		}
	})

	t.Run("percentage over 100 capped at subtotal", func(t *testing.T) {
		if got := DiscountAmount(20, DiscountPercentage, 150); got != 20 {
			t.Fatalf("expected 20, got %v", got)
		}
	})

	t.Run("zero subtotal yields zero", func(t *testing.T) {
		if got := DiscountAmount(0, DiscountPercentage, 10); got != 0 {
			t.Fatalf("expected 0, got %v", got)
		}
	})

	t.Run("unknown type yields zero", func(t *testing.T) {
		if got := DiscountAmount(100, "bogus", 10); got != 0 {
			t.Fatalf("expected 0, got %v", got)
		}
	})
}

func TestPriceBreakdown(t *testing.T) {
	// Worked example: apples 2.00x3 + bread 4.50x1 = 10.50 subtotal,
	// 10%% promo, 5.00 delivery, no percentage fees.
	q := Price(10.50, 1.05, 5.00, FeeRates{})

	if q.Subtotal != 10.50 {
		t.Fatalf("subtotal: expected 10.50, got %v", q.Subtotal)
	}
	if q.Discount != 1.05 {
		t.Fatalf("discount: expected 1.05, got %v", q.Discount)
	}
	if q.Total != 14.45 {
		t.Fatalf("total: expected 14.45, got %v", q.Total)
	}
}

func TestPriceFees(t *testing.T) {
	// Convenience fee on subtotal+delivery, service fee on top of that.
	q := Price(100, 0, 10, FeeRates{ConveniencePct: 3, ServicePct: 2})

	if q.ConvenienceFee != 3.30 {
		t.Fatalf("convenience fee: expected 3.30, got %v", q.ConvenienceFee)
	}
	if q.ServiceFee != 2.27 {
		t.Fatalf("service fee: expected 2.27, got %v", q.ServiceFee)
	}
	if q.Total != 115.57 {
		t.Fatalf("total: expected 115.57, got %v", q.Total)
	}
}

func TestPriceClampsDiscount(t *testing.T) {
	t.Run("discount above subtotal", func(t *testing.T) {
		q := Price(10, 25, 0, FeeRates{})
		if q.Discount != 10 {
			t.Fatalf("expected discount clamped to 10, got %v", q.Discount)
		}
		if q.Total != 0 {
			t.Fatalf("expected total 0, got %v", q.Total)
		}
	})

	t.Run("negative discount", func(t *testing.T) {
		q := Price(10, -5, 0, FeeRates{})
		if q.Discount != 0 {
			t.Fatalf("expected discount 0, got %v", q.Discount)
		}
		if q.Total != 10 {
			t.Fatalf("expected total 10, got %v", q.Total)
		}
	})
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.0},
		{1.015, 1.01},
		{2.675, 2.67}, // binary float stores 2.675 just below the midpoint
		{14.449999999999999, 14.45},
	}

	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}
