package utils

import (
	"strings"
	"testing"
)

func TestNewOrderNumber(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		n := NewOrderNumber("ORD")
		if !strings.HasPrefix(n, "ORD-") {
			t.Fatalf("expected ORD- prefix, got %q", n)
		}
		if len(n) != len("ORD-")+12 {
			t.Fatalf("unexpected reference length: %q", n)
		}
		if seen[n] {
			t.Fatalf("duplicate order number %q", n)
		}
		seen[n] = true
	}
}
