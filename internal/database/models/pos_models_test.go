package models

import "testing"

func TestCartLinesScan(t *testing.T) {
	t.Parallel()

	t.Run("null becomes empty cart", func(t *testing.T) {
		var cart CartLines
		if err := cart.Scan(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cart) != 0 {
			t.Errorf("expected empty cart, got %d lines", len(cart))
		}
	})

	t.Run("jsonb bytes", func(t *testing.T) {
		var cart CartLines
		if err := cart.Scan([]byte(`[{"name":"Latte","qty":2,"price":3.5}]`)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cart) != 1 || cart[0].Name != "Latte" || cart[0].Qty != 2 {
			t.Errorf("unexpected cart: %+v", cart)
		}
	})

	t.Run("json string", func(t *testing.T) {
		var cart CartLines
		if err := cart.Scan(`[{"name":"Latte","qty":1,"price":3.5}]`); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cart) != 1 {
			t.Errorf("expected 1 line, got %d", len(cart))
		}
	})

	t.Run("unsupported type", func(t *testing.T) {
		var cart CartLines
		if err := cart.Scan(42); err == nil {
			t.Error("expected an error for an unsupported source type")
		}
	})
}

func TestCartLinesValue(t *testing.T) {
	t.Parallel()

	var nilCart CartLines
	v, err := nilCart.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "[]" {
		t.Errorf("expected a nil cart to store as [], got %v", v)
	}
}
