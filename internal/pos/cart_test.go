package pos

import (
	"errors"
	"math"
	"testing"

	"qahwaan-system/internal/database/models"
)

func TestValidateCart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		lines   []models.CartLine
		wantErr bool
	}{
		{
			name:  "valid single line",
			lines: []models.CartLine{{Name: "Latte", Qty: 2, Price: 3.50}},
		},
		{
			name: "valid multiple lines",
			lines: []models.CartLine{
				{Name: "Latte", Qty: 2, Price: 3.50},
				{Name: "Croissant", Qty: 1, Price: 2.20},
			},
		},
		{
			name:  "fractional quantity allowed",
			lines: []models.CartLine{{Name: "Beans (kg)", Qty: 0.5, Price: 12}},
		},
		{
			name:    "empty cart",
			lines:   nil,
			wantErr: true,
		},
		{
			name:    "empty name",
			lines:   []models.CartLine{{Name: "   ", Qty: 1, Price: 1}},
			wantErr: true,
		},
		{
			name:    "zero quantity",
			lines:   []models.CartLine{{Name: "Latte", Qty: 0, Price: 3.50}},
			wantErr: true,
		},
		{
			name:    "negative quantity",
			lines:   []models.CartLine{{Name: "Latte", Qty: -1, Price: 3.50}},
			wantErr: true,
		},
		{
			name:    "NaN quantity",
			lines:   []models.CartLine{{Name: "Latte", Qty: math.NaN(), Price: 3.50}},
			wantErr: true,
		},
		{
			name:    "infinite price",
			lines:   []models.CartLine{{Name: "Latte", Qty: 1, Price: math.Inf(1)}},
			wantErr: true,
		},
		{
			name:    "negative price",
			lines:   []models.CartLine{{Name: "Latte", Qty: 1, Price: -0.01}},
			wantErr: true,
		},
		{
			name:  "zero price allowed",
			lines: []models.CartLine{{Name: "Tap water", Qty: 1, Price: 0}},
		},
		{
			name: "one bad line rejects the whole cart",
			lines: []models.CartLine{
				{Name: "Latte", Qty: 1, Price: 3.50},
				{Name: "", Qty: 1, Price: 1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart, err := ValidateCart(tt.lines)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(cart) != len(tt.lines) {
				t.Errorf("expected %d lines, got %d", len(tt.lines), len(cart))
			}
		})
	}
}

func TestValidateCartNormalizes(t *testing.T) {
	t.Parallel()

	cart, err := ValidateCart([]models.CartLine{{Name: "  Flat White ", Qty: 1, Price: 3.456}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart[0].Name != "Flat White" {
		t.Errorf("expected trimmed name, got %q", cart[0].Name)
	}
	if cart[0].Price != 3.46 {
		t.Errorf("expected price rounded to 3.46, got %v", cart[0].Price)
	}
}

func TestValidateCartDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	lines := []models.CartLine{{Name: " Latte ", Qty: 1, Price: 3.999}}
	if _, err := ValidateCart(lines); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines[0].Name != " Latte " || lines[0].Price != 3.999 {
		t.Error("input slice was mutated")
	}
}

func TestValidatePayment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		method   string
		staff    string
		received float64
		wantErr  bool
	}{
		{name: "cash", method: "Cash", staff: "Alex", received: 10},
		{name: "card", method: "Card", staff: "Alex", received: 0},
		{name: "online", method: "Online", staff: "Alex", received: 0},
		{name: "unknown method", method: "Crypto", staff: "Alex", received: 10, wantErr: true},
		{name: "lowercase method rejected", method: "cash", staff: "Alex", received: 10, wantErr: true},
		{name: "empty staff", method: "Cash", staff: "  ", received: 10, wantErr: true},
		{name: "negative received", method: "Cash", staff: "Alex", received: -1, wantErr: true},
		{name: "NaN received", method: "Cash", staff: "Alex", received: math.NaN(), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayment(tt.method, tt.staff, tt.received)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCartTotals(t *testing.T) {
	t.Parallel()

	cart := models.CartLines{
		{Name: "Latte", Qty: 2, Price: 3.50},
		{Name: "Espresso", Qty: 3, Price: 0.1},
	}

	subtotal, count := CartTotals(cart)
	if subtotal != 7.30 {
		t.Errorf("expected subtotal 7.30, got %v", subtotal)
	}
	if count != 5 {
		t.Errorf("expected item count 5, got %v", count)
	}
}
