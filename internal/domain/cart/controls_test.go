package cart

import (
	"testing"

	"github.com/your-org/storefront-gateway/internal/storefront"
)

func intPtr(v int) *int {
	return &v
}

func testLine(quantity int, available *int, optimistic bool) *Line {
	return &Line{
		ID:       "gid://shopify/CartLine/1",
		Quantity: quantity,
		Merchandise: storefront.Variant{
			ID:                "gid://shopify/ProductVariant/11",
			QuantityAvailable: available,
		},
		Optimistic: optimistic,
	}
}

func TestControlsFor_DecreaseEnabledAboveOne(t *testing.T) {
	for _, quantity := range []int{2, 3, 5, 100} {
		cluster := ControlsFor(testLine(quantity, nil, false))
		if cluster == nil {
			t.Fatalf("quantity %d: expected a cluster", quantity)
		}
		if cluster.Decrease.Candidate != quantity-1 {
			t.Errorf("quantity %d: decrease candidate = %d, want %d", quantity, cluster.Decrease.Candidate, quantity-1)
		}
		if cluster.Decrease.Disabled {
			t.Errorf("quantity %d: decrease should be enabled", quantity)
		}
	}
}

func TestControlsFor_DecreaseDisabledAtOne(t *testing.T) {
	// Disabled at quantity 1 regardless of the optimistic flag.
	for _, optimistic := range []bool{false, true} {
		cluster := ControlsFor(testLine(1, nil, optimistic))
		if !cluster.Decrease.Disabled {
			t.Errorf("optimistic=%v: decrease should be disabled at quantity 1", optimistic)
		}
		if cluster.Decrease.Candidate != 0 {
			t.Errorf("optimistic=%v: decrease candidate = %d, want 0", optimistic, cluster.Decrease.Candidate)
		}
	}
}

func TestControlsFor_IncreaseBoundedByAvailability(t *testing.T) {
	tests := []struct {
		name         string
		quantity     int
		available    int
		wantDisabled bool
	}{
		{"room to grow", 3, 5, false},
		{"at the edge", 4, 5, false},
		{"would exceed", 5, 5, true},
		{"already beyond", 7, 5, true},
		{"single unit", 1, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cluster := ControlsFor(testLine(tt.quantity, intPtr(tt.available), false))
			if cluster.Increase.Candidate != tt.quantity+1 {
				t.Errorf("increase candidate = %d, want %d", cluster.Increase.Candidate, tt.quantity+1)
			}
			if cluster.Increase.Disabled != tt.wantDisabled {
				t.Errorf("increase disabled = %v, want %v", cluster.Increase.Disabled, tt.wantDisabled)
			}
		})
	}
}

func TestControlsFor_IncreaseUnknownAvailability(t *testing.T) {
	// Unknown availability defers to the optimistic flag.
	cluster := ControlsFor(testLine(2, nil, true))
	if !cluster.Increase.Disabled {
		t.Error("optimistic line with unknown availability: increase should be disabled")
	}

	cluster = ControlsFor(testLine(2, nil, false))
	if cluster.Increase.Disabled {
		t.Error("settled line with unknown availability: increase should be enabled")
	}
}

func TestControlsFor_RemoveFollowsOptimisticFlag(t *testing.T) {
	for _, quantity := range []int{1, 2, 10} {
		if cluster := ControlsFor(testLine(quantity, nil, true)); !cluster.Remove.Disabled {
			t.Errorf("quantity %d: remove should be disabled while optimistic", quantity)
		}
		if cluster := ControlsFor(testLine(quantity, nil, false)); cluster.Remove.Disabled {
			t.Errorf("quantity %d: remove should be enabled when settled", quantity)
		}
	}
}

func TestControlsFor_Scenarios(t *testing.T) {
	t.Run("settled line with room", func(t *testing.T) {
		cluster := ControlsFor(testLine(3, intPtr(5), false))
		if cluster.Decrease.Disabled || cluster.Decrease.Candidate != 2 {
			t.Errorf("decrease = %+v, want enabled candidate 2", cluster.Decrease)
		}
		if cluster.Increase.Disabled || cluster.Increase.Candidate != 4 {
			t.Errorf("increase = %+v, want enabled candidate 4", cluster.Increase)
		}
		if cluster.Remove.Disabled {
			t.Error("remove should be enabled")
		}
	})

	t.Run("last available unit", func(t *testing.T) {
		cluster := ControlsFor(testLine(1, intPtr(1), false))
		if !cluster.Decrease.Disabled {
			t.Error("decrease should be disabled at quantity 1")
		}
		if !cluster.Increase.Disabled {
			t.Error("increase should be disabled when candidate exceeds availability")
		}
		if cluster.Remove.Disabled {
			t.Error("remove should be enabled")
		}
	})

	t.Run("pending mutation", func(t *testing.T) {
		cluster := ControlsFor(testLine(2, nil, true))
		if !cluster.Decrease.Disabled {
			t.Error("decrease should be disabled while optimistic")
		}
		if !cluster.Increase.Disabled {
			t.Error("increase should be disabled while optimistic with unknown availability")
		}
		if !cluster.Remove.Disabled {
			t.Error("remove should be disabled while optimistic")
		}
	})
}

func TestControlsFor_NoQuantity(t *testing.T) {
	if cluster := ControlsFor(nil); cluster != nil {
		t.Error("nil line should yield no cluster")
	}
	if cluster := ControlsFor(testLine(0, nil, false)); cluster != nil {
		t.Error("line without quantity should yield no cluster")
	}
}
