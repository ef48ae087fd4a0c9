// internal/domain/productpage/view_test.go
package productpage

import (
	"context"
	"testing"

	"github.com/your-org/storefront-gateway/internal/storefront"
)

func pickerOption(t *testing.T, picker []PickerOption, name string) PickerOption {
	t.Helper()
	for _, option := range picker {
		if option.Name == name {
			return option
		}
	}
	t.Fatalf("picker has no option %q", name)
	return PickerOption{}
}

func pickerValue(t *testing.T, option PickerOption, name string) PickerValue {
	t.Helper()
	for _, value := range option.Values {
		if value.Name == name {
			return value
		}
	}
	t.Fatalf("option %q has no value %q", option.Name, name)
	return PickerValue{}
}

func TestBuildPickerComputesSwitchTargets(t *testing.T) {
	product := productFixture()
	current := product.SelectedOrFirstAvailableVariant.SelectedOptions

	picker := buildPicker(product, current)
	if len(picker) != 2 {
		t.Fatalf("picker has %d options, want 2", len(picker))
	}

	color := pickerOption(t, picker, "Color")

	navy := pickerValue(t, color, "Navy")
	if !navy.Selected {
		t.Error("Navy not marked selected")
	}
	if !navy.Exists || !navy.Available {
		t.Errorf("Navy exists=%v available=%v, want true/true", navy.Exists, navy.Available)
	}
	if navy.VariantID != "gid://shopify/ProductVariant/1" {
		t.Errorf("Navy variant = %q", navy.VariantID)
	}
	if navy.SearchParams != "Color=Navy&Size=M" {
		t.Errorf("Navy search params = %q", navy.SearchParams)
	}

	// Switching to Black keeps Size=M; that combination exists but is out
	// of stock.
	black := pickerValue(t, color, "Black")
	if black.Selected {
		t.Error("Black marked selected")
	}
	if !black.Exists {
		t.Error("Black/M combination should exist")
	}
	if black.Available {
		t.Error("Black/M is out of stock but marked available")
	}
	if black.VariantID != "gid://shopify/ProductVariant/3" {
		t.Errorf("Black variant = %q", black.VariantID)
	}
	if black.SearchParams != "Color=Black&Size=M" {
		t.Errorf("Black search params = %q", black.SearchParams)
	}

	size := pickerOption(t, picker, "Size")
	large := pickerValue(t, size, "L")
	if !large.Exists || !large.Available {
		t.Errorf("Navy/L exists=%v available=%v, want true/true", large.Exists, large.Available)
	}
	if large.VariantID != "gid://shopify/ProductVariant/2" {
		t.Errorf("L variant = %q", large.VariantID)
	}
	if large.SearchParams != "Color=Navy&Size=L" {
		t.Errorf("L search params = %q", large.SearchParams)
	}
}

func TestBuildPickerFallsBackToFirstSelectable(t *testing.T) {
	product := productFixture()

	// Drop Black/M from the known graph and point Black's first-selectable
	// hint at Black/L, so switching to Black cannot be matched directly.
	blackL := product.AdjacentVariants[2]
	product.AdjacentVariants = []storefront.Variant{product.AdjacentVariants[0], blackL}
	product.Options[0].OptionValues[1].FirstSelectableVariant = &blackL

	picker := buildPicker(product, product.SelectedOrFirstAvailableVariant.SelectedOptions)
	black := pickerValue(t, pickerOption(t, picker, "Color"), "Black")

	if !black.Exists {
		t.Error("Black should exist via the first-selectable hint")
	}
	if black.VariantID != "gid://shopify/ProductVariant/4" {
		t.Errorf("Black variant = %q, want the hinted Black/L", black.VariantID)
	}
	if black.SearchParams != "Color=Black&Size=L" {
		t.Errorf("Black search params = %q, want the hinted variant's options", black.SearchParams)
	}
}

func TestResolveVariant(t *testing.T) {
	product := productFixture()
	product.SelectedOrFirstAvailableVariant = nil

	tests := []struct {
		name     string
		selected []storefront.SelectedOption
		wantID   string
	}{
		{
			name: "exact match wins even when unavailable",
			selected: []storefront.SelectedOption{
				{Name: "Color", Value: "Black"},
				{Name: "Size", Value: "M"},
			},
			wantID: "gid://shopify/ProductVariant/3",
		},
		{
			name:     "no selection falls back to first available",
			selected: nil,
			wantID:   "gid://shopify/ProductVariant/2",
		},
		{
			name:     "partial selection matches first carrier",
			selected: []storefront.SelectedOption{{Name: "Color", Value: "Black"}},
			wantID:   "gid://shopify/ProductVariant/3",
		},
		{
			name:     "unknown selection falls back to first available",
			selected: []storefront.SelectedOption{{Name: "Color", Value: "Chartreuse"}},
			wantID:   "gid://shopify/ProductVariant/2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			variant := ResolveVariant(product, tt.selected)
			if variant == nil {
				t.Fatal("ResolveVariant() = nil")
			}
			if variant.ID != tt.wantID {
				t.Errorf("ResolveVariant() = %q, want %q", variant.ID, tt.wantID)
			}
		})
	}
}

func TestResolveVariantEmptyGraph(t *testing.T) {
	product := &storefront.Product{ID: "gid://shopify/Product/300", Handle: "gift-card"}
	if variant := ResolveVariant(product, nil); variant != nil {
		t.Errorf("ResolveVariant() on empty graph = %+v, want nil", variant)
	}
}

// A variant's canonical URL must deep-link back to the same variant. The
// platform resolution is withheld so both loads go through the pure
// fallback.
func TestCanonicalURLRoundTrip(t *testing.T) {
	data := pageDataFixture()
	data.Product.SelectedOrFirstAvailableVariant = nil
	loader := NewLoader(&fakeProductAPI{data: data}, pendingRecommender())

	first, err := loader.Load(context.Background(), "winter-jacket", "")
	if err != nil {
		t.Fatalf("first Load() error = %v", err)
	}
	if first.SelectedVariant == nil {
		t.Fatal("first load resolved no variant")
	}

	rawQuery := ""
	if idx := len("/products/winter-jacket?"); len(first.CanonicalURL) > idx {
		rawQuery = first.CanonicalURL[idx:]
	}

	second, err := loader.Load(context.Background(), "winter-jacket", rawQuery)
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if second.SelectedVariant == nil {
		t.Fatal("second load resolved no variant")
	}

	if second.SelectedVariant.ID != first.SelectedVariant.ID {
		t.Errorf("round trip resolved %q, want %q", second.SelectedVariant.ID, first.SelectedVariant.ID)
	}
	if second.CanonicalURL != first.CanonicalURL {
		t.Errorf("round trip URL = %q, want %q", second.CanonicalURL, first.CanonicalURL)
	}
	if !second.OptionsApplied {
		t.Error("second load should see its options applied")
	}
}

func TestVariantDetailCompareAtPrice(t *testing.T) {
	tests := []struct {
		name          string
		compareAt     *storefront.Money
		wantOnSale    bool
		wantCompareAt string
	}{
		{
			name:          "discounted",
			compareAt:     &storefront.Money{Amount: "159.00", CurrencyCode: "EUR"},
			wantOnSale:    true,
			wantCompareAt: "€159.00",
		},
		{
			name:          "compare-at equals price",
			compareAt:     &storefront.Money{Amount: "129.00", CurrencyCode: "EUR"},
			wantOnSale:    false,
			wantCompareAt: "€129.00",
		},
		{
			name:          "no compare-at",
			compareAt:     nil,
			wantOnSale:    false,
			wantCompareAt: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			variant := &storefront.Variant{
				ID:             "gid://shopify/ProductVariant/1",
				Price:          storefront.Money{Amount: "129.00", CurrencyCode: "EUR"},
				CompareAtPrice: tt.compareAt,
			}

			detail := buildVariantDetail(variant)
			if detail.OnSale != tt.wantOnSale {
				t.Errorf("OnSale = %v, want %v", detail.OnSale, tt.wantOnSale)
			}
			if detail.CompareAtPrice != tt.wantCompareAt {
				t.Errorf("CompareAtPrice = %q, want %q", detail.CompareAtPrice, tt.wantCompareAt)
			}
		})
	}
}

func TestBuildPageWithoutVariants(t *testing.T) {
	data := &storefront.ProductPageData{
		Product: &storefront.Product{
			ID:     "gid://shopify/Product/300",
			Title:  "Gift Card",
			Handle: "gift-card",
		},
	}

	page := buildPage(data, nil)

	if page.SelectedVariant != nil {
		t.Errorf("selected variant = %+v, want nil", page.SelectedVariant)
	}
	if page.CanonicalURL != "/products/gift-card" {
		t.Errorf("canonical URL = %q", page.CanonicalURL)
	}
	if len(page.Picker) != 0 {
		t.Errorf("picker has %d options, want 0", len(page.Picker))
	}
	if page.Analytics.VariantID != "" {
		t.Errorf("analytics variant = %q, want empty", page.Analytics.VariantID)
	}
	if page.Analytics.Quantity != 1 {
		t.Errorf("analytics quantity = %d, want 1", page.Analytics.Quantity)
	}
}
