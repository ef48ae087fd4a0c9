package cart

import (
	"testing"
	"time"

	"github.com/your-org/storefront-gateway/internal/storefront"
)

func TestBuildView_LineRendering(t *testing.T) {
	line := settledLine("gid://shopify/CartLine/1", "gid://shopify/ProductVariant/11", 2)
	sessionCart := &SessionCart{
		SessionID:   "test-session",
		CheckoutURL: "https://shop.example.com/cart/c/abc",
		Lines:       []Line{line},
		UpdatedAt:   time.Now().UTC(),
	}

	view := BuildView(sessionCart)

	if len(view.Lines) != 1 {
		t.Fatalf("expected 1 line view, got %d", len(view.Lines))
	}
	lineView := view.Lines[0]

	if lineView.ProductTitle != "Winter Jacket" {
		t.Errorf("product title = %q", lineView.ProductTitle)
	}
	if lineView.ProductURL != "/products/winter-jacket?Color=Navy&Size=M" {
		t.Errorf("product url = %q", lineView.ProductURL)
	}
	if lineView.UnitPrice != "€129.00" {
		t.Errorf("unit price = %q, want €129.00", lineView.UnitPrice)
	}
	if lineView.TotalPrice != "€258.00" {
		t.Errorf("total price = %q, want €258.00", lineView.TotalPrice)
	}
	if lineView.Controls == nil {
		t.Fatal("expected a control cluster")
	}
	if lineView.Controls.Decrease.Candidate != 1 || lineView.Controls.Decrease.Disabled {
		t.Errorf("decrease = %+v, want enabled candidate 1", lineView.Controls.Decrease)
	}

	if view.TotalQuantity != 2 {
		t.Errorf("total quantity = %d, want 2", view.TotalQuantity)
	}
	if view.Subtotal != "€258.00" {
		t.Errorf("subtotal = %q, want €258.00", view.Subtotal)
	}
	if view.CheckoutURL != "https://shop.example.com/cart/c/abc" {
		t.Errorf("checkout url = %q", view.CheckoutURL)
	}
}

func TestBuildView_TitleOptionNeverRendered(t *testing.T) {
	line := settledLine("gid://shopify/CartLine/1", "gid://shopify/ProductVariant/11", 1)
	line.Merchandise.SelectedOptions = []storefront.SelectedOption{
		{Name: "Title", Value: "Default Title"},
	}
	view := BuildView(&SessionCart{SessionID: "test-session", Lines: []Line{line}})

	if len(view.Lines[0].Options) != 0 {
		t.Errorf("Title option should be suppressed, got %+v", view.Lines[0].Options)
	}
	// The deep link still carries the raw selection.
	if view.Lines[0].ProductURL != "/products/winter-jacket?Title=Default+Title" {
		t.Errorf("product url = %q", view.Lines[0].ProductURL)
	}
}

func TestBuildView_OptionsRenderedExactlyOnce(t *testing.T) {
	line := settledLine("gid://shopify/CartLine/1", "gid://shopify/ProductVariant/11", 1)
	line.Merchandise.SelectedOptions = []storefront.SelectedOption{
		{Name: "Title", Value: "Default Title"},
		{Name: "Color", Value: "Navy"},
		{Name: "Engraving", Value: ""},
		{Name: "Size", Value: "M"},
	}
	view := BuildView(&SessionCart{SessionID: "test-session", Lines: []Line{line}})

	options := view.Lines[0].Options
	if len(options) != 2 {
		t.Fatalf("expected 2 rendered options, got %+v", options)
	}
	if options[0].Name != "Color" || options[1].Name != "Size" {
		t.Errorf("rendered options = %+v", options)
	}
}

func TestBuildView_OptimisticLineWithMinimalSnapshot(t *testing.T) {
	sessionCart := &SessionCart{
		SessionID: "test-session",
		Lines: []Line{{
			ID:          "ln_123",
			Quantity:    1,
			Merchandise: storefront.Variant{ID: "gid://shopify/ProductVariant/11"},
			Optimistic:  true,
			AddedAt:     time.Now().UTC(),
		}},
	}

	view := BuildView(sessionCart)
	lineView := view.Lines[0]

	if lineView.ProductURL != "" {
		t.Errorf("line without a handle should have no product url, got %q", lineView.ProductURL)
	}
	if !lineView.Optimistic {
		t.Error("line view should carry the optimistic flag")
	}
	if lineView.Controls == nil {
		t.Fatal("expected a control cluster")
	}
	if !lineView.Controls.Remove.Disabled {
		t.Error("remove should be disabled while optimistic")
	}
}

func TestBuildView_SubtotalAcrossLines(t *testing.T) {
	lineA := settledLine("gid://shopify/CartLine/1", "gid://shopify/ProductVariant/11", 2)
	lineB := settledLine("gid://shopify/CartLine/2", "gid://shopify/ProductVariant/12", 1)
	lineB.Merchandise.Price = storefront.Money{Amount: "24.50", CurrencyCode: "EUR"}

	view := BuildView(&SessionCart{SessionID: "test-session", Lines: []Line{lineA, lineB}})

	if view.Subtotal != "€282.50" {
		t.Errorf("subtotal = %q, want €282.50", view.Subtotal)
	}
	if view.TotalQuantity != 3 {
		t.Errorf("total quantity = %d, want 3", view.TotalQuantity)
	}
}

func TestBuildView_EmptyCart(t *testing.T) {
	view := BuildView(&SessionCart{SessionID: "test-session", Lines: []Line{}})

	if len(view.Lines) != 0 {
		t.Errorf("expected no lines, got %d", len(view.Lines))
	}
	if view.Subtotal != "" {
		t.Errorf("empty cart subtotal = %q, want empty", view.Subtotal)
	}
}
