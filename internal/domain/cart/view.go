// internal/domain/cart/view.go
package cart

import (
	"strconv"
	"time"

	"github.com/your-org/storefront-gateway/internal/pkg/money"
	"github.com/your-org/storefront-gateway/internal/pkg/producturl"
	"github.com/your-org/storefront-gateway/internal/storefront"
)

// LineView is the rendered form of one cart line
type LineView struct {
	ID           string                      `json:"id"`
	Image        *storefront.Image           `json:"image,omitempty"`
	ProductTitle string                      `json:"product_title"`
	ProductURL   string                      `json:"product_url,omitempty"`
	Options      []storefront.SelectedOption `json:"options"`
	UnitPrice    string                      `json:"unit_price,omitempty"`
	TotalPrice   string                      `json:"total_price,omitempty"`
	Quantity     int                         `json:"quantity"`
	Optimistic   bool                        `json:"optimistic"`
	Controls     *ControlCluster             `json:"controls,omitempty"`
}

// CartView is the rendered cart payload
type CartView struct {
	SessionID     string     `json:"session_id"`
	CheckoutURL   string     `json:"checkout_url,omitempty"`
	TotalQuantity int        `json:"total_quantity"`
	Subtotal      string     `json:"subtotal,omitempty"`
	Lines         []LineView `json:"lines"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// BuildView renders a session cart with per-line control clusters and
// computed totals
func BuildView(sessionCart *SessionCart) *CartView {
	lines := make([]LineView, 0, len(sessionCart.Lines))
	subtotal := 0.0
	currency := ""

	for i := range sessionCart.Lines {
		line := &sessionCart.Lines[i]
		lines = append(lines, buildLineView(line))

		if amount, err := strconv.ParseFloat(line.Merchandise.Price.Amount, 64); err == nil {
			subtotal += amount * float64(line.Quantity)
			if currency == "" {
				currency = line.Merchandise.Price.CurrencyCode
			}
		}
	}

	view := &CartView{
		SessionID:     sessionCart.SessionID,
		CheckoutURL:   sessionCart.CheckoutURL,
		TotalQuantity: sessionCart.TotalQuantity(),
		Lines:         lines,
		UpdatedAt:     sessionCart.UpdatedAt,
	}
	if currency != "" {
		view.Subtotal = money.Format(strconv.FormatFloat(subtotal, 'f', 2, 64), currency)
	}

	return view
}

// buildLineView renders one line. The product URL carries the line's
// selected options so it deep-links to the exact variant.
func buildLineView(line *Line) LineView {
	merchandise := line.Merchandise

	view := LineView{
		ID:           line.ID,
		Image:        merchandise.Image,
		ProductTitle: merchandise.Product.Title,
		Options:      displayOptions(merchandise),
		UnitPrice:    money.Format(merchandise.Price.Amount, merchandise.Price.CurrencyCode),
		Quantity:     line.Quantity,
		Optimistic:   line.Optimistic,
		Controls:     ControlsFor(line),
	}

	if merchandise.Product.Handle != "" {
		urlOptions := make([]producturl.SelectedOption, 0, len(merchandise.SelectedOptions))
		for _, opt := range merchandise.SelectedOptions {
			urlOptions = append(urlOptions, producturl.SelectedOption{Name: opt.Name, Value: opt.Value})
		}
		view.ProductURL = producturl.WithOptions(merchandise.Product.Handle, urlOptions)
	}

	if amount, err := strconv.ParseFloat(merchandise.Price.Amount, 64); err == nil {
		total := strconv.FormatFloat(amount*float64(line.Quantity), 'f', 2, 64)
		view.TotalPrice = money.Format(total, merchandise.Price.CurrencyCode)
	}

	return view
}

// displayOptions filters the options shown on a line. The placeholder
// option named "Title" never renders; neither do empty values.
func displayOptions(merchandise storefront.Variant) []storefront.SelectedOption {
	options := make([]storefront.SelectedOption, 0, len(merchandise.SelectedOptions))
	for _, opt := range merchandise.SelectedOptions {
		if opt.Name == "Title" || opt.Value == "" {
			continue
		}
		options = append(options, opt)
	}
	return options
}
