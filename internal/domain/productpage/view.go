// internal/domain/productpage/view.go
package productpage

import (
	"net/url"
	"strconv"

	"github.com/your-org/storefront-gateway/internal/pkg/money"
	"github.com/your-org/storefront-gateway/internal/pkg/producturl"
	"github.com/your-org/storefront-gateway/internal/storefront"
)

// Recommended section states. The section starts pending, settles to
// resolved once the deferred fetch lands, or to unavailable when the fetch
// failed and was degraded.
const (
	RecommendedPending     = "pending"
	RecommendedResolved    = "resolved"
	RecommendedUnavailable = "unavailable"
)

// Page is the render-ready product page payload. Everything a renderer
// needs to paint the page and switch variants without another round trip is
// in here: the full picker graph, the encoded variant bitsets, and the
// analytics payload for the view event.
//
// MirrorParams is set only when the request carried no explicit option
// selection. It is the query string the renderer projects into the address
// bar so reloads land on the resolved variant; parameters unrelated to
// options are carried over untouched.
type Page struct {
	Product         ProductDetail      `json:"product"`
	SelectedVariant *VariantDetail     `json:"selected_variant,omitempty"`
	Picker          []PickerOption     `json:"picker"`
	OptionsApplied  bool               `json:"options_applied"`
	MirrorParams    string             `json:"mirror_params,omitempty"`
	CanonicalURL    string             `json:"canonical_url"`
	ShopDomain      string             `json:"shop_domain,omitempty"`
	Analytics       AnalyticsPayload   `json:"analytics"`
	Recommended     RecommendedSection `json:"recommended"`
}

// ProductDetail is the product-level slice of the page payload.
// DescriptionHTML is trusted markup from the platform and passed through
// unmodified. The encoded bitsets describe which option combinations exist
// and are purchasable; they are opaque here and decoded client-side.
type ProductDetail struct {
	ID                         string             `json:"id"`
	Title                      string             `json:"title"`
	Vendor                     string             `json:"vendor"`
	Handle                     string             `json:"handle"`
	Description                string             `json:"description"`
	DescriptionHTML            string             `json:"description_html"`
	Images                     []storefront.Image `json:"images"`
	EncodedVariantExistence    string             `json:"encoded_variant_existence,omitempty"`
	EncodedVariantAvailability string             `json:"encoded_variant_availability,omitempty"`
	SEO                        storefront.SEO     `json:"seo"`
}

// VariantDetail is the resolved variant ready for display. OnSale is set
// when a compare-at price is present and strictly above the selling price.
type VariantDetail struct {
	ID                string                      `json:"id"`
	Title             string                      `json:"title"`
	AvailableForSale  bool                        `json:"available_for_sale"`
	SKU               string                      `json:"sku,omitempty"`
	Price             string                      `json:"price"`
	CompareAtPrice    string                      `json:"compare_at_price,omitempty"`
	OnSale            bool                        `json:"on_sale"`
	Image             *storefront.Image           `json:"image,omitempty"`
	SelectedOptions   []storefront.SelectedOption `json:"selected_options"`
	QuantityAvailable *int                        `json:"quantity_available,omitempty"`
}

// PickerOption is one product option with its selectable values.
type PickerOption struct {
	Name   string        `json:"name"`
	Values []PickerValue `json:"values"`
}

// PickerValue describes what happens if the shopper picks this value while
// keeping the other current selections: whether such a variant exists,
// whether it is purchasable, which variant it is, and the query string that
// deep-links to it. A renderer can switch selections entirely from this.
type PickerValue struct {
	Name         string             `json:"name"`
	Selected     bool               `json:"selected"`
	Exists       bool               `json:"exists"`
	Available    bool               `json:"available"`
	VariantID    string             `json:"variant_id,omitempty"`
	SearchParams string             `json:"search_params"`
	Swatch       *storefront.Swatch `json:"swatch,omitempty"`
}

// AnalyticsPayload describes the product view event emitted after a
// successful critical load. Quantity is always 1: this is a view, not an
// add-to-cart.
type AnalyticsPayload struct {
	ProductID     string `json:"product_id"`
	ProductTitle  string `json:"product_title"`
	ProductHandle string `json:"product_handle"`
	VariantID     string `json:"variant_id,omitempty"`
	VariantTitle  string `json:"variant_title,omitempty"`
	Price         string `json:"price,omitempty"`
	Currency      string `json:"currency,omitempty"`
	Quantity      int    `json:"quantity"`
}

// RecommendedSection carries the deferred recommendations state.
type RecommendedSection struct {
	Status   string                          `json:"status"`
	Products []storefront.RecommendedProduct `json:"products"`
}

// buildPage assembles the page payload from the critical query result. The
// recommended section defaults to pending; the loader overwrites it when
// the deferred fetch has already settled.
func buildPage(data *storefront.ProductPageData, requested []storefront.SelectedOption) *Page {
	product := data.Product

	variant := product.SelectedOrFirstAvailableVariant
	if variant == nil {
		variant = ResolveVariant(product, requested)
	}

	var current []storefront.SelectedOption
	if variant != nil {
		current = variant.SelectedOptions
	}

	canonicalURL := producturl.Path(product.Handle)
	if len(current) > 0 {
		canonicalURL = producturl.WithOptions(product.Handle, urlOptions(current))
	}

	// Only parameters naming a defined product option count as an explicit
	// selection; a tracking parameter must not suppress URL mirroring.
	requestValues := queryValues(requested)
	explicit := producturl.FromQuery(requestValues, optionNames(product))
	optionsApplied := len(explicit) > 0

	var mirrorParams string
	if !optionsApplied && len(current) > 0 {
		mirrorParams = producturl.Merge(requestValues, urlOptions(current)).Encode()
	}

	return &Page{
		Product: ProductDetail{
			ID:                         product.ID,
			Title:                      product.Title,
			Vendor:                     product.Vendor,
			Handle:                     product.Handle,
			Description:                product.Description,
			DescriptionHTML:            product.DescriptionHTML,
			Images:                     product.Images.Nodes,
			EncodedVariantExistence:    product.EncodedVariantExistence,
			EncodedVariantAvailability: product.EncodedVariantAvailability,
			SEO:                        product.SEO,
		},
		SelectedVariant: buildVariantDetail(variant),
		Picker:          buildPicker(product, current),
		OptionsApplied:  optionsApplied,
		MirrorParams:    mirrorParams,
		CanonicalURL:    canonicalURL,
		ShopDomain:      data.Shop.PrimaryDomain.URL,
		Analytics:       buildAnalytics(product, variant),
		Recommended:     RecommendedSection{Status: RecommendedPending},
	}
}

func buildVariantDetail(variant *storefront.Variant) *VariantDetail {
	if variant == nil {
		return nil
	}

	detail := &VariantDetail{
		ID:                variant.ID,
		Title:             variant.Title,
		AvailableForSale:  variant.AvailableForSale,
		SKU:               variant.SKU,
		Price:             money.Format(variant.Price.Amount, variant.Price.CurrencyCode),
		Image:             variant.Image,
		SelectedOptions:   variant.SelectedOptions,
		QuantityAvailable: variant.QuantityAvailable,
	}

	if compareAt := variant.CompareAtPrice; compareAt != nil && compareAt.Amount != "" {
		detail.CompareAtPrice = money.Format(compareAt.Amount, compareAt.CurrencyCode)
		detail.OnSale = amountGreater(compareAt.Amount, variant.Price.Amount)
	}

	return detail
}

// buildPicker computes, for every option value, the variant the shopper
// would land on by picking that value while keeping the rest of the current
// selection. Matching runs against the variant graph the critical query
// already returned, so selection switches need no further round trips. When
// no known variant matches a combination, the platform's first-selectable
// hint for that value is used instead.
func buildPicker(product *storefront.Product, current []storefront.SelectedOption) []PickerOption {
	variants := knownVariants(product)

	picker := make([]PickerOption, 0, len(product.Options))
	for _, option := range product.Options {
		values := make([]PickerValue, 0, len(option.OptionValues))
		for _, optionValue := range option.OptionValues {
			candidate := overrideOption(current, option.Name, optionValue.Name)

			value := PickerValue{
				Name:         optionValue.Name,
				Selected:     optionValue.Name == valueFor(current, option.Name),
				SearchParams: producturl.Query(urlOptions(candidate)),
				Swatch:       optionValue.Swatch,
			}

			if variant := matchVariant(variants, candidate); variant != nil {
				value.Exists = true
				value.Available = variant.AvailableForSale
				value.VariantID = variant.ID
			} else if first := optionValue.FirstSelectableVariant; first != nil && first.ID != "" {
				value.Exists = true
				value.Available = first.AvailableForSale
				value.VariantID = first.ID
				value.SearchParams = producturl.Query(urlOptions(first.SelectedOptions))
			}

			values = append(values, value)
		}

		picker = append(picker, PickerOption{Name: option.Name, Values: values})
	}

	return picker
}

// ResolveVariant picks a variant from the product's known variant graph:
// the first one matching every selected option pair, else the first
// available one, else the first one at all. It backs up the platform's own
// selected-or-first-available resolution when that came back empty.
func ResolveVariant(product *storefront.Product, selected []storefront.SelectedOption) *storefront.Variant {
	variants := knownVariants(product)
	if len(variants) == 0 {
		return nil
	}

	if len(selected) > 0 {
		for i := range variants {
			if variantMatches(&variants[i], selected) {
				return &variants[i]
			}
		}
	}

	for i := range variants {
		if variants[i].AvailableForSale {
			return &variants[i]
		}
	}

	return &variants[0]
}

// knownVariants flattens the variant graph of the critical query result:
// the resolved variant, its adjacent variants, and every option value's
// first-selectable hint, deduplicated by id.
func knownVariants(product *storefront.Product) []storefront.Variant {
	var variants []storefront.Variant
	seen := make(map[string]bool)

	add := func(variant *storefront.Variant) {
		if variant == nil || variant.ID == "" || seen[variant.ID] {
			return
		}
		seen[variant.ID] = true
		variants = append(variants, *variant)
	}

	add(product.SelectedOrFirstAvailableVariant)
	for i := range product.AdjacentVariants {
		add(&product.AdjacentVariants[i])
	}
	for _, option := range product.Options {
		for _, optionValue := range option.OptionValues {
			add(optionValue.FirstSelectableVariant)
		}
	}

	return variants
}

// variantMatches reports whether the variant carries every selected pair.
func variantMatches(variant *storefront.Variant, selected []storefront.SelectedOption) bool {
	for _, want := range selected {
		if valueFor(variant.SelectedOptions, want.Name) != want.Value {
			return false
		}
	}
	return true
}

// matchVariant finds a variant whose options equal the candidate selection.
func matchVariant(variants []storefront.Variant, candidate []storefront.SelectedOption) *storefront.Variant {
	for i := range variants {
		if len(variants[i].SelectedOptions) == len(candidate) && variantMatches(&variants[i], candidate) {
			return &variants[i]
		}
	}
	return nil
}

// overrideOption returns the current selection with one option set to a new
// value, preserving option order. The input is not mutated.
func overrideOption(current []storefront.SelectedOption, name, value string) []storefront.SelectedOption {
	result := make([]storefront.SelectedOption, 0, len(current)+1)
	replaced := false
	for _, opt := range current {
		if opt.Name == name {
			result = append(result, storefront.SelectedOption{Name: name, Value: value})
			replaced = true
			continue
		}
		result = append(result, opt)
	}
	if !replaced {
		result = append(result, storefront.SelectedOption{Name: name, Value: value})
	}
	return result
}

func valueFor(options []storefront.SelectedOption, name string) string {
	for _, opt := range options {
		if opt.Name == name {
			return opt.Value
		}
	}
	return ""
}

func urlOptions(options []storefront.SelectedOption) []producturl.SelectedOption {
	result := make([]producturl.SelectedOption, 0, len(options))
	for _, opt := range options {
		result = append(result, producturl.SelectedOption{Name: opt.Name, Value: opt.Value})
	}
	return result
}

func optionNames(product *storefront.Product) []string {
	names := make([]string, 0, len(product.Options))
	for _, option := range product.Options {
		names = append(names, option.Name)
	}
	return names
}

func queryValues(options []storefront.SelectedOption) url.Values {
	values := url.Values{}
	for _, opt := range options {
		values.Add(opt.Name, opt.Value)
	}
	return values
}

func buildAnalytics(product *storefront.Product, variant *storefront.Variant) AnalyticsPayload {
	payload := AnalyticsPayload{
		ProductID:     product.ID,
		ProductTitle:  product.Title,
		ProductHandle: product.Handle,
		Quantity:      1,
	}

	if variant != nil {
		payload.VariantID = variant.ID
		payload.VariantTitle = variant.Title
		payload.Price = variant.Price.Amount
		payload.Currency = variant.Price.CurrencyCode
	}

	return payload
}

// amountGreater compares two decimal amount strings. Unparseable input
// reports false.
func amountGreater(a, b string) bool {
	left, errA := strconv.ParseFloat(a, 64)
	right, errB := strconv.ParseFloat(b, 64)
	if errA != nil || errB != nil {
		return false
	}
	return left > right
}
