// internal/storefront/types.go
package storefront

import "encoding/json"

// Money represents a monetary amount as returned by the storefront API
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Image represents a product or variant image
type Image struct {
	ID      string `json:"id,omitempty"`
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// ImageConnection wraps a paginated list of images
type ImageConnection struct {
	Nodes []Image `json:"nodes"`
}

// SelectedOption is an option name/value pair on a variant
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// VariantProduct is the parent product summary embedded in a variant
type VariantProduct struct {
	ID     string `json:"id,omitempty"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
	Vendor string `json:"vendor,omitempty"`
}

// Variant represents a purchasable product configuration.
// QuantityAvailable is a pointer: absence means the platform does not
// constrain the quantity.
type Variant struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	AvailableForSale  bool             `json:"availableForSale"`
	SKU               string           `json:"sku,omitempty"`
	Price             Money            `json:"price"`
	CompareAtPrice    *Money           `json:"compareAtPrice,omitempty"`
	UnitPrice         *Money           `json:"unitPrice,omitempty"`
	Image             *Image           `json:"image,omitempty"`
	Product           VariantProduct   `json:"product"`
	SelectedOptions   []SelectedOption `json:"selectedOptions"`
	QuantityAvailable *int             `json:"quantityAvailable,omitempty"`
}

// SwatchImage is the preview image of an option value swatch
type SwatchImage struct {
	PreviewImage *Image `json:"previewImage,omitempty"`
}

// Swatch is the visual hint attached to an option value
type Swatch struct {
	Color string       `json:"color,omitempty"`
	Image *SwatchImage `json:"image,omitempty"`
}

// OptionValue is one possible value of a product option
type OptionValue struct {
	Name                   string   `json:"name"`
	FirstSelectableVariant *Variant `json:"firstSelectableVariant,omitempty"`
	Swatch                 *Swatch  `json:"swatch,omitempty"`
}

// Option is a product option definition with its possible values
type Option struct {
	Name         string        `json:"name"`
	OptionValues []OptionValue `json:"optionValues"`
}

// SEO carries the product's search metadata
type SEO struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Product represents a full product with its option and variant graph
type Product struct {
	ID                              string          `json:"id"`
	Title                           string          `json:"title"`
	Vendor                          string          `json:"vendor"`
	Handle                          string          `json:"handle"`
	Description                     string          `json:"description"`
	DescriptionHTML                 string          `json:"descriptionHtml"`
	Images                          ImageConnection `json:"images"`
	EncodedVariantExistence         string          `json:"encodedVariantExistence,omitempty"`
	EncodedVariantAvailability      string          `json:"encodedVariantAvailability,omitempty"`
	Options                         []Option        `json:"options"`
	SelectedOrFirstAvailableVariant *Variant        `json:"selectedOrFirstAvailableVariant,omitempty"`
	AdjacentVariants                []Variant       `json:"adjacentVariants,omitempty"`
	SEO                             SEO             `json:"seo"`
}

// PrimaryDomain is the shop's canonical domain
type PrimaryDomain struct {
	URL string `json:"url"`
}

// Shop carries shop-level fields needed by the product page
type Shop struct {
	PrimaryDomain PrimaryDomain `json:"primaryDomain"`
}

// ProductPageData is the combined result of the critical product query
type ProductPageData struct {
	Product *Product `json:"product"`
	Shop    Shop     `json:"shop"`
}

// PriceRange is the min price summary on a recommended product
type PriceRange struct {
	MinVariantPrice Money `json:"minVariantPrice"`
}

// RecommendedProduct is a compact product summary for recommendation rails
type RecommendedProduct struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Handle     string          `json:"handle"`
	PriceRange PriceRange      `json:"priceRange"`
	Images     ImageConnection `json:"images"`
}

// CartLineCost carries the computed amounts for one cart line
type CartLineCost struct {
	TotalAmount                Money  `json:"totalAmount"`
	AmountPerQuantity          Money  `json:"amountPerQuantity"`
	CompareAtAmountPerQuantity *Money `json:"compareAtAmountPerQuantity,omitempty"`
}

// CartLine is one entry in a platform cart
type CartLine struct {
	ID          string       `json:"id"`
	Quantity    int          `json:"quantity"`
	Cost        CartLineCost `json:"cost"`
	Merchandise Variant      `json:"merchandise"`
}

// CartLineConnection wraps the paginated cart lines
type CartLineConnection struct {
	Nodes []CartLine `json:"nodes"`
}

// CartCost carries the cart-level totals
type CartCost struct {
	SubtotalAmount Money `json:"subtotalAmount"`
	TotalAmount    Money `json:"totalAmount"`
}

// Cart is the authoritative platform cart
type Cart struct {
	ID            string             `json:"id"`
	CheckoutURL   string             `json:"checkoutUrl"`
	TotalQuantity int                `json:"totalQuantity"`
	Cost          CartCost           `json:"cost"`
	Lines         CartLineConnection `json:"lines"`
}

// CartLineInput is the payload for adding a line to a cart
type CartLineInput struct {
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}

// CartLineUpdateInput is the payload for updating an existing line
type CartLineUpdateInput struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// UserError is a platform-reported input error on a cart mutation
type UserError struct {
	Field   []string `json:"field,omitempty"`
	Message string   `json:"message"`
}

// graphQLRequest is the wire format for a GraphQL query
type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLErrorLocation points at the offending position in a query document
type GraphQLErrorLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// GraphQLError is a GraphQL-level error returned alongside data
type GraphQLError struct {
	Message    string                 `json:"message"`
	Locations  []GraphQLErrorLocation `json:"locations,omitempty"`
	Path       []interface{}          `json:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// graphQLResponse is the top-level GraphQL response envelope
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}
