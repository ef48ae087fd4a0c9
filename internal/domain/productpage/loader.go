// internal/domain/productpage/loader.go
package productpage

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/storefront-gateway/internal/domain/recommendations"
	"github.com/your-org/storefront-gateway/internal/pkg/deferred"
	"github.com/your-org/storefront-gateway/internal/pkg/producturl"
	"github.com/your-org/storefront-gateway/internal/storefront"
)

var (
	// ErrHandleRequired means the route carried no product handle. That is a
	// routing defect, not shopper input, and maps to a server error.
	ErrHandleRequired = errors.New("product handle is required")

	// ErrProductNotFound means the handle resolves to no product. Final: the
	// page 404s with no partial data.
	ErrProductNotFound = errors.New("product not found")
)

// ProductAPI is the slice of the storefront client the loader depends on.
type ProductAPI interface {
	GetProduct(ctx context.Context, handle string, selected []storefront.SelectedOption) (*storefront.ProductPageData, error)
}

// Recommender starts deferred recommended-products lookups.
type Recommender interface {
	Prefetch(handle string) *deferred.Value[recommendations.Result]
}

// Loader assembles the product page payload in two phases: a critical
// product query that gates the response, and a deferred recommendations
// fetch that runs alongside it and can never fail the page.
type Loader struct {
	storefront  ProductAPI
	recommender Recommender
}

// NewLoader creates a new product page loader
func NewLoader(api ProductAPI, recommender Recommender) *Loader {
	return &Loader{
		storefront:  api,
		recommender: recommender,
	}
}

// Load fetches and assembles the page for a handle. rawQuery is the request
// query string; every parameter in it is forwarded to variant resolution,
// but only parameters naming a defined product option count as an explicit
// selection.
func (l *Loader) Load(ctx context.Context, handle string, rawQuery string) (*Page, error) {
	if handle == "" {
		return nil, ErrHandleRequired
	}

	requested := selectedFromQuery(rawQuery)

	// The deferred phase starts before the critical query so the two
	// overlap. Its future is polled at the end, not awaited.
	recommended := l.recommender.Prefetch(handle)

	data, err := l.storefront.GetProduct(ctx, handle, requested)
	if err != nil {
		return nil, fmt.Errorf("load product %s: %w", handle, err)
	}
	if data == nil || data.Product == nil || data.Product.ID == "" {
		return nil, ErrProductNotFound
	}

	page := buildPage(data, requested)
	page.Recommended = recommendedSection(recommended)
	return page, nil
}

// recommendedSection inlines the deferred result when it already settled;
// otherwise the section stays pending and the renderer follows up on the
// recommended endpoint.
func recommendedSection(future *deferred.Value[recommendations.Result]) RecommendedSection {
	result, ok := future.Poll()
	if !ok {
		return RecommendedSection{Status: RecommendedPending}
	}
	return SectionFor(result)
}

// SectionFor maps a settled recommendations result to its render state.
func SectionFor(result recommendations.Result) RecommendedSection {
	if result.Unavailable {
		return RecommendedSection{Status: RecommendedUnavailable}
	}
	return RecommendedSection{Status: RecommendedResolved, Products: result.Products}
}

func selectedFromQuery(rawQuery string) []storefront.SelectedOption {
	parsed := producturl.ParseQuery(rawQuery)
	if len(parsed) == 0 {
		return nil
	}

	selected := make([]storefront.SelectedOption, 0, len(parsed))
	for _, opt := range parsed {
		selected = append(selected, storefront.SelectedOption{Name: opt.Name, Value: opt.Value})
	}
	return selected
}
