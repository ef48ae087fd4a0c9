// internal/storefront/client.go
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/config"
)

// Client executes queries against the platform storefront GraphQL API
type Client struct {
	endpoint   string
	token      string
	country    string
	language   string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new storefront API client
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		endpoint: cfg.GetStorefrontEndpoint(),
		token:    cfg.Storefront.AccessToken,
		country:  cfg.Storefront.Country,
		language: cfg.Storefront.Language,
		httpClient: &http.Client{
			Timeout: cfg.Storefront.Timeout,
		},
		logger: logger,
	}
}

// execute posts a query document with variables and returns the raw data
// payload. GraphQL-level errors and non-2xx statuses surface as Go errors.
func (c *Client) execute(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(graphQLRequest{
		Query:     query,
		Variables: variables,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Shopify-Storefront-Access-Token", c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("storefront API status %d: %s", resp.StatusCode, string(raw))
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		c.logger.WithFields(logrus.Fields{
			"errors": len(envelope.Errors),
			"first":  envelope.Errors[0].Message,
		}).Error("Storefront query returned errors")
		return nil, fmt.Errorf("storefront query failed: %s", envelope.Errors[0].Message)
	}

	return envelope.Data, nil
}

// contextVariables returns the localization variables sent with every query
func (c *Client) contextVariables() map[string]interface{} {
	return map[string]interface{}{
		"country":  c.country,
		"language": c.language,
	}
}

// GetProduct fetches a product by handle together with the shop primary
// domain. The selected options steer which variant the platform resolves as
// selectedOrFirstAvailableVariant. A handle that does not resolve returns a
// result with a nil Product; callers decide how to surface that.
func (c *Client) GetProduct(ctx context.Context, handle string, selected []SelectedOption) (*ProductPageData, error) {
	options := make([]map[string]interface{}, 0, len(selected))
	for _, opt := range selected {
		options = append(options, map[string]interface{}{
			"name":  opt.Name,
			"value": opt.Value,
		})
	}

	variables := c.contextVariables()
	variables["handle"] = handle
	variables["selectedOptions"] = options

	data, err := c.execute(ctx, productQuery, variables)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product %s: %w", handle, err)
	}

	var result ProductPageData
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode product %s: %w", handle, err)
	}

	return &result, nil
}

// GetRecommendedProducts fetches the products recommended alongside the
// product identified by handle
func (c *Client) GetRecommendedProducts(ctx context.Context, handle string) ([]RecommendedProduct, error) {
	variables := c.contextVariables()
	variables["handle"] = handle

	data, err := c.execute(ctx, recommendedProductsQuery, variables)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recommendations for %s: %w", handle, err)
	}

	var result struct {
		ProductRecommendations []RecommendedProduct `json:"productRecommendations"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations for %s: %w", handle, err)
	}

	return result.ProductRecommendations, nil
}
