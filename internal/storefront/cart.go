// internal/storefront/cart.go
package storefront

import (
	"context"
	"encoding/json"
	"fmt"
)

// cartMutationPayload is the shared shape of all cart mutation results
type cartMutationPayload struct {
	Cart       *Cart       `json:"cart"`
	UserErrors []UserError `json:"userErrors"`
}

// decodeCartPayload extracts the cart from a mutation payload keyed by the
// mutation field name, turning user errors into Go errors.
func decodeCartPayload(data json.RawMessage, field string) (*Cart, error) {
	var result map[string]cartMutationPayload
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode %s payload: %w", field, err)
	}

	payload, ok := result[field]
	if !ok {
		return nil, fmt.Errorf("%s payload missing from response", field)
	}
	if len(payload.UserErrors) > 0 {
		return nil, fmt.Errorf("%s rejected: %s", field, payload.UserErrors[0].Message)
	}
	if payload.Cart == nil {
		return nil, fmt.Errorf("%s returned no cart", field)
	}

	return payload.Cart, nil
}

// CartCreate creates a platform cart with the given initial lines
func (c *Client) CartCreate(ctx context.Context, lines []CartLineInput) (*Cart, error) {
	variables := c.contextVariables()
	variables["input"] = map[string]interface{}{
		"lines": lines,
	}

	data, err := c.execute(ctx, cartCreateMutation, variables)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	return decodeCartPayload(data, "cartCreate")
}

// CartLinesAdd adds lines to an existing platform cart
func (c *Client) CartLinesAdd(ctx context.Context, cartID string, lines []CartLineInput) (*Cart, error) {
	variables := c.contextVariables()
	variables["cartId"] = cartID
	variables["lines"] = lines

	data, err := c.execute(ctx, cartLinesAddMutation, variables)
	if err != nil {
		return nil, fmt.Errorf("failed to add cart lines: %w", err)
	}

	return decodeCartPayload(data, "cartLinesAdd")
}

// CartLinesUpdate updates quantities on existing platform cart lines
func (c *Client) CartLinesUpdate(ctx context.Context, cartID string, lines []CartLineUpdateInput) (*Cart, error) {
	variables := c.contextVariables()
	variables["cartId"] = cartID
	variables["lines"] = lines

	data, err := c.execute(ctx, cartLinesUpdateMutation, variables)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart lines: %w", err)
	}

	return decodeCartPayload(data, "cartLinesUpdate")
}

// CartLinesRemove removes lines from a platform cart
func (c *Client) CartLinesRemove(ctx context.Context, cartID string, lineIDs []string) (*Cart, error) {
	variables := c.contextVariables()
	variables["cartId"] = cartID
	variables["lineIds"] = lineIDs

	data, err := c.execute(ctx, cartLinesRemoveMutation, variables)
	if err != nil {
		return nil, fmt.Errorf("failed to remove cart lines: %w", err)
	}

	return decodeCartPayload(data, "cartLinesRemove")
}

// GetCart fetches the authoritative platform cart by id
func (c *Client) GetCart(ctx context.Context, cartID string) (*Cart, error) {
	variables := c.contextVariables()
	variables["cartId"] = cartID

	data, err := c.execute(ctx, cartQuery, variables)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}

	var result struct {
		Cart *Cart `json:"cart"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	if result.Cart == nil {
		return nil, fmt.Errorf("cart %s not found", cartID)
	}

	return result.Cart, nil
}
