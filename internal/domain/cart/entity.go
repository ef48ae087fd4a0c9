// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"time"

	"github.com/your-org/storefront-gateway/internal/storefront"
)

// Mutation actions accepted by the cart submit endpoint
const (
	ActionLinesAdd    = "LinesAdd"
	ActionLinesUpdate = "LinesUpdate"
	ActionLinesRemove = "LinesRemove"
)

// optimisticLinePrefix marks line ids minted locally before the platform
// has confirmed the line
const optimisticLinePrefix = "ln_"

var (
	ErrSessionRequired = errors.New("session ID required for cart")
	ErrLineNotFound    = errors.New("line not found in cart")
	ErrLineOptimistic  = errors.New("line has a pending mutation")
	ErrUnknownAction   = errors.New("unknown cart action")
	ErrQueueFull       = errors.New("reconcile queue is full")
)

// Line represents one entry in a session cart. Merchandise is the variant
// snapshot the line was added with; the platform cart refreshes it on
// reconciliation. Optimistic marks a line whose latest mutation has not
// been confirmed by the platform yet.
type Line struct {
	ID          string             `json:"id"`
	Quantity    int                `json:"quantity"`
	Merchandise storefront.Variant `json:"merchandise"`
	Optimistic  bool               `json:"optimistic"`
	AddedAt     time.Time          `json:"added_at"`
}

// IsLocal reports whether the line id was minted locally and is not yet
// known to the platform
func (l *Line) IsLocal() bool {
	return len(l.ID) > len(optimisticLinePrefix) && l.ID[:len(optimisticLinePrefix)] == optimisticLinePrefix
}

// SessionCart represents a shopper's cart (stored in Redis)
type SessionCart struct {
	SessionID   string    `json:"session_id"`
	PlatformID  string    `json:"platform_id,omitempty"`
	CheckoutURL string    `json:"checkout_url,omitempty"`
	Lines       []Line    `json:"lines"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// FindLine returns the line with the given id, or nil
func (c *SessionCart) FindLine(lineID string) *Line {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			return &c.Lines[i]
		}
	}
	return nil
}

// FindLineByMerchandise returns the line holding the given variant, or nil
func (c *SessionCart) FindLineByMerchandise(merchandiseID string) *Line {
	for i := range c.Lines {
		if c.Lines[i].Merchandise.ID == merchandiseID {
			return &c.Lines[i]
		}
	}
	return nil
}

// TotalQuantity returns the sum of all line quantities
func (c *SessionCart) TotalQuantity() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// HasOptimisticLines reports whether any line is awaiting reconciliation
func (c *SessionCart) HasOptimisticLines() bool {
	for _, line := range c.Lines {
		if line.Optimistic {
			return true
		}
	}
	return false
}

// LineInput identifies a line and its target quantity. Update inputs carry
// the line id; add inputs carry the merchandise id and may carry a variant
// snapshot for the optimistic view.
type LineInput struct {
	ID            string              `json:"id,omitempty"`
	MerchandiseID string              `json:"merchandiseId,omitempty"`
	Quantity      int                 `json:"quantity,omitempty"`
	Merchandise   *storefront.Variant `json:"merchandise,omitempty"`
}

// MutationInputs carries the per-action payload of a mutation request
type MutationInputs struct {
	Lines   []LineInput `json:"lines,omitempty"`
	LineIDs []string    `json:"lineIds,omitempty"`
}

// MutationRequest is the submit payload for a cart mutation
type MutationRequest struct {
	Action string         `json:"action" binding:"required"`
	Inputs MutationInputs `json:"inputs"`
}
