// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/storefront"
)

// Service handles session cart state and optimistic mutation submits.
// Submits apply the predicted state immediately and enqueue a reconcile job;
// the reconciler replaces predictions with the authoritative platform cart.
type Service struct {
	redisClient *redis.Client
	config      *config.Config
	logger      *logrus.Logger
	queues      []chan ReconcileJob
}

// ReconcileJob carries one submitted mutation to the worker pool. Jobs for
// the same session always land on the same queue so they reconcile in
// submit order.
type ReconcileJob struct {
	SessionID  string
	Action     string
	Inputs     MutationInputs
	EnqueuedAt time.Time
}

// NewService creates a new cart service
func NewService(redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) *Service {
	queues := make([]chan ReconcileJob, cfg.Cart.Workers)
	for i := range queues {
		queues[i] = make(chan ReconcileJob, cfg.Cart.QueueSize)
	}

	return &Service{
		redisClient: redisClient,
		config:      cfg,
		logger:      logger,
		queues:      queues,
	}
}

// GetCart retrieves the session cart, creating an empty one if none exists
func (s *Service) GetCart(sessionID string) (*SessionCart, error) {
	return s.loadCart(sessionID)
}

// Count returns the total quantity across all lines
func (s *Service) Count(sessionID string) (int, error) {
	sessionCart, err := s.loadCart(sessionID)
	if err != nil {
		return 0, err
	}
	return sessionCart.TotalQuantity(), nil
}

// Submit validates a mutation request, applies the predicted state to the
// session cart, enqueues a reconcile job and returns the optimistic cart.
// Lines touched by the mutation are marked optimistic; further mutations on
// them are rejected until the reconciler settles the state.
func (s *Service) Submit(sessionID string, req *MutationRequest) (*SessionCart, error) {
	sessionCart, err := s.loadCart(sessionID)
	if err != nil {
		return nil, err
	}

	// Kept for restore: a rejected enqueue must not leave lines locked
	// optimistic with no reconcile job pending.
	snapshot := append([]Line(nil), sessionCart.Lines...)

	switch req.Action {
	case ActionLinesAdd:
		err = s.applyLinesAdd(sessionCart, req.Inputs.Lines)
	case ActionLinesUpdate:
		err = s.applyLinesUpdate(sessionCart, req.Inputs.Lines)
	case ActionLinesRemove:
		err = s.applyLinesRemove(sessionCart, req.Inputs.LineIDs)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownAction, req.Action)
	}
	if err != nil {
		return nil, err
	}

	// The prediction must be persisted before the job becomes visible to a
	// worker; the worker loads the cart by session and must see these lines.
	sessionCart.UpdatedAt = time.Now().UTC()
	if err := s.saveCart(sessionCart); err != nil {
		return nil, err
	}

	job := ReconcileJob{
		SessionID:  sessionID,
		Action:     req.Action,
		Inputs:     req.Inputs,
		EnqueuedAt: time.Now().UTC(),
	}
	if err := s.enqueue(job); err != nil {
		sessionCart.Lines = snapshot
		sessionCart.UpdatedAt = time.Now().UTC()
		if restoreErr := s.saveCart(sessionCart); restoreErr != nil {
			s.logger.WithFields(logrus.Fields{
				"session_id": sessionID,
				"action":     req.Action,
			}).WithError(restoreErr).Error("Failed to restore cart after rejected enqueue")
		}
		return nil, err
	}

	return sessionCart, nil
}

// applyLinesAdd applies the predicted state of an add. A settled line with
// the same variant absorbs the quantity; otherwise a locally-identified
// line is appended until the platform confirms it.
func (s *Service) applyLinesAdd(sessionCart *SessionCart, inputs []LineInput) error {
	if len(inputs) == 0 {
		return fmt.Errorf("lines are required for %s", ActionLinesAdd)
	}

	for _, input := range inputs {
		if input.MerchandiseID == "" {
			return fmt.Errorf("merchandiseId is required for %s", ActionLinesAdd)
		}
		if input.Quantity < 1 {
			return fmt.Errorf("quantity must be at least 1 for %s", ActionLinesAdd)
		}
		if existing := sessionCart.FindLineByMerchandise(input.MerchandiseID); existing != nil && existing.Optimistic {
			return fmt.Errorf("line %s: %w", existing.ID, ErrLineOptimistic)
		}
	}

	now := time.Now().UTC()
	for _, input := range inputs {
		if existing := sessionCart.FindLineByMerchandise(input.MerchandiseID); existing != nil {
			existing.Quantity += input.Quantity
			existing.Optimistic = true
			continue
		}

		merchandise := storefront.Variant{ID: input.MerchandiseID}
		if input.Merchandise != nil {
			merchandise = *input.Merchandise
			merchandise.ID = input.MerchandiseID
		}
		sessionCart.Lines = append(sessionCart.Lines, Line{
			ID:          optimisticLinePrefix + uuid.New().String(),
			Quantity:    input.Quantity,
			Merchandise: merchandise,
			Optimistic:  true,
			AddedAt:     now,
		})
	}

	return nil
}

// applyLinesUpdate applies predicted quantity changes. All inputs are
// validated before any line is touched so a rejected request leaves the
// cart untouched.
func (s *Service) applyLinesUpdate(sessionCart *SessionCart, inputs []LineInput) error {
	if len(inputs) == 0 {
		return fmt.Errorf("lines are required for %s", ActionLinesUpdate)
	}

	for _, input := range inputs {
		if input.ID == "" {
			return fmt.Errorf("line id is required for %s", ActionLinesUpdate)
		}
		if input.Quantity < 1 {
			return fmt.Errorf("quantity must be at least 1; use %s to delete a line", ActionLinesRemove)
		}
		line := sessionCart.FindLine(input.ID)
		if line == nil {
			return fmt.Errorf("line %s: %w", input.ID, ErrLineNotFound)
		}
		if line.Optimistic {
			return fmt.Errorf("line %s: %w", input.ID, ErrLineOptimistic)
		}
	}

	for _, input := range inputs {
		line := sessionCart.FindLine(input.ID)
		line.Quantity = input.Quantity
		line.Optimistic = true
	}

	return nil
}

// applyLinesRemove drops the lines immediately; a rejected removal is
// restored by the reconciler's rollback.
func (s *Service) applyLinesRemove(sessionCart *SessionCart, lineIDs []string) error {
	if len(lineIDs) == 0 {
		return fmt.Errorf("lineIds are required for %s", ActionLinesRemove)
	}

	for _, lineID := range lineIDs {
		line := sessionCart.FindLine(lineID)
		if line == nil {
			return fmt.Errorf("line %s: %w", lineID, ErrLineNotFound)
		}
		if line.Optimistic {
			return fmt.Errorf("line %s: %w", lineID, ErrLineOptimistic)
		}
	}

	remaining := make([]Line, 0, len(sessionCart.Lines))
	for _, line := range sessionCart.Lines {
		removed := false
		for _, lineID := range lineIDs {
			if line.ID == lineID {
				removed = true
				break
			}
		}
		if !removed {
			remaining = append(remaining, line)
		}
	}
	sessionCart.Lines = remaining

	return nil
}

// enqueue routes a job to the queue owning its session
func (s *Service) enqueue(job ReconcileJob) error {
	hash := fnv.New32a()
	hash.Write([]byte(job.SessionID))
	queue := s.queues[int(hash.Sum32())%len(s.queues)]

	select {
	case queue <- job:
		return nil
	default:
		s.logger.WithFields(logrus.Fields{
			"session_id": job.SessionID,
			"action":     job.Action,
		}).Error("Reconcile queue is full, rejecting mutation")
		return ErrQueueFull
	}
}

// applyPlatformCart replaces the session lines with the authoritative
// platform cart, keeping AddedAt for lines that survive. All optimistic
// flags are cleared because the platform state is settled by definition.
func (s *Service) applyPlatformCart(sessionCart *SessionCart, platformCart *storefront.Cart) {
	now := time.Now().UTC()

	lines := make([]Line, 0, len(platformCart.Lines.Nodes))
	for _, node := range platformCart.Lines.Nodes {
		addedAt := now
		if existing := sessionCart.FindLine(node.ID); existing != nil {
			addedAt = existing.AddedAt
		} else if existing := sessionCart.FindLineByMerchandise(node.Merchandise.ID); existing != nil {
			addedAt = existing.AddedAt
		}
		lines = append(lines, Line{
			ID:          node.ID,
			Quantity:    node.Quantity,
			Merchandise: node.Merchandise,
			AddedAt:     addedAt,
		})
	}

	sessionCart.PlatformID = platformCart.ID
	sessionCart.CheckoutURL = platformCart.CheckoutURL
	sessionCart.Lines = lines
	sessionCart.UpdatedAt = now
}

// clearOptimisticFlags settles the cart on its last known state. Lines the
// platform never confirmed are dropped; they exist only as predictions.
func (s *Service) clearOptimisticFlags(sessionCart *SessionCart) {
	remaining := make([]Line, 0, len(sessionCart.Lines))
	for _, line := range sessionCart.Lines {
		if line.IsLocal() {
			continue
		}
		line.Optimistic = false
		remaining = append(remaining, line)
	}
	sessionCart.Lines = remaining
	sessionCart.UpdatedAt = time.Now().UTC()
}

// loadCart fetches the session cart from Redis, returning a fresh empty
// cart when none exists
func (s *Service) loadCart(sessionID string) (*SessionCart, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	ctx := context.Background()
	cartKey := fmt.Sprintf("cart:session:%s", sessionID)

	cartData, err := s.redisClient.Get(ctx, cartKey).Result()
	if err == redis.Nil {
		now := time.Now().UTC()
		return &SessionCart{
			SessionID: sessionID,
			Lines:     []Line{},
			CreatedAt: now,
			UpdatedAt: now,
			ExpiresAt: now.Add(s.config.Cart.SessionTTL),
		}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var sessionCart SessionCart
	if err := json.Unmarshal([]byte(cartData), &sessionCart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}

	return &sessionCart, nil
}

// saveCart persists the session cart with the configured expiration
func (s *Service) saveCart(sessionCart *SessionCart) error {
	ctx := context.Background()
	cartKey := fmt.Sprintf("cart:session:%s", sessionCart.SessionID)

	cartData, err := json.Marshal(sessionCart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	return s.redisClient.Set(ctx, cartKey, cartData, s.config.Cart.SessionTTL).Err()
}
