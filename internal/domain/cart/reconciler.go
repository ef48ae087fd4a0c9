// internal/domain/cart/reconciler.go
package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/storefront"
)

// PlatformCartAPI is the slice of the storefront client the reconciler
// needs to settle predicted cart state
type PlatformCartAPI interface {
	CartCreate(ctx context.Context, lines []storefront.CartLineInput) (*storefront.Cart, error)
	CartLinesAdd(ctx context.Context, cartID string, lines []storefront.CartLineInput) (*storefront.Cart, error)
	CartLinesUpdate(ctx context.Context, cartID string, lines []storefront.CartLineUpdateInput) (*storefront.Cart, error)
	CartLinesRemove(ctx context.Context, cartID string, lineIDs []string) (*storefront.Cart, error)
	GetCart(ctx context.Context, cartID string) (*storefront.Cart, error)
}

// Reconciler drains the service's reconcile queues with one worker per
// queue. Each job runs the submitted mutation against the platform and
// overwrites the session cart with the authoritative result; a rejected
// mutation rolls the cart back by re-fetching the platform state.
type Reconciler struct {
	service  *Service
	platform PlatformCartAPI
	timeout  time.Duration
	logger   *logrus.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

// NewReconciler creates a reconciler over the service's queues
func NewReconciler(service *Service, platform PlatformCartAPI, cfg *config.Config, logger *logrus.Logger) *Reconciler {
	return &Reconciler{
		service:  service,
		platform: platform,
		timeout:  cfg.Cart.ReconcileTimeout,
		logger:   logger,
	}
}

// Start launches one worker per queue
func (r *Reconciler) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return fmt.Errorf("reconciler is already running")
	}
	r.running = true

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	for i, queue := range r.service.queues {
		r.wg.Add(1)
		go func(workerID int, jobs <-chan ReconcileJob) {
			defer r.wg.Done()
			r.run(ctx, workerID, jobs)
		}(i, queue)
	}

	r.logger.WithField("workers", len(r.service.queues)).Info("Cart reconciler started")
	return nil
}

// Stop drains the workers, waiting up to the context deadline
func (r *Reconciler) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = false
	r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("Cart reconciler stopped")
		return nil
	case <-ctx.Done():
		r.logger.Warn("Timeout waiting for cart reconciler to stop")
		return ctx.Err()
	}
}

// run is one worker's loop over its session-sharded queue
func (r *Reconciler) run(ctx context.Context, workerID int, jobs <-chan ReconcileJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			r.process(workerID, job)
		}
	}
}

// process settles one submitted mutation. It runs on a detached context so
// an in-flight reconciliation survives the request that spawned it.
func (r *Reconciler) process(workerID int, job ReconcileJob) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	entry := r.logger.WithFields(logrus.Fields{
		"worker":     workerID,
		"session_id": job.SessionID,
		"action":     job.Action,
	})

	sessionCart, err := r.service.loadCart(job.SessionID)
	if err != nil {
		entry.WithError(err).Error("Failed to load cart for reconciliation")
		return
	}

	platformCart, err := r.execute(ctx, sessionCart, job)
	if err != nil {
		entry.WithError(err).Warn("Cart mutation rejected by platform, rolling back")
		r.rollback(ctx, sessionCart, entry)
		return
	}

	r.service.applyPlatformCart(sessionCart, platformCart)
	if err := r.service.saveCart(sessionCart); err != nil {
		entry.WithError(err).Error("Failed to persist reconciled cart")
		return
	}

	entry.WithField("latency", time.Since(job.EnqueuedAt)).Debug("Cart mutation reconciled")
}

// execute runs the platform mutation for a job. Adds create the platform
// cart on first use; updates and removals require one to exist.
func (r *Reconciler) execute(ctx context.Context, sessionCart *SessionCart, job ReconcileJob) (*storefront.Cart, error) {
	switch job.Action {
	case ActionLinesAdd:
		inputs := make([]storefront.CartLineInput, 0, len(job.Inputs.Lines))
		for _, line := range job.Inputs.Lines {
			inputs = append(inputs, storefront.CartLineInput{
				MerchandiseID: line.MerchandiseID,
				Quantity:      line.Quantity,
			})
		}
		if sessionCart.PlatformID == "" {
			return r.platform.CartCreate(ctx, inputs)
		}
		return r.platform.CartLinesAdd(ctx, sessionCart.PlatformID, inputs)

	case ActionLinesUpdate:
		if sessionCart.PlatformID == "" {
			return nil, fmt.Errorf("no platform cart to update")
		}
		updates := make([]storefront.CartLineUpdateInput, 0, len(job.Inputs.Lines))
		for _, line := range job.Inputs.Lines {
			updates = append(updates, storefront.CartLineUpdateInput{
				ID:       line.ID,
				Quantity: line.Quantity,
			})
		}
		return r.platform.CartLinesUpdate(ctx, sessionCart.PlatformID, updates)

	case ActionLinesRemove:
		if sessionCart.PlatformID == "" {
			return nil, fmt.Errorf("no platform cart to remove from")
		}
		return r.platform.CartLinesRemove(ctx, sessionCart.PlatformID, job.Inputs.LineIDs)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, job.Action)
	}
}

// rollback replaces the predicted state with the authoritative platform
// cart. When even the re-fetch fails the pending flags are cleared on the
// last known state so no line stays locked forever.
func (r *Reconciler) rollback(ctx context.Context, sessionCart *SessionCart, entry *logrus.Entry) {
	if sessionCart.PlatformID != "" {
		authoritative, err := r.platform.GetCart(ctx, sessionCart.PlatformID)
		if err == nil {
			r.service.applyPlatformCart(sessionCart, authoritative)
			if err := r.service.saveCart(sessionCart); err != nil {
				entry.WithError(err).Error("Failed to persist rolled-back cart")
			}
			return
		}
		entry.WithError(err).Error("Failed to re-fetch platform cart, settling last known state")
	}

	r.service.clearOptimisticFlags(sessionCart)
	if err := r.service.saveCart(sessionCart); err != nil {
		entry.WithError(err).Error("Failed to persist settled cart")
	}
}
