package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/storefront"
)

// fakePlatform is a scripted PlatformCartAPI for reconciler tests.
type fakePlatform struct {
	mu        sync.Mutex
	cart      *storefront.Cart
	mutateErr error
	fetchErr  error

	createCalls int
	addCalls    int
	updateCalls int
	removeCalls int
	fetchCalls  int
}

func (f *fakePlatform) CartCreate(ctx context.Context, lines []storefront.CartLineInput) (*storefront.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	return f.cart, nil
}

func (f *fakePlatform) CartLinesAdd(ctx context.Context, cartID string, lines []storefront.CartLineInput) (*storefront.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls++
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	return f.cart, nil
}

func (f *fakePlatform) CartLinesUpdate(ctx context.Context, cartID string, lines []storefront.CartLineUpdateInput) (*storefront.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	return f.cart, nil
}

func (f *fakePlatform) CartLinesRemove(ctx context.Context, cartID string, lineIDs []string) (*storefront.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeCalls++
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	return f.cart, nil
}

func (f *fakePlatform) GetCart(ctx context.Context, cartID string) (*storefront.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.cart, nil
}

func platformCartFixture(quantity int) *storefront.Cart {
	return &storefront.Cart{
		ID:            "gid://shopify/Cart/abc",
		CheckoutURL:   "https://shop.example.com/cart/c/abc",
		TotalQuantity: quantity,
		Lines: storefront.CartLineConnection{
			Nodes: []storefront.CartLine{{
				ID:       "gid://shopify/CartLine/1",
				Quantity: quantity,
				Merchandise: storefront.Variant{
					ID:    "gid://shopify/ProductVariant/11",
					Title: "Navy / M",
					Price: storefront.Money{Amount: "129.00", CurrencyCode: "EUR"},
					Product: storefront.VariantProduct{
						Title:  "Winter Jacket",
						Handle: "winter-jacket",
					},
				},
			}},
		},
	}
}

func setupReconciler(t *testing.T, platform PlatformCartAPI) (*Service, *Reconciler, func()) {
	t.Helper()

	service, cleanup := setupTestService(t, testConfig())

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	reconciler := NewReconciler(service, platform, testConfig(), logger)
	return service, reconciler, cleanup
}

func TestReconciler_SettlesAdd(t *testing.T) {
	platform := &fakePlatform{cart: platformCartFixture(2)}
	service, reconciler, cleanup := setupReconciler(t, platform)
	defer cleanup()

	sessionID := testSessionID()
	_, err := service.Submit(sessionID, &MutationRequest{
		Action: ActionLinesAdd,
		Inputs: MutationInputs{
			Lines: []LineInput{{MerchandiseID: "gid://shopify/ProductVariant/11", Quantity: 2}},
		},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	job := drainJob(t, service, sessionID)
	reconciler.process(0, job)

	if platform.createCalls != 1 {
		t.Errorf("createCalls = %d, want 1 (no platform cart existed)", platform.createCalls)
	}

	settled, err := service.GetCart(sessionID)
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	if settled.PlatformID != "gid://shopify/Cart/abc" {
		t.Errorf("platform id = %q, want the created cart id", settled.PlatformID)
	}
	if settled.CheckoutURL == "" {
		t.Error("checkout URL should be set after reconciliation")
	}
	if len(settled.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(settled.Lines))
	}
	line := settled.Lines[0]
	if line.ID != "gid://shopify/CartLine/1" {
		t.Errorf("line id = %q, want the platform line id", line.ID)
	}
	if line.Optimistic {
		t.Error("settled line should not be optimistic")
	}
	if line.Merchandise.Product.Title != "Winter Jacket" {
		t.Errorf("merchandise should be refreshed from the platform: %+v", line.Merchandise)
	}
}

func TestReconciler_SettlesUpdateOnExistingCart(t *testing.T) {
	platform := &fakePlatform{cart: platformCartFixture(5)}
	service, reconciler, cleanup := setupReconciler(t, platform)
	defer cleanup()

	sessionID := testSessionID()
	now := time.Now().UTC()
	seedCart(t, service, &SessionCart{
		SessionID:  sessionID,
		PlatformID: "gid://shopify/Cart/abc",
		Lines:      []Line{settledLine("gid://shopify/CartLine/1", "gid://shopify/ProductVariant/11", 3)},
		CreatedAt:  now,
		UpdatedAt:  now,
	})

	_, err := service.Submit(sessionID, &MutationRequest{
		Action: ActionLinesUpdate,
		Inputs: MutationInputs{Lines: []LineInput{{ID: "gid://shopify/CartLine/1", Quantity: 5}}},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	reconciler.process(0, drainJob(t, service, sessionID))

	if platform.updateCalls != 1 {
		t.Errorf("updateCalls = %d, want 1", platform.updateCalls)
	}

	settled, _ := service.GetCart(sessionID)
	if settled.Lines[0].Quantity != 5 {
		t.Errorf("settled quantity = %d, want 5", settled.Lines[0].Quantity)
	}
	if settled.Lines[0].Optimistic {
		t.Error("settled line should not be optimistic")
	}
}

func TestReconciler_RollbackOnRejection(t *testing.T) {
	platform := &fakePlatform{
		cart:      platformCartFixture(3),
		mutateErr: errors.New("cartLinesUpdate rejected: quantity exceeds availability"),
	}
	service, reconciler, cleanup := setupReconciler(t, platform)
	defer cleanup()

	sessionID := testSessionID()
	now := time.Now().UTC()
	seedCart(t, service, &SessionCart{
		SessionID:  sessionID,
		PlatformID: "gid://shopify/Cart/abc",
		Lines:      []Line{settledLine("gid://shopify/CartLine/1", "gid://shopify/ProductVariant/11", 3)},
		CreatedAt:  now,
		UpdatedAt:  now,
	})

	_, err := service.Submit(sessionID, &MutationRequest{
		Action: ActionLinesUpdate,
		Inputs: MutationInputs{Lines: []LineInput{{ID: "gid://shopify/CartLine/1", Quantity: 99}}},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	// The optimistic view shows 99 until reconciliation settles it.
	optimistic, _ := service.GetCart(sessionID)
	if optimistic.Lines[0].Quantity != 99 || !optimistic.Lines[0].Optimistic {
		t.Fatalf("optimistic state not applied: %+v", optimistic.Lines[0])
	}

	reconciler.process(0, drainJob(t, service, sessionID))

	if platform.fetchCalls != 1 {
		t.Errorf("fetchCalls = %d, want 1 rollback re-fetch", platform.fetchCalls)
	}

	rolledBack, _ := service.GetCart(sessionID)
	if rolledBack.Lines[0].Quantity != 3 {
		t.Errorf("rolled back quantity = %d, want authoritative 3", rolledBack.Lines[0].Quantity)
	}
	if rolledBack.Lines[0].Optimistic {
		t.Error("rolled back line should not be optimistic")
	}
}

func TestReconciler_ClearsFlagsWhenRefetchFails(t *testing.T) {
	platform := &fakePlatform{
		mutateErr: errors.New("mutation failed"),
		fetchErr:  errors.New("fetch failed"),
	}
	service, reconciler, cleanup := setupReconciler(t, platform)
	defer cleanup()

	sessionID := testSessionID()
	now := time.Now().UTC()
	seedCart(t, service, &SessionCart{
		SessionID:  sessionID,
		PlatformID: "gid://shopify/Cart/abc",
		Lines:      []Line{settledLine("gid://shopify/CartLine/1", "gid://shopify/ProductVariant/11", 3)},
		CreatedAt:  now,
		UpdatedAt:  now,
	})

	_, err := service.Submit(sessionID, &MutationRequest{
		Action: ActionLinesUpdate,
		Inputs: MutationInputs{Lines: []LineInput{{ID: "gid://shopify/CartLine/1", Quantity: 4}}},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	reconciler.process(0, drainJob(t, service, sessionID))

	// Lines must never stay locked: flags clear even without authoritative state.
	settled, _ := service.GetCart(sessionID)
	if len(settled.Lines) != 1 {
		t.Fatalf("expected line to survive, got %d lines", len(settled.Lines))
	}
	if settled.Lines[0].Optimistic {
		t.Error("line should not stay optimistic after failed rollback")
	}
}

func TestReconciler_DropsLocalLinesWhenCreateFails(t *testing.T) {
	platform := &fakePlatform{
		mutateErr: errors.New("cartCreate failed"),
	}
	service, reconciler, cleanup := setupReconciler(t, platform)
	defer cleanup()

	sessionID := testSessionID()
	_, err := service.Submit(sessionID, &MutationRequest{
		Action: ActionLinesAdd,
		Inputs: MutationInputs{
			Lines: []LineInput{{MerchandiseID: "gid://shopify/ProductVariant/11", Quantity: 1}},
		},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	reconciler.process(0, drainJob(t, service, sessionID))

	// A line the platform never confirmed is a pure prediction; it goes away.
	settled, _ := service.GetCart(sessionID)
	if len(settled.Lines) != 0 {
		t.Errorf("expected unconfirmed line to be dropped, got %+v", settled.Lines)
	}
}

func TestReconciler_StartStop(t *testing.T) {
	platform := &fakePlatform{cart: platformCartFixture(1)}
	service, reconciler, cleanup := setupReconciler(t, platform)
	defer cleanup()

	if err := reconciler.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := reconciler.Start(); err == nil {
		t.Error("second Start() should fail")
	}

	sessionID := testSessionID()
	_, err := service.Submit(sessionID, &MutationRequest{
		Action: ActionLinesAdd,
		Inputs: MutationInputs{
			Lines: []LineInput{{MerchandiseID: "gid://shopify/ProductVariant/11", Quantity: 1}},
		},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	// Poll until the workers settle the cart.
	deadline := time.Now().Add(2 * time.Second)
	for {
		settled, err := service.GetCart(sessionID)
		if err == nil && len(settled.Lines) == 1 && !settled.Lines[0].Optimistic {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("cart was not reconciled before the deadline")
		}
		time.Sleep(20 * time.Millisecond)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := reconciler.Stop(ctx); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}
