package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/orlecare/storefront-backend/internal/cart"
	"github.com/orlecare/storefront-backend/internal/catalog"
	pkgerrors "github.com/orlecare/storefront-backend/pkg/errors"
)

type stubCart struct {
	mu      sync.Mutex
	snap    *cart.Snapshot
	getErr  error
	cleared int
}

func (s *stubCart) Get(ctx context.Context, sessionID string) (*cart.Snapshot, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.snap, nil
}

func (s *stubCart) Add(ctx context.Context, sessionID string, productID, qty int) (*cart.Snapshot, error) {
	return s.snap, nil
}

func (s *stubCart) UpdateQuantity(ctx context.Context, sessionID string, productID, qty int) (*cart.Snapshot, error) {
	return s.snap, nil
}

func (s *stubCart) Remove(ctx context.Context, sessionID string, productID int) (*cart.Snapshot, error) {
	return s.snap, nil
}

func (s *stubCart) Clear(ctx context.Context, sessionID string) (*cart.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleared++
	return &cart.Snapshot{}, nil
}

func (s *stubCart) clearCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleared
}

type stubCollector struct {
	mu       sync.Mutex
	err      error
	payloads []OrderPayload
}

func (s *stubCollector) Submit(ctx context.Context, payload any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := payload.(OrderPayload); ok {
		s.payloads = append(s.payloads, p)
	}
	return s.err
}

func (s *stubCollector) submissions() []OrderPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]OrderPayload, len(s.payloads))
	copy(out, s.payloads)
	return out
}

func filledSnapshot() *cart.Snapshot {
	sale := int64(7900)
	return &cart.Snapshot{
		Lines: []cart.SnapshotLine{
			{
				Product:        catalog.Product{ID: 1, Name: "Moisturizing Cream", PriceCents: 4500},
				Quantity:       2,
				UnitPriceCents: 4500,
				LineTotalCents: 9000,
			},
			{
				Product:        catalog.Product{ID: 3, Name: "The Essential Pack", PriceCents: 9000, SalePriceCents: &sale},
				Quantity:       1,
				UnitPriceCents: 7900,
				LineTotalCents: 7900,
			},
		},
		ItemCount:     3,
		SubtotalCents: 16900,
		ShippingCents: 700,
		TotalCents:    17600,
	}
}

func newTestCheckout(t *testing.T, cartSvc cart.Service, collector orderSubmitter) Service {
	t.Helper()
	svc, err := NewService(cartSvc, collector, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func TestSubmitSuccessClearsCart(t *testing.T) {
	t.Parallel()

	cartSvc := &stubCart{snap: filledSnapshot()}
	collector := &stubCollector{}
	svc := newTestCheckout(t, cartSvc, collector)

	conf, err := svc.Submit(context.Background(), "s1", validInfo())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.ItemCount != 3 || conf.TotalCents != 17600 {
		t.Fatalf("unexpected confirmation %+v", conf)
	}
	if cartSvc.clearCount() != 1 {
		t.Fatalf("expected cart cleared once, got %d", cartSvc.clearCount())
	}

	subs := collector.submissions()
	if len(subs) != 1 {
		t.Fatalf("expected one submission, got %d", len(subs))
	}
	payload := subs[0]
	if payload.CartItems != "Moisturizing Cream (x2), The Essential Pack (x1)" {
		t.Fatalf("unexpected item summary %q", payload.CartItems)
	}
	if payload.Subtotal != "169.00" || payload.Shipping != "7.00" || payload.Total != "176.00" {
		t.Fatalf("unexpected totals %+v", payload)
	}
	if payload.Name != "Amel Ben Salah" || payload.Email != "amel@example.com" {
		t.Fatalf("unexpected customer fields %+v", payload)
	}
}

func TestSubmitInvalidFormSkipsNetwork(t *testing.T) {
	t.Parallel()

	cartSvc := &stubCart{snap: filledSnapshot()}
	collector := &stubCollector{}
	svc := newTestCheckout(t, cartSvc, collector)

	info := validInfo()
	info.Email = "a@b"

	_, err := svc.Submit(context.Background(), "s1", info)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(collector.submissions()) != 0 {
		t.Fatal("invalid form must not reach the collector")
	}
	if cartSvc.clearCount() != 0 {
		t.Fatal("invalid form must not clear the cart")
	}
}

func TestSubmitEmptyCartRejected(t *testing.T) {
	t.Parallel()

	cartSvc := &stubCart{snap: &cart.Snapshot{}}
	collector := &stubCollector{}
	svc := newTestCheckout(t, cartSvc, collector)

	_, err := svc.Submit(context.Background(), "s1", validInfo())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for empty cart, got %v", err)
	}
	if len(collector.submissions()) != 0 {
		t.Fatal("empty cart must not reach the collector")
	}
}

func TestSubmitTransportFailureLeavesCart(t *testing.T) {
	t.Parallel()

	cartSvc := &stubCart{snap: filledSnapshot()}
	collector := &stubCollector{err: errors.New("connection reset")}
	svc := newTestCheckout(t, cartSvc, collector)

	_, err := svc.Submit(context.Background(), "s1", validInfo())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if cartSvc.clearCount() != 0 {
		t.Fatal("failed submission must leave the cart untouched")
	}

	// The in-flight guard must be released after a failure so a manual
	// retry can go through.
	collector.mu.Lock()
	collector.err = nil
	collector.mu.Unlock()

	if _, err := svc.Submit(context.Background(), "s1", validInfo()); err != nil {
		t.Fatalf("retry after failure should succeed, got %v", err)
	}
}

type gatedCollector struct {
	entered chan struct{}
	release chan struct{}
}

func (c *gatedCollector) Submit(ctx context.Context, payload any) error {
	c.entered <- struct{}{}
	<-c.release
	return nil
}

func TestSubmitRefusesConcurrentCheckout(t *testing.T) {
	t.Parallel()

	collector := &gatedCollector{
		entered: make(chan struct{}, 2),
		release: make(chan struct{}),
	}
	cartSvc := &stubCart{snap: filledSnapshot()}
	svc := newTestCheckout(t, cartSvc, collector)

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), "s1", validInfo())
		firstDone <- err
	}()

	// The first submission holds the guard once it reaches the collector.
	<-collector.entered

	_, err := svc.Submit(context.Background(), "s1", validInfo())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for concurrent submit, got %v", err)
	}

	// A different session is never blocked by another session's checkout.
	otherDone := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), "s2", validInfo())
		otherDone <- err
	}()
	<-collector.entered

	close(collector.release)
	if err := <-firstDone; err != nil {
		t.Fatalf("first submission should succeed, got %v", err)
	}
	if err := <-otherDone; err != nil {
		t.Fatalf("independent session should submit, got %v", err)
	}
}
