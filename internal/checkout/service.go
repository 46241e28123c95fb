package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/orlecare/storefront-backend/internal/cart"
	pkgerrors "github.com/orlecare/storefront-backend/pkg/errors"
	"github.com/orlecare/storefront-backend/pkg/logger"
	"github.com/orlecare/storefront-backend/pkg/metrics"
	"github.com/orlecare/storefront-backend/pkg/money"
)

type orderSubmitter interface {
	Submit(ctx context.Context, payload any) error
}

// OrderPayload is the document posted to the sheet collector. It exists
// only for the duration of one submission attempt and is never stored. The
// item summary flattens the cart into a readable row, e.g.
// "Moisturizing Cream (x2), The Essential Pack (x1)".
type OrderPayload struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	Address   string `json:"address"`
	Email     string `json:"email"`
	CartItems string `json:"cartItems"`
	Subtotal  string `json:"subtotal"`
	Shipping  string `json:"shipping"`
	Total     string `json:"total"`
}

// Confirmation is what the storefront shows after a successful submission.
type Confirmation struct {
	ItemCount  int
	TotalCents int64
}

// Service orchestrates a checkout: validate, snapshot, transmit once,
// reconcile the cart.
type Service interface {
	Submit(ctx context.Context, sessionID string, info CustomerInfo) (*Confirmation, error)
}

type service struct {
	cart      cart.Service
	collector orderSubmitter
	metrics   *metrics.CheckoutMetrics
	logg      *logger.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewService wires the submitter over the cart and collector client.
func NewService(cartSvc cart.Service, collector orderSubmitter, m *metrics.CheckoutMetrics, logg *logger.Logger) (Service, error) {
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if collector == nil {
		return nil, fmt.Errorf("order collector required")
	}
	return &service{
		cart:      cartSvc,
		collector: collector,
		metrics:   m,
		logg:      logg,
		inFlight:  make(map[string]struct{}),
	}, nil
}

// Submit runs the checkout protocol. Validation failures and an empty cart
// abort before any network effect. A transport failure leaves the cart
// untouched so the customer can retry; there is no automatic retry and no
// idempotency key, so a manual retry is a brand-new order to the collector.
func (s *service) Submit(ctx context.Context, sessionID string, info CustomerInfo) (*Confirmation, error) {
	info = info.Normalize()
	if err := ValidateCustomer(info).AsError(); err != nil {
		s.metrics.IncRejected()
		return nil, err
	}

	release, err := s.acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	snap, err := s.cart.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if snap.Empty() {
		s.metrics.IncRejected()
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	payload := buildPayload(info, snap)

	start := time.Now()
	err = s.collector.Submit(ctx, payload)
	s.metrics.ObserveSubmit(err == nil, time.Since(start))
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "checkout.submit_failed", err)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "order submission failed")
	}

	// The collector accepted the order; a failure to clear must not turn
	// the checkout into an error.
	if _, err := s.cart.Clear(ctx, sessionID); err != nil && s.logg != nil {
		s.logg.Error(ctx, "checkout.cart_clear_failed", err)
	}

	if s.logg != nil {
		fields := map[string]any{
			"item_count": snap.ItemCount,
			"total":      money.Amount(snap.TotalCents),
		}
		s.logg.Info(s.logg.WithFields(ctx, fields), "checkout.submitted")
	}

	return &Confirmation{ItemCount: snap.ItemCount, TotalCents: snap.TotalCents}, nil
}

// acquire marks the session's checkout as in flight. A second submission
// while one is pending is refused; the returned release runs on every exit
// path so the guard can never stay held after an attempt concludes.
func (s *service) acquire(sessionID string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[sessionID]; busy {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "a checkout is already in progress")
	}
	s.inFlight[sessionID] = struct{}{}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.inFlight, sessionID)
	}, nil
}

func buildPayload(info CustomerInfo, snap *cart.Snapshot) OrderPayload {
	items := make([]string, 0, len(snap.Lines))
	for _, line := range snap.Lines {
		items = append(items, fmt.Sprintf("%s (x%d)", line.Product.Name, line.Quantity))
	}

	return OrderPayload{
		Name:      info.Name,
		Phone:     info.Phone,
		City:      info.City,
		Address:   info.Address,
		Email:     info.Email,
		CartItems: strings.Join(items, ", "),
		Subtotal:  money.Amount(snap.SubtotalCents),
		Shipping:  money.Amount(snap.ShippingCents),
		Total:     money.Amount(snap.TotalCents),
	}
}
