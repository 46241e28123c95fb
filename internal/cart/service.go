package cart

import (
	"context"
	"fmt"

	"github.com/orlecare/storefront-backend/internal/catalog"
	"github.com/orlecare/storefront-backend/pkg/config"
	pkgerrors "github.com/orlecare/storefront-backend/pkg/errors"
)

type productLoader interface {
	GetByID(id int) (*catalog.Product, error)
}

// SnapshotLine is a cart line resolved against the catalog, priced at the
// product's effective unit price.
type SnapshotLine struct {
	Product        catalog.Product
	Quantity       int
	UnitPriceCents int64
	LineTotalCents int64
}

// Snapshot is a point-in-time view of a session's cart with its derived
// aggregates. Totals are pure functions of the lines and the shipping
// constant; they are computed fresh on every call and never stored.
type Snapshot struct {
	Lines         []SnapshotLine
	ItemCount     int
	SubtotalCents int64
	ShippingCents int64
	TotalCents    int64
}

// Empty reports whether the snapshot holds no lines.
func (s Snapshot) Empty() bool {
	return len(s.Lines) == 0
}

// Service exposes the cart operations every storefront surface goes
// through: the badge count, the cart panel, and checkout all read the same
// per-session state.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Snapshot, error)
	Add(ctx context.Context, sessionID string, productID, qty int) (*Snapshot, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID, qty int) (*Snapshot, error)
	Remove(ctx context.Context, sessionID string, productID int) (*Snapshot, error)
	Clear(ctx context.Context, sessionID string) (*Snapshot, error)
}

type service struct {
	store    *Store
	products productLoader
	shipping int64
}

// NewService builds the cart service over the shared store and catalog.
func NewService(store *Store, products productLoader, pricing config.PricingConfig) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if pricing.ShippingCents < 0 {
		return nil, fmt.Errorf("shipping fee cannot be negative")
	}
	return &service{
		store:    store,
		products: products,
		shipping: pricing.ShippingCents,
	}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*Snapshot, error) {
	return s.snapshot(sessionID)
}

func (s *service) Add(ctx context.Context, sessionID string, productID, qty int) (*Snapshot, error) {
	if qty < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}
	product, err := s.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if !product.InStock {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product is out of stock")
	}

	s.store.AddItem(sessionID, product.ID, qty)
	return s.snapshot(sessionID)
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID string, productID, qty int) (*Snapshot, error) {
	s.store.UpdateQuantity(sessionID, productID, qty)
	return s.snapshot(sessionID)
}

func (s *service) Remove(ctx context.Context, sessionID string, productID int) (*Snapshot, error) {
	s.store.RemoveItem(sessionID, productID)
	return s.snapshot(sessionID)
}

func (s *service) Clear(ctx context.Context, sessionID string) (*Snapshot, error) {
	s.store.Clear(sessionID)
	return s.snapshot(sessionID)
}

func (s *service) snapshot(sessionID string) (*Snapshot, error) {
	lines := s.store.Lines(sessionID)

	snap := &Snapshot{Lines: make([]SnapshotLine, 0, len(lines))}
	for _, line := range lines {
		product, err := s.products.GetByID(line.ProductID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cart references unknown product")
		}
		unit := product.EffectivePriceCents()
		lineTotal := unit * int64(line.Quantity)

		snap.Lines = append(snap.Lines, SnapshotLine{
			Product:        *product,
			Quantity:       line.Quantity,
			UnitPriceCents: unit,
			LineTotalCents: lineTotal,
		})
		snap.ItemCount += line.Quantity
		snap.SubtotalCents += lineTotal
	}

	if !snap.Empty() {
		snap.ShippingCents = s.shipping
	}
	snap.TotalCents = snap.SubtotalCents + snap.ShippingCents
	return snap, nil
}
