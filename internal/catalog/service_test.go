package catalog

import (
	"testing"

	"github.com/orlecare/storefront-backend/pkg/config"
	pkgerrors "github.com/orlecare/storefront-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(config.CatalogConfig{})
	if err != nil {
		t.Fatalf("failed to load embedded catalog: %v", err)
	}
	return svc
}

func TestEmbeddedCatalogLoads(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	products := svc.List()
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	if products[0].ID != 1 || products[0].Name != "Moisturizing Cream" {
		t.Fatalf("unexpected first product %+v", products[0])
	}
}

func TestGetByID(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	p, err := svc.GetByID(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "The Essential Pack" {
		t.Fatalf("unexpected product %+v", p)
	}
	if p.SalePriceCents == nil || *p.SalePriceCents != 7900 {
		t.Fatalf("expected sale price 7900, got %+v", p.SalePriceCents)
	}
}

func TestGetByIDMissReturnsNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	_, err := svc.GetByID(99)
	if err == nil {
		t.Fatal("expected error for unknown product")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestRelatedExcludesCurrentProduct(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	related := svc.Related(1, 2)
	if len(related) != 2 {
		t.Fatalf("expected 2 related products, got %d", len(related))
	}
	for _, p := range related {
		if p.ID == 1 {
			t.Fatalf("related list must not include the current product: %+v", related)
		}
	}
}

func TestRelatedDefaultsLimit(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	if got := len(svc.Related(3, 0)); got != 2 {
		t.Fatalf("expected default limit of 2, got %d", got)
	}
}

func TestEffectivePrice(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	base, _ := svc.GetByID(1)
	if base.EffectivePriceCents() != 4500 {
		t.Fatalf("expected base price for product without sale, got %d", base.EffectivePriceCents())
	}
	if base.OnSale() {
		t.Fatal("product 1 must not report a sale")
	}

	sale, _ := svc.GetByID(3)
	if sale.EffectivePriceCents() != 7900 {
		t.Fatalf("expected sale price 7900, got %d", sale.EffectivePriceCents())
	}
	if !sale.OnSale() {
		t.Fatal("product 3 must report a sale")
	}
}

func TestSaleAboveBaseIsNotEffective(t *testing.T) {
	t.Parallel()

	higher := int64(5000)
	p := Product{ID: 9, Name: "x", PriceCents: 4500, SalePriceCents: &higher}
	if p.OnSale() {
		t.Fatal("sale above base price must not count as a sale")
	}
	if p.EffectivePriceCents() != 4500 {
		t.Fatalf("expected base price, got %d", p.EffectivePriceCents())
	}
}
