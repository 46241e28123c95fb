// Package catalog serves the static product list the storefront sells from.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/orlecare/storefront-backend/pkg/config"
	pkgerrors "github.com/orlecare/storefront-backend/pkg/errors"
)

//go:embed products.json
var embeddedCatalog []byte

const defaultRelatedLimit = 2

// Service exposes read-only catalog lookups.
type Service interface {
	List() []Product
	GetByID(id int) (*Product, error)
	Related(id, limit int) []Product
}

type service struct {
	products []Product
	byID     map[int]int
}

// NewService loads the catalog from the configured path, falling back to
// the embedded data when no path is set.
func NewService(cfg config.CatalogConfig) (Service, error) {
	raw := embeddedCatalog
	if cfg.Path != "" {
		data, err := os.ReadFile(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("reading catalog file %s: %w", cfg.Path, err)
		}
		raw = data
	}

	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	byID := make(map[int]int, len(products))
	for i, p := range products {
		if err := validateProduct(p); err != nil {
			return nil, err
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %d", p.ID)
		}
		byID[p.ID] = i
	}

	return &service{products: products, byID: byID}, nil
}

func validateProduct(p Product) error {
	if p.ID <= 0 {
		return fmt.Errorf("catalog: product %q has invalid id %d", p.Name, p.ID)
	}
	if p.Name == "" {
		return fmt.Errorf("catalog: product %d has no name", p.ID)
	}
	if p.PriceCents <= 0 {
		return fmt.Errorf("catalog: product %d has invalid price %d", p.ID, p.PriceCents)
	}
	if p.SalePriceCents != nil && *p.SalePriceCents >= p.PriceCents {
		return fmt.Errorf("catalog: product %d sale price %d must undercut base price %d", p.ID, *p.SalePriceCents, p.PriceCents)
	}
	if len(p.Images) == 0 {
		return fmt.Errorf("catalog: product %d has no images", p.ID)
	}
	return nil
}

// List returns every product in catalog order.
func (s *service) List() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// GetByID returns the product or a coded not-found error.
func (s *service) GetByID(id int) (*Product, error) {
	idx, ok := s.byID[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	p := s.products[idx]
	return &p, nil
}

// Related returns up to limit other products, in catalog order.
func (s *service) Related(id, limit int) []Product {
	if limit <= 0 {
		limit = defaultRelatedLimit
	}
	related := make([]Product, 0, limit)
	for _, p := range s.products {
		if p.ID == id {
			continue
		}
		related = append(related, p)
		if len(related) == limit {
			break
		}
	}
	return related
}
