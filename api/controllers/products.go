package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/orlecare/storefront-backend/api/responses"
	"github.com/orlecare/storefront-backend/internal/catalog"
	pkgerrors "github.com/orlecare/storefront-backend/pkg/errors"
	"github.com/orlecare/storefront-backend/pkg/logger"
	"github.com/orlecare/storefront-backend/pkg/money"
)

const productListPath = "/api/v1/products"

type productSummary struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	Tagline          string   `json:"tagline,omitempty"`
	ShortDescription string   `json:"short_description"`
	Price            string   `json:"price"`
	SalePrice        *string  `json:"sale_price,omitempty"`
	DiscountPercent  int      `json:"discount_percent,omitempty"`
	Images           []string `json:"images"`
	InStock          bool     `json:"in_stock"`
}

type productIngredient struct {
	Name    string `json:"name"`
	Benefit string `json:"benefit"`
}

type productDetail struct {
	productSummary
	FullDescription string              `json:"full_description"`
	Result          string              `json:"result,omitempty"`
	Benefits        []string            `json:"benefits,omitempty"`
	Ingredients     []productIngredient `json:"ingredients,omitempty"`
	HowToUse        string              `json:"how_to_use,omitempty"`
	PackContents    []string            `json:"pack_contents,omitempty"`
	Related         []productSummary    `json:"related"`
}

func newProductSummary(p catalog.Product, currency string) productSummary {
	summary := productSummary{
		ID:               p.ID,
		Name:             p.Name,
		Category:         p.Category,
		Tagline:          p.Tagline,
		ShortDescription: p.ShortDescription,
		Price:            money.Format(p.PriceCents, currency),
		Images:           p.Images,
		InStock:          p.InStock,
	}
	if p.OnSale() {
		formatted := money.Format(*p.SalePriceCents, currency)
		summary.SalePrice = &formatted
		summary.DiscountPercent = money.DiscountPercent(p.PriceCents, *p.SalePriceCents)
	}
	return summary
}

func newProductDetail(p catalog.Product, related []catalog.Product, currency string) productDetail {
	detail := productDetail{
		productSummary:  newProductSummary(p, currency),
		FullDescription: p.FullDescription,
		Result:          p.Result,
		Benefits:        p.Benefits,
		HowToUse:        p.HowToUse,
		PackContents:    p.PackContents,
		Related:         make([]productSummary, 0, len(related)),
	}
	for _, ing := range p.Ingredients {
		detail.Ingredients = append(detail.Ingredients, productIngredient{Name: ing.Name, Benefit: ing.Benefit})
	}
	for _, rel := range related {
		detail.Related = append(detail.Related, newProductSummary(rel, currency))
	}
	return detail
}

// ProductList serves the full catalog.
func ProductList(svc catalog.Service, currency string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		products := svc.List()
		out := make([]productSummary, 0, len(products))
		for _, p := range products {
			out = append(out, newProductSummary(p, currency))
		}
		responses.WriteSuccess(w, out)
	}
}

// ProductDetail serves one product with its related picks. An unknown or
// malformed id falls back to the catalog listing instead of an error page.
func ProductDetail(svc catalog.Service, currency string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		id, err := strconv.Atoi(chi.URLParam(r, "productId"))
		if err != nil {
			http.Redirect(w, r, productListPath, http.StatusSeeOther)
			return
		}

		product, err := svc.GetByID(id)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
				http.Redirect(w, r, productListPath, http.StatusSeeOther)
				return
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductDetail(*product, svc.Related(id, 0), currency))
	}
}
