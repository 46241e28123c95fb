package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/orlecare/storefront-backend/api/middleware"
	"github.com/orlecare/storefront-backend/api/responses"
	"github.com/orlecare/storefront-backend/api/validators"
	cartsvc "github.com/orlecare/storefront-backend/internal/cart"
	pkgerrors "github.com/orlecare/storefront-backend/pkg/errors"
	"github.com/orlecare/storefront-backend/pkg/logger"
	"github.com/orlecare/storefront-backend/pkg/money"
)

type addItemRequest struct {
	ProductID int `json:"product_id" validate:"required,min=1"`
	// Quantity is optional and defaults to 1, matching the storefront's
	// add-to-cart button.
	Quantity *int `json:"quantity,omitempty" validate:"omitempty,min=1"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type cartLineView struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type cartView struct {
	Items     []cartLineView `json:"items"`
	ItemCount int            `json:"item_count"`
	Subtotal  string         `json:"subtotal"`
	Shipping  string         `json:"shipping"`
	Total     string         `json:"total"`
}

func newCartView(snap *cartsvc.Snapshot, currency string) cartView {
	view := cartView{
		Items:     make([]cartLineView, 0, len(snap.Lines)),
		ItemCount: snap.ItemCount,
		Subtotal:  money.Format(snap.SubtotalCents, currency),
		Shipping:  money.Format(snap.ShippingCents, currency),
		Total:     money.Format(snap.TotalCents, currency),
	}
	for _, line := range snap.Lines {
		view.Items = append(view.Items, cartLineView{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Quantity:  line.Quantity,
			UnitPrice: money.Format(line.UnitPriceCents, currency),
			LineTotal: money.Format(line.LineTotalCents, currency),
		})
	}
	return view
}

// CartFetch returns the session's cart with recomputed totals.
func CartFetch(svc cartsvc.Service, currency string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(snap, currency))
	}
}

// CartAddItem adds a product to the cart, merging with an existing line.
func CartAddItem(svc cartsvc.Service, currency string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		qty := 1
		if payload.Quantity != nil {
			qty = *payload.Quantity
		}

		snap, err := svc.Add(r.Context(), sessionID, payload.ProductID, qty)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newCartView(snap, currency))
	}
}

// CartUpdateQuantity sets a line's quantity; values below 1 clamp to 1.
func CartUpdateQuantity(svc cartsvc.Service, currency string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.UpdateQuantity(r.Context(), sessionID, productID, *payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(snap, currency))
	}
}

// CartRemoveItem removes a product's line. Removing an absent product
// succeeds with the unchanged cart.
func CartRemoveItem(svc cartsvc.Service, currency string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.Remove(r.Context(), sessionID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(snap, currency))
	}
}

// CartClear empties the cart.
func CartClear(svc cartsvc.Service, currency string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.Clear(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(snap, currency))
	}
}

func sessionFromRequest(r *http.Request) (string, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return sessionID, nil
}

func productIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil || id < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
	}
	return id, nil
}
