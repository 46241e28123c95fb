package controllers

import (
	"net/http"

	"github.com/orlecare/storefront-backend/api/responses"
	"github.com/orlecare/storefront-backend/api/validators"
	"github.com/orlecare/storefront-backend/internal/checkout"
	"github.com/orlecare/storefront-backend/pkg/logger"
	"github.com/orlecare/storefront-backend/pkg/money"
)

type checkoutRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

type checkoutConfirmation struct {
	Status    string `json:"status"`
	ItemCount int    `json:"item_count"`
	Total     string `json:"total"`
}

// CheckoutSubmit validates the customer form and forwards the order to the
// collection endpoint. Field-level validation errors come back with per-field
// messages rather than the decoder's generic ones, so the request struct
// carries no validate tags.
func CheckoutSubmit(svc checkout.Service, currency string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		conf, err := svc.Submit(r.Context(), sessionID, checkout.CustomerInfo{
			Name:    payload.Name,
			Phone:   payload.Phone,
			City:    payload.City,
			Address: payload.Address,
			Email:   payload.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, checkoutConfirmation{
			Status:    "confirmed",
			ItemCount: conf.ItemCount,
			Total:     money.Format(conf.TotalCents, currency),
		})
	}
}
