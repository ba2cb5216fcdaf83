package handler

import (
	"net/http"

	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
	"github.com/dtroode/storefront/internal/service"
)

type Checkout struct {
	checkout *service.Checkout
	logger   *logger.Logger
}

func NewCheckout(checkout *service.Checkout, logger *logger.Logger) *Checkout {
	return &Checkout{checkout: checkout, logger: logger}
}

func (h *Checkout) Prefill(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.checkout.PrefillShipping())
}

func (h *Checkout) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var shipping model.ShippingAddress
	if err := decodeJSON(r, &shipping); err != nil {
		handleError(w, err)
		return
	}

	order, err := h.checkout.PlaceOrder(r.Context(), shipping)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}
