package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/storefront/internal/cart"
	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
	"github.com/dtroode/storefront/internal/store"
)

// StateStore is the client state as driven over HTTP.
type StateStore interface {
	State() store.State
	Subscribe(listener store.Listener) (unsubscribe func())
	AddToCart(product model.Product, quantity int)
	RemoveFromCart(productID uuid.UUID)
	UpdateCartItemQuantity(productID uuid.UUID, quantity int)
	ClearCart()
	ToggleCart()
	ToggleAuthModal()
}

// ProductFinder fetches a fresh product snapshot by slug.
type ProductFinder interface {
	GetProduct(ctx context.Context, slug string) (model.Product, error)
}

type addToCartRequest struct {
	ProductID *uuid.UUID `json:"product_id"`
	Slug      string     `json:"slug"`
	Quantity  *int       `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// State serves the store: its state, change events, cart operations and UI
// toggles.
type State struct {
	store    StateStore
	products ProductFinder
	logger   *logger.Logger
}

func NewState(store StateStore, products ProductFinder, logger *logger.Logger) *State {
	return &State{store: store, products: products, logger: logger}
}

func (h *State) Get(w http.ResponseWriter, _ *http.Request) {
	writeState(w, h.store.State())
}

// Events streams the state as server-sent events: once on connect and again
// after every change. Bursts of changes may be coalesced into the latest
// state.
func (h *State) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		handleError(w, fmt.Errorf("streaming unsupported"))
		return
	}

	updates := make(chan store.State, 1)
	unsubscribe := h.store.Subscribe(func(st store.State) {
		for {
			select {
			case updates <- st:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, h.store.State()); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case st := <-updates:
			if err := writeEvent(w, st); err != nil {
				h.logger.Debug("HTTP events: client went away",
					"error", err.Error())
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, st store.State) error {
	data, err := json.Marshal(newStateResponse(st))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: state\ndata: %s\n\n", data)
	return err
}

// AddToCartItem adds a product by slug (fetched fresh from the catalog) or by
// id (taken from the cached product list).
func (h *State) AddToCartItem(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, err)
		return
	}

	product, err := h.resolveProduct(r.Context(), req)
	if err != nil {
		handleError(w, err)
		return
	}

	quantity := cart.DefaultQuantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	h.store.AddToCart(product, quantity)
	writeState(w, h.store.State())
}

func (h *State) resolveProduct(ctx context.Context, req addToCartRequest) (model.Product, error) {
	if req.Slug != "" {
		return h.products.GetProduct(ctx, req.Slug)
	}
	if req.ProductID == nil {
		return model.Product{}, fmt.Errorf("%w: product_id or slug is required", model.ErrInvalidInput)
	}
	for _, p := range h.store.State().Products {
		if p.ID == *req.ProductID {
			return p, nil
		}
	}
	return model.Product{}, model.ErrNotFound
}

func (h *State) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	var req quantityRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, err)
		return
	}

	h.store.UpdateCartItemQuantity(productID, req.Quantity)
	writeState(w, h.store.State())
}

func (h *State) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	h.store.RemoveFromCart(productID)
	writeState(w, h.store.State())
}

func (h *State) ClearCart(w http.ResponseWriter, _ *http.Request) {
	h.store.ClearCart()
	writeState(w, h.store.State())
}

func (h *State) ToggleCart(w http.ResponseWriter, _ *http.Request) {
	h.store.ToggleCart()
	writeState(w, h.store.State())
}

func (h *State) ToggleAuthModal(w http.ResponseWriter, _ *http.Request) {
	h.store.ToggleAuthModal()
	writeState(w, h.store.State())
}
