package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/dtroode/storefront/internal/model"
	"github.com/dtroode/storefront/internal/store"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// stateResponse is the store state plus its derived values.
type stateResponse struct {
	store.State
	CartTotal      decimal.Decimal `json:"cartTotal"`
	CartItemsCount int             `json:"cartItemsCount"`
}

func newStateResponse(st store.State) stateResponse {
	if st.CartItems == nil {
		st.CartItems = []model.CartItem{}
	}
	return stateResponse{
		State:          st,
		CartTotal:      st.CartTotal(),
		CartItemsCount: st.CartItemsCount(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeState(w http.ResponseWriter, st store.State) {
	writeJSON(w, http.StatusOK, newStateResponse(st))
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body: %s", model.ErrInvalidInput, err.Error())
	}
	return nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad %s", model.ErrInvalidInput, name)
	}
	return id, nil
}

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, model.ErrInvalidStatus):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: model.ErrInvalidStatus.Error()})
	case errors.Is(err, model.ErrAuthRequired),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenRevoked),
		errors.Is(err, model.ErrTokenMismatch):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: model.ErrAuthRequired.Error()})
	case errors.Is(err, model.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: model.ErrInvalidCredentials.Error()})
	case errors.Is(err, model.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: model.ErrForbidden.Error()})
	case errors.Is(err, model.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: model.ErrNotFound.Error()})
	case errors.Is(err, model.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, errorResponse{Error: model.ErrEmailTaken.Error()})
	case errors.Is(err, model.ErrEmptyCart):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: model.ErrEmptyCart.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
