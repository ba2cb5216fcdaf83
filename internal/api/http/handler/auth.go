package handler

import (
	"net/http"

	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/service"
)

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Auth drives the session provider. Responses carry the resulting store
// state, which the session sync has already updated.
type Auth struct {
	auth   *service.Auth
	store  StateStore
	logger *logger.Logger
}

func NewAuth(auth *service.Auth, store StateStore, logger *logger.Logger) *Auth {
	return &Auth{auth: auth, store: store, logger: logger}
}

func (h *Auth) SignUp(w http.ResponseWriter, r *http.Request) {
	var req service.SignUpParams
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, err)
		return
	}

	if _, err := h.auth.SignUp(r.Context(), req); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newStateResponse(h.store.State()))
}

func (h *Auth) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, err)
		return
	}

	if _, err := h.auth.SignIn(r.Context(), req.Email, req.Password); err != nil {
		handleError(w, err)
		return
	}
	writeState(w, h.store.State())
}

func (h *Auth) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.SignOut(r.Context()); err != nil {
		handleError(w, err)
		return
	}
	writeState(w, h.store.State())
}

func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Refresh(r.Context()); err != nil {
		handleError(w, err)
		return
	}
	writeState(w, h.store.State())
}
