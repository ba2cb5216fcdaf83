package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/storefront/internal/model"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantBody   string
	}{
		{err: fmt.Errorf("%w: email is required", model.ErrInvalidInput), wantStatus: http.StatusBadRequest, wantBody: "invalid input: email is required"},
		{err: model.ErrInvalidStatus, wantStatus: http.StatusBadRequest, wantBody: "invalid order status"},
		{err: model.ErrAuthRequired, wantStatus: http.StatusUnauthorized, wantBody: "authentication required"},
		{err: fmt.Errorf("refresh: %w", model.ErrTokenRevoked), wantStatus: http.StatusUnauthorized, wantBody: "authentication required"},
		{err: model.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantBody: "invalid email or password"},
		{err: model.ErrForbidden, wantStatus: http.StatusForbidden, wantBody: "forbidden"},
		{err: fmt.Errorf("get product: %w", model.ErrNotFound), wantStatus: http.StatusNotFound, wantBody: "not found"},
		{err: model.ErrEmailTaken, wantStatus: http.StatusConflict, wantBody: "email is already taken"},
		{err: model.ErrEmptyCart, wantStatus: http.StatusUnprocessableEntity, wantBody: "cart is empty"},
		{err: assert.AnError, wantStatus: http.StatusInternalServerError, wantBody: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body.Error)
		})
	}
}
