package handler

import (
	"net/http"

	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
	"github.com/dtroode/storefront/internal/service"
)

type statusRequest struct {
	Status model.OrderStatus `json:"status"`
}

type adminCheckResponse struct {
	IsAdmin bool `json:"is_admin"`
}

// Admin serves order and catalog management. Routes are expected behind the
// Authenticate middleware.
type Admin struct {
	admin          *service.Admin
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAdmin(admin *service.Admin, contextManager model.ContextManager, logger *logger.Logger) *Admin {
	return &Admin{admin: admin, contextManager: contextManager, logger: logger}
}

func (h *Admin) currentUser(r *http.Request) *model.User {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		return nil
	}
	return &model.User{ID: userID}
}

func (h *Admin) Check(w http.ResponseWriter, r *http.Request) {
	ok, err := h.admin.IsAdmin(r.Context(), h.currentUser(r))
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adminCheckResponse{IsAdmin: ok})
}

func (h *Admin) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.admin.ListOrders(r.Context(), h.currentUser(r))
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Admin) OrderDetails(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	details, err := h.admin.OrderDetails(r.Context(), h.currentUser(r), orderID)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *Admin) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, err)
		return
	}

	if err := h.admin.UpdateOrderStatus(r.Context(), h.currentUser(r), orderID, req.Status); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Admin) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var params model.ProductParams
	if err := decodeJSON(r, &params); err != nil {
		handleError(w, err)
		return
	}

	product, err := h.admin.CreateProduct(r.Context(), h.currentUser(r), params)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *Admin) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	var params model.ProductParams
	if err := decodeJSON(r, &params); err != nil {
		handleError(w, err)
		return
	}

	product, err := h.admin.UpdateProduct(r.Context(), h.currentUser(r), productID, params)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Admin) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.admin.DeleteProduct(r.Context(), h.currentUser(r), productID); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var params model.CategoryParams
	if err := decodeJSON(r, &params); err != nil {
		handleError(w, err)
		return
	}

	category, err := h.admin.CreateCategory(r.Context(), h.currentUser(r), params)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (h *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.admin.DeleteCategory(r.Context(), h.currentUser(r), categoryID); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
