package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/service"
)

type selectCategoryRequest struct {
	CategoryID *uuid.UUID `json:"category_id"`
}

type Catalog struct {
	catalog *service.Catalog
	logger  *logger.Logger
}

func NewCatalog(catalog *service.Catalog, logger *logger.Logger) *Catalog {
	return &Catalog{catalog: catalog, logger: logger}
}

func (h *Catalog) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.LoadCategories(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Catalog) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.LoadProducts(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Catalog) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.LoadFeatured(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Catalog) Product(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// SelectCategory sets the category filter (null clears it) and returns the
// refetched products.
func (h *Catalog) SelectCategory(w http.ResponseWriter, r *http.Request) {
	var req selectCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, err)
		return
	}

	products, err := h.catalog.SelectCategory(r.Context(), req.CategoryID)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}
