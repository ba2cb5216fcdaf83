package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dtroode/storefront/internal/api/http/handler"
	"github.com/dtroode/storefront/internal/api/http/middleware"
	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
	"github.com/dtroode/storefront/internal/service"
)

// Router wires the HTTP routes of the storefront UI shell.
type Router struct {
	store           handler.StateStore
	authService     *service.Auth
	tokenService    *service.TokenService
	catalogService  *service.Catalog
	checkoutService *service.Checkout
	adminService    *service.Admin
	contextManager  model.ContextManager
	logger          *logger.Logger
}

func New(
	store handler.StateStore,
	authService *service.Auth,
	tokenService *service.TokenService,
	catalogService *service.Catalog,
	checkoutService *service.Checkout,
	adminService *service.Admin,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		store:           store,
		authService:     authService,
		tokenService:    tokenService,
		catalogService:  catalogService,
		checkoutService: checkoutService,
		adminService:    adminService,
		contextManager:  contextManager,
		logger:          logger,
	}
}

// Register builds the handler tree. Everything under /api/admin requires a
// bearer access token.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	m := mux.NewRouter()
	m.Use(logging.Handle)

	api := m.PathPrefix("/api").Subrouter()
	r.registerStateRoutes(api)
	r.registerCatalogRoutes(api)
	r.registerAuthRoutes(api)
	r.registerCheckoutRoutes(api)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authenticate.Handle)
	r.registerAdminRoutes(admin)

	return m
}

func (r *Router) registerStateRoutes(api *mux.Router) {
	h := handler.NewState(r.store, r.catalogService, r.logger)

	api.HandleFunc("/state", h.Get).Methods(http.MethodGet)
	api.HandleFunc("/events", h.Events).Methods(http.MethodGet)

	api.HandleFunc("/cart", h.ClearCart).Methods(http.MethodDelete)
	api.HandleFunc("/cart/items", h.AddToCartItem).Methods(http.MethodPost)
	api.HandleFunc("/cart/items/{id}", h.UpdateCartItem).Methods(http.MethodPatch)
	api.HandleFunc("/cart/items/{id}", h.RemoveCartItem).Methods(http.MethodDelete)

	api.HandleFunc("/ui/cart/toggle", h.ToggleCart).Methods(http.MethodPost)
	api.HandleFunc("/ui/auth-modal/toggle", h.ToggleAuthModal).Methods(http.MethodPost)
}

func (r *Router) registerCatalogRoutes(api *mux.Router) {
	h := handler.NewCatalog(r.catalogService, r.logger)

	api.HandleFunc("/categories", h.Categories).Methods(http.MethodGet)
	api.HandleFunc("/products", h.Products).Methods(http.MethodGet)
	api.HandleFunc("/products/featured", h.Featured).Methods(http.MethodGet)
	api.HandleFunc("/products/{slug}", h.Product).Methods(http.MethodGet)
	api.HandleFunc("/catalog/category", h.SelectCategory).Methods(http.MethodPut)
}

func (r *Router) registerAuthRoutes(api *mux.Router) {
	h := handler.NewAuth(r.authService, r.store, r.logger)

	api.HandleFunc("/auth/signup", h.SignUp).Methods(http.MethodPost)
	api.HandleFunc("/auth/signin", h.SignIn).Methods(http.MethodPost)
	api.HandleFunc("/auth/signout", h.SignOut).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.Refresh).Methods(http.MethodPost)
}

func (r *Router) registerCheckoutRoutes(api *mux.Router) {
	h := handler.NewCheckout(r.checkoutService, r.logger)

	api.HandleFunc("/checkout", h.PlaceOrder).Methods(http.MethodPost)
	api.HandleFunc("/checkout/prefill", h.Prefill).Methods(http.MethodGet)
}

func (r *Router) registerAdminRoutes(admin *mux.Router) {
	h := handler.NewAdmin(r.adminService, r.contextManager, r.logger)

	admin.HandleFunc("/check", h.Check).Methods(http.MethodGet)

	admin.HandleFunc("/orders", h.ListOrders).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}", h.OrderDetails).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}/status", h.UpdateOrderStatus).Methods(http.MethodPatch)

	admin.HandleFunc("/products", h.CreateProduct).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id}", h.UpdateProduct).Methods(http.MethodPut)
	admin.HandleFunc("/products/{id}", h.DeleteProduct).Methods(http.MethodDelete)

	admin.HandleFunc("/categories", h.CreateCategory).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{id}", h.DeleteCategory).Methods(http.MethodDelete)
}
