package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"opply/internal/auth"
	buyerctrl "opply/internal/buyer/controller"
	ingredientctrl "opply/internal/ingredient/controller"
	orderctrl "opply/internal/order/controller"
	productctrl "opply/internal/product/controller"
	supplierctrl "opply/internal/supplier/controller"
)

type Controllers struct {
	Buyer      *buyerctrl.BuyerController
	Supplier   *supplierctrl.SupplierController
	Ingredient *ingredientctrl.IngredientController
	Product    *productctrl.ProductController
	Order      *orderctrl.OrderController
}

// NewRouter mounts the API. Collection routes carry a trailing slash to
// stay compatible with clients of the previous version of this service.
func NewRouter(ctrls Controllers, tokens *auth.TokenManager, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login/", ctrls.Buyer.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(tokens, logger))

			r.Get("/buyers/me/", ctrls.Buyer.HandleProfile)

			r.Get("/suppliers/", ctrls.Supplier.HandleList)
			r.Get("/suppliers/{supplierId}/", ctrls.Supplier.HandleGet)
			r.Get("/suppliers/{supplierId}/ingredients/", ctrls.Supplier.HandleListIngredients)

			r.Get("/ingredients/", ctrls.Ingredient.HandleList)

			r.Get("/products/", ctrls.Product.HandleList)
			r.Post("/products/", ctrls.Product.HandleCreate)
			r.Get("/products/{productId}/", ctrls.Product.HandleGet)
			r.Put("/products/{productId}/", ctrls.Product.HandleUpdate)
			r.Delete("/products/{productId}/", ctrls.Product.HandleDelete)

			r.Get("/orders/", ctrls.Order.HandleList)
			r.Post("/orders/", ctrls.Order.HandleCreate)
			r.Get("/orders/{orderId}/", ctrls.Order.HandleGet)
			r.Post("/orders/{orderId}/transition/", ctrls.Order.HandleTransition)
		})
	})

	return r
}
