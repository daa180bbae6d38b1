package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/verdantly/verdantly-backend/api/controllers"
	"github.com/verdantly/verdantly-backend/api/middleware"
	"github.com/verdantly/verdantly-backend/internal/cart"
	"github.com/verdantly/verdantly-backend/internal/catalog"
	"github.com/verdantly/verdantly-backend/internal/wishlist"
	"github.com/verdantly/verdantly-backend/pkg/config"
	"github.com/verdantly/verdantly-backend/pkg/logger"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Catalog  catalog.Service
	Cart     cart.Service
	Wishlist wishlist.Service
	Pingers  map[string]controllers.Pinger
	Registry *prometheus.Registry
}

// NewRouter wires the storefront API. Health and metrics sit outside the
// session middleware; everything under /api/v1 is session-scoped.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.Pingers))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(deps.Config.Session, deps.Logger))

		r.Get("/products", controllers.ListProducts(deps.Catalog, deps.Logger))
		r.Get("/products/{productId}", controllers.GetProduct(deps.Catalog, deps.Logger))
		r.Get("/shipping-methods", controllers.ListShippingMethods(deps.Catalog, deps.Logger))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.Cart, deps.Logger))
			r.Delete("/", controllers.ClearCart(deps.Cart, deps.Logger))
			r.Post("/items", controllers.AddCartItem(deps.Cart, deps.Logger))
			r.Patch("/items/{productId}", controllers.UpdateCartItem(deps.Cart, deps.Logger))
			r.Delete("/items/{productId}", controllers.RemoveCartItem(deps.Cart, deps.Logger))
			r.Post("/coupon", controllers.ApplyCoupon(deps.Cart, deps.Logger))
			r.Delete("/coupon", controllers.RemoveCoupon(deps.Cart, deps.Logger))
			r.Put("/shipping-method", controllers.SetShippingMethod(deps.Cart, deps.Logger))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.ListWishlist(deps.Wishlist, deps.Logger))
			r.Post("/items", controllers.AddWishlistItem(deps.Wishlist, deps.Logger))
			r.Delete("/items/{productId}", controllers.RemoveWishlistItem(deps.Wishlist, deps.Logger))
		})
	})

	return r
}
