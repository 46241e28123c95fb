package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orlecare/storefront-backend/api/controllers"
	"github.com/orlecare/storefront-backend/api/middleware"
	cartsvc "github.com/orlecare/storefront-backend/internal/cart"
	"github.com/orlecare/storefront-backend/internal/catalog"
	checkoutsvc "github.com/orlecare/storefront-backend/internal/checkout"
	"github.com/orlecare/storefront-backend/pkg/config"
	"github.com/orlecare/storefront-backend/pkg/logger"
)

// NewRouter wires the storefront's HTTP surface. All cart and checkout
// routes run behind the Session middleware so handlers can rely on a
// session id being present.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	catalogService catalog.Service,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	currency := cfg.Pricing.Currency

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, len(catalogService.List())))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ProductList(catalogService, currency, logg))
		r.Get("/products/{productId}", controllers.ProductDetail(catalogService, currency, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(cartService, currency, logg))
				r.Delete("/", controllers.CartClear(cartService, currency, logg))
				r.Post("/items", controllers.CartAddItem(cartService, currency, logg))
				r.Patch("/items/{productId}", controllers.CartUpdateQuantity(cartService, currency, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(cartService, currency, logg))
			})

			r.Post("/checkout", controllers.CheckoutSubmit(checkoutService, currency, logg))
		})
	})

	return r
}
