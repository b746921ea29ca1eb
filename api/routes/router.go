package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	checkoutsvc "github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.HTTPMetrics

	// Probes are pinged by the readiness endpoint, keyed by dependency name.
	Probes map[string]controllers.Pinger

	// Registry backs the /metrics scrape endpoint. Nil disables it.
	Registry *prometheus.Registry

	Catalog  catalog.Service
	Cart     cart.Service
	Checkout checkoutsvc.Service
	Orders   orders.Service
}

// NewRouter assembles the storefront's route tree. The effective shopper id
// comes from configuration; handlers never read it from the request.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger
	userID := cfg.Shopper.UserID

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Probes))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(deps.Catalog, logg))
		r.Get("/{id}", controllers.GetProduct(deps.Catalog, logg))
	})

	r.Route("/cart", func(r chi.Router) {
		r.Post("/", controllers.AddToCart(deps.Cart, userID, logg))
		r.Get("/", controllers.GetCart(deps.Cart, userID, logg))
		r.Delete("/{productId}", controllers.RemoveFromCart(deps.Cart, userID, logg))
		r.Patch("/{productId}", controllers.UpdateCartItem(deps.Cart, userID, logg))
	})

	r.Route("/checkout", func(r chi.Router) {
		r.Post("/", controllers.Checkout(deps.Checkout, userID, logg))
		r.Get("/", controllers.GetOrders(deps.Orders, userID, logg))
		r.Get("/{orderId}", controllers.GetOrder(deps.Orders, userID, logg))
	})

	return r
}
