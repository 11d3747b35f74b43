package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gameden/gameden-backend/api/controllers"
	"github.com/gameden/gameden-backend/api/middleware"
	cartsvc "github.com/gameden/gameden-backend/internal/cart"
	catalogsvc "github.com/gameden/gameden-backend/internal/catalog"
	storefrontsvc "github.com/gameden/gameden-backend/internal/storefront"
	"github.com/gameden/gameden-backend/pkg/config"
	"github.com/gameden/gameden-backend/pkg/db"
	"github.com/gameden/gameden-backend/pkg/logger"
	"github.com/gameden/gameden-backend/pkg/metrics"
	pkgredis "github.com/gameden/gameden-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	catalogService catalogsvc.Service,
	storefrontService storefrontsvc.Service,
	cartService cartsvc.Service,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(logg))

		r.Route("/items", func(r chi.Router) {
			r.Get("/", controllers.ListItems(catalogService, logg))
			r.Get("/{slug}", controllers.ItemDetail(catalogService, logg))
			r.Get("/{slug}/resolve", controllers.ResolveItemSelection(storefrontService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.Idempotency(redisClient, logg, cfg.Catalog.IdempotencyTTL))
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Delete("/items/{lineItemID}", controllers.CartRemoveItem(cartService, logg))
		})

		r.Route("/admin/items", func(r chi.Router) {
			r.Use(middleware.Idempotency(redisClient, logg, cfg.Catalog.IdempotencyTTL))
			r.Post("/", controllers.AdminCreateItem(catalogService, logg))
			r.Get("/{itemID}", controllers.AdminGetItem(catalogService, logg))
			r.Patch("/{itemID}", controllers.AdminUpdateItem(catalogService, logg))
			r.Delete("/{itemID}", controllers.AdminDeleteItem(catalogService, logg))
		})
	})

	return r
}
