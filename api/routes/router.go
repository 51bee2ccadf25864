package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agritrade/agritrade-backend/api/controllers"
	"github.com/agritrade/agritrade-backend/api/middleware"
	"github.com/agritrade/agritrade-backend/internal/bids"
	"github.com/agritrade/agritrade-backend/internal/notifications"
	product "github.com/agritrade/agritrade-backend/internal/products"
	"github.com/agritrade/agritrade-backend/pkg/config"
	"github.com/agritrade/agritrade-backend/pkg/db"
	"github.com/agritrade/agritrade-backend/pkg/logger"
	"github.com/agritrade/agritrade-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	bidService bids.Service,
	productService product.Service,
	notificationService notifications.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	// Catalog reads are public; everything that writes or sees party data
	// sits behind auth.
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(productService, logg))
		r.Get("/{productID}", controllers.GetProduct(productService, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/v1/bids", func(r chi.Router) {
			r.Post("/", controllers.PlaceBid(bidService, logg))
			r.Get("/", controllers.ListBids(bidService, logg))
			r.Get("/{bidID}", controllers.GetBid(bidService, logg))
			r.Patch("/{bidID}/status", controllers.UpdateBidStatus(bidService, logg))
		})

		r.Route("/v1/vendor/products", func(r chi.Router) {
			r.Get("/", controllers.VendorListProducts(productService, logg))
			r.Post("/", controllers.VendorCreateProduct(productService, logg))
			r.Patch("/{productID}", controllers.VendorUpdateProduct(productService, logg))
			r.Delete("/{productID}", controllers.VendorDeleteProduct(productService, logg))
		})

		r.Route("/v1/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(notificationService, logg))
			r.Post("/{notificationID}/read", controllers.MarkNotificationRead(notificationService, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(notificationService, logg))
		})
	})

	return r
}
