package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ubnaturals/express-checkout/api/controllers"
	"github.com/ubnaturals/express-checkout/api/middleware"
	"github.com/ubnaturals/express-checkout/internal/checkout"
	"github.com/ubnaturals/express-checkout/pkg/config"
	"github.com/ubnaturals/express-checkout/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	checkoutService *checkout.Service,
	registry *prometheus.Registry,
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
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", controllers.CreateSession(checkoutService, logg))

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", controllers.GetSession(checkoutService, logg))
			r.Delete("/", controllers.DeleteSession(checkoutService, logg))

			r.Post("/upsells/toggle", controllers.ToggleUpsell(checkoutService, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Post("/edit", controllers.StartCartEdit(checkoutService, logg))
				r.Post("/edit/cancel", controllers.CancelCartEdit(checkoutService, logg))
				r.Post("/edit/save", controllers.SaveCartEdit(checkoutService, logg))
				r.Patch("/items/{itemID}", controllers.UpdateCartItem(checkoutService, logg))
				r.Delete("/items/{itemID}", controllers.RemoveCartItem(checkoutService, logg))
			})

			r.Post("/size", controllers.ChangeBottleSize(checkoutService, logg))

			r.Post("/coupon", controllers.ApplyCoupon(checkoutService, logg))
			r.Delete("/coupon", controllers.RemoveCoupon(checkoutService, logg))

			r.Post("/payment-method", controllers.ChangePaymentMethod(checkoutService, logg))
		})
	})

	return r
}
