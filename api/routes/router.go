package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warmpaws/warmpaws-backend/api/controllers"
	"github.com/warmpaws/warmpaws-backend/api/controllers/webhooks"
	"github.com/warmpaws/warmpaws-backend/api/middleware"
	"github.com/warmpaws/warmpaws-backend/internal/cart"
	"github.com/warmpaws/warmpaws-backend/internal/checkout"
	"github.com/warmpaws/warmpaws-backend/internal/listings"
	"github.com/warmpaws/warmpaws-backend/internal/orders"
	"github.com/warmpaws/warmpaws-backend/internal/payments"
	"github.com/warmpaws/warmpaws-backend/internal/users"
	stripewebhooks "github.com/warmpaws/warmpaws-backend/internal/webhooks/stripe"
	"github.com/warmpaws/warmpaws-backend/pkg/auth"
	"github.com/warmpaws/warmpaws-backend/pkg/config"
	"github.com/warmpaws/warmpaws-backend/pkg/db"
	"github.com/warmpaws/warmpaws-backend/pkg/enums"
	"github.com/warmpaws/warmpaws-backend/pkg/logger"
	"github.com/warmpaws/warmpaws-backend/pkg/metrics"
	"github.com/warmpaws/warmpaws-backend/pkg/redis"
)

// Deps carries everything the router wires together.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger
	DB     *db.Client
	Redis  *redis.Client
	Tokens *auth.TokenIssuer

	Listings *listings.Service
	Users    *users.Service
	Cart     *cart.Service
	Checkout *checkout.Service
	Orders   *orders.Service
	Payments *payments.Service
	Webhooks *stripewebhooks.Service

	StripeSigningSecret string
}

// New assembles the full HTTP surface.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(d.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.CORS(d.Config.App.CORSOrigins))

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", controllers.Health(d.DB, d.Redis))
		r.Get("/health/live", controllers.Liveness())
		r.Get("/health/ready", controllers.Health(d.DB, d.Redis))

		// Stripe endpoints keep their legacy paths for deployed
		// clients and the Stripe dashboard configuration.
		r.Post("/stripe/webhook", webhooks.Stripe(d.Webhooks, d.StripeSigningSecret))
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(d.Tokens))
			r.Post("/stripe/create-payment-intent", controllers.CreatePaymentIntent(d.Payments))
		})

		r.Route("/v1", func(r chi.Router) {
			r.Get("/listings", controllers.BrowseListings(d.Listings))
			r.Get("/listings/{id}", controllers.GetListing(d.Listings))
			r.Get("/users/{id}", controllers.GetUser(d.Users))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(d.Tokens))

				r.Get("/me", controllers.MyProfile(d.Users))
				r.Put("/me", controllers.UpdateMyProfile(d.Users))

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(enums.UserRoleSeller, enums.UserRoleAdmin))
					r.Post("/listings", controllers.CreateListing(d.Listings))
					r.Put("/listings/{id}", controllers.UpdateListing(d.Listings))
					r.Delete("/listings/{id}", controllers.RemoveListing(d.Listings))
					r.Get("/sellers/me/listings", controllers.MyListings(d.Listings))
					r.Get("/sellers/me/orders", controllers.MySales(d.Orders))
				})

				r.Get("/cart", controllers.GetCart(d.Cart))
				r.Post("/cart/items", controllers.AddToCart(d.Cart))
				r.Put("/cart/items/{listingID}", controllers.UpdateCartItem(d.Cart))
				r.Delete("/cart/items/{listingID}", controllers.RemoveCartItem(d.Cart))
				r.Delete("/cart", controllers.ClearCart(d.Cart))

				r.Post("/checkout", controllers.Checkout(d.Checkout))
				r.Post("/payments/confirm", controllers.ConfirmPayment(d.Payments))

				r.Get("/orders", controllers.MyPurchases(d.Orders))
				r.Get("/orders/{id}", controllers.GetOrder(d.Orders))
				r.Patch("/orders/{id}/status", controllers.UpdateOrderStatus(d.Orders))
			})
		})
	})

	return r
}
