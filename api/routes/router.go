package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hoangsoi/vinashop-backend/api/controllers"
	"github.com/hoangsoi/vinashop-backend/api/middleware"
	authsvc "github.com/hoangsoi/vinashop-backend/internal/auth"
	"github.com/hoangsoi/vinashop-backend/internal/cart"
	checkoutsvc "github.com/hoangsoi/vinashop-backend/internal/checkout"
	"github.com/hoangsoi/vinashop-backend/internal/orders"
	"github.com/hoangsoi/vinashop-backend/internal/products"
	"github.com/hoangsoi/vinashop-backend/internal/stats"
	"github.com/hoangsoi/vinashop-backend/internal/users"
	"github.com/hoangsoi/vinashop-backend/internal/wallet"
	"github.com/hoangsoi/vinashop-backend/pkg/config"
	"github.com/hoangsoi/vinashop-backend/pkg/enums"
	"github.com/hoangsoi/vinashop-backend/pkg/logger"
	"github.com/hoangsoi/vinashop-backend/pkg/metrics"
	"github.com/hoangsoi/vinashop-backend/pkg/redis"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type sessionVerifier interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// Deps bundles everything the router mounts.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      pinger
	Redis   *redis.Client
	Metrics *metrics.HTTPMetrics

	Sessions sessionVerifier

	Auth     authsvc.Service
	Users    users.Service
	Products products.Service
	Cart     cart.Service
	Checkout checkoutsvc.Service
	Orders   orders.Service
	Wallet   wallet.Service
	Stats    stats.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readinessStores(deps)))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, deps.Sessions, logg)).Post("/logout", controllers.AuthLogout(deps.Auth, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductsList(deps.Products, logg))
		r.Get("/{productId}", controllers.ProductsGet(deps.Products, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Route("/me", func(r chi.Router) {
			r.Get("/", controllers.MeProfile(deps.Users, logg))
			r.Patch("/", controllers.MeUpdateProfile(deps.Users, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartList(deps.Cart, logg))
			r.Post("/items", controllers.CartAdd(deps.Cart, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateItem(deps.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Cart, logg))
			r.Delete("/", controllers.CartClear(deps.Cart, logg))
		})

		r.Post("/checkout", controllers.CheckoutPlaceOrder(deps.Checkout, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersListMine(deps.Orders, logg))
			r.Get("/{orderId}", controllers.OrdersGet(deps.Orders, logg))
			r.Post("/{orderId}/cancel", controllers.OrdersCancel(deps.Orders, logg))
		})

		r.Route("/wallet", func(r chi.Router) {
			r.Post("/deposit", controllers.WalletDeposit(deps.Wallet, logg))
			r.Post("/withdraw", controllers.WalletWithdraw(deps.Wallet, logg))
			r.Get("/transactions", controllers.WalletTransactions(deps.Wallet, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireRole(enums.UserRoleAdmin, logg))

		r.Get("/stats", controllers.AdminStats(deps.Stats, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrdersList(deps.Orders, logg))
			r.Patch("/{orderId}/status", controllers.AdminOrderSetStatus(deps.Orders, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminProductsList(deps.Products, logg))
			r.Post("/", controllers.AdminProductCreate(deps.Products, logg))
			r.Patch("/{productId}", controllers.AdminProductUpdate(deps.Products, logg))
			r.Delete("/{productId}", controllers.AdminProductDelete(deps.Products, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.AdminUsersList(deps.Users, logg))
			r.Patch("/{userId}", controllers.AdminUserUpdate(deps.Users, logg))
			r.Post("/{userId}/balance", controllers.AdminAdjustBalance(deps.Wallet, logg))
		})

		r.Get("/transactions", controllers.AdminTransactionsList(deps.Wallet, logg))
	})

	return r
}

func readinessStores(deps Deps) map[string]controllers.Pinger {
	stores := map[string]controllers.Pinger{}
	if deps.DB != nil {
		stores["postgres"] = deps.DB
	}
	if deps.Redis != nil {
		stores["redis"] = deps.Redis
	}
	return stores
}
