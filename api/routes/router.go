package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cleanmart/backend/api/controllers"
	"github.com/cleanmart/backend/api/middleware"
	"github.com/cleanmart/backend/internal/cart"
	"github.com/cleanmart/backend/internal/categories"
	"github.com/cleanmart/backend/internal/checkout"
	"github.com/cleanmart/backend/internal/customers"
	"github.com/cleanmart/backend/internal/dashboard"
	"github.com/cleanmart/backend/internal/mailer"
	"github.com/cleanmart/backend/internal/orders"
	"github.com/cleanmart/backend/internal/products"
	"github.com/cleanmart/backend/internal/wishlist"
	"github.com/cleanmart/backend/pkg/config"
	"github.com/cleanmart/backend/pkg/db"
	"github.com/cleanmart/backend/pkg/logger"
	"github.com/cleanmart/backend/pkg/metrics"
	"github.com/cleanmart/backend/pkg/redis"
)

// Dependencies carries everything the router needs.
type Dependencies struct {
	Config *config.Config
	Logger *logger.Logger

	Database db.Pinger
	Cache    redis.Pinger
	Metrics  *metrics.HTTPMetrics

	Categories categories.Service
	Products   products.Service
	Orders     orders.Service
	Checkout   checkout.Service
	Customers  customers.Service
	Dashboard  dashboard.Service
	Mailer     mailer.Service
	Cart       *cart.Store
	Wishlist   *wishlist.Store
}

// New assembles the full HTTP surface.
func New(deps Dependencies) http.Handler {
	logg := deps.Logger

	router := chi.NewRouter()
	router.Use(middleware.RequestID(logg))
	router.Use(middleware.Recoverer(logg))
	router.Use(middleware.CORS())
	router.Use(middleware.Logging(logg))
	router.Use(middleware.Metrics(deps.Metrics))
	router.Use(middleware.Session(deps.Config.JWT, logg))

	router.Get("/health/live", controllers.Liveness())
	router.Get("/health/ready", controllers.Readiness(deps.Database, deps.Cache, logg))
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(api chi.Router) {
		api.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(deps.Categories, logg))
			r.Get("/{id}", controllers.GetCategory(deps.Categories, logg))

			r.Group(func(admin chi.Router) {
				admin.Use(middleware.RequireAdmin(logg))
				admin.Post("/", controllers.CreateCategory(deps.Categories, logg))
				admin.Put("/{id}", controllers.UpdateCategory(deps.Categories, logg))
				admin.Delete("/{id}", controllers.DeleteCategory(deps.Categories, logg))
				admin.Post("/{id}/subcategories", controllers.AddSubcategory(deps.Categories, logg))
			})
		})

		api.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Products, logg))
			r.Get("/{id}", controllers.GetProduct(deps.Products, logg))

			r.Group(func(admin chi.Router) {
				admin.Use(middleware.RequireAdmin(logg))
				admin.Post("/", controllers.CreateProduct(deps.Products, logg))
				admin.Put("/{id}", controllers.UpdateProduct(deps.Products, logg))
				admin.Delete("/{id}", controllers.DeleteProduct(deps.Products, logg))
				admin.Post("/duplicate", controllers.DuplicateProduct(deps.Products, logg))
				admin.Get("/sales", controllers.ProductSalesRanking(deps.Products, logg))
			})
		})

		api.Route("/orders", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logg))
			r.Get("/", controllers.ListOrders(deps.Orders, logg))
			r.Get("/{id}", controllers.GetOrder(deps.Orders, logg))
			r.Put("/{id}/status", controllers.UpdateOrderStatus(deps.Orders, logg))
		})

		api.Post("/checkout", controllers.SubmitCheckout(deps.Checkout, deps.Cart, logg))
		api.Post("/send-email", controllers.SendOrderEmail(deps.Mailer, deps.Orders, logg))

		api.Route("/cart", func(r chi.Router) {
			r.Use(middleware.CartToken(logg))
			r.Get("/", controllers.GetCart(deps.Cart, logg))
			r.Post("/items", controllers.AddToCart(deps.Cart, logg))
			r.Put("/items", controllers.UpdateCartQuantity(deps.Cart, logg))
			r.Delete("/items/{productId}", controllers.RemoveFromCart(deps.Cart, logg))
			r.Delete("/", controllers.ClearCart(deps.Cart, logg))
		})

		api.Route("/wishlist", func(r chi.Router) {
			r.Use(middleware.CartToken(logg))
			r.Get("/", controllers.GetWishlist(deps.Wishlist, logg))
			r.Post("/items", controllers.AddToWishlist(deps.Wishlist, logg))
			r.Delete("/items/{productId}", controllers.RemoveFromWishlist(deps.Wishlist, logg))
			r.Delete("/", controllers.ClearWishlist(deps.Wishlist, logg))
		})

		api.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireAdmin(logg))
			admin.Get("/dashboard", controllers.DashboardSummary(deps.Dashboard, logg))
			admin.Get("/customers", controllers.ListCustomers(deps.Customers, logg))
		})
	})

	return router
}
