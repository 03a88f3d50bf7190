package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cleanmart/backend/api/routes"
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
	"github.com/cleanmart/backend/pkg/migrate"
	"github.com/cleanmart/backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "cleanmart-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "api.fatal", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	cache, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer cache.Close()

	conn := dbClient.DB()
	categoryRepo := categories.NewRepository(conn)
	productRepo := products.NewRepository(conn)
	orderRepo := orders.NewRepository(conn)
	customerRepo := customers.NewRepository(conn)

	categorySvc, err := categories.NewService(categoryRepo, logg)
	if err != nil {
		return err
	}
	productSvc, err := products.NewService(productRepo, categoryRepo, logg)
	if err != nil {
		return err
	}
	orderSvc, err := orders.NewService(orderRepo, logg)
	if err != nil {
		return err
	}
	customerSvc, err := customers.NewService(customerRepo, logg)
	if err != nil {
		return err
	}
	checkoutSvc, err := checkout.NewService(productRepo, orderRepo, customerSvc, logg)
	if err != nil {
		return err
	}
	dashboardSvc, err := dashboard.NewService(orderRepo, productRepo, cfg.Catalog.LowStockThreshold, logg)
	if err != nil {
		return err
	}

	var mailSvc mailer.Service
	if cfg.Resend.APIKey != "" {
		mailSvc, err = mailer.NewService(cfg.Resend, logg)
		if err != nil {
			return err
		}
	} else {
		logg.Warn(ctx, "resend api key missing, transactional email disabled")
		mailSvc = mailer.NewDisabled(logg)
	}

	cartStore, err := cart.NewStore(cache, productRepo, cache.CartKey, logg)
	if err != nil {
		return err
	}
	wishlistStore, err := wishlist.NewStore(cache, productRepo, cache.WishlistKey, logg)
	if err != nil {
		return err
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	handler := routes.New(routes.Dependencies{
		Config:     cfg,
		Logger:     logg,
		Database:   dbClient,
		Cache:      cache,
		Metrics:    httpMetrics,
		Categories: categorySvc,
		Products:   productSvc,
		Orders:     orderSvc,
		Checkout:   checkoutSvc,
		Customers:  customerSvc,
		Dashboard:  dashboardSvc,
		Mailer:     mailSvc,
		Cart:       cartStore,
		Wishlist:   wishlistStore,
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "port", cfg.App.Port), "api.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logg.Info(ctx, "api.shutting_down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	return nil
}
