package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warmpaws/warmpaws-backend/api/routes"
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
	"github.com/warmpaws/warmpaws-backend/pkg/env"
	"github.com/warmpaws/warmpaws-backend/pkg/logger"
	"github.com/warmpaws/warmpaws-backend/pkg/migrate"
	"github.com/warmpaws/warmpaws-backend/pkg/redis"
	"github.com/warmpaws/warmpaws-backend/pkg/stripe"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := env.Load(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logg := logger.New(cfg.App.LogLevel, !cfg.App.IsProduction())

	dbClient, err := db.Connect(cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer dbClient.Close()

	if cfg.Flags.AutoMigrate {
		sqlDB, err := dbClient.Gorm().DB()
		if err != nil {
			return err
		}
		if err := migrate.Up(context.Background(), sqlDB); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		logg.Info("migrations applied", nil)
	}

	redisClient := redis.Connect(cfg.Redis)
	if err := redisClient.Ping(context.Background()); err != nil {
		logg.Warn("redis unreachable, webhook dedup falls back to database only", map[string]any{
			"addr": cfg.Redis.Addr,
		})
	}

	stripeClient, err := stripe.New(cfg.Stripe)
	if err != nil {
		return fmt.Errorf("configuring stripe: %w", err)
	}

	tokens, err := auth.NewTokenIssuer(cfg.JWT)
	if err != nil {
		return fmt.Errorf("configuring auth: %w", err)
	}

	listingRepo := listings.NewRepo(dbClient)
	userRepo := users.NewRepo(dbClient)
	cartRepo := cart.NewRepo(dbClient)
	orderRepo := orders.NewRepo(dbClient)

	listingSvc, err := listings.NewService(listingRepo)
	if err != nil {
		return err
	}
	userSvc, err := users.NewService(userRepo)
	if err != nil {
		return err
	}
	cartSvc, err := cart.NewService(cartRepo, listingRepo)
	if err != nil {
		return err
	}
	checkoutSvc, err := checkout.NewService(cartRepo, orderRepo, dbClient)
	if err != nil {
		return err
	}
	orderSvc, err := orders.NewService(orderRepo)
	if err != nil {
		return err
	}
	settler, err := payments.NewSettler(orderRepo, listingRepo, dbClient)
	if err != nil {
		return err
	}
	paymentSvc, err := payments.NewService(orderRepo, payments.NewStripeIntentClient(), settler)
	if err != nil {
		return err
	}
	webhookSvc, err := stripewebhooks.NewService(settler, redisClient)
	if err != nil {
		return err
	}

	handler := routes.New(routes.Deps{
		Config:              cfg,
		Logger:              logg,
		DB:                  dbClient,
		Redis:               redisClient,
		Tokens:              tokens,
		Listings:            listingSvc,
		Users:               userSvc,
		Cart:                cartSvc,
		Checkout:            checkoutSvc,
		Orders:              orderSvc,
		Payments:            paymentSvc,
		Webhooks:            webhookSvc,
		StripeSigningSecret: stripeClient.SigningSecret(),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("server listening", map[string]any{"port": cfg.App.Port, "env": cfg.App.Env})
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-stop:
		logg.Info("shutting down", map[string]any{"signal": sig.String()})
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
	}
	return nil
}
