package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"glowcart/internal/cache"
	"glowcart/internal/config"
	"glowcart/internal/db"
	"glowcart/internal/httpserver"
	cartlinerepo "glowcart/internal/repository/cartline"
	orderrepo "glowcart/internal/repository/order"
	productrepo "glowcart/internal/repository/product"
	profilerepo "glowcart/internal/repository/profile"
	tokenrepo "glowcart/internal/repository/token"
	cartsvc "glowcart/internal/service/cart"
	checkoutsvc "glowcart/internal/service/checkout"
	customersvc "glowcart/internal/service/customer"
	productsvc "glowcart/internal/service/product"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var catalog cache.Catalog = cache.NoopCatalog{}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatalf("connect to redis: %v", err)
		}
		defer client.Close()
		catalog = cache.NewRedisCatalog(client)
	}

	productRepo := productrepo.NewPostgres(dbpool, logger)
	productService := productsvc.New(productRepo, catalog, logger)

	cartLineRepo := cartlinerepo.NewPostgres(dbpool, logger)
	cartService := cartsvc.New(cartLineRepo, logger)

	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	rules := checkoutsvc.Rules{
		TaxRate:               cfg.TaxRate,
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		ShippingFlatFee:       cfg.ShippingFlatFee,
	}
	checkoutService := checkoutsvc.New(cartService, orderRepo, rules, logger)

	profileRepo := profilerepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	customerService := customersvc.New(profileRepo, tokenRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		ProductSvc:   productService,
		CartSvc:      cartService,
		CheckoutSvc:  checkoutService,
		CustomerSvc:  customerService,
		AdminPasskey: cfg.AdminPasskey,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
