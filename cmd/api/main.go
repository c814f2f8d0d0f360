package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/mux"

	addressapp "github.com/ecocart/storefront/internal/address/app"
	addresshttp "github.com/ecocart/storefront/internal/address/httpapi"
	"github.com/ecocart/storefront/internal/address/infra/nominatim"
	addresspg "github.com/ecocart/storefront/internal/address/infra/postgres"
	cartapp "github.com/ecocart/storefront/internal/cart/app"
	carthttp "github.com/ecocart/storefront/internal/cart/httpapi"
	"github.com/ecocart/storefront/internal/cart/infra/snapshot"
	catalogapp "github.com/ecocart/storefront/internal/catalog/app"
	cataloghttp "github.com/ecocart/storefront/internal/catalog/httpapi"
	catalogpg "github.com/ecocart/storefront/internal/catalog/infra/postgres"
	checkoutapp "github.com/ecocart/storefront/internal/checkout/app"
	checkouthttp "github.com/ecocart/storefront/internal/checkout/httpapi"
	"github.com/ecocart/storefront/internal/checkout/infra/adapter"
	identityhttp "github.com/ecocart/storefront/internal/identity/httpapi"
	identityrest "github.com/ecocart/storefront/internal/identity/infra/rest"
	orderapp "github.com/ecocart/storefront/internal/order/app"
	orderhttp "github.com/ecocart/storefront/internal/order/httpapi"
	orderpg "github.com/ecocart/storefront/internal/order/infra/postgres"
	stockapp "github.com/ecocart/storefront/internal/stock/app"
	stockpg "github.com/ecocart/storefront/internal/stock/infra/postgres"
	"github.com/ecocart/storefront/pkg/config"
	"github.com/ecocart/storefront/pkg/logger"
	"github.com/ecocart/storefront/pkg/postgres"
	"github.com/ecocart/storefront/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	root := context.Background()
	ctx, cancel := shutdown.WithSignals(root)
	defer cancel()

	pool, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres connect failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := catalogpg.EnsureSchema(ctx, pool); err != nil {
		log.Error("catalog schema failed", slog.Any("err", err))
		os.Exit(1)
	}
	if err := orderpg.EnsureSchema(ctx, pool); err != nil {
		log.Error("order schema failed", slog.Any("err", err))
		os.Exit(1)
	}
	if err := addresspg.EnsureSchema(ctx, pool); err != nil {
		log.Error("profile schema failed", slog.Any("err", err))
		os.Exit(1)
	}
	if err := catalogpg.Seed(ctx, pool); err != nil {
		log.Error("catalog seed failed", slog.Any("err", err))
		os.Exit(1)
	}

	catalog := catalogapp.NewService(catalogpg.NewProductRepo(pool))
	stock := stockapp.NewReconciler(stockpg.NewStockStore(pool), log)
	cart := cartapp.NewStore(snapshot.NewFileStore(cfg.CartSnapshotPath), log)

	identity := identityrest.NewClient(cfg.IdentityURL)

	lookup := addressapp.NewDebounced(nominatim.NewClient(cfg.NominatimURL), cfg.AddressDebounce)
	addresses := addressapp.NewService(lookup, addresspg.NewProfileStore(pool))

	orders := orderapp.NewSubmitter(orderpg.NewOrderRepo(pool), stock, cart, log)

	gate := checkoutapp.NewGate(
		adapter.NewCartStoreReader(cart),
		adapter.NewIdentityReader(identity),
		adapter.NewAddressServiceReader(addresses),
		adapter.NewOrderServiceSubmitter(orders),
		log,
	)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.HandleFunc("/readyz", func(w http.ResponseWriter, req *http.Request) {
		if err := pool.Ping(req.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	cataloghttp.NewHandler(catalog, log).Register(r)
	carthttp.NewHandler(cart, catalog, stock, log).Register(r)
	identityhttp.NewHandler(identity, log).Register(r)
	addresshttp.NewHandler(addresses, identity, log).Register(r)
	checkouthttp.NewHandler(gate, log).Register(r)
	orderhttp.NewHandler(orders, identity, log).Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}
