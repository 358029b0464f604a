package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dataflow-systems/integration-stack/common/config"
	"github.com/dataflow-systems/integration-stack/common/logging"
	"github.com/dataflow-systems/integration-stack/mockapi/internal/data"
	"github.com/dataflow-systems/integration-stack/mockapi/internal/handlers"
	"github.com/dataflow-systems/integration-stack/mockapi/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format).
		With(logging.Service("mockapi"))
	logging.SetDefault(logger)

	customers := data.SeedCustomers(time.Now().UnixNano())
	products := data.SeedProducts(time.Now().UnixNano())
	logger.Info("seeded mock datasets", "customers", customers.Len(), "products", products.Len())

	h := handlers.New(customers, products, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.MockAPI.Port),
		Handler:      server.NewRouter(h),
		ReadTimeout:  cfg.MockAPI.ReadTimeout,
		WriteTimeout: cfg.MockAPI.WriteTimeout,
		IdleTimeout:  cfg.MockAPI.IdleTimeout,
	}

	go func() {
		logger.Info("mock APIs listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down mock APIs")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MockAPI.WriteTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("mock APIs stopped")
}
