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

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dataflow-systems/integration-stack/common/config"
	"github.com/dataflow-systems/integration-stack/common/httputil"
	"github.com/dataflow-systems/integration-stack/common/logging"
	"github.com/dataflow-systems/integration-stack/common/messaging/kafka"
	"github.com/dataflow-systems/integration-stack/producer/internal/fetch"
	"github.com/dataflow-systems/integration-stack/producer/internal/publish"
	"github.com/dataflow-systems/integration-stack/producer/internal/runner"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format).
		With(logging.Service("producer"))
	logging.SetDefault(logger)

	logger.Info("starting producers",
		"brokers", cfg.Kafka.BootstrapServers,
		"crm_url", cfg.Producer.CRMAPIURL,
		"inventory_url", cfg.Producer.InventoryAPIURL)

	customerPub := kafka.NewPublisher(cfg.Kafka.BootstrapServers, cfg.Kafka.CustomerTopic)
	defer customerPub.Close()
	inventoryPub := kafka.NewPublisher(cfg.Kafka.BootstrapServers, cfg.Kafka.InventoryTopic)
	defer inventoryPub.Close()

	client := fetch.NewClient(cfg.Producer.CRMAPIURL, cfg.Producer.InventoryAPIURL,
		cfg.Consumer.MaxRetries, cfg.Consumer.RetryDelay, logger)
	feeds := publish.New(customerPub, inventoryPub, logger)

	r := runner.New(client, feeds,
		cfg.Producer.CustomerFetchInterval, cfg.Producer.ProductFetchInterval, logger)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Producer.MetricsPort),
		Handler: mux,
	}
	go func() {
		logger.Info("producer admin endpoint listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Admin server error: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down producers")
	cancel()
	<-done

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("admin server shutdown error", logging.Err(err))
	}

	logger.Info("producers stopped")
}
