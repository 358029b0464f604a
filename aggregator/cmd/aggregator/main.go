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

	"github.com/dataflow-systems/integration-stack/aggregator/internal/buffer"
	"github.com/dataflow-systems/integration-stack/aggregator/internal/consumer"
	"github.com/dataflow-systems/integration-stack/aggregator/internal/dispatch"
	"github.com/dataflow-systems/integration-stack/aggregator/internal/scheduler"
	"github.com/dataflow-systems/integration-stack/common/config"
	"github.com/dataflow-systems/integration-stack/common/httputil"
	"github.com/dataflow-systems/integration-stack/common/logging"
	"github.com/dataflow-systems/integration-stack/common/messaging/kafka"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format).
		With(logging.Service("aggregator"))
	logging.SetDefault(logger)

	logger.Info("starting aggregator",
		"brokers", cfg.Kafka.BootstrapServers,
		"group_id", cfg.Kafka.GroupID,
		"analytics_url", cfg.Analytics.APIURL,
		"batch_size", cfg.Consumer.BatchSize,
		"cache_size", cfg.Consumer.CacheSize)

	// An unreachable bus is a hard initialization failure; anything after
	// this point degrades to logs instead of exiting.
	source := kafka.NewSource(cfg.Kafka.BootstrapServers, cfg.Kafka.GroupID,
		cfg.Kafka.CustomerTopic, cfg.Kafka.InventoryTopic)

	buf := buffer.New()
	dispatcher := dispatch.New(buf, cfg.Analytics.APIURL, cfg.Analytics.Timeout, logger)
	sched := scheduler.New(cfg.Consumer.FlushInterval, time.Now())

	cons := consumer.New(source, buf, dispatcher, sched,
		cfg.Kafka.CustomerTopic, cfg.Kafka.InventoryTopic, logger)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"state":  cons.State().String(),
		})
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Consumer.MetricsPort),
		Handler: mux,
	}
	go func() {
		logger.Info("aggregator admin endpoint listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Admin server error: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() {
		runErr <- cons.Run(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("received shutdown signal")
		cancel()
		if err := <-runErr; err != nil {
			logger.Error("consumer exited with error", logging.Err(err))
		}
	case err := <-runErr:
		cancel()
		if err != nil {
			log.Fatalf("Consumer failed: %v", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("admin server shutdown error", logging.Err(err))
	}

	logger.Info("aggregator stopped")
}
