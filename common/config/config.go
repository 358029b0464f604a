// Package config provides centralized configuration for the pipeline
// services. Every option has a default and can be overridden through the
// environment (KAFKA_BOOTSTRAP_SERVERS, CUSTOMER_TOPIC, FLUSH_INTERVAL, ...)
// or an optional YAML file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full configuration surface shared by the aggregator,
// producer and mockapi services.
type Config struct {
	Kafka     KafkaConfig
	Analytics AnalyticsConfig
	Consumer  ConsumerConfig
	Producer  ProducerConfig
	MockAPI   MockAPIConfig
	Logging   LoggingConfig
}

// KafkaConfig holds message bus connection settings.
type KafkaConfig struct {
	BootstrapServers []string
	GroupID          string
	CustomerTopic    string
	InventoryTopic   string
}

// AnalyticsConfig holds the downstream analytics sink settings.
type AnalyticsConfig struct {
	APIURL  string
	Timeout time.Duration
}

// ConsumerConfig holds aggregator processing settings.
//
// BatchSize and CacheSize are accepted but not applied by the core logic.
// MaxRetries and RetryDelay drive the producer's upstream fetch retry only,
// never the analytics dispatch.
type ConsumerConfig struct {
	FlushInterval time.Duration
	BatchSize     int
	MaxRetries    int
	RetryDelay    time.Duration
	CacheSize     int
	MetricsPort   int
}

// ProducerConfig holds the upstream feed settings.
type ProducerConfig struct {
	CRMAPIURL             string
	InventoryAPIURL       string
	CustomerFetchInterval time.Duration
	ProductFetchInterval  time.Duration
	MetricsPort           int
}

// MockAPIConfig holds the mock upstream server settings.
type MockAPIConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the optional file at path plus environment
// variables. Environment variables use the flat key with dots replaced by
// underscores and uppercased, e.g. kafka.group_id => KAFKA_GROUP_ID.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Kafka: KafkaConfig{
			BootstrapServers: splitServers(v.GetString("kafka.bootstrap_servers")),
			GroupID:          v.GetString("kafka.group_id"),
			CustomerTopic:    v.GetString("customer.topic"),
			InventoryTopic:   v.GetString("inventory.topic"),
		},
		Analytics: AnalyticsConfig{
			APIURL:  v.GetString("analytics.api_url"),
			Timeout: v.GetDuration("analytics.timeout"),
		},
		Consumer: ConsumerConfig{
			FlushInterval: v.GetDuration("flush.interval"),
			BatchSize:     v.GetInt("batch.size"),
			MaxRetries:    v.GetInt("max.retries"),
			RetryDelay:    v.GetDuration("retry.delay"),
			CacheSize:     v.GetInt("cache.size"),
			MetricsPort:   v.GetInt("aggregator.port"),
		},
		Producer: ProducerConfig{
			CRMAPIURL:             v.GetString("crm.api_url"),
			InventoryAPIURL:       v.GetString("inventory.api_url"),
			CustomerFetchInterval: v.GetDuration("producer.customer_interval"),
			ProductFetchInterval:  v.GetDuration("producer.product_interval"),
			MetricsPort:           v.GetInt("producer.port"),
		},
		MockAPI: MockAPIConfig{
			Port:         v.GetInt("mockapi.port"),
			ReadTimeout:  v.GetDuration("mockapi.read_timeout"),
			WriteTimeout: v.GetDuration("mockapi.write_timeout"),
			IdleTimeout:  v.GetDuration("mockapi.idle_timeout"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Message bus
	v.SetDefault("kafka.bootstrap_servers", "localhost:9092")
	v.SetDefault("kafka.group_id", "integration-consumers")
	v.SetDefault("customer.topic", "customer_data")
	v.SetDefault("inventory.topic", "inventory_data")

	// Analytics sink
	v.SetDefault("analytics.api_url", "http://localhost:8080")
	v.SetDefault("analytics.timeout", "30s")

	// Aggregator
	v.SetDefault("flush.interval", "60s")
	v.SetDefault("batch.size", 10)
	v.SetDefault("max.retries", 3)
	v.SetDefault("retry.delay", "5s")
	v.SetDefault("cache.size", 10000)
	v.SetDefault("aggregator.port", 9100)

	// Producer
	v.SetDefault("crm.api_url", "http://localhost:8080")
	v.SetDefault("inventory.api_url", "http://localhost:8080")
	v.SetDefault("producer.customer_interval", "30s")
	v.SetDefault("producer.product_interval", "45s")
	v.SetDefault("producer.port", 9101)

	// Mock APIs
	v.SetDefault("mockapi.port", 8080)
	v.SetDefault("mockapi.read_timeout", "15s")
	v.SetDefault("mockapi.write_timeout", "15s")
	v.SetDefault("mockapi.idle_timeout", "60s")

	// Logging
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

func splitServers(s string) []string {
	parts := strings.Split(s, ",")
	servers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			servers = append(servers, p)
		}
	}
	return servers
}
