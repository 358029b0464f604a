package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.BootstrapServers)
	assert.Equal(t, "integration-consumers", cfg.Kafka.GroupID)
	assert.Equal(t, "customer_data", cfg.Kafka.CustomerTopic)
	assert.Equal(t, "inventory_data", cfg.Kafka.InventoryTopic)
	assert.Equal(t, "http://localhost:8080", cfg.Analytics.APIURL)
	assert.Equal(t, 30*time.Second, cfg.Analytics.Timeout)
	assert.Equal(t, 60*time.Second, cfg.Consumer.FlushInterval)
	assert.Equal(t, 10, cfg.Consumer.BatchSize)
	assert.Equal(t, 3, cfg.Consumer.MaxRetries)
	assert.Equal(t, 5*time.Second, cfg.Consumer.RetryDelay)
	assert.Equal(t, 10000, cfg.Consumer.CacheSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 8080, cfg.MockAPI.Port)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("KAFKA_GROUP_ID", "staging-consumers")
	t.Setenv("CUSTOMER_TOPIC", "customers.v2")
	t.Setenv("INVENTORY_TOPIC", "inventory.v2")
	t.Setenv("ANALYTICS_API_URL", "http://analytics:9000")
	t.Setenv("FLUSH_INTERVAL", "90s")
	t.Setenv("MAX_RETRIES", "7")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.BootstrapServers)
	assert.Equal(t, "staging-consumers", cfg.Kafka.GroupID)
	assert.Equal(t, "customers.v2", cfg.Kafka.CustomerTopic)
	assert.Equal(t, "inventory.v2", cfg.Kafka.InventoryTopic)
	assert.Equal(t, "http://analytics:9000", cfg.Analytics.APIURL)
	assert.Equal(t, 90*time.Second, cfg.Consumer.FlushInterval)
	assert.Equal(t, 7, cfg.Consumer.MaxRetries)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}
