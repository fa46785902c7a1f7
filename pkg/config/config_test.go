package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "GOOGLE_PROJECT_ID", "FIREBASE_CREDENTIALS", "PUBSUB_TOPIC", "PUBSUB_SUBSCRIPTION",
		"PUBSUB_MAX_OUTSTANDING", "INGRESS_JWT_SECRET", "LOG_LEVEL", "LOG_ENCODING", "LOG_OUTPUT", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.PubSubTopic)
	assert.Empty(t, cfg.PubSubSubscription)
	assert.Equal(t, 10, cfg.PubSubMaxOutstanding)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogEncoding)
	assert.Equal(t, []string{"stdout"}, cfg.LogOutputs)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_SubscriptionFollowsTopic(t *testing.T) {
	t.Setenv("PUBSUB_TOPIC", "message-created")
	t.Setenv("PUBSUB_SUBSCRIPTION", "")

	cfg := Load()

	assert.Equal(t, "message-created-sub", cfg.PubSubSubscription)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PUBSUB_TOPIC", "message-created")
	t.Setenv("PUBSUB_SUBSCRIPTION", "notifier")
	t.Setenv("PUBSUB_MAX_OUTSTANDING", "3")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")
	t.Setenv("LOG_OUTPUT", "stdout, /var/log/notifier.log")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "notifier", cfg.PubSubSubscription)
	assert.Equal(t, 3, cfg.PubSubMaxOutstanding)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"stdout", "/var/log/notifier.log"}, cfg.LogOutputs)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PUBSUB_MAX_OUTSTANDING", "many")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 10, cfg.PubSubMaxOutstanding)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_NonPositiveShutdownTimeoutFallsBack(t *testing.T) {
	for _, value := range []string{"0s", "-5s"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("SHUTDOWN_TIMEOUT", value)

			cfg := Load()

			assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
		})
	}
}
