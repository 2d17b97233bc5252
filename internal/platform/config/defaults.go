package config

const (
	defaultServerPort = 8080

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultWebhookQueueSize  = 64
	defaultWebhookMaxWorkers = 4

	defaultNATSMaxReconnects = 60
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":                 "0.0.0.0",
		"server.port":                 defaultServerPort,
		"server.read_timeout":         "5s",
		"server.write_timeout":        "10s",
		"server.idle_timeout":         "120s",
		"server.request_timeout":      "5s",
		"server.health_check_timeout": "2s",

		"log.level":  "info",
		"log.format": "json",

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "projectboard",

		"webhook.enabled":                                false,
		"webhook.urls":                                   []string{},
		"webhook.queue_size":                             defaultWebhookQueueSize,
		"webhook.max_workers":                            defaultWebhookMaxWorkers,
		"webhook.client.timeout":                         "5s",
		"webhook.client.retry.max_attempts":              defaultRetryMaxAttempts,
		"webhook.client.retry.initial_interval":          "100ms",
		"webhook.client.retry.max_interval":              "2s",
		"webhook.client.retry.multiplier":                defaultRetryMultiplier,
		"webhook.client.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"webhook.client.circuit_breaker.timeout":         "30s",
		"webhook.client.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"webhook.client.rate_limit.requests_per_second":  0,
		"webhook.client.rate_limit.burst_size":           0,

		"nats.enabled":        false,
		"nats.url":            "nats://localhost:4222",
		"nats.subject":        "board.snapshots",
		"nats.client_name":    "projectboard",
		"nats.max_reconnects": defaultNATSMaxReconnects,
		"nats.reconnect_wait": "2s",
	}
}
