package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Telemetry.validate(),
		c.Webhook.validate(),
		c.NATS.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}
	if s.RequestTimeout < 0 {
		errs = append(errs, errors.New("server.request_timeout must not be negative"))
	}
	if s.HealthCheckTimeout < 0 {
		errs = append(errs, errors.New("server.health_check_timeout must not be negative"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

// Validate checks a standalone client configuration, such as one assembled
// from command-line flags. The base URL is required.
func (cl *ClientConfig) Validate() error {
	var errs []error
	if cl.BaseURL == "" {
		errs = append(errs, errors.New("client.base_url must not be empty"))
	} else if err := checkHTTPURL(cl.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("client.base_url: %w", err))
	}
	return errors.Join(append(errs, cl.validate("client"))...)
}

func (cl *ClientConfig) validate(prefix string) error {
	var errs []error

	if cl.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s.timeout must be positive", prefix))
	}
	if cl.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("%s.retry.max_attempts must be >= 1, got %d", prefix, cl.Retry.MaxAttempts))
	}
	if cl.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("%s.retry.multiplier must be positive, got %f", prefix, cl.Retry.Multiplier))
	}
	if cl.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("%s.circuit_breaker.max_failures must be >= 1, got %d",
			prefix, cl.CircuitBreaker.MaxFailures))
	}
	if cl.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("%s.rate_limit.requests_per_second must not be negative", prefix))
	}
	if cl.RateLimit.RequestsPerSecond > 0 && cl.RateLimit.BurstSize < 1 {
		errs = append(errs, fmt.Errorf("%s.rate_limit.burst_size must be >= 1 when rate limiting is enabled", prefix))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}

func (w *WebhookConfig) validate() error {
	if !w.Enabled {
		return nil
	}

	var errs []error

	if len(w.URLs) == 0 {
		errs = append(errs, errors.New("webhook.urls must not be empty when webhook is enabled"))
	}
	for i, u := range w.URLs {
		if err := checkHTTPURL(u); err != nil {
			errs = append(errs, fmt.Errorf("webhook.urls[%d]: %w", i, err))
		}
	}
	if w.QueueSize < 1 {
		errs = append(errs, fmt.Errorf("webhook.queue_size must be >= 1, got %d", w.QueueSize))
	}
	if w.MaxWorkers < 1 {
		errs = append(errs, fmt.Errorf("webhook.max_workers must be >= 1, got %d", w.MaxWorkers))
	}
	errs = append(errs, w.Client.validate("webhook.client"))

	return errors.Join(errs...)
}

func (n *NATSConfig) validate() error {
	if !n.Enabled {
		return nil
	}

	var errs []error

	if n.URL == "" {
		errs = append(errs, errors.New("nats.url must not be empty when nats is enabled"))
	}
	if strings.TrimSpace(n.Subject) == "" {
		errs = append(errs, errors.New("nats.subject must not be empty when nats is enabled"))
	}
	if strings.ContainsAny(n.Subject, "*> \t") {
		errs = append(errs, fmt.Errorf("nats.subject must be a literal subject, got %q", n.Subject))
	}
	if n.ReconnectWait < 0 {
		errs = append(errs, errors.New("nats.reconnect_wait must not be negative"))
	}

	return errors.Join(errs...)
}

func checkHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("host must not be empty, got %q", raw)
	}
	return nil
}
