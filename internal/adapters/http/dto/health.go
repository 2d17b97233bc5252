package dto

// Health statuses reported by the probe endpoints.
const (
	HealthOK       = "ok"
	HealthReady    = "ready"
	HealthDegraded = "degraded"
	HealthNotReady = "not_ready"
)

// HealthResponse is the body of /health/live and /health/ready. Checks maps
// each optional sink to "ok" or its error text and is omitted for liveness.
type HealthResponse struct {
	Status string            `json:"status" yaml:"status"`
	Checks map[string]string `json:"checks,omitempty" yaml:"checks,omitempty"`
}
