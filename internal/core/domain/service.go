package domain

import "time"

// ServiceState represents the state of a deployed web service.
type ServiceState string

const (
	ServiceStateTransitioning ServiceState = "TRANSITIONING"
	ServiceStateHealthy       ServiceState = "HEALTHY"
	ServiceStateUnhealthy     ServiceState = "UNHEALTHY"
	ServiceStateFailed        ServiceState = "FAILED"
)

// Terminal reports whether the deployment has settled.
func (s ServiceState) Terminal() bool {
	return s == ServiceStateHealthy || s == ServiceStateFailed
}

// WebService is a container-instance deployment exposing an HTTP scoring
// endpoint.
type WebService struct {
	Name       string            `json:"name"`
	ImageID    string            `json:"image_id"`
	State      ServiceState      `json:"state"`
	ScoringURI string            `json:"scoring_uri"`
	Error      string            `json:"error"`
	Tags       map[string]string `json:"tags"`
	CreatedAt  time.Time         `json:"created_at"`
}

// DeployConfig sizes the container instance hosting a web service.
type DeployConfig struct {
	CPUCores         float64           `json:"cpu_cores"`
	MemoryGB         float64           `json:"memory_gb"`
	EnableMonitoring bool              `json:"enable_monitoring"`
	Tags             map[string]string `json:"tags"`
	Description      string            `json:"description"`
}

// Validate rejects non-positive resource requests.
func (c DeployConfig) Validate() error {
	if c.CPUCores <= 0 || c.MemoryGB <= 0 {
		return ErrInvalidDeployConfig
	}
	return nil
}
