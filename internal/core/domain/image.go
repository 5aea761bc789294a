package domain

import "time"

// BuildStatus represents the state of a remote container image build.
type BuildStatus string

const (
	BuildStatusQueued    BuildStatus = "QUEUED"
	BuildStatusRunning   BuildStatus = "RUNNING"
	BuildStatusSucceeded BuildStatus = "SUCCEEDED"
	BuildStatusFailed    BuildStatus = "FAILED"
)

// Terminal reports whether the build has finished, either way.
func (s BuildStatus) Terminal() bool {
	return s == BuildStatusSucceeded || s == BuildStatusFailed
}

// Image is a handle to a container image built by the workspace from a
// scoring entrypoint and an environment file.
type Image struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Version     int               `json:"version"`
	BuildStatus BuildStatus       `json:"build_status"`
	BuildLogURI string            `json:"build_log_uri"`
	Tags        map[string]string `json:"tags"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ImageSpec describes what the workspace should bake into the image.
type ImageSpec struct {
	Name            string            `json:"name"`
	ModelID         string            `json:"model_id"`
	ExecutionScript string            `json:"execution_script"`
	EnvironmentFile string            `json:"environment_file"`
	Tags            map[string]string `json:"tags"`
	Description     string            `json:"description"`
}

// Validate checks the spec before it is submitted.
func (s ImageSpec) Validate() error {
	if s.Name == "" {
		return ErrInvalidImageName
	}
	if s.ExecutionScript == "" || s.EnvironmentFile == "" {
		return ErrInvalidImageSpec
	}
	return nil
}
