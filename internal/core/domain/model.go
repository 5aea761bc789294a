package domain

import "time"

// Model is a handle to a model registered in the workspace model registry.
// The binary itself lives in the workspace; this carries only identity and
// bookkeeping.
type Model struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Version     int               `json:"version"`
	Path        string            `json:"path"`
	Tags        map[string]string `json:"tags"`
	Description string            `json:"description"`
	CreatedAt   time.Time         `json:"created_at"`
}

// NewModel validates the inputs for a registration request.
func NewModel(name, path string, tags map[string]string, description string) (*Model, error) {
	if name == "" {
		return nil, ErrInvalidModelName
	}
	if path == "" {
		return nil, ErrInvalidModelPath
	}
	if tags == nil {
		tags = map[string]string{}
	}
	return &Model{
		Name:        name,
		Path:        path,
		Tags:        tags,
		Description: description,
	}, nil
}
