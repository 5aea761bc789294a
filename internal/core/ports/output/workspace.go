package ports

import (
	"context"

	"model-deploy-service/internal/core/domain"
)

// Workspace describes the cloud-hosted workspace the management API serves.
type Workspace struct {
	SubscriptionID string `json:"subscription_id"`
	ResourceGroup  string `json:"resource_group"`
	Region         string `json:"region"`
	Name           string `json:"name"`
}

// WorkspaceClient is the output port over the workspace management API. All
// waiting for remote operations is blocking polling bounded by ctx; the
// client performs no orchestration of its own.
type WorkspaceClient interface {
	GetWorkspace(ctx context.Context) (*Workspace, error)

	// Model registry
	RegisterModel(ctx context.Context, path, name string, tags map[string]string, description string) (*domain.Model, error)
	DeleteModel(ctx context.Context, id string) error

	// Container image builds
	CreateImage(ctx context.Context, spec domain.ImageSpec) (*domain.Image, error)
	GetImage(ctx context.Context, id string) (*domain.Image, error)
	WaitForImage(ctx context.Context, id string) (*domain.Image, error)
	DeleteImage(ctx context.Context, id string) error

	// Container-instance web services
	DeployService(ctx context.Context, name, imageID string, cfg domain.DeployConfig) (*domain.WebService, error)
	GetService(ctx context.Context, name string) (*domain.WebService, error)
	WaitForService(ctx context.Context, name string) (*domain.WebService, error)
	DeleteService(ctx context.Context, name string) error
}
