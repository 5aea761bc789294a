package ports

import (
	"context"

	"github.com/google/uuid"

	"model-deploy-service/internal/core/domain"
)

// DeploymentStore is the output port over the local deployment journal.
type DeploymentStore interface {
	Create(ctx context.Context, rec *domain.DeploymentRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DeploymentRecord, error)
	Latest(ctx context.Context) (*domain.DeploymentRecord, error)
	List(ctx context.Context) ([]*domain.DeploymentRecord, error)
	Update(ctx context.Context, rec *domain.DeploymentRecord) error
}
