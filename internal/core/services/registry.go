package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	log "github.com/sirupsen/logrus"

	"model-deploy-service/internal/core/domain"
	"model-deploy-service/internal/core/ports/output"
)

// RegistryService registers exported model files in the workspace model
// registry and opens the local journal row for the run.
type RegistryService struct {
	ws    ports.WorkspaceClient
	store ports.DeploymentStore
}

func NewRegistryService(ws ports.WorkspaceClient, store ports.DeploymentStore) *RegistryService {
	return &RegistryService{ws: ws, store: store}
}

// Register uploads the model file at path and records the returned handle.
// The file is checked locally before any remote call so a missing export
// surfaces as a clear asset error.
func (s *RegistryService) Register(ctx context.Context, path, name string, tags map[string]string, description string) (*domain.Model, *domain.DeploymentRecord, error) {
	if _, err := domain.NewModel(name, path, tags, description); err != nil {
		return nil, nil, err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrAssetNotFound, path)
		}
		return nil, nil, fmt.Errorf("stat model file: %w", err)
	}

	model, err := s.ws.RegisterModel(ctx, path, name, tags, description)
	if err != nil {
		return nil, nil, fmt.Errorf("register model: %w", err)
	}

	log.WithFields(log.Fields{
		"model_id":      model.ID,
		"model_name":    model.Name,
		"model_version": model.Version,
	}).Info("model registered")

	rec := domain.NewDeploymentRecord(model)
	if err := s.store.Create(ctx, rec); err != nil {
		return nil, nil, fmt.Errorf("record registration: %w", err)
	}

	return model, rec, nil
}
