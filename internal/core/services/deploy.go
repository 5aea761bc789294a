package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"model-deploy-service/internal/core/domain"
	"model-deploy-service/internal/core/ports/output"
)

// DeployService provisions the container instance and blocks until the web
// service reaches a terminal state.
type DeployService struct {
	ws    ports.WorkspaceClient
	store ports.DeploymentStore
}

func NewDeployService(ws ports.WorkspaceClient, store ports.DeploymentStore) *DeployService {
	return &DeployService{ws: ws, store: store}
}

// Deploy creates the web service from the journal row's image. An empty name
// is derived from the model name and the record ID.
func (s *DeployService) Deploy(ctx context.Context, recordID uuid.UUID, name string, cfg domain.DeployConfig) (*domain.WebService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.store.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if rec.ImageID == "" {
		return nil, domain.ErrImageNotFound
	}

	if name == "" {
		name = fmt.Sprintf("%s-svc-%s", slugify(rec.ModelName), rec.ID.String()[:8])
	}

	svc, err := s.ws.DeployService(ctx, name, rec.ImageID, cfg)
	if err != nil {
		return nil, fmt.Errorf("deploy service: %w", err)
	}

	log.WithFields(log.Fields{
		"service": svc.Name,
		"cpu":     cfg.CPUCores,
		"memory":  cfg.MemoryGB,
	}).Info("deployment submitted, waiting for service")

	svc, err = s.ws.WaitForService(ctx, svc.Name)
	if err != nil {
		return nil, fmt.Errorf("wait for service: %w", err)
	}
	if svc.State == domain.ServiceStateFailed {
		return nil, fmt.Errorf("%w: %s", domain.ErrDeploymentFailed, svc.Error)
	}

	rec.ServiceName = svc.Name
	rec.ScoringURI = svc.ScoringURI
	rec.Stage = domain.StageDeployed
	if err := s.store.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("record deployment: %w", err)
	}

	log.WithFields(log.Fields{
		"service":     svc.Name,
		"scoring_uri": svc.ScoringURI,
	}).Info("service deployed")
	return svc, nil
}

func slugify(name string) string {
	slug := strings.ToLower(name)
	slug = strings.NewReplacer("_", "-", " ", "-", ".", "-").Replace(slug)
	return strings.Trim(slug, "-")
}
