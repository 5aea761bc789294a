package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"model-deploy-service/internal/core/domain"
	"model-deploy-service/internal/core/ports/output"
)

// TeardownService deletes the remote resources a pipeline run created, in
// reverse order of creation. Already-deleted resources are tolerated so the
// command can be re-run after a partial failure.
type TeardownService struct {
	ws    ports.WorkspaceClient
	store ports.DeploymentStore
}

func NewTeardownService(ws ports.WorkspaceClient, store ports.DeploymentStore) *TeardownService {
	return &TeardownService{ws: ws, store: store}
}

// TearDown removes the service, image, and model of the given record and
// marks it deleted.
func (s *TeardownService) TearDown(ctx context.Context, recordID uuid.UUID) error {
	rec, err := s.store.GetByID(ctx, recordID)
	if err != nil {
		return err
	}
	if rec.Stage == domain.StageDeleted {
		return domain.ErrNothingToTearDown
	}

	if rec.ServiceName != "" {
		if err := s.ws.DeleteService(ctx, rec.ServiceName); err != nil && !errors.Is(err, domain.ErrServiceNotFound) {
			return fmt.Errorf("delete service %s: %w", rec.ServiceName, err)
		}
		log.WithField("service", rec.ServiceName).Info("service deleted")
	}
	if rec.ImageID != "" {
		if err := s.ws.DeleteImage(ctx, rec.ImageID); err != nil && !errors.Is(err, domain.ErrImageNotFound) {
			return fmt.Errorf("delete image %s: %w", rec.ImageID, err)
		}
		log.WithField("image_id", rec.ImageID).Info("image deleted")
	}
	if rec.ModelID != "" {
		if err := s.ws.DeleteModel(ctx, rec.ModelID); err != nil && !errors.Is(err, domain.ErrModelNotFound) {
			return fmt.Errorf("delete model %s: %w", rec.ModelID, err)
		}
		log.WithField("model_id", rec.ModelID).Info("model unregistered")
	}

	rec.Stage = domain.StageDeleted
	if err := s.store.Update(ctx, rec); err != nil {
		return fmt.Errorf("record teardown: %w", err)
	}
	return nil
}

// TearDownLatest tears down the most recent run.
func (s *TeardownService) TearDownLatest(ctx context.Context) error {
	rec, err := s.store.Latest(ctx)
	if err != nil {
		return err
	}
	return s.TearDown(ctx, rec.ID)
}
