package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"model-deploy-service/internal/core/domain"
	"model-deploy-service/internal/core/ports/output"
)

// ImageService submits container image builds and blocks until the workspace
// finishes them.
type ImageService struct {
	ws    ports.WorkspaceClient
	store ports.DeploymentStore
}

func NewImageService(ws ports.WorkspaceClient, store ports.DeploymentStore) *ImageService {
	return &ImageService{ws: ws, store: store}
}

// Build validates the spec, submits the build, and waits for a terminal
// status. A failed build surfaces the build-log URI so the caller has
// somewhere to look.
func (s *ImageService) Build(ctx context.Context, recordID uuid.UUID, spec domain.ImageSpec) (*domain.Image, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	for _, path := range []string{spec.ExecutionScript, spec.EnvironmentFile} {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", domain.ErrAssetNotFound, path)
			}
			return nil, fmt.Errorf("stat image asset: %w", err)
		}
	}

	rec, err := s.store.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if spec.ModelID == "" {
		spec.ModelID = rec.ModelID
	}

	img, err := s.ws.CreateImage(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("create image: %w", err)
	}

	log.WithFields(log.Fields{
		"image_id":   img.ID,
		"image_name": img.Name,
	}).Info("image build submitted, waiting for completion")

	img, err = s.ws.WaitForImage(ctx, img.ID)
	if err != nil {
		return nil, fmt.Errorf("wait for image build: %w", err)
	}
	if img.BuildStatus == domain.BuildStatusFailed {
		return nil, fmt.Errorf("%w: build log at %s", domain.ErrImageBuildFailed, img.BuildLogURI)
	}

	rec.ImageID = img.ID
	rec.Stage = domain.StageImageBuilt
	if err := s.store.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("record image build: %w", err)
	}

	log.WithField("image_id", img.ID).Info("image build succeeded")
	return img, nil
}
