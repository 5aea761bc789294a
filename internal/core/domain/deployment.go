package domain

import (
	"time"

	"github.com/google/uuid"
)

// DeploymentStage tracks how far through the pipeline a deployment record has
// progressed.
type DeploymentStage string

const (
	StageRegistered DeploymentStage = "REGISTERED"
	StageImageBuilt DeploymentStage = "IMAGE_BUILT"
	StageDeployed   DeploymentStage = "DEPLOYED"
	StageDeleted    DeploymentStage = "DELETED"
)

// DeploymentRecord is the local journal row for one pipeline run. It holds
// the names of the remote resources the run created so status and teardown
// do not depend on re-discovering them.
type DeploymentRecord struct {
	ID          uuid.UUID       `json:"id"`
	ModelID     string          `json:"model_id"`
	ModelName   string          `json:"model_name"`
	ImageID     string          `json:"image_id"`
	ServiceName string          `json:"service_name"`
	ScoringURI  string          `json:"scoring_uri"`
	Stage       DeploymentStage `json:"stage"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewDeploymentRecord starts a journal row at the registration stage.
func NewDeploymentRecord(model *Model) *DeploymentRecord {
	now := time.Now().UTC()
	return &DeploymentRecord{
		ID:        uuid.New(),
		ModelID:   model.ID,
		ModelName: model.Name,
		Stage:     StageRegistered,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
