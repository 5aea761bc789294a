package domain

import "errors"

// ============================================================================
// Registry Errors
// ============================================================================

var (
	ErrModelNotFound    = errors.New("registered model not found")
	ErrInvalidModelName = errors.New("model name is required")
	ErrInvalidModelPath = errors.New("model path is required")
)

// ============================================================================
// Image Build Errors
// ============================================================================

var (
	ErrImageNotFound       = errors.New("container image not found")
	ErrInvalidImageName    = errors.New("image name is required")
	ErrInvalidImageSpec    = errors.New("image spec requires an execution script and an environment file")
	ErrImageBuildFailed    = errors.New("container image build failed")
	ErrImageBuildCancelled = errors.New("container image build cancelled")
)

// ============================================================================
// Deployment Errors
// ============================================================================

var (
	ErrServiceNotFound     = errors.New("web service not found")
	ErrInvalidServiceName  = errors.New("service name is required")
	ErrInvalidDeployConfig = errors.New("deploy config requires positive cpu cores and memory")
	ErrDeploymentFailed    = errors.New("service deployment failed")
	ErrDeploymentCancelled = errors.New("service deployment cancelled")
	ErrServiceNotHealthy   = errors.New("web service is not healthy")
	ErrNothingToTearDown   = errors.New("no deployed resources recorded")
)

// ============================================================================
// Scoring Errors
// ============================================================================

var (
	ErrScoringModelNotLoaded = errors.New("scoring model is not loaded")
	ErrEmptyScoringBatch     = errors.New("scoring request contains no data")
)

// ============================================================================
// Local Asset / State Errors
// ============================================================================

var (
	ErrAssetNotFound  = errors.New("local asset file not found")
	ErrRecordNotFound = errors.New("deployment record not found")
)
