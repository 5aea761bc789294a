package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"model-deploy-service/internal/core/domain"
	"model-deploy-service/internal/testutil"
)

func deployedRecord() *domain.DeploymentRecord {
	return &domain.DeploymentRecord{
		ID:          uuid.New(),
		ModelID:     "model-1",
		ModelName:   "m",
		ImageID:     "img-1",
		ServiceName: "svc-1",
		Stage:       domain.StageDeployed,
	}
}

func TestTeardownService_TearDown(t *testing.T) {
	ws := new(testutil.MockWorkspaceClient)
	store := new(testutil.MockDeploymentStore)
	svc := NewTeardownService(ws, store)

	rec := deployedRecord()
	store.On("GetByID", mock.Anything, rec.ID).Return(rec, nil)
	ws.On("DeleteService", mock.Anything, "svc-1").Return(nil)
	ws.On("DeleteImage", mock.Anything, "img-1").Return(nil)
	ws.On("DeleteModel", mock.Anything, "model-1").Return(nil)
	store.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.DeploymentRecord) bool {
		return r.Stage == domain.StageDeleted
	})).Return(nil)

	require.NoError(t, svc.TearDown(context.Background(), rec.ID))
	ws.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestTeardownService_TearDown_ToleratesMissingRemotes(t *testing.T) {
	ws := new(testutil.MockWorkspaceClient)
	store := new(testutil.MockDeploymentStore)
	svc := NewTeardownService(ws, store)

	rec := deployedRecord()
	store.On("GetByID", mock.Anything, rec.ID).Return(rec, nil)
	ws.On("DeleteService", mock.Anything, "svc-1").Return(domain.ErrServiceNotFound)
	ws.On("DeleteImage", mock.Anything, "img-1").Return(domain.ErrImageNotFound)
	ws.On("DeleteModel", mock.Anything, "model-1").Return(domain.ErrModelNotFound)
	store.On("Update", mock.Anything, mock.Anything).Return(nil)

	assert.NoError(t, svc.TearDown(context.Background(), rec.ID))
}

func TestTeardownService_TearDown_AlreadyDeleted(t *testing.T) {
	ws := new(testutil.MockWorkspaceClient)
	store := new(testutil.MockDeploymentStore)
	svc := NewTeardownService(ws, store)

	rec := deployedRecord()
	rec.Stage = domain.StageDeleted
	store.On("GetByID", mock.Anything, rec.ID).Return(rec, nil)

	err := svc.TearDown(context.Background(), rec.ID)
	assert.ErrorIs(t, err, domain.ErrNothingToTearDown)
}

func TestTeardownService_TearDown_ServiceDeleteFails(t *testing.T) {
	ws := new(testutil.MockWorkspaceClient)
	store := new(testutil.MockDeploymentStore)
	svc := NewTeardownService(ws, store)

	rec := deployedRecord()
	store.On("GetByID", mock.Anything, rec.ID).Return(rec, nil)
	ws.On("DeleteService", mock.Anything, "svc-1").Return(assert.AnError)

	err := svc.TearDown(context.Background(), rec.ID)
	assert.ErrorIs(t, err, assert.AnError)
	ws.AssertNotCalled(t, "DeleteImage", mock.Anything, mock.Anything)
}

func TestTeardownService_TearDownLatest(t *testing.T) {
	ws := new(testutil.MockWorkspaceClient)
	store := new(testutil.MockDeploymentStore)
	svc := NewTeardownService(ws, store)

	rec := deployedRecord()
	store.On("Latest", mock.Anything).Return(rec, nil)
	store.On("GetByID", mock.Anything, rec.ID).Return(rec, nil)
	ws.On("DeleteService", mock.Anything, "svc-1").Return(nil)
	ws.On("DeleteImage", mock.Anything, "img-1").Return(nil)
	ws.On("DeleteModel", mock.Anything, "model-1").Return(nil)
	store.On("Update", mock.Anything, mock.Anything).Return(nil)

	assert.NoError(t, svc.TearDownLatest(context.Background()))
}
