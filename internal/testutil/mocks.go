package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"model-deploy-service/internal/core/domain"
	"model-deploy-service/internal/core/ports/output"
)

// MockWorkspaceClient is a mock of WorkspaceClient.
type MockWorkspaceClient struct {
	mock.Mock
}

func (m *MockWorkspaceClient) GetWorkspace(ctx context.Context) (*ports.Workspace, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.Workspace), args.Error(1)
}

func (m *MockWorkspaceClient) RegisterModel(ctx context.Context, path, name string, tags map[string]string, description string) (*domain.Model, error) {
	args := m.Called(ctx, path, name, tags, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Model), args.Error(1)
}

func (m *MockWorkspaceClient) DeleteModel(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorkspaceClient) CreateImage(ctx context.Context, spec domain.ImageSpec) (*domain.Image, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Image), args.Error(1)
}

func (m *MockWorkspaceClient) GetImage(ctx context.Context, id string) (*domain.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Image), args.Error(1)
}

func (m *MockWorkspaceClient) WaitForImage(ctx context.Context, id string) (*domain.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Image), args.Error(1)
}

func (m *MockWorkspaceClient) DeleteImage(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorkspaceClient) DeployService(ctx context.Context, name, imageID string, cfg domain.DeployConfig) (*domain.WebService, error) {
	args := m.Called(ctx, name, imageID, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WebService), args.Error(1)
}

func (m *MockWorkspaceClient) GetService(ctx context.Context, name string) (*domain.WebService, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WebService), args.Error(1)
}

func (m *MockWorkspaceClient) WaitForService(ctx context.Context, name string) (*domain.WebService, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WebService), args.Error(1)
}

func (m *MockWorkspaceClient) DeleteService(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// MockDeploymentStore is a mock of DeploymentStore.
type MockDeploymentStore struct {
	mock.Mock
}

func (m *MockDeploymentStore) Create(ctx context.Context, rec *domain.DeploymentRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockDeploymentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.DeploymentRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeploymentRecord), args.Error(1)
}

func (m *MockDeploymentStore) Latest(ctx context.Context) (*domain.DeploymentRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeploymentRecord), args.Error(1)
}

func (m *MockDeploymentStore) List(ctx context.Context) ([]*domain.DeploymentRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DeploymentRecord), args.Error(1)
}

func (m *MockDeploymentStore) Update(ctx context.Context, rec *domain.DeploymentRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
