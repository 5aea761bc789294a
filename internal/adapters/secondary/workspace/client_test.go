package workspace

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-deploy-service/internal/config"
	"model-deploy-service/internal/core/domain"
	"model-deploy-service/internal/core/ports/output"
)

const basePath = "/subscriptions/sub-1/resourceGroups/rg-1/workspaces/ws-1"

func testClient(t *testing.T, handler http.Handler) ports.WorkspaceClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(&config.WorkspaceConfig{
		SubscriptionID: "sub-1",
		ResourceGroup:  "rg-1",
		Region:         "eastus",
		Name:           "ws-1",
		APIBaseURL:     srv.URL,
		APIToken:       "token-1",
		Timeout:        5 * time.Second,
		PollInterval:   time.Millisecond,
		MaxRetries:     0,
	})
	require.NoError(t, err)
	return c
}

func writeTempModel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"m"}`), 0o644))
	return path
}

func TestNewClient_RequiresWorkspaceIdentity(t *testing.T) {
	_, err := NewClient(&config.WorkspaceConfig{SubscriptionID: "sub-1"})
	assert.Error(t, err)
}

func TestGetWorkspace(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, basePath, r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(ports.Workspace{
			SubscriptionID: "sub-1", ResourceGroup: "rg-1", Region: "eastus", Name: "ws-1",
		})
	}))

	ws, err := c.GetWorkspace(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ws-1", ws.Name)
	assert.Equal(t, "eastus", ws.Region)
}

func TestRegisterModel(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, basePath+"/models", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		var meta map[string]any
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("metadata")), &meta))
		assert.Equal(t, "im_classif_resnet", meta["name"])

		file, header, err := r.FormFile("model")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "model.json", header.Filename)

		_ = json.NewEncoder(w).Encode(domain.Model{
			ID: "model-1", Name: "im_classif_resnet", Version: 2, CreatedAt: time.Now(),
		})
	}))

	path := writeTempModel(t)
	model, err := c.RegisterModel(context.Background(), path, "im_classif_resnet",
		map[string]string{"model": "image_classification"}, "demo")
	require.NoError(t, err)
	assert.Equal(t, "model-1", model.ID)
	assert.Equal(t, 2, model.Version)
}

func TestWaitForImage_PollsToCompletion(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, basePath+"/images/img-1", r.URL.Path)
		status := domain.BuildStatusRunning
		if calls.Add(1) >= 3 {
			status = domain.BuildStatusSucceeded
		}
		_ = json.NewEncoder(w).Encode(domain.Image{ID: "img-1", BuildStatus: status})
	}))

	img, err := c.WaitForImage(context.Background(), "img-1")
	require.NoError(t, err)
	assert.Equal(t, domain.BuildStatusSucceeded, img.BuildStatus)
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestWaitForService_ContextCancelled(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(domain.WebService{Name: "svc-1", State: domain.ServiceStateTransitioning})
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.WaitForService(ctx, "svc-1")
	assert.ErrorIs(t, err, domain.ErrDeploymentCancelled)
}

func TestGetService_NotFound(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := c.GetService(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)
}

func TestDeleteModel_NotFound(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	err := c.DeleteModel(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
}

func TestDeployService_SendsConfig(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, basePath+"/services/svc-1", r.URL.Path)

		var req deployRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "img-1", req.ImageID)
		assert.Equal(t, 1.0, req.Config.CPUCores)
		assert.Equal(t, 2.0, req.Config.MemoryGB)

		_ = json.NewEncoder(w).Encode(domain.WebService{Name: "svc-1", State: domain.ServiceStateTransitioning})
	}))

	svc, err := c.DeployService(context.Background(), "svc-1", "img-1",
		domain.DeployConfig{CPUCores: 1, MemoryGB: 2, EnableMonitoring: true})
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceStateTransitioning, svc.State)
}

func TestErrorResponseSurfacesBody(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("quota exceeded"))
	}))

	_, err := c.CreateImage(context.Background(), domain.ImageSpec{Name: "scorer"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}
