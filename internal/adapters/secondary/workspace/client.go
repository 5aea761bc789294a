package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	log "github.com/sirupsen/logrus"

	"model-deploy-service/internal/config"
	"model-deploy-service/internal/core/domain"
	"model-deploy-service/internal/core/ports/output"
)

// client talks to the workspace management API. Transient transport failures
// are retried by retryablehttp; anything longer-lived is the caller's
// problem.
type client struct {
	httpClient   *http.Client
	baseURL      string
	token        string
	pollInterval time.Duration
}

// NewClient creates a workspace management-API client adapter.
func NewClient(cfg *config.WorkspaceConfig) (ports.WorkspaceClient, error) {
	if cfg.SubscriptionID == "" || cfg.ResourceGroup == "" || cfg.Name == "" {
		return nil, fmt.Errorf("workspace config requires subscription id, resource group, and workspace name")
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.MaxRetries
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.Logger = nil

	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}

	base := fmt.Sprintf("%s/subscriptions/%s/resourceGroups/%s/workspaces/%s",
		cfg.APIBaseURL, cfg.SubscriptionID, cfg.ResourceGroup, cfg.Name)

	return &client{
		httpClient:   rc.StandardClient(),
		baseURL:      base,
		token:        cfg.APIToken,
		pollInterval: pollInterval,
	}, nil
}

func (c *client) GetWorkspace(ctx context.Context) (*ports.Workspace, error) {
	var ws ports.Workspace
	if err := c.doJSON(ctx, http.MethodGet, "", nil, &ws, nil); err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	return &ws, nil
}

func (c *client) RegisterModel(ctx context.Context, path, name string, tags map[string]string, description string) (*domain.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model file: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	meta, err := json.Marshal(map[string]any{
		"name":        name,
		"tags":        tags,
		"description": description,
	})
	if err != nil {
		return nil, fmt.Errorf("encode model metadata: %w", err)
	}
	if err := mw.WriteField("metadata", string(meta)); err != nil {
		return nil, fmt.Errorf("write model metadata: %w", err)
	}

	fw, err := mw.CreateFormFile("model", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("create model form file: %w", err)
	}
	if _, err := io.Copy(fw, f); err != nil {
		return nil, fmt.Errorf("copy model file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/models", &body)
	if err != nil {
		return nil, fmt.Errorf("create register request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("register model: %w", err)
	}
	defer resp.Body.Close()

	var model domain.Model
	if err := c.decodeResponse(resp, &model, nil); err != nil {
		return nil, fmt.Errorf("register model: %w", err)
	}

	log.WithFields(log.Fields{
		"model_id": model.ID,
		"version":  model.Version,
	}).Debug("registry accepted model upload")
	return &model, nil
}

func (c *client) DeleteModel(ctx context.Context, id string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/models/"+id, nil, nil, domain.ErrModelNotFound); err != nil {
		return fmt.Errorf("delete model: %w", err)
	}
	return nil
}

func (c *client) CreateImage(ctx context.Context, spec domain.ImageSpec) (*domain.Image, error) {
	var img domain.Image
	if err := c.doJSON(ctx, http.MethodPost, "/images", spec, &img, nil); err != nil {
		return nil, fmt.Errorf("create image: %w", err)
	}
	return &img, nil
}

func (c *client) GetImage(ctx context.Context, id string) (*domain.Image, error) {
	var img domain.Image
	if err := c.doJSON(ctx, http.MethodGet, "/images/"+id, nil, &img, domain.ErrImageNotFound); err != nil {
		return nil, fmt.Errorf("get image: %w", err)
	}
	return &img, nil
}

// WaitForImage polls the build until it reaches a terminal status or ctx is
// done.
func (c *client) WaitForImage(ctx context.Context, id string) (*domain.Image, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		img, err := c.GetImage(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrImageBuildCancelled, ctx.Err())
			}
			return nil, err
		}
		if img.BuildStatus.Terminal() {
			return img, nil
		}
		log.WithFields(log.Fields{
			"image_id": id,
			"status":   img.BuildStatus,
		}).Debug("image build in progress")

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", domain.ErrImageBuildCancelled, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *client) DeleteImage(ctx context.Context, id string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/images/"+id, nil, nil, domain.ErrImageNotFound); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

type deployRequest struct {
	ImageID string              `json:"image_id"`
	Config  domain.DeployConfig `json:"config"`
}

func (c *client) DeployService(ctx context.Context, name, imageID string, cfg domain.DeployConfig) (*domain.WebService, error) {
	var svc domain.WebService
	body := deployRequest{ImageID: imageID, Config: cfg}
	if err := c.doJSON(ctx, http.MethodPut, "/services/"+name, body, &svc, nil); err != nil {
		return nil, fmt.Errorf("deploy service: %w", err)
	}
	return &svc, nil
}

func (c *client) GetService(ctx context.Context, name string) (*domain.WebService, error) {
	var svc domain.WebService
	if err := c.doJSON(ctx, http.MethodGet, "/services/"+name, nil, &svc, domain.ErrServiceNotFound); err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &svc, nil
}

// WaitForService polls the deployment until it settles or ctx is done.
func (c *client) WaitForService(ctx context.Context, name string) (*domain.WebService, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		svc, err := c.GetService(ctx, name)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrDeploymentCancelled, ctx.Err())
			}
			return nil, err
		}
		if svc.State.Terminal() {
			return svc, nil
		}
		log.WithFields(log.Fields{
			"service": name,
			"state":   svc.State,
		}).Debug("deployment in progress")

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", domain.ErrDeploymentCancelled, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *client) DeleteService(ctx context.Context, name string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/services/"+name, nil, nil, domain.ErrServiceNotFound); err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	return nil
}

// doJSON performs one JSON round trip. notFound, when non-nil, is the domain
// error a 404 maps to.
func (c *client) doJSON(ctx context.Context, method, path string, in, out any, notFound error) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.decodeResponse(resp, out, notFound)
}

func (c *client) decodeResponse(resp *http.Response, out any, notFound error) error {
	if resp.StatusCode == http.StatusNotFound && notFound != nil {
		return notFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("management api returned %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
