package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"strata/internal/domain"
	"strata/internal/domain/models"
)

// Fetcher is what the panel controller needs from the backend. The HTTP API
// client implements it; tests script it.
type Fetcher interface {
	// FetchTree loads one level's tree, scoped by the parent id when given.
	FetchTree(ctx context.Context, kind domain.Kind, parentID *string) ([]*models.TreeNode, error)

	// FetchSelected loads the selection tree.
	FetchSelected(ctx context.Context) ([]*models.TreeNode, error)

	// FetchViewLocation resolves a view's full ancestry path.
	FetchViewLocation(ctx context.Context, viewID string) (*models.ViewLocation, error)
}

// SettingsAPI is the settings round trip used by the settings store.
type SettingsAPI interface {
	LoadSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, settings models.Settings) error
}

// API is the HTTP client for the server's REST surface.
type API struct {
	baseURL string
	httpc   *http.Client
}

// New creates an API client against a base URL like "http://localhost:8080".
func New(baseURL string) *API {
	return &API{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// apiPath returns the collection path segment for a level
func apiPath(kind domain.Kind) string {
	switch kind {
	case domain.KindShareholder:
		return "shareholders"
	case domain.KindCompany:
		return "companies"
	case domain.KindProject:
		return "projects"
	case domain.KindTable:
		return "tables"
	case domain.KindView:
		return "views"
	case domain.KindSelected:
		return "selected"
	default:
		return string(kind) + "s"
	}
}

// FetchTree loads one level's tree
func (a *API) FetchTree(ctx context.Context, kind domain.Kind, parentID *string) ([]*models.TreeNode, error) {
	url := fmt.Sprintf("%s/api/%s", a.baseURL, apiPath(kind))
	if parentID != nil && kind.ParentColumn() != "" {
		url += fmt.Sprintf("?%s=%s", kind.ParentColumn(), *parentID)
	}

	var nodes []*models.TreeNode
	if err := a.do(ctx, http.MethodGet, url, nil, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// FetchSelected loads the selection tree
func (a *API) FetchSelected(ctx context.Context) ([]*models.TreeNode, error) {
	var nodes []*models.TreeNode
	if err := a.do(ctx, http.MethodGet, a.baseURL+"/api/selected", nil, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// FetchViewLocation resolves a view's ancestry path
func (a *API) FetchViewLocation(ctx context.Context, viewID string) (*models.ViewLocation, error) {
	var location models.ViewLocation
	url := fmt.Sprintf("%s/api/views/%s/location", a.baseURL, viewID)
	if err := a.do(ctx, http.MethodGet, url, nil, &location); err != nil {
		return nil, err
	}
	return &location, nil
}

// LoadSettings reads the whole settings blob
func (a *API) LoadSettings(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	if err := a.do(ctx, http.MethodGet, a.baseURL+"/api/settings", nil, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SaveSettings upserts every submitted key
func (a *API) SaveSettings(ctx context.Context, settings models.Settings) error {
	return a.do(ctx, http.MethodPut, a.baseURL+"/api/settings", settings, nil)
}

// problemDocument is the server's RFC 7807 error body
type problemDocument struct {
	Status int    `json:"status"`
	Detail string `json:"detail"`
	Title  string `json:"title"`
}

func (a *API) do(ctx context.Context, method, url string, body, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var problem problemDocument
		if err := json.NewDecoder(resp.Body).Decode(&problem); err == nil && problem.Detail != "" {
			return a.statusError(resp.StatusCode, problem.Detail)
		}
		return a.statusError(resp.StatusCode, resp.Status)
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError maps error responses back onto the domain sentinels so callers
// can branch the same way on both sides of the wire.
func (a *API) statusError(status int, detail string) error {
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", detail, domain.ErrNotFound)
	case http.StatusConflict:
		return fmt.Errorf("%s: %w", detail, domain.ErrConflict)
	case http.StatusBadRequest:
		return fmt.Errorf("%s: %w", detail, domain.ErrValidation)
	default:
		return fmt.Errorf("server error (%d): %s", status, detail)
	}
}
