package syncbridge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/velobg/rental-backend/state"
)

var ErrSyncFailed = errors.New("sync request failed")

// Client is an interface to a remote state authority. All operations are
// best-effort from the rental state machine's point of view: a failure
// degrades to local-only operation, never to a failed rental.
type Client interface {
	Pull(ctx context.Context) (state.AppState, error)
	Push(ctx context.Context, st state.AppState) error
	UploadPhoto(ctx context.Context, localPath, kind string) (string, error)
}

// HTTPClient implements Client against another instance's sync endpoints.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPClient) Pull(ctx context.Context) (state.AppState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/state", nil)
	if err != nil {
		return state.AppState{}, fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return state.AppState{}, fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return state.AppState{}, fmt.Errorf("%w: status %d", ErrSyncFailed, resp.StatusCode)
	}

	var st state.AppState
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return state.AppState{}, fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	return st, nil
}

func (c *HTTPClient) Push(ctx context.Context, st state.AppState) error {
	body, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/api/state", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrSyncFailed, resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) UploadPhoto(ctx context.Context, localPath, kind string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("photo", filepath.Base(localPath))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	if err := mw.WriteField("kind", kind); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("%w: status %d", ErrSyncFailed, resp.StatusCode)
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	return out.URL, nil
}
