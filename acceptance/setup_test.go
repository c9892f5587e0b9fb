package acceptance

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/velobg/rental-backend/api"
	"github.com/velobg/rental-backend/coordinator"
	"github.com/velobg/rental-backend/internal/middleware"
	"github.com/velobg/rental-backend/internal/o11y"
	"github.com/velobg/rental-backend/internal/photostore"
	"github.com/velobg/rental-backend/internal/syncbridge"
	"github.com/velobg/rental-backend/state"
)

type TestServer struct {
	Router *gin.Engine
	Store  *state.Store
	Sync   *syncbridge.Fake
}

// NewTestServer wires the full stack against a throwaway state directory.
// The store seeds itself, so every test starts from the default fleet:
// bikes bike_1..bike_10 and zones pz_1..pz_6.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := state.Open(
		filepath.Join(dir, "state.json"),
		filepath.Join(dir, "admins.json"),
		logger)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	fake := syncbridge.NewFake()
	coord := coordinator.New(store, logger, coordinator.WithSync(fake))
	photos := photostore.New(filepath.Join(dir, "uploads"))

	obs := &o11y.Observability{
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	}

	a := api.New(store, coord, photos, obs, "", "")

	return &TestServer{
		Router: a.Router(),
		Store:  store,
		Sync:   fake,
	}
}

// AdminToken returns a valid console session token for the seeded admin.
func (ts *TestServer) AdminToken() string {
	return "Bearer " + middleware.Token("admin_1", time.Now().UnixMilli())
}

func (ts *TestServer) do(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

func (ts *TestServer) GET(path string, headers map[string]string) *httptest.ResponseRecorder {
	return ts.do(http.MethodGet, path, nil, headers)
}

func (ts *TestServer) POST(path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	return ts.do(http.MethodPost, path, body, headers)
}

func (ts *TestServer) PUT(path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	return ts.do(http.MethodPut, path, body, headers)
}

func (ts *TestServer) PATCH(path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	return ts.do(http.MethodPatch, path, body, headers)
}

func (ts *TestServer) DELETE(path string, headers map[string]string) *httptest.ResponseRecorder {
	return ts.do(http.MethodDelete, path, nil, headers)
}

func (ts *TestServer) adminHeaders() map[string]string {
	return map[string]string{"Authorization": ts.AdminToken()}
}

// RegisterTestUser creates a user through the API and returns its id.
func (ts *TestServer) RegisterTestUser(t *testing.T, username string) string {
	t.Helper()

	w := ts.POST("/api/users/register", map[string]string{
		"username":  username,
		"email":     username + "@example.com",
		"firstName": "Test",
		"lastName":  "User",
		"password":  "secret123",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to register test user: %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		ID string `json:"id"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp.ID
}

// StartTestRental starts a rental for the given user and bike and returns the
// rental id.
func (ts *TestServer) StartTestRental(t *testing.T, userID, bikeID string) string {
	t.Helper()

	w := ts.POST("/api/rentals", map[string]string{
		"userId": userID,
		"bikeId": bikeID,
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("failed to start test rental: %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		ID string `json:"id"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp.ID
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}
