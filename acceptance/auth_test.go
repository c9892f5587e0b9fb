package acceptance

import (
	"net/http"
	"testing"
)

func TestLogin_ReturnsTokenForDefaultAdmin(t *testing.T) {
	ts := NewTestServer(t)

	w := ts.POST("/api/auth/login", map[string]string{
		"username": "admin",
		"password": "admin123",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		Admin struct {
			Username     string `json:"username"`
			PasswordHash string `json:"passwordHash"`
		} `json:"admin"`
	}
	decode(t, w, &resp)
	if resp.Token == "" {
		t.Error("expected a session token")
	}
	if resp.Admin.PasswordHash != "" {
		t.Error("password hash must never leave the server")
	}

	// The issued token must work on an admin endpoint.
	w = ts.GET("/api/bikes", map[string]string{"Authorization": "Bearer " + resp.Token})
	if w.Code != http.StatusOK {
		t.Errorf("expected issued token to authorize, got %d", w.Code)
	}
}

func TestLogin_RejectsWrongPassword(t *testing.T) {
	ts := NewTestServer(t)

	w := ts.POST("/api/auth/login", map[string]string{
		"username": "admin",
		"password": "wrong",
	}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d: %s", http.StatusUnauthorized, w.Code, w.Body.String())
	}
}

func TestChangePassword_RotatesCredentials(t *testing.T) {
	ts := NewTestServer(t)

	w := ts.POST("/api/auth/change-password", map[string]string{
		"currentPassword": "admin123",
		"newPassword":     "hunter22",
	}, ts.adminHeaders())
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	w = ts.POST("/api/auth/login", map[string]string{
		"username": "admin",
		"password": "admin123",
	}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("old password must stop working, got %d", w.Code)
	}

	w = ts.POST("/api/auth/login", map[string]string{
		"username": "admin",
		"password": "hunter22",
	}, nil)
	if w.Code != http.StatusOK {
		t.Errorf("new password must work, got %d: %s", w.Code, w.Body.String())
	}
}

func TestChangePassword_RequiresCurrentPassword(t *testing.T) {
	ts := NewTestServer(t)

	w := ts.POST("/api/auth/change-password", map[string]string{
		"currentPassword": "wrong",
		"newPassword":     "hunter22",
	}, ts.adminHeaders())
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d: %s", http.StatusUnauthorized, w.Code, w.Body.String())
	}
}

func TestRegister_RejectsDuplicateUsername(t *testing.T) {
	ts := NewTestServer(t)
	ts.RegisterTestUser(t, "rider1")

	w := ts.POST("/api/users/register", map[string]string{
		"username":  "RIDER1",
		"email":     "other@example.com",
		"firstName": "Other",
		"lastName":  "User",
		"password":  "secret123",
	}, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d: %s", http.StatusConflict, w.Code, w.Body.String())
	}
}

func TestRegister_ValidatesEmailAndPassword(t *testing.T) {
	ts := NewTestServer(t)

	w := ts.POST("/api/users/register", map[string]string{
		"username":  "rider1",
		"email":     "not-an-email",
		"firstName": "Test",
		"lastName":  "User",
		"password":  "secret123",
	}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d for bad email, got %d", http.StatusBadRequest, w.Code)
	}

	w = ts.POST("/api/users/register", map[string]string{
		"username":  "rider1",
		"email":     "rider1@example.com",
		"firstName": "Test",
		"lastName":  "User",
		"password":  "short",
	}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d for short password, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestListUsers_OmitsPasswordHashes(t *testing.T) {
	ts := NewTestServer(t)
	ts.RegisterTestUser(t, "rider1")

	w := ts.GET("/api/users", ts.adminHeaders())
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var users []map[string]interface{}
	decode(t, w, &users)
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	if hash, ok := users[0]["passwordHash"]; ok && hash != "" {
		t.Error("password hash must never leave the server")
	}
}
