package acceptance

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetState_ReturnsWholeSnapshot(t *testing.T) {
	ts := NewTestServer(t)

	w := ts.GET("/api/state", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var st struct {
		Bikes        []struct{} `json:"bikes"`
		ParkingZones []struct{} `json:"parkingZones"`
	}
	decode(t, w, &st)
	if len(st.Bikes) != 10 {
		t.Errorf("expected 10 bikes in snapshot, got %d", len(st.Bikes))
	}
	if len(st.ParkingZones) != 6 {
		t.Errorf("expected 6 zones in snapshot, got %d", len(st.ParkingZones))
	}
}

func TestPutState_ReplacesSnapshot(t *testing.T) {
	ts := NewTestServer(t)

	w := ts.PUT("/api/state", map[string]interface{}{
		"users": []map[string]interface{}{
			{"id": "usr_1", "username": "rider1", "email": "rider1@example.com"},
		},
		"bikes": []map[string]interface{}{
			{"id": "bike_x", "label": "BG-X", "type": "CITY", "pricePerHour": 120, "lat": 44.81, "lng": 20.46, "status": "available"},
		},
		"parkingZones":  []map[string]interface{}{},
		"rentals":       []map[string]interface{}{},
		"notifications": []map[string]interface{}{},
		"issues":        []map[string]interface{}{},
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	w = ts.GET("/api/bikes", ts.adminHeaders())
	var bikes []struct {
		ID string `json:"id"`
	}
	decode(t, w, &bikes)
	if len(bikes) != 1 || bikes[0].ID != "bike_x" {
		t.Errorf("expected replaced fleet with bike_x, got %v", bikes)
	}
}

func TestPutState_SurvivesAdminLogin(t *testing.T) {
	ts := NewTestServer(t)

	w := ts.PUT("/api/state", map[string]interface{}{
		"users": []map[string]interface{}{},
		"bikes": []map[string]interface{}{},
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	// Console credentials live outside the replaceable state.
	w = ts.POST("/api/auth/login", map[string]string{
		"username": "admin",
		"password": "admin123",
	}, nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected admin login to survive a state replace, got %d", w.Code)
	}
}

func TestPutState_RejectsDuplicateUsernames(t *testing.T) {
	ts := NewTestServer(t)

	w := ts.PUT("/api/state", map[string]interface{}{
		"users": []map[string]interface{}{
			{"id": "usr_1", "username": "rider1", "email": "a@example.com"},
			{"id": "usr_2", "username": "Rider1", "email": "b@example.com"},
		},
	}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d: %s", http.StatusBadRequest, w.Code, w.Body.String())
	}

	// The seeded fleet must be untouched.
	w = ts.GET("/api/bikes", ts.adminHeaders())
	var bikes []struct{}
	decode(t, w, &bikes)
	if len(bikes) != 10 {
		t.Errorf("expected rejected replace to leave 10 bikes, got %d", len(bikes))
	}
}

func TestPutState_RejectsDuplicateEmails(t *testing.T) {
	ts := NewTestServer(t)

	w := ts.PUT("/api/state", map[string]interface{}{
		"users": []map[string]interface{}{
			{"id": "usr_1", "username": "rider1", "email": "same@example.com"},
			{"id": "usr_2", "username": "rider2", "email": "Same@Example.com"},
		},
	}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d: %s", http.StatusBadRequest, w.Code, w.Body.String())
	}
}

func TestUpload_StoresPhotoAndReturnsURL(t *testing.T) {
	ts := NewTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("photo", "return.jpg")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("not really a jpeg"))
	mw.WriteField("kind", "returns")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var resp struct {
		Ref string `json:"ref"`
		URL string `json:"url"`
	}
	decode(t, w, &resp)
	if resp.Ref == "" || resp.URL == "" {
		t.Fatalf("expected ref and url, got %+v", resp)
	}

	// The stored photo must be served back.
	w2 := ts.GET("/uploads/"+resp.Ref, nil)
	if w2.Code != http.StatusOK {
		t.Errorf("expected stored photo to be served, got %d", w2.Code)
	}
}

func TestUpload_RejectsTraversalKind(t *testing.T) {
	ts := NewTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("photo", "return.jpg")
	part.Write([]byte("x"))
	mw.WriteField("kind", "../escape")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d: %s", http.StatusBadRequest, w.Code, w.Body.String())
	}
}
