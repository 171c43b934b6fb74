package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/Aakib-hotelwala/Job-Tracker/internal/handler"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	auth, jobs := newTestServices(t)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, auth, jobs, false)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		data = map[string]any{}
	}
	return resp, data
}

func TestIntegration_AuthFlow(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	// Register a new user; the response carries the identity, never the hash.
	resp, data := doJSON(t, client, http.MethodPost, srv.URL+"/auth/register", map[string]string{
		"name": "Integration User", "email": "Integ@Example.com", "password": "password123",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%v)", resp.StatusCode, data)
	}
	user, ok := data["user"].(map[string]any)
	if !ok {
		t.Fatalf("register: expected user object, got %v", data)
	}
	if user["email"] != "integ@example.com" {
		t.Fatalf("register: expected normalized email, got %v", user["email"])
	}
	if _, leaked := user["password"]; leaked {
		t.Fatal("register: response must not contain a password field")
	}

	// Duplicate registration conflicts regardless of letter case.
	resp, _ = doJSON(t, client, http.MethodPost, srv.URL+"/auth/register", map[string]string{
		"name": "Other", "email": "INTEG@example.com", "password": "password456",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", resp.StatusCode)
	}

	// The register cookie authenticates requests immediately.
	resp, _ = doJSON(t, client, http.MethodGet, srv.URL+"/auth/me", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me after register: expected 200, got %d", resp.StatusCode)
	}

	// Logout clears the cookie; protected routes reject afterwards.
	resp, _ = doJSON(t, client, http.MethodPost, srv.URL+"/auth/logout", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, client, http.MethodGet, srv.URL+"/auth/me", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("me after logout: expected 401, got %d", resp.StatusCode)
	}

	// Login with wrong password, unknown email, then correct credentials.
	resp, _ = doJSON(t, client, http.MethodPost, srv.URL+"/auth/login", map[string]string{
		"email": "integ@example.com", "password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad password login: expected 401, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, client, http.MethodPost, srv.URL+"/auth/login", map[string]string{
		"email": "nobody@example.com", "password": "password123",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown email login: expected 404, got %d", resp.StatusCode)
	}
	resp, data = doJSON(t, client, http.MethodPost, srv.URL+"/auth/login", map[string]string{
		"email": "integ@example.com", "password": "password123",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("login: expected 201, got %d (%v)", resp.StatusCode, data)
	}
}

func TestIntegration_JobLifecycle(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp, _ := doJSON(t, client, http.MethodPost, srv.URL+"/auth/register", map[string]string{
		"name": "Job User", "email": "jobs@example.com", "password": "password123",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}

	// Unauthenticated access is rejected.
	anon := &http.Client{}
	resp, _ = doJSON(t, anon, http.MethodGet, srv.URL+"/jobs", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous list: expected 401, got %d", resp.StatusCode)
	}

	// Create with missing fields fails and persists nothing.
	resp, _ = doJSON(t, client, http.MethodPost, srv.URL+"/jobs", map[string]string{
		"company": "", "position": "Engineer",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid create: expected 400, got %d", resp.StatusCode)
	}

	// Create a job; defaults fill in.
	resp, data := doJSON(t, client, http.MethodPost, srv.URL+"/jobs", map[string]string{
		"company": "Acme", "position": "Engineer",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%v)", resp.StatusCode, data)
	}
	job := data["job"].(map[string]any)
	if job["status"] != "applied" || job["jobType"] != "full-time" || job["location"] != "remote" {
		t.Fatalf("create: defaults not applied: %v", job)
	}
	jobID := job["id"].(float64)

	// List includes the job with the page envelope.
	resp, data = doJSON(t, client, http.MethodGet, srv.URL+"/jobs?search=acme", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", resp.StatusCode)
	}
	if data["totalJobs"].(float64) != 1 || data["numOfPages"].(float64) != 1 || data["currentPage"].(float64) != 1 {
		t.Fatalf("list envelope: %v", data)
	}

	// Update in place.
	resp, data = doJSON(t, client, http.MethodPut, srv.URL+"/jobs/"+itoa(jobID), map[string]string{
		"company": "Acme", "position": "Engineer", "status": "offer",
		"jobType": "full-time", "location": "remote",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d (%v)", resp.StatusCode, data)
	}
	if data["job"].(map[string]any)["status"] != "offer" {
		t.Fatalf("update: status not replaced: %v", data)
	}

	// Stats reflect the single offer.
	resp, data = doJSON(t, client, http.MethodGet, srv.URL+"/jobs/stats", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d", resp.StatusCode)
	}
	if data["totalJobs"].(float64) != 1 || data["offer"].(float64) != 1 {
		t.Fatalf("stats: %v", data)
	}

	// Delete returns the record; a second delete is a 404.
	resp, data = doJSON(t, client, http.MethodDelete, srv.URL+"/jobs/"+itoa(jobID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", resp.StatusCode)
	}
	if data["job"].(map[string]any)["id"].(float64) != jobID {
		t.Fatalf("delete: expected the deleted record back, got %v", data)
	}
	resp, _ = doJSON(t, client, http.MethodDelete, srv.URL+"/jobs/"+itoa(jobID), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", resp.StatusCode)
	}
}

func TestIntegration_CrossUserAccess(t *testing.T) {
	srv := newTestServer(t)
	alice := newClient(t)
	bob := newClient(t)

	for client, email := range map[*http.Client]string{alice: "alice@example.com", bob: "bob@example.com"} {
		resp, _ := doJSON(t, client, http.MethodPost, srv.URL+"/auth/register", map[string]string{
			"name": "User", "email": email, "password": "password123",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("register %s: expected 201, got %d", email, resp.StatusCode)
		}
	}

	resp, data := doJSON(t, alice, http.MethodPost, srv.URL+"/jobs", map[string]string{
		"company": "AliceCo", "position": "Engineer",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}
	jobID := itoa(data["job"].(map[string]any)["id"].(float64))

	// Bob cannot see Alice's job in a listing.
	resp, data = doJSON(t, bob, http.MethodGet, srv.URL+"/jobs", nil)
	if resp.StatusCode != http.StatusOK || data["totalJobs"].(float64) != 0 {
		t.Fatalf("bob's list should be empty: status=%d data=%v", resp.StatusCode, data)
	}

	// Get and update by a non-owner are forbidden.
	resp, _ = doJSON(t, bob, http.MethodGet, srv.URL+"/jobs/"+jobID, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("bob get: expected 403, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, bob, http.MethodPut, srv.URL+"/jobs/"+jobID, map[string]string{
		"company": "Hijack", "position": "Engineer",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("bob update: expected 403, got %d", resp.StatusCode)
	}

	// Delete by a non-owner is a plain 404: it must not reveal the job exists.
	resp, _ = doJSON(t, bob, http.MethodDelete, srv.URL+"/jobs/"+jobID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("bob delete: expected 404, got %d", resp.StatusCode)
	}

	// Alice still owns an intact job.
	resp, data = doJSON(t, alice, http.MethodGet, srv.URL+"/jobs/"+jobID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("alice get: expected 200, got %d", resp.StatusCode)
	}
	if data["job"].(map[string]any)["company"] != "AliceCo" {
		t.Fatalf("alice's job was modified: %v", data)
	}
}

func itoa(f float64) string {
	return strconv.FormatInt(int64(f), 10)
}
