package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"appraisal/internal/app/server"
	"appraisal/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// TestAppraisalLifecycleJourney drives the whole flow over HTTP: template,
// cycle with one assignment, manager draft and submit, HR publish, the
// employee reading the published appraisal, and a dispute raised and
// resolved. Requires a scratch database.
func TestAppraisalLifecycleJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := config.Config{
		DatabaseURL:    dbURL,
		JWTSecret:      "test-secret",
		Environment:    "test",
		SeedHREmail:    "hr@test.local",
		SeedHRPassword: "ChangeMe123!",
		SeedDemoData:   true,
		RunMigrations:  true,
		RunSeed:        true,
		MaxBodyBytes:   1048576,
		PDFExportDir:   t.TempDir(),
	}

	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	hrToken := login(t, client, ts.URL, "hr@test.local", "ChangeMe123!")
	managerToken := login(t, client, ts.URL, "manager@demo.local", "manager-demo")
	employeeToken := login(t, client, ts.URL, "alex@demo.local", "employee-demo")

	managerID := whoAmI(t, client, ts.URL, managerToken)
	employeeID := whoAmI(t, client, ts.URL, employeeToken)

	// Template with weighted criteria.
	var tmpl struct {
		ID string `json:"id"`
	}
	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/appraisal/templates", hrToken, map[string]any{
		"name": "Annual engineering review",
		"criteria": []map[string]any{
			{"criterionName": "Delivery", "weight": 60},
			{"criterionName": "Collaboration", "weight": 40},
		},
	}, http.StatusCreated, &tmpl)

	// Cycle with one assignment.
	var created struct {
		Cycle struct {
			ID string `json:"id"`
		} `json:"cycle"`
		Assignments []struct {
			ID string `json:"id"`
		} `json:"assignments"`
	}
	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/appraisal/cycles", hrToken, map[string]any{
		"name":      "FY24 annual",
		"cycleType": "annual",
		"startDate": "2024-01-01",
		"endDate":   "2024-03-31",
		"assignments": []map[string]any{
			{"templateId": tmpl.ID, "employeeId": employeeID, "managerId": managerID, "departmentId": "engineering"},
		},
	}, http.StatusCreated, &created)
	if len(created.Assignments) != 1 {
		t.Fatalf("expected one assignment, got %d", len(created.Assignments))
	}
	cycleID := created.Cycle.ID
	assignmentID := created.Assignments[0].ID

	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/appraisal/cycles/"+cycleID+"/activate", hrToken, nil, http.StatusOK, nil)

	// A second activation is rejected.
	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/appraisal/cycles/"+cycleID+"/activate", hrToken, nil, http.StatusConflict, nil)

	// Manager drafts and submits.
	var record struct {
		ID      string `json:"id"`
		Version int    `json:"version"`
	}
	doJSON(t, client, http.MethodPut, ts.URL+"/api/v1/appraisal/assignments/"+assignmentID+"/record", managerToken, map[string]any{
		"ratings": []map[string]any{
			{"criterionName": "Delivery", "score": 4},
			{"criterionName": "Collaboration", "score": 5},
		},
		"totalScore":         88,
		"overallRatingLabel": "Exceeds",
		"managerSummary":     "Strong year.",
	}, http.StatusOK, &record)
	if record.Version != 1 {
		t.Fatalf("first save should be version 1, got %d", record.Version)
	}

	// A stale save loses.
	doJSON(t, client, http.MethodPut, ts.URL+"/api/v1/appraisal/assignments/"+assignmentID+"/record", managerToken, map[string]any{
		"totalScore": 10,
		"version":    0,
	}, http.StatusConflict, nil)

	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/appraisal/records/"+record.ID+"/submit", managerToken, nil, http.StatusOK, nil)

	// Employee sees nothing before publication.
	var appraisals []json.RawMessage
	doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/appraisal/my-appraisals", employeeToken, nil, http.StatusOK, &appraisals)
	if len(appraisals) != 0 {
		t.Fatalf("unpublished records must stay invisible, got %d", len(appraisals))
	}

	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/appraisal/cycles/"+cycleID+"/publish", hrToken, nil, http.StatusOK, nil)

	doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/appraisal/my-appraisals", employeeToken, nil, http.StatusOK, &appraisals)
	if len(appraisals) != 1 {
		t.Fatalf("expected one published appraisal, got %d", len(appraisals))
	}

	// Dispute raised by the employee, resolved by HR.
	var dispute struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/appraisal/records/"+record.ID+"/disputes", employeeToken, map[string]any{
		"reason":  "score",
		"details": "delivery undervalued",
	}, http.StatusCreated, &dispute)
	if dispute.Status != "open" {
		t.Fatalf("new dispute should be open, got %s", dispute.Status)
	}

	// The manager lacks the resolve permission entirely.
	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/appraisal/disputes/"+dispute.ID+"/resolve", managerToken, map[string]any{
		"status": "resolved",
	}, http.StatusForbidden, nil)

	var resolved struct {
		Status string `json:"status"`
	}
	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/appraisal/disputes/"+dispute.ID+"/resolve", hrToken, map[string]any{
		"status":            "resolved",
		"resolutionSummary": "reviewed with manager",
	}, http.StatusOK, &resolved)
	if resolved.Status != "resolved" {
		t.Fatalf("expected resolved dispute, got %s", resolved.Status)
	}

	// Archive stamps the cycle.
	var archived struct {
		Status string `json:"status"`
	}
	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/appraisal/cycles/"+cycleID+"/archive", hrToken, nil, http.StatusOK, &archived)
	if archived.Status != "archived" {
		t.Fatalf("expected archived cycle, got %s", archived.Status)
	}
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	var data struct {
		Token string `json:"token"`
	}
	doJSON(t, client, http.MethodPost, baseURL+"/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, http.StatusOK, &data)
	if data.Token == "" {
		t.Fatalf("no token for %s", email)
	}
	return data.Token
}

func whoAmI(t *testing.T, client *http.Client, baseURL, token string) string {
	t.Helper()
	var data struct {
		ID string `json:"id"`
	}
	doJSON(t, client, http.MethodGet, baseURL+"/api/v1/auth/me", token, nil, http.StatusOK, &data)
	if data.ID == "" {
		t.Fatal("empty user id")
	}
	return data.ID
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, body any, wantStatus int, out any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode envelope: %v", method, url, err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected %d, got %d (%+v)", method, url, wantStatus, resp.StatusCode, env.Error)
	}
	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("%s %s: decode data: %v", method, url, err)
		}
	}
}
