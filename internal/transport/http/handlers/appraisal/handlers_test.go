package appraisalhandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/appraisal"
	"appraisal/internal/domain/auth"
	"appraisal/internal/transport/http/middleware"
)

// fakeStore embeds the interface and overrides only what a test touches;
// anything else panics loudly.
type fakeStore struct {
	appraisal.StoreAPI

	assignment appraisal.Assignment
	record     appraisal.Record
	updated    bool
}

func (f *fakeStore) GetAssignment(context.Context, string) (appraisal.Assignment, error) {
	if f.assignment.ID == "" {
		return appraisal.Assignment{}, appraisal.ErrAssignmentNotFound
	}
	return f.assignment, nil
}

func (f *fakeStore) GetRecord(context.Context, string) (appraisal.Record, error) {
	if f.record.ID == "" {
		return appraisal.Record{}, appraisal.ErrRecordNotFound
	}
	return f.record, nil
}

func (f *fakeStore) GetTemplate(context.Context, string) (appraisal.Template, error) {
	return appraisal.Template{}, appraisal.ErrTemplateNotFound
}

func (f *fakeStore) UpdateRecordContent(context.Context, appraisal.Record, int) (bool, error) {
	return f.updated, nil
}

func newTestRouter(store appraisal.StoreAPI) http.Handler {
	service := appraisal.NewService(store, nil, nil, nil)
	handler := NewHandler(service, nil, "")

	router := chi.NewRouter()
	router.Use(middleware.Auth("test-secret"))
	handler.RegisterRoutes(router)
	return router
}

func authedRequest(t *testing.T, method, path, body, userID, role string) *http.Request {
	t.Helper()
	token, err := auth.GenerateToken("test-secret", auth.Claims{UserID: userID, Role: role}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestGetTemplateNotFoundMapsTo404(t *testing.T) {
	router := newTestRouter(&fakeStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/appraisal/templates/missing", "", "hr-1", auth.RoleHR))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUpsertRecordWrongManagerMapsTo403(t *testing.T) {
	store := &fakeStore{
		assignment: appraisal.Assignment{ID: "a1", ManagerID: "m1", EmployeeID: "e1"},
	}
	router := newTestRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPut, "/appraisal/assignments/a1/record", `{"totalScore":80}`, "m2", auth.RoleManager))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUpsertRecordStaleVersionMapsTo409(t *testing.T) {
	store := &fakeStore{
		assignment: appraisal.Assignment{ID: "a1", ManagerID: "m1", EmployeeID: "e1", LatestRecordID: "r1"},
		record:     appraisal.Record{ID: "r1", ManagerID: "m1", EmployeeID: "e1", Status: appraisal.RecordStatusDraft, Version: 2},
		updated:    false,
	}
	router := newTestRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPut, "/appraisal/assignments/a1/record", `{"totalScore":80,"version":1}`, "m1", auth.RoleManager))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error.Code != "version_conflict" {
		t.Fatalf("expected version_conflict code, got %q", payload.Error.Code)
	}
}

func TestEmployeeCannotDriveCycleLifecycle(t *testing.T) {
	router := newTestRouter(&fakeStore{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/appraisal/cycles/c1/activate", "", "e1", auth.RoleEmployee))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestEmployeeCannotReadDraftRecord(t *testing.T) {
	store := &fakeStore{
		record: appraisal.Record{ID: "r1", ManagerID: "m1", EmployeeID: "e1", Status: appraisal.RecordStatusDraft},
	}
	router := newTestRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/appraisal/records/r1", "", "e1", auth.RoleEmployee))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("draft records must stay invisible to employees, got %d", rec.Code)
	}
}

func TestCreateCycleRejectsReversedDatesAtTheEdge(t *testing.T) {
	router := newTestRouter(&fakeStore{})

	body := `{"name":"FY24","startDate":"2024-03-31","endDate":"2024-01-01"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/appraisal/cycles", body, "hr-1", auth.RoleHR))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
