package appraisal

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
)

func newMockStore(t *testing.T) (pgxmock.PgxPoolIface, *Store) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock, &Store{DB: mock}
}

func TestStoreGetTemplateNotFound(t *testing.T) {
	t.Parallel()

	mock, store := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`
    SELECT id, name, description, criteria_json, department_ids, position_ids, created_at, updated_at
    FROM appraisal_templates
    WHERE id = $1
  `)).WithArgs("missing").WillReturnRows(pgxmock.NewRows([]string{
		"id", "name", "description", "criteria_json", "department_ids", "position_ids", "created_at", "updated_at",
	}))

	_, err := store.GetTemplate(context.Background(), "missing")
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStoreGetTemplateScansCriteria(t *testing.T) {
	t.Parallel()

	mock, store := newMockStore(t)
	now := time.Now().UTC()

	criteriaJSON, _ := json.Marshal([]CriterionWeight{
		{Name: "Delivery", Weight: 60},
		{Name: "Teamwork", Weight: 40},
	})

	mock.ExpectQuery(regexp.QuoteMeta(`
    SELECT id, name, description, criteria_json, department_ids, position_ids, created_at, updated_at
    FROM appraisal_templates
    WHERE id = $1
  `)).WithArgs("t1").WillReturnRows(pgxmock.NewRows([]string{
		"id", "name", "description", "criteria_json", "department_ids", "position_ids", "created_at", "updated_at",
	}).AddRow("t1", "Annual", "engineering review", criteriaJSON, []string{"d1"}, []string{}, now, now))

	tmpl, err := store.GetTemplate(context.Background(), "t1")
	if err != nil {
		t.Fatalf("GetTemplate: %v", err)
	}
	if len(tmpl.Criteria) != 2 || tmpl.Criteria[0].Weight != 60 {
		t.Fatalf("criteria not decoded: %+v", tmpl.Criteria)
	}
	if len(tmpl.DepartmentIDs) != 1 || tmpl.DepartmentIDs[0] != "d1" {
		t.Fatalf("department ids not scanned: %+v", tmpl.DepartmentIDs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStoreUpdateTemplateNoRows(t *testing.T) {
	t.Parallel()

	mock, store := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta(`
    UPDATE appraisal_templates
    SET name = $1, description = $2, criteria_json = $3, department_ids = $4, position_ids = $5, updated_at = $6
    WHERE id = $7
  `)).WithArgs("Annual", "", []byte("null"), []string(nil), []string(nil), now, "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := store.UpdateTemplate(context.Background(), Template{ID: "missing", Name: "Annual", UpdatedAt: now})
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStoreDeleteTemplate(t *testing.T) {
	t.Parallel()

	mock, store := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM appraisal_templates WHERE id = $1")).
		WithArgs("t1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	if err := store.DeleteTemplate(context.Background(), "t1"); err != nil {
		t.Fatalf("DeleteTemplate: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStoreUpdateRecordContentVersionMismatch(t *testing.T) {
	t.Parallel()

	mock, store := newMockStore(t)
	now := time.Now().UTC()

	record := Record{
		ID:        "r1",
		Status:    RecordStatusDraft,
		UpdatedAt: now,
	}
	ratingsJSON, _ := json.Marshal(record.Ratings)

	mock.ExpectExec(regexp.QuoteMeta(`
    UPDATE appraisal_records
    SET ratings_json = $1, total_score = $2, overall_rating = $3, manager_summary = $4, strengths = $5, improvement_areas = $6, status = $7, version = version + 1, updated_at = $8
    WHERE id = $9 AND version = $10
  `)).WithArgs(ratingsJSON, 0.0, "", "", "", "", RecordStatusDraft, now, "r1", 3).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	updated, err := store.UpdateRecordContent(context.Background(), record, 3)
	if err != nil {
		t.Fatalf("UpdateRecordContent: %v", err)
	}
	if updated {
		t.Fatal("stale version must not report success")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStorePublishRecordsForCycleOnlySubmitted(t *testing.T) {
	t.Parallel()

	mock, store := newMockStore(t)
	publishedAt := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta(`
    UPDATE appraisal_records
    SET status = $1, hr_published_at = $2, updated_at = $2
    WHERE cycle_id = $3 AND status = $4
  `)).WithArgs(RecordStatusHRPublished, publishedAt, "c1", RecordStatusManagerSubmitted).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	count, err := store.PublishRecordsForCycle(context.Background(), "c1", publishedAt)
	if err != nil {
		t.Fatalf("PublishRecordsForCycle: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 promoted records, got %d", count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStoreGetRecordNotFound(t *testing.T) {
	t.Parallel()

	mock, store := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(recordSelect+" WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err := store.GetRecord(context.Background(), "missing")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStoreListDisputesFiltersByStatus(t *testing.T) {
	t.Parallel()

	mock, store := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(disputeSelect+" WHERE status = $1 ORDER BY submitted_at DESC")).
		WithArgs(DisputeStatusOpen).WillReturnRows(pgxmock.NewRows([]string{
		"id", "record_id", "assignment_id", "cycle_id", "raised_by", "reason", "details", "submitted_at", "status", "resolution_summary", "resolved_at", "resolved_by",
	}).AddRow("d1", "r1", "a1", "c1", "e1", "score", "", now, DisputeStatusOpen, "", nil, ""))

	disputes, err := store.ListDisputes(context.Background(), DisputeStatusOpen)
	if err != nil {
		t.Fatalf("ListDisputes: %v", err)
	}
	if len(disputes) != 1 || disputes[0].Status != DisputeStatusOpen {
		t.Fatalf("unexpected disputes: %+v", disputes)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
