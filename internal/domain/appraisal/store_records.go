package appraisal

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

func (s *Store) InsertRecord(ctx context.Context, record Record) error {
	ratingsJSON, err := json.Marshal(record.Ratings)
	if err != nil {
		return err
	}
	_, err = s.q(ctx).Exec(ctx, `
    INSERT INTO appraisal_records (id, assignment_id, cycle_id, template_id, employee_id, manager_id, ratings_json, total_score, overall_rating, manager_summary, strengths, improvement_areas, status, version, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
  `, record.ID, record.AssignmentID, record.CycleID, record.TemplateID, record.EmployeeID, record.ManagerID, ratingsJSON, record.TotalScore, record.OverallRating, record.ManagerSummary, record.Strengths, record.ImprovementAreas, record.Status, record.Version, record.CreatedAt, record.UpdatedAt)
	return err
}

func (s *Store) GetRecord(ctx context.Context, id string) (Record, error) {
	row := s.q(ctx).QueryRow(ctx, recordSelect+" WHERE id = $1", id)
	record, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrRecordNotFound
	}
	return record, err
}

// UpdateRecordContent overwrites a record's manager-editable fields with a
// compare-and-swap on version. Returns false when the expected version no
// longer matches (concurrent writer won).
func (s *Store) UpdateRecordContent(ctx context.Context, record Record, expectedVersion int) (bool, error) {
	ratingsJSON, err := json.Marshal(record.Ratings)
	if err != nil {
		return false, err
	}
	tag, err := s.q(ctx).Exec(ctx, `
    UPDATE appraisal_records
    SET ratings_json = $1, total_score = $2, overall_rating = $3, manager_summary = $4, strengths = $5, improvement_areas = $6, status = $7, version = version + 1, updated_at = $8
    WHERE id = $9 AND version = $10
  `, ratingsJSON, record.TotalScore, record.OverallRating, record.ManagerSummary, record.Strengths, record.ImprovementAreas, record.Status, record.UpdatedAt, record.ID, expectedVersion)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) MarkRecordSubmitted(ctx context.Context, id string, submittedAt time.Time) error {
	tag, err := s.q(ctx).Exec(ctx, `
    UPDATE appraisal_records
    SET status = $1, manager_submitted_at = $2, updated_at = $2
    WHERE id = $3
  `, RecordStatusManagerSubmitted, submittedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// PublishRecordsForCycle bulk-promotes every manager-submitted record of
// the cycle. Drafts are deliberately left behind.
func (s *Store) PublishRecordsForCycle(ctx context.Context, cycleID string, publishedAt time.Time) (int64, error) {
	tag, err := s.q(ctx).Exec(ctx, `
    UPDATE appraisal_records
    SET status = $1, hr_published_at = $2, updated_at = $2
    WHERE cycle_id = $3 AND status = $4
  `, RecordStatusHRPublished, publishedAt, cycleID, RecordStatusManagerSubmitted)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ArchiveRecordsForCycle stamps archived_at on every record of the cycle
// without touching status.
func (s *Store) ArchiveRecordsForCycle(ctx context.Context, cycleID string, archivedAt time.Time) (int64, error) {
	tag, err := s.q(ctx).Exec(ctx, `
    UPDATE appraisal_records
    SET archived_at = $1, updated_at = $1
    WHERE cycle_id = $2
  `, archivedAt, cycleID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Store) PublishedRecordsForEmployee(ctx context.Context, employeeID string) ([]Record, error) {
	rows, err := s.q(ctx).Query(ctx, recordSelect+`
    WHERE employee_id = $1 AND status = $2
    ORDER BY hr_published_at DESC
  `, employeeID, RecordStatusHRPublished)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

const recordSelect = `
    SELECT id, assignment_id, cycle_id, template_id, employee_id, manager_id, ratings_json, total_score, overall_rating, manager_summary, strengths, improvement_areas, status, version, manager_submitted_at, hr_published_at, archived_at, created_at, updated_at
    FROM appraisal_records`

func scanRecord(row pgx.Row) (Record, error) {
	var record Record
	var ratingsJSON []byte
	if err := row.Scan(&record.ID, &record.AssignmentID, &record.CycleID, &record.TemplateID, &record.EmployeeID, &record.ManagerID, &ratingsJSON, &record.TotalScore, &record.OverallRating, &record.ManagerSummary, &record.Strengths, &record.ImprovementAreas, &record.Status, &record.Version, &record.ManagerSubmittedAt, &record.HRPublishedAt, &record.ArchivedAt, &record.CreatedAt, &record.UpdatedAt); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal(ratingsJSON, &record.Ratings); err != nil {
		record.Ratings = nil
	}
	return record, nil
}
