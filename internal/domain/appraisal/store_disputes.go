package appraisal

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) InsertDispute(ctx context.Context, dispute Dispute) error {
	_, err := s.q(ctx).Exec(ctx, `
    INSERT INTO appraisal_disputes (id, record_id, assignment_id, cycle_id, raised_by, reason, details, submitted_at, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
  `, dispute.ID, dispute.RecordID, dispute.AssignmentID, dispute.CycleID, dispute.RaisedByEmployeeID, dispute.Reason, dispute.Details, dispute.SubmittedAt, dispute.Status)
	return err
}

func (s *Store) GetDispute(ctx context.Context, id string) (Dispute, error) {
	row := s.q(ctx).QueryRow(ctx, disputeSelect+" WHERE id = $1", id)
	dispute, err := scanDispute(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Dispute{}, ErrDisputeNotFound
	}
	return dispute, err
}

func (s *Store) UpdateDisputeResolution(ctx context.Context, dispute Dispute) error {
	tag, err := s.q(ctx).Exec(ctx, `
    UPDATE appraisal_disputes
    SET status = $1, resolution_summary = $2, resolved_at = $3, resolved_by = $4
    WHERE id = $5
  `, dispute.Status, dispute.ResolutionSummary, dispute.ResolvedAt, dispute.ResolvedByEmployeeID, dispute.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDisputeNotFound
	}
	return nil
}

// ListDisputes returns disputes, newest first, optionally narrowed to one
// status.
func (s *Store) ListDisputes(ctx context.Context, status string) ([]Dispute, error) {
	query := disputeSelect
	args := []any{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY submitted_at DESC"

	rows, err := s.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var disputes []Dispute
	for rows.Next() {
		dispute, err := scanDispute(rows)
		if err != nil {
			return nil, err
		}
		disputes = append(disputes, dispute)
	}
	return disputes, rows.Err()
}

const disputeSelect = `
    SELECT id, record_id, assignment_id, cycle_id, raised_by, reason, details, submitted_at, status, COALESCE(resolution_summary, ''), resolved_at, COALESCE(resolved_by::text, '')
    FROM appraisal_disputes`

func scanDispute(row pgx.Row) (Dispute, error) {
	var dispute Dispute
	if err := row.Scan(&dispute.ID, &dispute.RecordID, &dispute.AssignmentID, &dispute.CycleID, &dispute.RaisedByEmployeeID, &dispute.Reason, &dispute.Details, &dispute.SubmittedAt, &dispute.Status, &dispute.ResolutionSummary, &dispute.ResolvedAt, &dispute.ResolvedByEmployeeID); err != nil {
		return Dispute{}, err
	}
	return dispute, nil
}
