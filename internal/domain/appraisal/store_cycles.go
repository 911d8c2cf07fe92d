package appraisal

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

func (s *Store) InsertCycle(ctx context.Context, cycle Cycle) error {
	_, err := s.q(ctx).Exec(ctx, `
    INSERT INTO appraisal_cycles (id, name, description, cycle_type, start_date, end_date, manager_due_date, ack_due_date, status, created_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
  `, cycle.ID, cycle.Name, cycle.Description, cycle.CycleType, cycle.StartDate, cycle.EndDate, cycle.ManagerDueDate, cycle.AckDueDate, cycle.Status, cycle.CreatedAt)
	return err
}

func (s *Store) ListCycles(ctx context.Context) ([]Cycle, error) {
	rows, err := s.q(ctx).Query(ctx, `
    SELECT id, name, description, cycle_type, start_date, end_date, manager_due_date, ack_due_date, status, published_at, closed_at, archived_at, created_at
    FROM appraisal_cycles
    ORDER BY start_date DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cycles []Cycle
	for rows.Next() {
		cycle, err := scanCycle(rows)
		if err != nil {
			return nil, err
		}
		cycles = append(cycles, cycle)
	}
	return cycles, rows.Err()
}

func (s *Store) GetCycle(ctx context.Context, id string) (Cycle, error) {
	row := s.q(ctx).QueryRow(ctx, `
    SELECT id, name, description, cycle_type, start_date, end_date, manager_due_date, ack_due_date, status, published_at, closed_at, archived_at, created_at
    FROM appraisal_cycles
    WHERE id = $1
  `, id)
	cycle, err := scanCycle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Cycle{}, ErrCycleNotFound
	}
	return cycle, err
}

func (s *Store) MarkCycleActive(ctx context.Context, id string) error {
	return s.setCycleStatus(ctx, id, "UPDATE appraisal_cycles SET status = $1 WHERE id = $2", CycleStatusActive)
}

func (s *Store) MarkCycleClosed(ctx context.Context, id string, closedAt time.Time) error {
	tag, err := s.q(ctx).Exec(ctx, "UPDATE appraisal_cycles SET status = $1, closed_at = $2 WHERE id = $3", CycleStatusClosed, closedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCycleNotFound
	}
	return nil
}

func (s *Store) MarkCyclePublished(ctx context.Context, id string, publishedAt time.Time) error {
	tag, err := s.q(ctx).Exec(ctx, "UPDATE appraisal_cycles SET status = $1, published_at = $2 WHERE id = $3", CycleStatusClosed, publishedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCycleNotFound
	}
	return nil
}

func (s *Store) MarkCycleArchived(ctx context.Context, id string, archivedAt time.Time) error {
	tag, err := s.q(ctx).Exec(ctx, "UPDATE appraisal_cycles SET status = $1, archived_at = $2 WHERE id = $3", CycleStatusArchived, archivedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCycleNotFound
	}
	return nil
}

func (s *Store) setCycleStatus(ctx context.Context, id, query, status string) error {
	tag, err := s.q(ctx).Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCycleNotFound
	}
	return nil
}

func scanCycle(row pgx.Row) (Cycle, error) {
	var cycle Cycle
	if err := row.Scan(&cycle.ID, &cycle.Name, &cycle.Description, &cycle.CycleType, &cycle.StartDate, &cycle.EndDate, &cycle.ManagerDueDate, &cycle.AckDueDate, &cycle.Status, &cycle.PublishedAt, &cycle.ClosedAt, &cycle.ArchivedAt, &cycle.CreatedAt); err != nil {
		return Cycle{}, err
	}
	return cycle, nil
}
