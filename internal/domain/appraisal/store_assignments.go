package appraisal

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

func (s *Store) InsertAssignment(ctx context.Context, assignment Assignment) error {
	_, err := s.q(ctx).Exec(ctx, `
    INSERT INTO appraisal_assignments (id, cycle_id, template_id, employee_id, manager_id, department_id, position_id, status, due_date, assigned_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
  `, assignment.ID, assignment.CycleID, assignment.TemplateID, assignment.EmployeeID, assignment.ManagerID, assignment.DepartmentID, nullIfEmpty(assignment.PositionID), assignment.Status, assignment.DueDate, assignment.AssignedAt)
	return err
}

func (s *Store) GetAssignment(ctx context.Context, id string) (Assignment, error) {
	row := s.q(ctx).QueryRow(ctx, `
    SELECT id, cycle_id, template_id, employee_id, manager_id, department_id, COALESCE(position_id, ''), status, due_date, assigned_at, submitted_at, COALESCE(latest_record_id::text, '')
    FROM appraisal_assignments
    WHERE id = $1
  `, id)
	assignment, err := scanAssignment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Assignment{}, ErrAssignmentNotFound
	}
	return assignment, err
}

// AssignmentsForManager lists a manager's assignments, newest first, with
// template, cycle and employee names joined in for display.
func (s *Store) AssignmentsForManager(ctx context.Context, managerID, cycleID string) ([]Assignment, error) {
	return s.listAssignments(ctx, "a.manager_id", managerID, cycleID)
}

func (s *Store) AssignmentsForEmployee(ctx context.Context, employeeID, cycleID string) ([]Assignment, error) {
	return s.listAssignments(ctx, "a.employee_id", employeeID, cycleID)
}

func (s *Store) listAssignments(ctx context.Context, actorColumn, actorID, cycleID string) ([]Assignment, error) {
	query := `
    SELECT a.id, a.cycle_id, a.template_id, a.employee_id, a.manager_id, a.department_id, COALESCE(a.position_id, ''), a.status, a.due_date, a.assigned_at, a.submitted_at, COALESCE(a.latest_record_id::text, ''),
           COALESCE(t.name, ''), COALESCE(c.name, ''), COALESCE(u.first_name || ' ' || u.last_name, '')
    FROM appraisal_assignments a
    LEFT JOIN appraisal_templates t ON a.template_id = t.id
    LEFT JOIN appraisal_cycles c ON a.cycle_id = c.id
    LEFT JOIN users u ON a.employee_id = u.id
    WHERE ` + actorColumn + ` = $1`
	args := []any{actorID}
	if cycleID != "" {
		query += " AND a.cycle_id = $2"
		args = append(args, cycleID)
	}
	query += " ORDER BY a.assigned_at DESC"

	rows, err := s.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []Assignment
	for rows.Next() {
		var a Assignment
		var submittedAt sql.NullTime
		if err := rows.Scan(&a.ID, &a.CycleID, &a.TemplateID, &a.EmployeeID, &a.ManagerID, &a.DepartmentID, &a.PositionID, &a.Status, &a.DueDate, &a.AssignedAt, &submittedAt, &a.LatestRecordID, &a.TemplateName, &a.CycleName, &a.EmployeeName); err != nil {
			return nil, err
		}
		if submittedAt.Valid {
			t := submittedAt.Time
			a.SubmittedAt = &t
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// LinkLatestRecord points the assignment at its current record and moves
// the assignment status in the same statement.
func (s *Store) LinkLatestRecord(ctx context.Context, assignmentID, recordID, status string) error {
	tag, err := s.q(ctx).Exec(ctx, `
    UPDATE appraisal_assignments
    SET latest_record_id = $1, status = $2
    WHERE id = $3
  `, recordID, status, assignmentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

func (s *Store) MarkAssignmentSubmitted(ctx context.Context, assignmentID string, submittedAt time.Time) error {
	tag, err := s.q(ctx).Exec(ctx, `
    UPDATE appraisal_assignments
    SET status = $1, submitted_at = $2
    WHERE id = $3
  `, AssignmentStatusSubmitted, submittedAt, assignmentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

func scanAssignment(row pgx.Row) (Assignment, error) {
	var a Assignment
	var submittedAt sql.NullTime
	if err := row.Scan(&a.ID, &a.CycleID, &a.TemplateID, &a.EmployeeID, &a.ManagerID, &a.DepartmentID, &a.PositionID, &a.Status, &a.DueDate, &a.AssignedAt, &submittedAt, &a.LatestRecordID); err != nil {
		return Assignment{}, err
	}
	if submittedAt.Valid {
		t := submittedAt.Time
		a.SubmittedAt = &t
	}
	return a, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
