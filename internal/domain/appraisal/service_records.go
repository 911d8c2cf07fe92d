package appraisal

import (
	"context"

	"github.com/google/uuid"
)

// UpsertRecord saves a manager's draft for an assignment. The first save
// creates the record, links it as the assignment's latest record and
// moves the assignment to in_progress; later saves overwrite the record's
// content and force it back to draft (a submitted record can be
// reopened). input.Version must match the stored version: a stale write
// fails with ErrRecordVersionConflict instead of silently winning.
func (s *Service) UpsertRecord(ctx context.Context, assignmentID, managerID string, input RecordInput) (Record, error) {
	assignment, err := s.store.GetAssignment(ctx, assignmentID)
	if err != nil {
		return Record{}, err
	}
	if assignment.ManagerID != managerID {
		return Record{}, ErrNotAssignmentManager
	}

	now := s.clock.Now()
	var saved Record

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if assignment.LatestRecordID == "" {
			record := Record{
				ID:               uuid.NewString(),
				AssignmentID:     assignment.ID,
				CycleID:          assignment.CycleID,
				TemplateID:       assignment.TemplateID,
				EmployeeID:       assignment.EmployeeID,
				ManagerID:        assignment.ManagerID,
				Ratings:          input.Ratings,
				TotalScore:       input.TotalScore,
				OverallRating:    input.OverallRating,
				ManagerSummary:   input.ManagerSummary,
				Strengths:        input.Strengths,
				ImprovementAreas: input.ImprovementAreas,
				Status:           RecordStatusDraft,
				Version:          1,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			if err := s.store.InsertRecord(ctx, record); err != nil {
				return err
			}
			if err := s.store.LinkLatestRecord(ctx, assignment.ID, record.ID, AssignmentStatusInProgress); err != nil {
				return err
			}
			saved = record
			return nil
		}

		record, err := s.store.GetRecord(ctx, assignment.LatestRecordID)
		if err != nil {
			return err
		}
		if err := guardRecordTransition(record.Status, RecordStatusDraft); err != nil {
			return err
		}

		record.Ratings = input.Ratings
		record.TotalScore = input.TotalScore
		record.OverallRating = input.OverallRating
		record.ManagerSummary = input.ManagerSummary
		record.Strengths = input.Strengths
		record.ImprovementAreas = input.ImprovementAreas
		record.Status = RecordStatusDraft
		record.UpdatedAt = now

		updated, err := s.store.UpdateRecordContent(ctx, record, input.Version)
		if err != nil {
			return err
		}
		if !updated {
			return ErrRecordVersionConflict
		}
		record.Version = input.Version + 1
		saved = record
		return nil
	})
	if err != nil {
		return Record{}, err
	}
	return saved, nil
}

// SubmitRecord moves a record to manager_submitted and cascades the
// owning assignment to submitted, stamping both timestamps. Re-submitting
// a submitted record is allowed; the timestamps are refreshed.
func (s *Service) SubmitRecord(ctx context.Context, recordID, managerID string) (Record, error) {
	record, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return Record{}, err
	}
	if record.ManagerID != managerID {
		return Record{}, ErrNotRecordManager
	}
	if err := guardRecordTransition(record.Status, RecordStatusManagerSubmitted); err != nil {
		return Record{}, err
	}

	now := s.clock.Now()
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.store.MarkRecordSubmitted(ctx, record.ID, now); err != nil {
			return err
		}
		return s.store.MarkAssignmentSubmitted(ctx, record.AssignmentID, now)
	})
	if err != nil {
		return Record{}, err
	}

	record.Status = RecordStatusManagerSubmitted
	record.ManagerSubmittedAt = &now
	record.UpdatedAt = now
	return record, nil
}

func (s *Service) GetRecord(ctx context.Context, id string) (Record, error) {
	return s.store.GetRecord(ctx, id)
}

// EmployeeAppraisals returns the employee's published records only;
// drafts and submitted-but-unpublished evaluations stay invisible.
func (s *Service) EmployeeAppraisals(ctx context.Context, employeeID string) ([]Record, error) {
	return s.store.PublishedRecordsForEmployee(ctx, employeeID)
}
