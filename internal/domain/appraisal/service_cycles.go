package appraisal

import (
	"context"

	"github.com/google/uuid"
)

// CreateCycle persists a planned cycle and bulk-creates one assignment
// per spec entry. Both writes run in one transaction so a failed
// assignment insert cannot leave an orphan cycle behind.
func (s *Service) CreateCycle(ctx context.Context, input CycleInput) (CycleWithAssignments, error) {
	if err := ValidateCycleDates(input.StartDate, input.EndDate); err != nil {
		return CycleWithAssignments{}, err
	}

	now := s.clock.Now()
	cycle := Cycle{
		ID:             uuid.NewString(),
		Name:           input.Name,
		Description:    input.Description,
		CycleType:      input.CycleType,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		ManagerDueDate: input.ManagerDueDate,
		AckDueDate:     input.AckDueDate,
		Status:         CycleStatusPlanned,
		CreatedAt:      now,
	}

	assignments := make([]Assignment, 0, len(input.Assignments))
	for _, spec := range input.Assignments {
		assignments = append(assignments, Assignment{
			ID:           uuid.NewString(),
			CycleID:      cycle.ID,
			TemplateID:   spec.TemplateID,
			EmployeeID:   spec.EmployeeID,
			ManagerID:    spec.ManagerID,
			DepartmentID: spec.DepartmentID,
			PositionID:   spec.PositionID,
			Status:       AssignmentStatusNotStarted,
			DueDate:      ResolveDueDate(spec.DueDate, input.ManagerDueDate, input.EndDate),
			AssignedAt:   now,
		})
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.store.InsertCycle(ctx, cycle); err != nil {
			return err
		}
		for _, assignment := range assignments {
			if err := s.store.InsertAssignment(ctx, assignment); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return CycleWithAssignments{}, err
	}

	return CycleWithAssignments{Cycle: cycle, Assignments: assignments}, nil
}

func (s *Service) ListCycles(ctx context.Context) ([]Cycle, error) {
	return s.store.ListCycles(ctx)
}

func (s *Service) GetCycle(ctx context.Context, id string) (Cycle, error) {
	return s.store.GetCycle(ctx, id)
}

func (s *Service) ActivateCycle(ctx context.Context, id string) (Cycle, error) {
	cycle, err := s.store.GetCycle(ctx, id)
	if err != nil {
		return Cycle{}, err
	}
	if err := guardCycleTransition(cycle.Status, CycleStatusActive); err != nil {
		return Cycle{}, err
	}
	if err := s.store.MarkCycleActive(ctx, id); err != nil {
		return Cycle{}, err
	}
	cycle.Status = CycleStatusActive
	return cycle, nil
}

// CloseCycle ends a cycle without publishing: no record cascade, only
// closedAt is stamped.
func (s *Service) CloseCycle(ctx context.Context, id string) (Cycle, error) {
	cycle, err := s.store.GetCycle(ctx, id)
	if err != nil {
		return Cycle{}, err
	}
	if err := guardCycleTransition(cycle.Status, CycleStatusClosed); err != nil {
		return Cycle{}, err
	}

	now := s.clock.Now()
	if err := s.store.MarkCycleClosed(ctx, id, now); err != nil {
		return Cycle{}, err
	}
	cycle.Status = CycleStatusClosed
	cycle.ClosedAt = &now
	return cycle, nil
}

// PublishCycle promotes every manager-submitted record of the cycle to
// hr_published and closes the cycle, all in one transaction. Records
// still in draft are intentionally skipped: their evaluations never
// reached a publishable state.
func (s *Service) PublishCycle(ctx context.Context, id string) (Cycle, error) {
	cycle, err := s.store.GetCycle(ctx, id)
	if err != nil {
		return Cycle{}, err
	}
	if err := guardCycleTransition(cycle.Status, CycleStatusClosed); err != nil {
		return Cycle{}, err
	}

	now := s.clock.Now()
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.store.PublishRecordsForCycle(ctx, id, now); err != nil {
			return err
		}
		return s.store.MarkCyclePublished(ctx, id, now)
	})
	if err != nil {
		return Cycle{}, err
	}
	cycle.Status = CycleStatusClosed
	cycle.PublishedAt = &now
	return cycle, nil
}

// ArchiveCycle moves a closed cycle to archived and stamps archivedAt on
// all of its records. Record status is deliberately left alone; archival
// is a cycle-level concern the records only mirror as a timestamp.
func (s *Service) ArchiveCycle(ctx context.Context, id string) (Cycle, error) {
	cycle, err := s.store.GetCycle(ctx, id)
	if err != nil {
		return Cycle{}, err
	}
	if err := guardCycleTransition(cycle.Status, CycleStatusArchived); err != nil {
		return Cycle{}, err
	}

	now := s.clock.Now()
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.store.MarkCycleArchived(ctx, id, now); err != nil {
			return err
		}
		_, err := s.store.ArchiveRecordsForCycle(ctx, id, now)
		return err
	})
	if err != nil {
		return Cycle{}, err
	}
	cycle.Status = CycleStatusArchived
	cycle.ArchivedAt = &now
	return cycle, nil
}
