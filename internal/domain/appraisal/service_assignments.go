package appraisal

import "context"

// AssignmentsForManager lists the assignments a manager owns, optionally
// narrowed to one cycle.
func (s *Service) AssignmentsForManager(ctx context.Context, managerID, cycleID string) ([]Assignment, error) {
	return s.store.AssignmentsForManager(ctx, managerID, cycleID)
}

func (s *Service) AssignmentsForEmployee(ctx context.Context, employeeID, cycleID string) ([]Assignment, error) {
	return s.store.AssignmentsForEmployee(ctx, employeeID, cycleID)
}

func (s *Service) GetAssignment(ctx context.Context, id string) (Assignment, error) {
	return s.store.GetAssignment(ctx, id)
}
