package appraisal

import (
	"context"

	"github.com/google/uuid"
)

// SubmitDispute opens a dispute against a published record. Only the
// employee the record is about may raise it.
func (s *Service) SubmitDispute(ctx context.Context, recordID, employeeID string, input DisputeInput) (Dispute, error) {
	record, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return Dispute{}, err
	}
	if record.EmployeeID != employeeID {
		return Dispute{}, ErrNotRecordOwner
	}

	// Referential integrity should make this lookup infallible; a missing
	// assignment still surfaces as not found rather than a broken dispute.
	assignment, err := s.store.GetAssignment(ctx, record.AssignmentID)
	if err != nil {
		return Dispute{}, err
	}

	dispute := Dispute{
		ID:                 uuid.NewString(),
		RecordID:           record.ID,
		AssignmentID:       assignment.ID,
		CycleID:            record.CycleID,
		RaisedByEmployeeID: employeeID,
		Reason:             input.Reason,
		Details:            input.Details,
		SubmittedAt:        s.clock.Now(),
		Status:             DisputeStatusOpen,
	}
	if err := s.store.InsertDispute(ctx, dispute); err != nil {
		return Dispute{}, err
	}
	return dispute, nil
}

// ResolveDispute records a terminal outcome for an open dispute. The
// caller chooses resolved or rejected; whether the caller is entitled to
// resolve at all is answered by the resolver directory.
func (s *Service) ResolveDispute(ctx context.Context, disputeID, resolverID string, input ResolutionInput) (Dispute, error) {
	if err := ValidateResolutionStatus(input.Status); err != nil {
		return Dispute{}, err
	}

	if s.resolvers != nil {
		allowed, err := s.resolvers.IsDisputeResolver(ctx, resolverID)
		if err != nil {
			return Dispute{}, err
		}
		if !allowed {
			return Dispute{}, ErrNotDisputeResolver
		}
	}

	dispute, err := s.store.GetDispute(ctx, disputeID)
	if err != nil {
		return Dispute{}, err
	}
	if dispute.Status != DisputeStatusOpen {
		return Dispute{}, ErrDisputeResolved
	}

	now := s.clock.Now()
	dispute.Status = input.Status
	dispute.ResolutionSummary = input.ResolutionSummary
	dispute.ResolvedAt = &now
	dispute.ResolvedByEmployeeID = resolverID

	if err := s.store.UpdateDisputeResolution(ctx, dispute); err != nil {
		return Dispute{}, err
	}
	return dispute, nil
}

func (s *Service) ListDisputes(ctx context.Context, status string) ([]Dispute, error) {
	return s.store.ListDisputes(ctx, status)
}
