package appraisal

import "testing"

func TestCycleTransitions(t *testing.T) {
	allowed := [][2]string{
		{CycleStatusPlanned, CycleStatusActive},
		{CycleStatusPlanned, CycleStatusClosed},
		{CycleStatusActive, CycleStatusClosed},
		{CycleStatusClosed, CycleStatusArchived},
	}
	for _, pair := range allowed {
		if !CanCycleTransition(pair[0], pair[1]) {
			t.Errorf("expected %s -> %s to be allowed", pair[0], pair[1])
		}
	}

	denied := [][2]string{
		{CycleStatusActive, CycleStatusActive},   // double activation
		{CycleStatusActive, CycleStatusPlanned},  // no going back
		{CycleStatusPlanned, CycleStatusArchived},
		{CycleStatusClosed, CycleStatusActive},
		{CycleStatusArchived, CycleStatusClosed},
		{CycleStatusArchived, CycleStatusArchived},
	}
	for _, pair := range denied {
		if CanCycleTransition(pair[0], pair[1]) {
			t.Errorf("expected %s -> %s to be rejected", pair[0], pair[1])
		}
	}
}

func TestRecordTransitions(t *testing.T) {
	if !CanRecordTransition(RecordStatusDraft, RecordStatusManagerSubmitted) {
		t.Error("draft submit should be allowed")
	}
	if !CanRecordTransition(RecordStatusManagerSubmitted, RecordStatusManagerSubmitted) {
		t.Error("re-submit should be allowed")
	}
	if !CanRecordTransition(RecordStatusManagerSubmitted, RecordStatusDraft) {
		t.Error("reopening a submitted record should be allowed")
	}
	if !CanRecordTransition(RecordStatusManagerSubmitted, RecordStatusHRPublished) {
		t.Error("publish of a submitted record should be allowed")
	}
	if CanRecordTransition(RecordStatusDraft, RecordStatusHRPublished) {
		t.Error("a draft must never publish directly")
	}
	if CanRecordTransition(RecordStatusHRPublished, RecordStatusManagerSubmitted) {
		t.Error("published records cannot be re-submitted")
	}
}

func TestAssignmentTransitions(t *testing.T) {
	if !CanAssignmentTransition(AssignmentStatusNotStarted, AssignmentStatusInProgress) {
		t.Error("first save should start the assignment")
	}
	if !CanAssignmentTransition(AssignmentStatusInProgress, AssignmentStatusSubmitted) {
		t.Error("submit should complete the assignment")
	}
	if !CanAssignmentTransition(AssignmentStatusSubmitted, AssignmentStatusSubmitted) {
		t.Error("re-submit keeps the assignment submitted")
	}
	if CanAssignmentTransition(AssignmentStatusNotStarted, AssignmentStatusSubmitted) {
		t.Error("an assignment cannot submit before starting")
	}
	if CanAssignmentTransition(AssignmentStatusSubmitted, AssignmentStatusInProgress) {
		t.Error("assignments do not move backwards")
	}
}
