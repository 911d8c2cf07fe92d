package appraisal

import "fmt"

// Transition tables are exhaustive: anything not listed is rejected. A
// cycle only moves forward; publish and close both land on "closed", with
// a non-null publishedAt telling the two apart.
var cycleTransitions = map[string][]string{
	CycleStatusPlanned: {CycleStatusActive, CycleStatusClosed},
	CycleStatusActive:  {CycleStatusClosed},
	CycleStatusClosed:  {CycleStatusArchived},
}

// Records can be reopened to draft from any state through upsert; a
// publish only picks up manager-submitted records.
var recordTransitions = map[string][]string{
	RecordStatusDraft:            {RecordStatusDraft, RecordStatusManagerSubmitted},
	RecordStatusManagerSubmitted: {RecordStatusDraft, RecordStatusManagerSubmitted, RecordStatusHRPublished},
	RecordStatusHRPublished:      {RecordStatusDraft},
}

var assignmentTransitions = map[string][]string{
	AssignmentStatusNotStarted: {AssignmentStatusInProgress},
	AssignmentStatusInProgress: {AssignmentStatusSubmitted},
	AssignmentStatusSubmitted:  {AssignmentStatusSubmitted},
}

func CanCycleTransition(from, to string) bool {
	return transitionListed(cycleTransitions, from, to)
}

func CanRecordTransition(from, to string) bool {
	return transitionListed(recordTransitions, from, to)
}

func CanAssignmentTransition(from, to string) bool {
	return transitionListed(assignmentTransitions, from, to)
}

func guardCycleTransition(from, to string) error {
	if !CanCycleTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrCycleTransition, from, to)
	}
	return nil
}

func guardRecordTransition(from, to string) error {
	if !CanRecordTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrRecordTransition, from, to)
	}
	return nil
}

func transitionListed(table map[string][]string, from, to string) bool {
	for _, allowed := range table[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
