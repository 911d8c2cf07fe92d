package appraisal

import "time"

const weightSumTarget = 100.0

// weightTolerance absorbs float drift when weights arrive as decimals
// (e.g. 33.33 + 33.33 + 33.34).
const weightTolerance = 0.001

// ValidateCriteriaWeights enforces the template weight invariant: the sum
// is either exactly 0 (qualitative template, no scoring) or exactly 100,
// so a record's total score reads as a percentage.
func ValidateCriteriaWeights(criteria []CriterionWeight) error {
	sum := 0.0
	for _, criterion := range criteria {
		sum += criterion.Weight
	}
	if sum < weightTolerance && sum > -weightTolerance {
		return nil
	}
	if sum > weightSumTarget-weightTolerance && sum < weightSumTarget+weightTolerance {
		return nil
	}
	return ErrCriteriaWeights
}

// ResolveDueDate picks an assignment's due date: the per-assignment
// override wins, then the cycle's manager due date, then the cycle end.
func ResolveDueDate(override *time.Time, managerDue *time.Time, cycleEnd time.Time) time.Time {
	if override != nil {
		return *override
	}
	if managerDue != nil {
		return *managerDue
	}
	return cycleEnd
}

// ValidateCycleDates enforces startDate < endDate.
func ValidateCycleDates(start, end time.Time) error {
	if !start.Before(end) {
		return ErrCycleDates
	}
	return nil
}

// ValidateResolutionStatus restricts caller-supplied dispute outcomes to
// the two terminal values.
func ValidateResolutionStatus(status string) error {
	if status != DisputeStatusResolved && status != DisputeStatusRejected {
		return ErrResolutionStatus
	}
	return nil
}
