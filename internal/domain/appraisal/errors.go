package appraisal

import "errors"

var (
	ErrTemplateNotFound   = errors.New("appraisal template not found")
	ErrCycleNotFound      = errors.New("appraisal cycle not found")
	ErrAssignmentNotFound = errors.New("appraisal assignment not found")
	ErrRecordNotFound     = errors.New("appraisal record not found")
	ErrDisputeNotFound    = errors.New("appraisal dispute not found")

	ErrCriteriaWeights   = errors.New("criteria weights must sum to 0 or 100")
	ErrCycleDates        = errors.New("cycle start date must be before end date")
	ErrResolutionStatus  = errors.New("dispute resolution status must be resolved or rejected")
	ErrCycleTransition   = errors.New("cycle status transition not allowed")
	ErrRecordTransition  = errors.New("record status transition not allowed")
	ErrDisputeResolved   = errors.New("dispute is already resolved")

	ErrNotAssignmentManager = errors.New("assignment belongs to a different manager")
	ErrNotRecordManager     = errors.New("record belongs to a different manager")
	ErrNotRecordOwner       = errors.New("record belongs to a different employee")
	ErrNotDisputeResolver   = errors.New("actor may not resolve disputes")

	ErrRecordVersionConflict = errors.New("record was modified concurrently")
)
