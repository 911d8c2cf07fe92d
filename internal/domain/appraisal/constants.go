package appraisal

const (
	CycleStatusPlanned  = "planned"
	CycleStatusActive   = "active"
	CycleStatusClosed   = "closed"
	CycleStatusArchived = "archived"

	AssignmentStatusNotStarted = "not_started"
	AssignmentStatusInProgress = "in_progress"
	AssignmentStatusSubmitted  = "submitted"

	RecordStatusDraft            = "draft"
	RecordStatusManagerSubmitted = "manager_submitted"
	RecordStatusHRPublished      = "hr_published"

	DisputeStatusOpen     = "open"
	DisputeStatusResolved = "resolved"
	DisputeStatusRejected = "rejected"
)

const (
	CycleTypeAnnual    = "annual"
	CycleTypeQuarterly = "quarterly"
	CycleTypeProbation = "probation"
	CycleTypeAdHoc     = "ad_hoc"
)
