package appraisal

import (
	"context"
	"time"
)

type StoreAPI interface {
	InsertTemplate(ctx context.Context, tmpl Template) error
	ListTemplates(ctx context.Context) ([]Template, error)
	GetTemplate(ctx context.Context, id string) (Template, error)
	UpdateTemplate(ctx context.Context, tmpl Template) error
	DeleteTemplate(ctx context.Context, id string) error

	InsertCycle(ctx context.Context, cycle Cycle) error
	ListCycles(ctx context.Context) ([]Cycle, error)
	GetCycle(ctx context.Context, id string) (Cycle, error)
	MarkCycleActive(ctx context.Context, id string) error
	MarkCycleClosed(ctx context.Context, id string, closedAt time.Time) error
	MarkCyclePublished(ctx context.Context, id string, publishedAt time.Time) error
	MarkCycleArchived(ctx context.Context, id string, archivedAt time.Time) error

	InsertAssignment(ctx context.Context, assignment Assignment) error
	GetAssignment(ctx context.Context, id string) (Assignment, error)
	AssignmentsForManager(ctx context.Context, managerID, cycleID string) ([]Assignment, error)
	AssignmentsForEmployee(ctx context.Context, employeeID, cycleID string) ([]Assignment, error)
	LinkLatestRecord(ctx context.Context, assignmentID, recordID, status string) error
	MarkAssignmentSubmitted(ctx context.Context, assignmentID string, submittedAt time.Time) error

	InsertRecord(ctx context.Context, record Record) error
	GetRecord(ctx context.Context, id string) (Record, error)
	UpdateRecordContent(ctx context.Context, record Record, expectedVersion int) (bool, error)
	MarkRecordSubmitted(ctx context.Context, id string, submittedAt time.Time) error
	PublishRecordsForCycle(ctx context.Context, cycleID string, publishedAt time.Time) (int64, error)
	ArchiveRecordsForCycle(ctx context.Context, cycleID string, archivedAt time.Time) (int64, error)
	PublishedRecordsForEmployee(ctx context.Context, employeeID string) ([]Record, error)

	InsertDispute(ctx context.Context, dispute Dispute) error
	GetDispute(ctx context.Context, id string) (Dispute, error)
	UpdateDisputeResolution(ctx context.Context, dispute Dispute) error
	ListDisputes(ctx context.Context, status string) ([]Dispute, error)
}
