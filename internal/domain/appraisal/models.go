package appraisal

import "time"

// CriterionWeight is one named criterion of a template with its relative
// weight. Weights across a template sum to 0 (qualitative) or 100.
type CriterionWeight struct {
	Name   string  `json:"criterionName"`
	Weight float64 `json:"weight"`
}

type Template struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Criteria      []CriterionWeight `json:"criteria"`
	DepartmentIDs []string          `json:"departmentIds"`
	PositionIDs   []string          `json:"positionIds"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

type Cycle struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	CycleType      string     `json:"cycleType"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        time.Time  `json:"endDate"`
	ManagerDueDate *time.Time `json:"managerDueDate,omitempty"`
	AckDueDate     *time.Time `json:"employeeAcknowledgementDueDate,omitempty"`
	Status         string     `json:"status"`
	PublishedAt    *time.Time `json:"publishedAt,omitempty"`
	ClosedAt       *time.Time `json:"closedAt,omitempty"`
	ArchivedAt     *time.Time `json:"archivedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type Assignment struct {
	ID             string     `json:"id"`
	CycleID        string     `json:"cycleId"`
	TemplateID     string     `json:"templateId"`
	EmployeeID     string     `json:"employeeId"`
	ManagerID      string     `json:"managerId"`
	DepartmentID   string     `json:"departmentId"`
	PositionID     string     `json:"positionId,omitempty"`
	Status         string     `json:"status"`
	DueDate        time.Time  `json:"dueDate"`
	AssignedAt     time.Time  `json:"assignedAt"`
	SubmittedAt    *time.Time `json:"submittedAt,omitempty"`
	LatestRecordID string     `json:"latestRecordId,omitempty"`

	// Read-side projection fields, populated by list queries only.
	TemplateName string `json:"templateName,omitempty"`
	CycleName    string `json:"cycleName,omitempty"`
	EmployeeName string `json:"employeeName,omitempty"`
}

type CriterionRating struct {
	Name    string  `json:"criterionName"`
	Score   float64 `json:"score"`
	Comment string  `json:"comment,omitempty"`
}

type Record struct {
	ID                 string            `json:"id"`
	AssignmentID       string            `json:"assignmentId"`
	CycleID            string            `json:"cycleId"`
	TemplateID         string            `json:"templateId"`
	EmployeeID         string            `json:"employeeId"`
	ManagerID          string            `json:"managerId"`
	Ratings            []CriterionRating `json:"ratings"`
	TotalScore         float64           `json:"totalScore"`
	OverallRating      string            `json:"overallRatingLabel"`
	ManagerSummary     string            `json:"managerSummary"`
	Strengths          string            `json:"strengths"`
	ImprovementAreas   string            `json:"improvementAreas"`
	Status             string            `json:"status"`
	Version            int               `json:"version"`
	ManagerSubmittedAt *time.Time        `json:"managerSubmittedAt,omitempty"`
	HRPublishedAt      *time.Time        `json:"hrPublishedAt,omitempty"`
	ArchivedAt         *time.Time        `json:"archivedAt,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

type Dispute struct {
	ID                   string     `json:"id"`
	RecordID             string     `json:"appraisalId"`
	AssignmentID         string     `json:"assignmentId"`
	CycleID              string     `json:"cycleId"`
	RaisedByEmployeeID   string     `json:"raisedByEmployeeId"`
	Reason               string     `json:"reason"`
	Details              string     `json:"details"`
	SubmittedAt          time.Time  `json:"submittedAt"`
	Status               string     `json:"status"`
	ResolutionSummary    string     `json:"resolutionSummary,omitempty"`
	ResolvedAt           *time.Time `json:"resolvedAt,omitempty"`
	ResolvedByEmployeeID string     `json:"resolvedByEmployeeId,omitempty"`
}

type TemplateInput struct {
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Criteria      []CriterionWeight `json:"criteria"`
	DepartmentIDs []string          `json:"departmentIds"`
	PositionIDs   []string          `json:"positionIds"`
}

// TemplatePatch merges into an existing template. Nil fields are left
// untouched; a non-nil Criteria re-triggers weight validation.
type TemplatePatch struct {
	Name          *string           `json:"name"`
	Description   *string           `json:"description"`
	Criteria      []CriterionWeight `json:"criteria"`
	DepartmentIDs []string          `json:"departmentIds"`
	PositionIDs   []string          `json:"positionIds"`
}

// AssignmentSpec is one (employee, manager, template, department) tuple of
// a cycle, with an optional per-assignment due-date override.
type AssignmentSpec struct {
	TemplateID   string     `json:"templateId"`
	EmployeeID   string     `json:"employeeId"`
	ManagerID    string     `json:"managerId"`
	DepartmentID string     `json:"departmentId"`
	PositionID   string     `json:"positionId,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
}

type CycleInput struct {
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	CycleType      string           `json:"cycleType"`
	StartDate      time.Time        `json:"startDate"`
	EndDate        time.Time        `json:"endDate"`
	ManagerDueDate *time.Time       `json:"managerDueDate,omitempty"`
	AckDueDate     *time.Time       `json:"employeeAcknowledgementDueDate,omitempty"`
	Assignments    []AssignmentSpec `json:"assignments"`
}

type CycleWithAssignments struct {
	Cycle       Cycle        `json:"cycle"`
	Assignments []Assignment `json:"assignments"`
}

// RecordInput carries the manager-editable content of a record. Version is
// the version the caller last read; zero means "no record seen yet".
type RecordInput struct {
	Ratings          []CriterionRating `json:"ratings"`
	TotalScore       float64           `json:"totalScore"`
	OverallRating    string            `json:"overallRatingLabel"`
	ManagerSummary   string            `json:"managerSummary"`
	Strengths        string            `json:"strengths"`
	ImprovementAreas string            `json:"improvementAreas"`
	Version          int               `json:"version"`
}

type DisputeInput struct {
	Reason  string `json:"reason"`
	Details string `json:"details"`
}

type ResolutionInput struct {
	Status            string `json:"status"`
	ResolutionSummary string `json:"resolutionSummary"`
}
