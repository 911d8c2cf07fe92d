package appraisalhandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/appraisal"
	"appraisal/internal/domain/audit"
	"appraisal/internal/domain/auth"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
	"appraisal/internal/transport/http/shared"
)

type Handler struct {
	Service   *appraisal.Service
	Audit     *audit.Service
	ExportDir string
}

func NewHandler(service *appraisal.Service, auditSvc *audit.Service, exportDir string) *Handler {
	return &Handler{Service: service, Audit: auditSvc, ExportDir: exportDir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/appraisal", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermTemplatesRead)).Get("/templates", h.handleListTemplates)
		r.With(middleware.RequirePermission(auth.PermTemplatesWrite)).Post("/templates", h.handleCreateTemplate)
		r.With(middleware.RequirePermission(auth.PermTemplatesRead)).Get("/templates/{templateID}", h.handleGetTemplate)
		r.With(middleware.RequirePermission(auth.PermTemplatesWrite)).Put("/templates/{templateID}", h.handleUpdateTemplate)
		r.With(middleware.RequirePermission(auth.PermTemplatesWrite)).Delete("/templates/{templateID}", h.handleDeleteTemplate)

		r.With(middleware.RequirePermission(auth.PermCyclesRead)).Get("/cycles", h.handleListCycles)
		r.With(middleware.RequirePermission(auth.PermCyclesWrite)).Post("/cycles", h.handleCreateCycle)
		r.With(middleware.RequirePermission(auth.PermCyclesRead)).Get("/cycles/{cycleID}", h.handleGetCycle)
		r.With(middleware.RequirePermission(auth.PermCyclesLifecycle)).Post("/cycles/{cycleID}/activate", h.handleActivateCycle)
		r.With(middleware.RequirePermission(auth.PermCyclesLifecycle)).Post("/cycles/{cycleID}/close", h.handleCloseCycle)
		r.With(middleware.RequirePermission(auth.PermCyclesLifecycle)).Post("/cycles/{cycleID}/publish", h.handlePublishCycle)
		r.With(middleware.RequirePermission(auth.PermCyclesLifecycle)).Post("/cycles/{cycleID}/archive", h.handleArchiveCycle)

		r.With(middleware.RequirePermission(auth.PermRecordsRead)).Get("/assignments", h.handleListAssignments)
		r.With(middleware.RequirePermission(auth.PermRecordsRead)).Get("/assignments/{assignmentID}", h.handleGetAssignment)
		r.With(middleware.RequirePermission(auth.PermRecordsWrite)).Put("/assignments/{assignmentID}/record", h.handleUpsertRecord)

		r.With(middleware.RequirePermission(auth.PermRecordsRead)).Get("/records/{recordID}", h.handleGetRecord)
		r.With(middleware.RequirePermission(auth.PermRecordsWrite)).Post("/records/{recordID}/submit", h.handleSubmitRecord)
		r.With(middleware.RequirePermission(auth.PermRecordsRead)).Get("/records/{recordID}/pdf", h.handleExportRecordPDF)

		r.With(middleware.RequirePermission(auth.PermRecordsRead)).Get("/my-appraisals", h.handleMyAppraisals)

		r.With(middleware.RequirePermission(auth.PermDisputesSubmit)).Post("/records/{recordID}/disputes", h.handleSubmitDispute)
		r.With(middleware.RequirePermission(auth.PermDisputesResolve)).Get("/disputes", h.handleListDisputes)
		r.With(middleware.RequirePermission(auth.PermDisputesResolve)).Post("/disputes/{disputeID}/resolve", h.handleResolveDispute)
	})
}

func (h *Handler) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Service.ListTemplates(r.Context())
	if err != nil {
		h.fail(w, r, err, "template_list_failed", "failed to list templates")
		return
	}
	api.Success(w, templates, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload appraisal.TemplateInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "template name required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	tmpl, err := h.Service.CreateTemplate(r.Context(), payload)
	if err != nil {
		h.fail(w, r, err, "template_create_failed", "failed to create template")
		return
	}

	h.record(r, user.UserID, "appraisal.template.create", "template", tmpl.ID, payload)
	api.Created(w, tmpl, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl, err := h.Service.GetTemplate(r.Context(), chi.URLParam(r, "templateID"))
	if err != nil {
		h.fail(w, r, err, "template_get_failed", "failed to get template")
		return
	}
	api.Success(w, tmpl, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	templateID := chi.URLParam(r, "templateID")

	var payload appraisal.TemplatePatch
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	tmpl, err := h.Service.UpdateTemplate(r.Context(), templateID, payload)
	if err != nil {
		h.fail(w, r, err, "template_update_failed", "failed to update template")
		return
	}

	h.record(r, user.UserID, "appraisal.template.update", "template", templateID, payload)
	api.Success(w, tmpl, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	templateID := chi.URLParam(r, "templateID")

	if err := h.Service.DeleteTemplate(r.Context(), templateID); err != nil {
		h.fail(w, r, err, "template_delete_failed", "failed to delete template")
		return
	}

	h.record(r, user.UserID, "appraisal.template.delete", "template", templateID, nil)
	api.Success(w, map[string]string{"id": templateID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListCycles(w http.ResponseWriter, r *http.Request) {
	cycles, err := h.Service.ListCycles(r.Context())
	if err != nil {
		h.fail(w, r, err, "cycle_list_failed", "failed to list cycles")
		return
	}
	api.Success(w, cycles, middleware.GetRequestID(r.Context()))
}

type cyclePayload struct {
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	CycleType      string              `json:"cycleType"`
	StartDate      string              `json:"startDate"`
	EndDate        string              `json:"endDate"`
	ManagerDueDate string              `json:"managerDueDate"`
	AckDueDate     string              `json:"employeeAcknowledgementDueDate"`
	Assignments    []assignmentPayload `json:"assignments"`
}

type assignmentPayload struct {
	TemplateID   string `json:"templateId"`
	EmployeeID   string `json:"employeeId"`
	ManagerID    string `json:"managerId"`
	DepartmentID string `json:"departmentId"`
	PositionID   string `json:"positionId"`
	DueDate      string `json:"dueDate"`
}

func (h *Handler) handleCreateCycle(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload cyclePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "cycle name required")
	startDate, _ := v.Date("startDate", payload.StartDate)
	endDate, _ := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", startDate, "endDate", endDate)
	for _, spec := range payload.Assignments {
		v.Required("assignments.templateId", spec.TemplateID, "template id required")
		v.Required("assignments.employeeId", spec.EmployeeID, "employee id required")
		v.Required("assignments.managerId", spec.ManagerID, "manager id required")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	input := appraisal.CycleInput{
		Name:        payload.Name,
		Description: payload.Description,
		CycleType:   payload.CycleType,
		StartDate:   startDate,
		EndDate:     endDate,
	}
	if payload.ManagerDueDate != "" {
		parsed, err := shared.ParseDate(payload.ManagerDueDate)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid manager due date", middleware.GetRequestID(r.Context()))
			return
		}
		input.ManagerDueDate = &parsed
	}
	if payload.AckDueDate != "" {
		parsed, err := shared.ParseDate(payload.AckDueDate)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid acknowledgement due date", middleware.GetRequestID(r.Context()))
			return
		}
		input.AckDueDate = &parsed
	}
	for _, spec := range payload.Assignments {
		assignment := appraisal.AssignmentSpec{
			TemplateID:   spec.TemplateID,
			EmployeeID:   spec.EmployeeID,
			ManagerID:    spec.ManagerID,
			DepartmentID: spec.DepartmentID,
			PositionID:   spec.PositionID,
		}
		if spec.DueDate != "" {
			parsed, err := shared.ParseDate(spec.DueDate)
			if err != nil {
				api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid assignment due date", middleware.GetRequestID(r.Context()))
				return
			}
			assignment.DueDate = &parsed
		}
		input.Assignments = append(input.Assignments, assignment)
	}

	result, err := h.Service.CreateCycle(r.Context(), input)
	if err != nil {
		h.fail(w, r, err, "cycle_create_failed", "failed to create cycle")
		return
	}

	h.record(r, user.UserID, "appraisal.cycle.create", "cycle", result.Cycle.ID, payload)
	api.Created(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetCycle(w http.ResponseWriter, r *http.Request) {
	cycle, err := h.Service.GetCycle(r.Context(), chi.URLParam(r, "cycleID"))
	if err != nil {
		h.fail(w, r, err, "cycle_get_failed", "failed to get cycle")
		return
	}
	api.Success(w, cycle, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleActivateCycle(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "appraisal.cycle.activate", h.Service.ActivateCycle)
}

func (h *Handler) handleCloseCycle(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "appraisal.cycle.close", h.Service.CloseCycle)
}

func (h *Handler) handlePublishCycle(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "appraisal.cycle.publish", h.Service.PublishCycle)
}

func (h *Handler) handleArchiveCycle(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "appraisal.cycle.archive", h.Service.ArchiveCycle)
}

func (h *Handler) lifecycle(w http.ResponseWriter, r *http.Request, action string, op func(ctx context.Context, id string) (appraisal.Cycle, error)) {
	user, _ := middleware.GetUser(r.Context())
	cycleID := chi.URLParam(r, "cycleID")

	cycle, err := op(r.Context(), cycleID)
	if err != nil {
		h.fail(w, r, err, "cycle_lifecycle_failed", "failed to change cycle state")
		return
	}

	h.record(r, user.UserID, action, "cycle", cycleID, map[string]string{"status": cycle.Status})
	api.Success(w, cycle, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	cycleID := r.URL.Query().Get("cycleId")

	var (
		assignments []appraisal.Assignment
		err         error
	)
	switch user.Role {
	case auth.RoleManager:
		assignments, err = h.Service.AssignmentsForManager(r.Context(), user.UserID, cycleID)
	case auth.RoleEmployee:
		assignments, err = h.Service.AssignmentsForEmployee(r.Context(), user.UserID, cycleID)
	default:
		managerID := r.URL.Query().Get("managerId")
		employeeID := r.URL.Query().Get("employeeId")
		if managerID != "" {
			assignments, err = h.Service.AssignmentsForManager(r.Context(), managerID, cycleID)
		} else if employeeID != "" {
			assignments, err = h.Service.AssignmentsForEmployee(r.Context(), employeeID, cycleID)
		} else {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "managerId or employeeId filter required", middleware.GetRequestID(r.Context()))
			return
		}
	}
	if err != nil {
		h.fail(w, r, err, "assignment_list_failed", "failed to list assignments")
		return
	}
	api.Success(w, assignments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetAssignment(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	assignment, err := h.Service.GetAssignment(r.Context(), chi.URLParam(r, "assignmentID"))
	if err != nil {
		h.fail(w, r, err, "assignment_get_failed", "failed to get assignment")
		return
	}
	if !canSeeAssignment(user, assignment) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, assignment, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpsertRecord(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	assignmentID := chi.URLParam(r, "assignmentID")

	var payload appraisal.RecordInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	record, err := h.Service.UpsertRecord(r.Context(), assignmentID, user.UserID, payload)
	if err != nil {
		h.fail(w, r, err, "record_save_failed", "failed to save record")
		return
	}

	h.record(r, user.UserID, "appraisal.record.save", "record", record.ID, map[string]any{"version": record.Version})
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	record, err := h.Service.GetRecord(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		h.fail(w, r, err, "record_get_failed", "failed to get record")
		return
	}
	if !canSeeRecord(user, record) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSubmitRecord(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	recordID := chi.URLParam(r, "recordID")

	record, err := h.Service.SubmitRecord(r.Context(), recordID, user.UserID)
	if err != nil {
		h.fail(w, r, err, "record_submit_failed", "failed to submit record")
		return
	}

	h.record(r, user.UserID, "appraisal.record.submit", "record", recordID, nil)
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExportRecordPDF(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	recordID := chi.URLParam(r, "recordID")

	record, err := h.Service.GetRecord(r.Context(), recordID)
	if err != nil {
		h.fail(w, r, err, "record_get_failed", "failed to get record")
		return
	}
	if !canSeeRecord(user, record) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", middleware.GetRequestID(r.Context()))
		return
	}

	path, err := h.Service.ExportRecordPDF(r.Context(), recordID, h.ExportDir)
	if err != nil {
		h.fail(w, r, err, "record_export_failed", "failed to export record")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="appraisal-`+recordID+`.pdf"`)
	http.ServeFile(w, r, path)
}

func (h *Handler) handleMyAppraisals(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	records, err := h.Service.EmployeeAppraisals(r.Context(), user.UserID)
	if err != nil {
		h.fail(w, r, err, "appraisal_list_failed", "failed to list appraisals")
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSubmitDispute(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	recordID := chi.URLParam(r, "recordID")

	var payload appraisal.DisputeInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("reason", payload.Reason, "dispute reason required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	dispute, err := h.Service.SubmitDispute(r.Context(), recordID, user.UserID, payload)
	if err != nil {
		h.fail(w, r, err, "dispute_submit_failed", "failed to submit dispute")
		return
	}

	h.record(r, user.UserID, "appraisal.dispute.submit", "dispute", dispute.ID, payload)
	api.Created(w, dispute, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListDisputes(w http.ResponseWriter, r *http.Request) {
	disputes, err := h.Service.ListDisputes(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.fail(w, r, err, "dispute_list_failed", "failed to list disputes")
		return
	}
	api.Success(w, disputes, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleResolveDispute(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	disputeID := chi.URLParam(r, "disputeID")

	var payload appraisal.ResolutionInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	dispute, err := h.Service.ResolveDispute(r.Context(), disputeID, user.UserID, payload)
	if err != nil {
		h.fail(w, r, err, "dispute_resolve_failed", "failed to resolve dispute")
		return
	}

	h.record(r, user.UserID, "appraisal.dispute.resolve", "dispute", disputeID, payload)
	api.Success(w, dispute, middleware.GetRequestID(r.Context()))
}

func canSeeAssignment(user auth.UserContext, assignment appraisal.Assignment) bool {
	switch user.Role {
	case auth.RoleHR:
		return true
	case auth.RoleManager:
		return assignment.ManagerID == user.UserID
	default:
		return assignment.EmployeeID == user.UserID
	}
}

func canSeeRecord(user auth.UserContext, record appraisal.Record) bool {
	switch user.Role {
	case auth.RoleHR:
		return true
	case auth.RoleManager:
		return record.ManagerID == user.UserID
	default:
		return record.EmployeeID == user.UserID && record.Status == appraisal.RecordStatusHRPublished
	}
}

// fail maps domain errors onto the HTTP surface; anything unmapped is a
// 500 with the generic message.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, appraisal.ErrTemplateNotFound),
		errors.Is(err, appraisal.ErrCycleNotFound),
		errors.Is(err, appraisal.ErrAssignmentNotFound),
		errors.Is(err, appraisal.ErrRecordNotFound),
		errors.Is(err, appraisal.ErrDisputeNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case errors.Is(err, appraisal.ErrCriteriaWeights),
		errors.Is(err, appraisal.ErrCycleDates),
		errors.Is(err, appraisal.ErrResolutionStatus):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), requestID)
	case errors.Is(err, appraisal.ErrCycleTransition),
		errors.Is(err, appraisal.ErrRecordTransition),
		errors.Is(err, appraisal.ErrDisputeResolved):
		api.Fail(w, http.StatusConflict, "invalid_state", err.Error(), requestID)
	case errors.Is(err, appraisal.ErrRecordVersionConflict):
		api.Fail(w, http.StatusConflict, "version_conflict", err.Error(), requestID)
	case errors.Is(err, appraisal.ErrNotAssignmentManager),
		errors.Is(err, appraisal.ErrNotRecordManager),
		errors.Is(err, appraisal.ErrNotRecordOwner),
		errors.Is(err, appraisal.ErrNotDisputeResolver):
		api.Fail(w, http.StatusForbidden, "forbidden", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, code, message, requestID)
	}
}

func (h *Handler) record(r *http.Request, actorID, action, entityType, entityID string, detail any) {
	if h.Audit == nil {
		return
	}
	if err := h.Audit.Record(r.Context(), actorID, action, entityType, entityID, middleware.GetRequestID(r.Context()), detail); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}
