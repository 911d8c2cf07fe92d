package auth

const (
	RoleHR       = "hr"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

const (
	PermTemplatesRead   = "appraisal.templates.read"
	PermTemplatesWrite  = "appraisal.templates.write"
	PermCyclesRead      = "appraisal.cycles.read"
	PermCyclesWrite     = "appraisal.cycles.write"
	PermCyclesLifecycle = "appraisal.cycles.lifecycle"
	PermRecordsRead     = "appraisal.records.read"
	PermRecordsWrite    = "appraisal.records.write"
	PermDisputesSubmit  = "appraisal.disputes.submit"
	PermDisputesResolve = "appraisal.disputes.resolve"
	PermAuditRead       = "audit.read"
)

// RolePermissions is the static role model; roles are few enough that
// a permissions table would only add indirection.
var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermCyclesRead,
		PermRecordsRead,
		PermDisputesSubmit,
	},
	RoleManager: {
		PermTemplatesRead,
		PermCyclesRead,
		PermRecordsRead,
		PermRecordsWrite,
	},
	RoleHR: {
		PermTemplatesRead,
		PermTemplatesWrite,
		PermCyclesRead,
		PermCyclesWrite,
		PermCyclesLifecycle,
		PermRecordsRead,
		PermRecordsWrite,
		PermDisputesSubmit,
		PermDisputesResolve,
		PermAuditRead,
	},
}

func RoleHasPermission(role, permission string) bool {
	for _, candidate := range RolePermissions[role] {
		if candidate == permission {
			return true
		}
	}
	return false
}
