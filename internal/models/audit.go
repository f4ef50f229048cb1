package models

import "time"

// AuditAction constants represent actions to be logged.
const (
	AuditActionProfileUpsert   = "PROFILE_UPSERT"
	AuditActionProfileDelete   = "PROFILE_DELETE"
	AuditActionTargetUpdate    = "TARGET_UPDATE"
	AuditActionPracticeLog     = "PRACTICE_LOG_CREATE"
	AuditActionAttemptCreate   = "ATTEMPT_CREATE"
	AuditActionAttemptUpdate   = "ATTEMPT_UPDATE"
	AuditActionCycleCreate     = "CYCLE_CREATE"
	AuditActionECCreate        = "EXTRACURRICULAR_CREATE"
	AuditActionECUpdate        = "EXTRACURRICULAR_UPDATE"
	AuditActionECDelete        = "EXTRACURRICULAR_DELETE"
	AuditActionECTargetsUpdate = "ECS_TARGETS_UPDATE"
	AuditActionShareUpdate     = "SHARE_UPDATE"
)

// AuditLog represents an audit trail record.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	UID        *string   `db:"uid" json:"uid,omitempty"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resource_id,omitempty"`
	Method     string    `db:"method" json:"method"`
	Path       string    `db:"path" json:"path"`
	Status     int       `db:"status" json:"status"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	UserAgent  string    `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
