package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Audit actions recorded for destructive or state-changing routes.
const (
	AuditActionScheduleReplace = "SCHEDULE_REPLACE"
	AuditActionScheduleClear   = "SCHEDULE_CLEAR"
	AuditActionSwapApprove     = "SWAP_APPROVE"
	AuditActionSwapReject      = "SWAP_REJECT"
)

// AuditLog represents an audit trail record.
type AuditLog struct {
	ID         string         `db:"id" json:"_id"`
	Actor      *string        `db:"actor" json:"actor,omitempty"`
	Action     string         `db:"action" json:"action"`
	Resource   string         `db:"resource" json:"resource"`
	ResourceID *string        `db:"resource_id" json:"resourceId,omitempty"`
	Details    types.JSONText `db:"details" json:"details,omitempty"`
	IPAddress  string         `db:"ip_address" json:"ipAddress"`
	UserAgent  string         `db:"user_agent" json:"userAgent"`
	CreatedAt  time.Time      `db:"created_at" json:"createdAt"`
}
