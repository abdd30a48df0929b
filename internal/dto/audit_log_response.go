package dto

import (
	"encoding/json"
	"time"
)

type AuditLogResponse struct {
	ID        string          `json:"id"`
	VersionID *string         `json:"version_id"`
	TableName string          `json:"table_name"`
	RecordID  *string         `json:"record_id"`
	Action    string          `json:"action"`
	ChangedBy string          `json:"changed_by"`
	Changes   json.RawMessage `json:"changes"`
	Scope     string          `json:"scope"`
	IPAddress *string         `json:"ip_address"`
	CreatedAt time.Time       `json:"created_at"`
}
