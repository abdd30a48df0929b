package domain

import (
	"encoding/json"
	"time"
)

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionLogin  AuditAction = "login"
	AuditActionLogout AuditAction = "logout"
	AuditActionView   AuditAction = "view"
)

type AuditScope string

const (
	AuditScopeEvents             AuditScope = "events"
	AuditScopeEventSpeakers      AuditScope = "event_speakers"
	AuditScopeSponsors           AuditScope = "sponsors"
	AuditScopeEventRegistrations AuditScope = "event_registrations"
	AuditScopeHeroSections       AuditScope = "hero_sections"
	AuditScopeAchievementMetrics AuditScope = "achievement_metrics"
	AuditScopeAboutSections      AuditScope = "about_sections"
	AuditScopeSpeakers           AuditScope = "speakers"
	AuditScopeGalleryItems       AuditScope = "gallery_items"
	AuditScopeTeamMembers        AuditScope = "team_members"
	AuditScopeVersionSettings    AuditScope = "version_settings"
	AuditScopeUsers              AuditScope = "users"
)

// AuditLog rows are append-only.
type AuditLog struct {
	ID        string          `db:"id"`
	VersionID *string         `db:"version_id"`
	TableName string          `db:"table_name"`
	RecordID  *string         `db:"record_id"`
	Action    AuditAction     `db:"action"`
	ChangedBy string          `db:"changed_by"`
	Changes   json.RawMessage `db:"changes"`
	Scope     AuditScope      `db:"scope"`
	IPAddress *string         `db:"ip_address"`
	CreatedAt time.Time       `db:"created_at"`
}

// AuditEntry is what services hand to the audit recorder; Changes is
// marshalled to JSON on write.
type AuditEntry struct {
	Action    AuditAction
	TableName string
	RecordID  string
	VersionID string
	ChangedBy string
	Changes   interface{}
	Scope     AuditScope
	IPAddress string
}
