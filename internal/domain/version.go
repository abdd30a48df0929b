package domain

import "time"

type VersionStatus string

const (
	VersionStatusDraft    VersionStatus = "draft"
	VersionStatusActive   VersionStatus = "active"
	VersionStatusArchived VersionStatus = "archived"
)

func (s VersionStatus) IsValid() bool {
	switch s {
	case VersionStatusDraft, VersionStatusActive, VersionStatusArchived:
		return true
	}
	return false
}

const VersionTableName = "flagship_event_versions"

type FlagshipEventVersion struct {
	Base
	VersionName   string        `db:"version_name"`
	Slug          string        `db:"slug"`
	VersionNumber float64       `db:"version_number"`
	Status        VersionStatus `db:"status"`
	StartDate     time.Time     `db:"start_date"`
	EndDate       time.Time     `db:"end_date"`
	IsCurrent     bool          `db:"is_current"`
}
