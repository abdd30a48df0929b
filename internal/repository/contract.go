package repository

import (
	"context"

	"github.com/primeitclub/ict-meetup-api/internal/domain"
	pkgdto "github.com/primeitclub/ict-meetup-api/pkg/dto"
)

// Lookups return the zero value with a nil error when no row matches; callers
// check for an empty ID.
type VersionRepository interface {
	HandleTrx(ctx context.Context, fn func(ctx context.Context, repo VersionRepository) error) error
	// LockVersions serialises writers that can change which version is
	// current. It only has an effect inside HandleTrx.
	LockVersions(ctx context.Context) error

	AddVersion(ctx context.Context, data domain.FlagshipEventVersion) (res domain.FlagshipEventVersion, err error)
	GetVersions(ctx context.Context) (data []domain.FlagshipEventVersion, err error)
	GetVersionByID(ctx context.Context, id string) (data domain.FlagshipEventVersion, err error)
	GetVersionBySlug(ctx context.Context, slug string) (data domain.FlagshipEventVersion, err error)
	GetCurrentVersion(ctx context.Context) (data domain.FlagshipEventVersion, err error)
	GetConflictingVersion(ctx context.Context, slug string, versionNumber float64, excludeID string) (data domain.FlagshipEventVersion, err error)
	UpdateVersion(ctx context.Context, data domain.FlagshipEventVersion) (res domain.FlagshipEventVersion, err error)
	DeleteVersion(ctx context.Context, id string) (err error)
}

type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (data domain.User, err error)
	GetUserCredentialsByEmail(ctx context.Context, email string) (data domain.User, err error)
	AddUser(ctx context.Context, data domain.User) (res domain.User, err error)
}

type AuditLogRepository interface {
	AddAuditLog(ctx context.Context, data domain.AuditLog) (err error)
	GetAuditLogs(ctx context.Context, filter pkgdto.Filter) (data []domain.AuditLog, err error)
	CountAuditLogs(ctx context.Context, filter pkgdto.Filter) (count int64, err error)
}
