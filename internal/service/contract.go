package service

import (
	"context"
	"mime/multipart"

	"github.com/primeitclub/ict-meetup-api/internal/domain"
	"github.com/primeitclub/ict-meetup-api/internal/dto"
	pkgdto "github.com/primeitclub/ict-meetup-api/pkg/dto"
)

type VersionService interface {
	AddVersion(ctx context.Context, req dto.VersionRequest, actor domain.Actor) (res dto.VersionResponse, err error)
	GetVersions(ctx context.Context) (res []dto.VersionResponse, err error)
	GetVersionByID(ctx context.Context, id string) (res dto.VersionResponse, err error)
	GetVersionBySlug(ctx context.Context, slug string) (res dto.VersionResponse, err error)
	// GetCurrentVersion reports found=false when no version is current.
	GetCurrentVersion(ctx context.Context) (res dto.VersionResponse, found bool, err error)
	UpdateVersion(ctx context.Context, id string, req dto.VersionPatchRequest, actor domain.Actor) (res dto.VersionResponse, err error)
	DeleteVersion(ctx context.Context, id string, actor domain.Actor) (err error)
}

// AuditRecorder never fails the caller; write errors are only logged.
type AuditRecorder interface {
	Record(ctx context.Context, entry domain.AuditEntry)
}

type AuditLogService interface {
	GetAuditLogs(ctx context.Context, filter pkgdto.Filter) (res pkgdto.PaginationResponse, err error)
}

type SeedService interface {
	SeedUser(ctx context.Context, req dto.SeedUserRequest, actor domain.Actor) (res dto.SeedResult, err error)
	SeedStaticUsers(ctx context.Context, actor domain.Actor) (res []dto.SeedResult)
}

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest, actor domain.Actor) (res dto.LoginResponse, err error)
}

type UploadService interface {
	UploadImage(ctx context.Context, version string, module string, file *multipart.FileHeader) (res dto.UploadedImage, err error)
}
