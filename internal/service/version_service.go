package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/primeitclub/ict-meetup-api/internal/domain"
	"github.com/primeitclub/ict-meetup-api/internal/dto"
	"github.com/primeitclub/ict-meetup-api/internal/repository"
	"github.com/primeitclub/ict-meetup-api/pkg/errs"
	"github.com/primeitclub/ict-meetup-api/pkg/utils"
	"github.com/rs/zerolog/log"
)

type VersionServiceImpl struct {
	repository repository.VersionRepository
	audit      AuditRecorder
}

func CreateVersionService(repository repository.VersionRepository, audit AuditRecorder) VersionService {
	return &VersionServiceImpl{
		repository: repository,
		audit:      audit,
	}
}

type versionChanges struct {
	Before dto.VersionResponse `json:"before"`
	After  dto.VersionResponse `json:"after"`
}

type deletedVersion struct {
	DeletedVersion dto.VersionResponse `json:"deleted_version"`
}

func (s *VersionServiceImpl) AddVersion(ctx context.Context, req dto.VersionRequest, actor domain.Actor) (res dto.VersionResponse, err error) {
	if req.VersionNumber == nil {
		return res, fmt.Errorf("%w: version_number is required", errs.ErrValidation)
	}

	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return res, fmt.Errorf("%w: start_date", errs.ErrValidation)
	}

	endDate, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return res, fmt.Errorf("%w: end_date", errs.ErrValidation)
	}

	if !startDate.Before(endDate) {
		return res, errs.ErrInvalidDateRange
	}

	versionNumber := roundVersionNumber(*req.VersionNumber)

	conflict, err := s.repository.GetConflictingVersion(ctx, req.Slug, versionNumber, "")
	if err != nil {
		return
	}

	if conflict.ID != "" {
		return res, errs.ErrVersionConflict
	}

	// Status and the current flag are always server assigned.
	data, err := s.repository.AddVersion(ctx, domain.FlagshipEventVersion{
		Base: domain.Base{
			CreatedByID: actor.Ref(),
			ModifiedBy:  actor.Ref(),
		},
		VersionName:   req.VersionName,
		Slug:          req.Slug,
		VersionNumber: versionNumber,
		Status:        domain.VersionStatusDraft,
		StartDate:     startDate,
		EndDate:       endDate,
		IsCurrent:     false,
	})
	if err != nil {
		return
	}

	res = versionResponse(data)

	s.audit.Record(ctx, domain.AuditEntry{
		Action:    domain.AuditActionCreate,
		TableName: domain.VersionTableName,
		RecordID:  data.ID,
		VersionID: data.ID,
		ChangedBy: actor.Name(),
		Changes:   res,
		Scope:     domain.AuditScopeVersionSettings,
		IPAddress: actor.IPAddress,
	})

	return
}

func (s *VersionServiceImpl) GetVersions(ctx context.Context) (res []dto.VersionResponse, err error) {
	data, err := s.repository.GetVersions(ctx)
	if err != nil {
		return
	}

	res = make([]dto.VersionResponse, 0, len(data))
	for _, d := range data {
		res = append(res, versionResponse(d))
	}

	return
}

func (s *VersionServiceImpl) GetVersionByID(ctx context.Context, id string) (res dto.VersionResponse, err error) {
	if _, err := uuid.Parse(id); err != nil {
		return res, errs.ErrVersionNotFound
	}

	data, err := s.repository.GetVersionByID(ctx, id)
	if err != nil {
		return
	}

	if data.ID == "" {
		return res, errs.ErrVersionNotFound
	}

	return versionResponse(data), nil
}

func (s *VersionServiceImpl) GetVersionBySlug(ctx context.Context, slug string) (res dto.VersionResponse, err error) {
	data, err := s.repository.GetVersionBySlug(ctx, slug)
	if err != nil {
		return
	}

	if data.ID == "" {
		return res, errs.ErrVersionNotFound
	}

	return versionResponse(data), nil
}

func (s *VersionServiceImpl) GetCurrentVersion(ctx context.Context) (res dto.VersionResponse, found bool, err error) {
	data, err := s.repository.GetCurrentVersion(ctx)
	if err != nil {
		return
	}

	if data.ID == "" {
		return res, false, nil
	}

	return versionResponse(data), true, nil
}

// UpdateVersion applies the patch, and any status transition it carries, in a
// single transaction. Promoting a version to active archives the version that
// was current before it.
func (s *VersionServiceImpl) UpdateVersion(ctx context.Context, id string, req dto.VersionPatchRequest, actor domain.Actor) (res dto.VersionResponse, err error) {
	if _, err := uuid.Parse(id); err != nil {
		return res, errs.ErrVersionNotFound
	}

	var before, after, demotedBefore, demotedAfter domain.FlagshipEventVersion

	err = s.repository.HandleTrx(ctx, func(ctx context.Context, repo repository.VersionRepository) error {
		if err := repo.LockVersions(ctx); err != nil {
			return err
		}

		existing, err := repo.GetVersionByID(ctx, id)
		if err != nil {
			return err
		}

		if existing.ID == "" {
			return errs.ErrVersionNotFound
		}

		if existing.Status == domain.VersionStatusArchived {
			return errs.ErrArchivedVersionImmutable
		}

		before = existing
		updated, err := mergeVersionPatch(existing, req)
		if err != nil {
			return err
		}

		if updated.Slug != existing.Slug || updated.VersionNumber != existing.VersionNumber {
			conflict, err := repo.GetConflictingVersion(ctx, updated.Slug, updated.VersionNumber, existing.ID)
			if err != nil {
				return err
			}

			if conflict.ID != "" {
				return errs.ErrVersionConflict
			}
		}

		if req.Status != nil && domain.VersionStatus(*req.Status) != existing.Status {
			target := domain.VersionStatus(*req.Status)
			if !target.IsValid() {
				return fmt.Errorf("%w: status", errs.ErrValidation)
			}

			switch target {
			case domain.VersionStatusActive:
				// Unreachable for archived sources: they are rejected above.
				holder, err := repo.GetCurrentVersion(ctx)
				if err != nil {
					return err
				}

				if holder.ID != "" && holder.ID != existing.ID {
					demotedBefore = holder
					holder.Status = domain.VersionStatusArchived
					holder.IsCurrent = false
					holder.ModifiedBy = actor.Ref()

					demotedAfter, err = repo.UpdateVersion(ctx, holder)
					if err != nil {
						return err
					}
				}

				updated.IsCurrent = true
			default:
				updated.IsCurrent = false
			}

			updated.Status = target
		}

		updated.ModifiedBy = actor.Ref()

		after, err = repo.UpdateVersion(ctx, updated)

		return err
	})
	if err != nil {
		return
	}

	if demotedAfter.ID != "" {
		log.Info().
			Str("component", "UpdateVersion").
			Str("demoted_id", demotedAfter.ID).
			Str("promoted_id", after.ID).
			Msg("current version replaced")

		s.audit.Record(ctx, domain.AuditEntry{
			Action:    domain.AuditActionUpdate,
			TableName: domain.VersionTableName,
			RecordID:  demotedAfter.ID,
			VersionID: demotedAfter.ID,
			ChangedBy: actor.Name(),
			Changes:   versionChanges{Before: versionResponse(demotedBefore), After: versionResponse(demotedAfter)},
			Scope:     domain.AuditScopeVersionSettings,
			IPAddress: actor.IPAddress,
		})
	}

	res = versionResponse(after)

	s.audit.Record(ctx, domain.AuditEntry{
		Action:    domain.AuditActionUpdate,
		TableName: domain.VersionTableName,
		RecordID:  after.ID,
		VersionID: after.ID,
		ChangedBy: actor.Name(),
		Changes:   versionChanges{Before: versionResponse(before), After: res},
		Scope:     domain.AuditScopeVersionSettings,
		IPAddress: actor.IPAddress,
	})

	return
}

func (s *VersionServiceImpl) DeleteVersion(ctx context.Context, id string, actor domain.Actor) (err error) {
	if _, err := uuid.Parse(id); err != nil {
		return errs.ErrVersionNotFound
	}

	var deleted domain.FlagshipEventVersion

	err = s.repository.HandleTrx(ctx, func(ctx context.Context, repo repository.VersionRepository) error {
		if err := repo.LockVersions(ctx); err != nil {
			return err
		}

		existing, err := repo.GetVersionByID(ctx, id)
		if err != nil {
			return err
		}

		if existing.ID == "" {
			return errs.ErrVersionNotFound
		}

		if existing.Status == domain.VersionStatusActive {
			return errs.ErrActiveVersionDelete
		}

		deleted = existing

		return repo.DeleteVersion(ctx, id)
	})
	if err != nil {
		return
	}

	// The row is gone, so the entry only carries the record id.
	s.audit.Record(ctx, domain.AuditEntry{
		Action:    domain.AuditActionDelete,
		TableName: domain.VersionTableName,
		RecordID:  deleted.ID,
		ChangedBy: actor.Name(),
		Changes:   deletedVersion{DeletedVersion: versionResponse(deleted)},
		Scope:     domain.AuditScopeVersionSettings,
		IPAddress: actor.IPAddress,
	})

	return nil
}

func mergeVersionPatch(data domain.FlagshipEventVersion, req dto.VersionPatchRequest) (domain.FlagshipEventVersion, error) {
	if req.VersionName != nil {
		data.VersionName = *req.VersionName
	}

	if req.Slug != nil {
		data.Slug = *req.Slug
	}

	if req.VersionNumber != nil {
		data.VersionNumber = roundVersionNumber(*req.VersionNumber)
	}

	if req.StartDate != nil {
		startDate, err := utils.ParseDate(*req.StartDate)
		if err != nil {
			return data, fmt.Errorf("%w: start_date", errs.ErrValidation)
		}
		data.StartDate = startDate
	}

	if req.EndDate != nil {
		endDate, err := utils.ParseDate(*req.EndDate)
		if err != nil {
			return data, fmt.Errorf("%w: end_date", errs.ErrValidation)
		}
		data.EndDate = endDate
	}

	if !data.StartDate.Before(data.EndDate) {
		return data, errs.ErrInvalidDateRange
	}

	return data, nil
}

func roundVersionNumber(v float64) float64 {
	return math.Round(v*10) / 10
}

func versionResponse(data domain.FlagshipEventVersion) dto.VersionResponse {
	return dto.VersionResponse{
		ID:            data.ID,
		VersionName:   data.VersionName,
		Slug:          data.Slug,
		VersionNumber: data.VersionNumber,
		Status:        string(data.Status),
		StartDate:     utils.FormatDate(data.StartDate),
		EndDate:       utils.FormatDate(data.EndDate),
		IsCurrent:     data.IsCurrent,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
		CreatedByID:   data.CreatedByID,
		ModifiedBy:    data.ModifiedBy,
	}
}
