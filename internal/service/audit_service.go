package service

import (
	"context"
	"encoding/json"

	"github.com/primeitclub/ict-meetup-api/internal/domain"
	"github.com/primeitclub/ict-meetup-api/internal/dto"
	"github.com/primeitclub/ict-meetup-api/internal/repository"
	pkgdto "github.com/primeitclub/ict-meetup-api/pkg/dto"
	"github.com/rs/zerolog/log"
)

type AuditRecorderImpl struct {
	repository repository.AuditLogRepository
}

func CreateAuditRecorder(repository repository.AuditLogRepository) AuditRecorder {
	return &AuditRecorderImpl{
		repository: repository,
	}
}

func (r *AuditRecorderImpl) Record(ctx context.Context, entry domain.AuditEntry) {
	changes, err := json.Marshal(entry.Changes)
	if err != nil {
		log.Error().Err(err).Str("component", "AuditRecorder").Str("table_name", entry.TableName).Msg("marshalling audit changes")
		return
	}

	changedBy := entry.ChangedBy
	if changedBy == "" {
		changedBy = domain.SystemActor
	}

	err = r.repository.AddAuditLog(ctx, domain.AuditLog{
		VersionID: optional(entry.VersionID),
		TableName: entry.TableName,
		RecordID:  optional(entry.RecordID),
		Action:    entry.Action,
		ChangedBy: changedBy,
		Changes:   changes,
		Scope:     entry.Scope,
		IPAddress: optional(entry.IPAddress),
	})
	if err != nil {
		log.Error().Err(err).
			Str("component", "AuditRecorder").
			Str("action", string(entry.Action)).
			Str("table_name", entry.TableName).
			Str("record_id", entry.RecordID).
			Msg("failed to create audit log")
		return
	}

	log.Debug().
		Str("component", "AuditRecorder").
		Str("action", string(entry.Action)).
		Str("scope", string(entry.Scope)).
		Str("changed_by", changedBy).
		Msg("audit log created")
}

type AuditLogServiceImpl struct {
	repository repository.AuditLogRepository
}

func CreateAuditLogService(repository repository.AuditLogRepository) AuditLogService {
	return &AuditLogServiceImpl{
		repository: repository,
	}
}

func (s *AuditLogServiceImpl) GetAuditLogs(ctx context.Context, filter pkgdto.Filter) (res pkgdto.PaginationResponse, err error) {
	filter.Normalize()

	data, err := s.repository.GetAuditLogs(ctx, filter)
	if err != nil {
		return
	}

	count, err := s.repository.CountAuditLogs(ctx, filter)
	if err != nil {
		return
	}

	records := make([]dto.AuditLogResponse, 0, len(data))
	for _, d := range data {
		records = append(records, dto.AuditLogResponse{
			ID:        d.ID,
			VersionID: d.VersionID,
			TableName: d.TableName,
			RecordID:  d.RecordID,
			Action:    string(d.Action),
			ChangedBy: d.ChangedBy,
			Changes:   d.Changes,
			Scope:     string(d.Scope),
			IPAddress: d.IPAddress,
			CreatedAt: d.CreatedAt,
		})
	}

	res.Metadata = pkgdto.PaginationMetadata{
		TotalCount: count,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	res.Records = records

	return
}

func optional(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}
