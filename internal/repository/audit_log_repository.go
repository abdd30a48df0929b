package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/primeitclub/ict-meetup-api/internal/domain"
	pkgdto "github.com/primeitclub/ict-meetup-api/pkg/dto"
	"github.com/rs/zerolog/log"
)

const auditLogColumns = "id, version_id, table_name, record_id, action, changed_by, changes, scope, ip_address, created_at"

type AuditLogRepositoryImpl struct {
	db *sqlx.DB
}

func CreateAuditLogRepository(db *sqlx.DB) AuditLogRepository {
	return &AuditLogRepositoryImpl{
		db: db,
	}
}

func (r *AuditLogRepositoryImpl) AddAuditLog(ctx context.Context, data domain.AuditLog) (err error) {
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO audit_logs(version_id, table_name, record_id, action, changed_by, changes, scope, ip_address) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		data.VersionID, data.TableName, data.RecordID, data.Action, data.ChangedBy, string(data.Changes), data.Scope, data.IPAddress,
	)
	if err != nil {
		log.Error().Err(err).Str("component", "AddAuditLog").Msg("")
	}

	return
}

func (r *AuditLogRepositoryImpl) GetAuditLogs(ctx context.Context, filter pkgdto.Filter) (data []domain.AuditLog, err error) {
	where, args := auditLogWhere(filter)
	args = append(args, filter.Limit, filter.Offset())

	query := fmt.Sprintf("SELECT %s FROM audit_logs%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d", auditLogColumns, where, len(args)-1, len(args))

	data = []domain.AuditLog{}
	err = r.db.SelectContext(ctx, &data, query, args...)
	if err != nil {
		log.Error().Err(err).Str("component", "GetAuditLogs").Msg("")
		return nil, err
	}

	return
}

func (r *AuditLogRepositoryImpl) CountAuditLogs(ctx context.Context, filter pkgdto.Filter) (count int64, err error) {
	where, args := auditLogWhere(filter)

	err = r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM audit_logs"+where, args...)
	if err != nil {
		log.Error().Err(err).Str("component", "CountAuditLogs").Msg("")
	}

	return
}

func auditLogWhere(filter pkgdto.Filter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	add := func(column string, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	add("table_name", filter.TableName)
	add("record_id::text", filter.RecordID)
	add("scope", filter.Scope)
	add("action", filter.Action)

	if len(conditions) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}
