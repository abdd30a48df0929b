package service

import (
	"context"
	"testing"

	"github.com/primeitclub/ict-meetup-api/internal/domain"
	"github.com/primeitclub/ict-meetup-api/internal/dto"
	"github.com/primeitclub/ict-meetup-api/internal/repository/repositorytest"
	pkgdto "github.com/primeitclub/ict-meetup-api/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditRecorderDefaultsAndOptionalColumns(t *testing.T) {
	audits := repositorytest.NewAuditLogRepository()
	recorder := CreateAuditRecorder(audits)

	recorder.Record(context.Background(), domain.AuditEntry{
		Action:    domain.AuditActionView,
		TableName: domain.VersionTableName,
		Changes:   nil,
		Scope:     domain.AuditScopeVersionSettings,
	})

	logs := audits.Entries()
	require.Len(t, logs, 1)
	assert.Equal(t, domain.SystemActor, logs[0].ChangedBy)
	assert.Nil(t, logs[0].RecordID)
	assert.Nil(t, logs[0].VersionID)
	assert.Nil(t, logs[0].IPAddress)
	assert.JSONEq(t, "null", string(logs[0].Changes))
}

func TestAuditRecorderSwallowsMarshalErrors(t *testing.T) {
	audits := repositorytest.NewAuditLogRepository()
	recorder := CreateAuditRecorder(audits)

	assert.NotPanics(t, func() {
		recorder.Record(context.Background(), domain.AuditEntry{Changes: make(chan int)})
	})
	assert.Empty(t, audits.Entries())
}

func TestGetAuditLogsPaginates(t *testing.T) {
	audits := repositorytest.NewAuditLogRepository()
	recorder := CreateAuditRecorder(audits)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		recorder.Record(ctx, domain.AuditEntry{Action: domain.AuditActionUpdate, TableName: domain.VersionTableName, Scope: domain.AuditScopeVersionSettings})
	}
	recorder.Record(ctx, domain.AuditEntry{Action: domain.AuditActionLogin, TableName: domain.UserTableName, Scope: domain.AuditScopeUsers})

	svc := CreateAuditLogService(audits)

	res, err := svc.GetAuditLogs(ctx, pkgdto.Filter{Scope: "version_settings", Limit: 2, Page: 3})
	require.NoError(t, err)
	assert.Equal(t, pkgdto.PaginationMetadata{TotalCount: 5, Page: 3, Limit: 2}, res.Metadata)
	records, ok := res.Records.([]dto.AuditLogResponse)
	require.True(t, ok)
	assert.Len(t, records, 1)

	res, err = svc.GetAuditLogs(ctx, pkgdto.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(6), res.Metadata.TotalCount)
	assert.Equal(t, pkgdto.DefaultLimit, res.Metadata.Limit)
	records = res.Records.([]dto.AuditLogResponse)
	assert.Equal(t, "login", records[0].Action)
}
