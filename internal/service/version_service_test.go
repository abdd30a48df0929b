package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/primeitclub/ict-meetup-api/internal/domain"
	"github.com/primeitclub/ict-meetup-api/internal/dto"
	"github.com/primeitclub/ict-meetup-api/internal/repository/repositorytest"
	"github.com/primeitclub/ict-meetup-api/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testActorID = "7d0b5e3c-2f1a-4b6e-9c8d-0a1b2c3d4e5f"

type VersionServiceSuite struct {
	suite.Suite
	versions *repositorytest.VersionRepository
	audits   *repositorytest.AuditLogRepository
	service  VersionService
	actor    domain.Actor
	ctx      context.Context
}

func (s *VersionServiceSuite) SetupTest() {
	s.versions = repositorytest.NewVersionRepository()
	s.audits = repositorytest.NewAuditLogRepository()
	s.service = CreateVersionService(s.versions, CreateAuditRecorder(s.audits))
	s.actor = domain.Actor{ID: testActorID, IPAddress: "10.0.0.1"}
	s.ctx = context.Background()
}

func TestVersionService(t *testing.T) {
	suite.Run(t, new(VersionServiceSuite))
}

func ptr[T any](v T) *T { return &v }

func versionRequest(slug string, number float64) dto.VersionRequest {
	return dto.VersionRequest{
		VersionName:   "Edition",
		Slug:          slug,
		VersionNumber: ptr(number),
		StartDate:     "2025-01-01",
		EndDate:       "2025-01-03",
	}
}

func (s *VersionServiceSuite) create(slug string, number float64) dto.VersionResponse {
	res, err := s.service.AddVersion(s.ctx, versionRequest(slug, number), s.actor)
	s.Require().NoError(err)
	return res
}

func (s *VersionServiceSuite) activate(id string) dto.VersionResponse {
	res, err := s.service.UpdateVersion(s.ctx, id, dto.VersionPatchRequest{Status: ptr("active")}, s.actor)
	s.Require().NoError(err)
	return res
}

func (s *VersionServiceSuite) TestAddVersionIgnoresClientStatus() {
	req := versionRequest("edition-5", 5)
	req.Status = ptr("active")
	req.IsCurrent = ptr(true)

	res, err := s.service.AddVersion(s.ctx, req, s.actor)
	s.Require().NoError(err)

	s.Equal("draft", res.Status)
	s.False(res.IsCurrent)
	s.NotEmpty(res.ID)
	s.Require().NotNil(res.CreatedByID)
	s.Equal(testActorID, *res.CreatedByID)

	logs := s.audits.Entries()
	s.Require().Len(logs, 1)
	s.Equal(domain.AuditActionCreate, logs[0].Action)
	s.Equal(domain.AuditScopeVersionSettings, logs[0].Scope)
	s.Equal(res.ID, *logs[0].RecordID)
	s.Equal(res.ID, *logs[0].VersionID)
	s.Equal(testActorID, logs[0].ChangedBy)
	s.Equal("10.0.0.1", *logs[0].IPAddress)
}

func (s *VersionServiceSuite) TestAddVersionSystemActor() {
	res, err := s.service.AddVersion(s.ctx, versionRequest("edition-5", 5), domain.Actor{})
	s.Require().NoError(err)

	s.Nil(res.CreatedByID)
	s.Equal(domain.SystemActor, s.audits.Entries()[0].ChangedBy)
}

func (s *VersionServiceSuite) TestAddVersionConflicts() {
	s.create("edition-5", 5)
	writes := s.versions.Writes

	testCases := []struct {
		Name string
		Req  dto.VersionRequest
	}{
		{Name: "same slug", Req: versionRequest("edition-5", 6)},
		{Name: "same version number", Req: versionRequest("edition-6", 5)},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			_, err := s.service.AddVersion(s.ctx, tc.Req, s.actor)
			s.ErrorIs(err, errs.ErrVersionConflict)
			s.Equal(writes, s.versions.Writes)
		})
	}

	s.Len(s.audits.Entries(), 1)
}

func (s *VersionServiceSuite) TestAddVersionRejectsInvertedDates() {
	req := versionRequest("edition-5", 5)
	req.EndDate = req.StartDate

	_, err := s.service.AddVersion(s.ctx, req, s.actor)
	s.ErrorIs(err, errs.ErrInvalidDateRange)
	s.Zero(s.versions.Writes)
}

func (s *VersionServiceSuite) TestRoundTrip() {
	created := s.create("edition-5", 5)

	got, err := s.service.GetVersionByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created, got)
	s.Equal("Edition", got.VersionName)
	s.Equal("2025-01-01", got.StartDate)
	s.Equal("2025-01-03", got.EndDate)
	s.Equal(5.0, got.VersionNumber)

	bySlug, err := s.service.GetVersionBySlug(s.ctx, "edition-5")
	s.Require().NoError(err)
	s.Equal(created.ID, bySlug.ID)
}

func (s *VersionServiceSuite) TestLookupsNotFound() {
	_, err := s.service.GetVersionByID(s.ctx, "not-a-uuid")
	s.ErrorIs(err, errs.ErrVersionNotFound)

	_, err = s.service.GetVersionByID(s.ctx, "0b9f7c1e-3d4a-4f5b-8c6d-7e8f9a0b1c2d")
	s.ErrorIs(err, errs.ErrVersionNotFound)

	_, err = s.service.GetVersionBySlug(s.ctx, "missing")
	s.ErrorIs(err, errs.ErrVersionNotFound)
}

func (s *VersionServiceSuite) TestGetVersionsOrderedByNumberDesc() {
	s.create("edition-4", 4)
	s.create("edition-5-5", 5.5)
	s.create("edition-1", 1)

	res, err := s.service.GetVersions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(res, 3)
	s.Equal([]float64{5.5, 4, 1}, []float64{res[0].VersionNumber, res[1].VersionNumber, res[2].VersionNumber})
}

func (s *VersionServiceSuite) TestGetCurrentVersionAbsent() {
	s.create("edition-5", 5)

	_, found, err := s.service.GetCurrentVersion(s.ctx)
	s.NoError(err)
	s.False(found)
}

func (s *VersionServiceSuite) TestPromotionDemotesPreviousCurrent() {
	first := s.create("edition-4", 4)
	second := s.create("edition-5", 5)

	s.activate(first.ID)
	promoted := s.activate(second.ID)

	s.Equal("active", promoted.Status)
	s.True(promoted.IsCurrent)

	demoted, err := s.service.GetVersionByID(s.ctx, first.ID)
	s.Require().NoError(err)
	s.Equal("archived", demoted.Status)
	s.False(demoted.IsCurrent)

	current, found, err := s.service.GetCurrentVersion(s.ctx)
	s.Require().NoError(err)
	s.True(found)
	s.Equal(second.ID, current.ID)
	s.Equal(1, s.versions.CurrentCount())

	list, err := s.service.GetVersions(s.ctx)
	s.Require().NoError(err)
	currentCount := 0
	for _, v := range list {
		if v.IsCurrent {
			currentCount++
			s.Equal("active", v.Status)
		}
	}
	s.Equal(1, currentCount)

	logs := s.audits.Entries()
	// create, create, activate first, demote first, activate second
	s.Require().Len(logs, 5)
	s.Equal(first.ID, *logs[3].RecordID)
	s.Equal(second.ID, *logs[4].RecordID)

	var changes struct {
		Before dto.VersionResponse `json:"before"`
		After  dto.VersionResponse `json:"after"`
	}
	s.Require().NoError(json.Unmarshal(logs[3].Changes, &changes))
	s.Equal("active", changes.Before.Status)
	s.Equal("archived", changes.After.Status)
}

func (s *VersionServiceSuite) TestReactivatingCurrentVersionIsNoop() {
	v := s.create("edition-5", 5)
	s.activate(v.ID)

	res := s.activate(v.ID)
	s.True(res.IsCurrent)
	s.Equal(1, s.versions.CurrentCount())
}

func (s *VersionServiceSuite) TestLeavingActiveClearsCurrent() {
	for _, status := range []string{"draft", "archived"} {
		s.Run(status, func() {
			v := s.create("edition-"+status, map[string]float64{"draft": 1, "archived": 2}[status])
			s.activate(v.ID)

			res, err := s.service.UpdateVersion(s.ctx, v.ID, dto.VersionPatchRequest{Status: ptr(status)}, s.actor)
			s.Require().NoError(err)
			s.Equal(status, res.Status)
			s.False(res.IsCurrent)
			s.Zero(s.versions.CurrentCount())
		})
	}
}

func (s *VersionServiceSuite) TestPatchIgnoresIsCurrent() {
	v := s.create("edition-5", 5)

	res, err := s.service.UpdateVersion(s.ctx, v.ID, dto.VersionPatchRequest{IsCurrent: ptr(true)}, s.actor)
	s.Require().NoError(err)
	s.False(res.IsCurrent)
	s.Equal("draft", res.Status)
}

func (s *VersionServiceSuite) TestArchivedVersionsRejectEveryPatch() {
	v := s.create("edition-5", 5)
	_, err := s.service.UpdateVersion(s.ctx, v.ID, dto.VersionPatchRequest{Status: ptr("archived")}, s.actor)
	s.Require().NoError(err)
	writes := s.versions.Writes

	testCases := []struct {
		Name  string
		Patch dto.VersionPatchRequest
	}{
		{Name: "no-op patch", Patch: dto.VersionPatchRequest{}},
		{Name: "rename", Patch: dto.VersionPatchRequest{VersionName: ptr("Renamed")}},
		{Name: "reactivate", Patch: dto.VersionPatchRequest{Status: ptr("active")}},
		{Name: "back to draft", Patch: dto.VersionPatchRequest{Status: ptr("draft")}},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			_, err := s.service.UpdateVersion(s.ctx, v.ID, tc.Patch, s.actor)
			s.ErrorIs(err, errs.ErrArchivedVersionImmutable)
			s.Equal(writes, s.versions.Writes)
		})
	}
}

func (s *VersionServiceSuite) TestUpdateMergesFieldsAndAudits() {
	v := s.create("edition-5", 5)

	res, err := s.service.UpdateVersion(s.ctx, v.ID, dto.VersionPatchRequest{
		VersionName: ptr("Edition Five"),
		EndDate:     ptr("2025-01-05"),
	}, s.actor)
	s.Require().NoError(err)

	s.Equal("Edition Five", res.VersionName)
	s.Equal("edition-5", res.Slug)
	s.Equal("2025-01-01", res.StartDate)
	s.Equal("2025-01-05", res.EndDate)
	s.Require().NotNil(res.ModifiedBy)
	s.Equal(testActorID, *res.ModifiedBy)

	logs := s.audits.Entries()
	s.Require().Len(logs, 2)
	s.Equal(domain.AuditActionUpdate, logs[1].Action)
	s.JSONEq(`"Edition"`, string(mustField(s.T(), logs[1].Changes, "before", "version_name")))
	s.JSONEq(`"Edition Five"`, string(mustField(s.T(), logs[1].Changes, "after", "version_name")))
}

func (s *VersionServiceSuite) TestUpdateRejectsMergedInvertedDates() {
	v := s.create("edition-5", 5)

	_, err := s.service.UpdateVersion(s.ctx, v.ID, dto.VersionPatchRequest{StartDate: ptr("2025-02-01")}, s.actor)
	s.ErrorIs(err, errs.ErrInvalidDateRange)
}

func (s *VersionServiceSuite) TestUpdateRejectsConflictingSlug() {
	s.create("edition-4", 4)
	v := s.create("edition-5", 5)

	_, err := s.service.UpdateVersion(s.ctx, v.ID, dto.VersionPatchRequest{Slug: ptr("edition-4")}, s.actor)
	s.ErrorIs(err, errs.ErrVersionConflict)

	_, err = s.service.UpdateVersion(s.ctx, v.ID, dto.VersionPatchRequest{VersionNumber: ptr(4.0)}, s.actor)
	s.ErrorIs(err, errs.ErrVersionConflict)

	res, err := s.service.UpdateVersion(s.ctx, v.ID, dto.VersionPatchRequest{Slug: ptr("edition-5")}, s.actor)
	s.Require().NoError(err)
	s.Equal("edition-5", res.Slug)
}

func (s *VersionServiceSuite) TestFailedPromotionRollsBackDemotion() {
	first := s.create("edition-4", 4)
	second := s.create("edition-5", 5)
	s.activate(first.ID)

	_, err := s.service.UpdateVersion(s.ctx, second.ID, dto.VersionPatchRequest{
		Status:    ptr("active"),
		StartDate: ptr("2030-01-01"),
	}, s.actor)
	s.ErrorIs(err, errs.ErrInvalidDateRange)

	current, found, err := s.service.GetCurrentVersion(s.ctx)
	s.Require().NoError(err)
	s.True(found)
	s.Equal(first.ID, current.ID)
}

func (s *VersionServiceSuite) TestUpdateNotFound() {
	_, err := s.service.UpdateVersion(s.ctx, "0b9f7c1e-3d4a-4f5b-8c6d-7e8f9a0b1c2d", dto.VersionPatchRequest{}, s.actor)
	s.ErrorIs(err, errs.ErrVersionNotFound)
}

func (s *VersionServiceSuite) TestDeleteActiveVersionFails() {
	v := s.create("edition-5", 5)
	s.activate(v.ID)

	err := s.service.DeleteVersion(s.ctx, v.ID, s.actor)
	s.ErrorIs(err, errs.ErrActiveVersionDelete)

	_, err = s.service.GetVersionByID(s.ctx, v.ID)
	s.NoError(err)
}

func (s *VersionServiceSuite) TestDeleteRecordsSnapshot() {
	for _, status := range []string{"draft", "archived"} {
		s.Run(status, func() {
			s.SetupTest()
			v := s.create("edition-5", 5)
			if status == "archived" {
				_, err := s.service.UpdateVersion(s.ctx, v.ID, dto.VersionPatchRequest{Status: ptr(status)}, s.actor)
				s.Require().NoError(err)
			}

			s.Require().NoError(s.service.DeleteVersion(s.ctx, v.ID, s.actor))

			_, err := s.service.GetVersionByID(s.ctx, v.ID)
			s.ErrorIs(err, errs.ErrVersionNotFound)

			logs := s.audits.Entries()
			last := logs[len(logs)-1]
			s.Equal(domain.AuditActionDelete, last.Action)
			s.Equal(v.ID, *last.RecordID)
			s.Nil(last.VersionID)
			s.JSONEq(`"edition-5"`, string(mustField(s.T(), last.Changes, "deleted_version", "slug")))
			s.JSONEq(`"`+status+`"`, string(mustField(s.T(), last.Changes, "deleted_version", "status")))
		})
	}
}

func (s *VersionServiceSuite) TestDeleteNotFound() {
	s.ErrorIs(s.service.DeleteVersion(s.ctx, "0b9f7c1e-3d4a-4f5b-8c6d-7e8f9a0b1c2d", s.actor), errs.ErrVersionNotFound)
	s.ErrorIs(s.service.DeleteVersion(s.ctx, "bogus", s.actor), errs.ErrVersionNotFound)
}

func (s *VersionServiceSuite) TestAuditFailureDoesNotFailOperation() {
	s.audits.Err = assert.AnError

	res, err := s.service.AddVersion(s.ctx, versionRequest("edition-5", 5), s.actor)
	s.Require().NoError(err)
	s.NotEmpty(res.ID)
	s.Empty(s.audits.Entries())
}

func TestConcurrentPromotionsKeepSingleCurrent(t *testing.T) {
	versions := repositorytest.NewVersionRepository()
	svc := CreateVersionService(versions, CreateAuditRecorder(repositorytest.NewAuditLogRepository()))
	ctx := context.Background()

	var ids []string
	for i := 1; i <= 8; i++ {
		res, err := svc.AddVersion(ctx, versionRequest("edition-"+string(rune('a'+i)), float64(i)), domain.Actor{})
		require.NoError(t, err)
		ids = append(ids, res.ID)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			// Rows archived by an earlier promotion reject the patch.
			svc.UpdateVersion(ctx, id, dto.VersionPatchRequest{Status: ptr("active")}, domain.Actor{})
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 1, versions.CurrentCount())

	list, err := svc.GetVersions(ctx)
	require.NoError(t, err)
	for _, v := range list {
		if v.IsCurrent {
			assert.Equal(t, "active", v.Status)
		}
	}
}

func mustField(t *testing.T, raw json.RawMessage, keys ...string) json.RawMessage {
	t.Helper()

	current := raw
	for _, key := range keys {
		var obj map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(current, &obj))
		value, ok := obj[key]
		require.True(t, ok, "missing key %s", key)
		current = value
	}

	return current
}
