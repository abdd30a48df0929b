// Package repositorytest holds in-memory repositories used to exercise the
// services without a database.
package repositorytest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/primeitclub/ict-meetup-api/internal/domain"
	"github.com/primeitclub/ict-meetup-api/internal/repository"
	pkgdto "github.com/primeitclub/ict-meetup-api/pkg/dto"
	"github.com/primeitclub/ict-meetup-api/pkg/errs"
)

// ErrSecondCurrent mirrors the partial unique index on is_current.
var ErrSecondCurrent = errors.New("repositorytest: more than one current version")

type VersionRepository struct {
	trxMu sync.Mutex
	mu    sync.Mutex
	rows  map[string]domain.FlagshipEventVersion

	// Writes counts successful inserts, updates and deletes.
	Writes int
}

func NewVersionRepository(rows ...domain.FlagshipEventVersion) *VersionRepository {
	r := &VersionRepository{rows: map[string]domain.FlagshipEventVersion{}}
	for _, row := range rows {
		if row.ID == "" {
			row.ID = uuid.NewString()
		}
		r.rows[row.ID] = row
	}

	return r
}

var _ repository.VersionRepository = (*VersionRepository)(nil)

// HandleTrx runs transactions one at a time and restores the previous rows
// when fn fails.
func (r *VersionRepository) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo repository.VersionRepository) error) error {
	r.trxMu.Lock()
	defer r.trxMu.Unlock()

	r.mu.Lock()
	snapshot := make(map[string]domain.FlagshipEventVersion, len(r.rows))
	for k, v := range r.rows {
		snapshot[k] = v
	}
	writes := r.Writes
	r.mu.Unlock()

	if err := fn(ctx, r); err != nil {
		r.mu.Lock()
		r.rows = snapshot
		r.Writes = writes
		r.mu.Unlock()
		return err
	}

	return nil
}

func (r *VersionRepository) LockVersions(ctx context.Context) error {
	return nil
}

func (r *VersionRepository) AddVersion(ctx context.Context, data domain.FlagshipEventVersion) (domain.FlagshipEventVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data.ID = uuid.NewString()
	data.CreatedAt = time.Now().UTC()
	data.UpdatedAt = data.CreatedAt
	if err := r.checkConstraints(data); err != nil {
		return domain.FlagshipEventVersion{}, err
	}

	r.rows[data.ID] = data
	r.Writes++

	return data, nil
}

func (r *VersionRepository) GetVersions(ctx context.Context) ([]domain.FlagshipEventVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]domain.FlagshipEventVersion, 0, len(r.rows))
	for _, row := range r.rows {
		data = append(data, row)
	}
	sort.Slice(data, func(i, j int) bool {
		return data[i].VersionNumber > data[j].VersionNumber
	})

	return data, nil
}

func (r *VersionRepository) GetVersionByID(ctx context.Context, id string) (domain.FlagshipEventVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.rows[id], nil
}

func (r *VersionRepository) GetVersionBySlug(ctx context.Context, slug string) (domain.FlagshipEventVersion, error) {
	return r.find(func(row domain.FlagshipEventVersion) bool { return row.Slug == slug }), nil
}

func (r *VersionRepository) GetCurrentVersion(ctx context.Context) (domain.FlagshipEventVersion, error) {
	return r.find(func(row domain.FlagshipEventVersion) bool { return row.IsCurrent }), nil
}

func (r *VersionRepository) GetConflictingVersion(ctx context.Context, slug string, versionNumber float64, excludeID string) (domain.FlagshipEventVersion, error) {
	return r.find(func(row domain.FlagshipEventVersion) bool {
		return row.ID != excludeID && (row.Slug == slug || row.VersionNumber == versionNumber)
	}), nil
}

func (r *VersionRepository) UpdateVersion(ctx context.Context, data domain.FlagshipEventVersion) (domain.FlagshipEventVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.rows[data.ID]
	if !ok {
		return domain.FlagshipEventVersion{}, errs.ErrVersionNotFound
	}

	data.CreatedAt = existing.CreatedAt
	data.CreatedByID = existing.CreatedByID
	data.UpdatedAt = time.Now().UTC()
	if err := r.checkConstraints(data); err != nil {
		return domain.FlagshipEventVersion{}, err
	}

	r.rows[data.ID] = data
	r.Writes++

	return data, nil
}

func (r *VersionRepository) DeleteVersion(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; ok {
		delete(r.rows, id)
		r.Writes++
	}

	return nil
}

// CurrentCount reports how many rows carry the current flag.
func (r *VersionRepository) CurrentCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, row := range r.rows {
		if row.IsCurrent {
			count++
		}
	}

	return count
}

func (r *VersionRepository) find(match func(domain.FlagshipEventVersion) bool) domain.FlagshipEventVersion {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.rows {
		if match(row) {
			return row
		}
	}

	return domain.FlagshipEventVersion{}
}

func (r *VersionRepository) checkConstraints(data domain.FlagshipEventVersion) error {
	for id, row := range r.rows {
		if id == data.ID {
			continue
		}
		if row.Slug == data.Slug || row.VersionNumber == data.VersionNumber {
			return errs.ErrVersionConflict
		}
		if row.IsCurrent && data.IsCurrent {
			return ErrSecondCurrent
		}
	}

	return nil
}

type UserRepository struct {
	mu    sync.Mutex
	users map[string]domain.User

	// Inserts counts successful AddUser calls.
	Inserts int
	// Err, when set, is returned by AddUser.
	Err error
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: map[string]domain.User{}}
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	user, err := r.GetUserCredentialsByEmail(ctx, email)
	user.HashedPassword = ""

	return user, err
}

func (r *UserRepository) GetUserCredentialsByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.users[strings.ToLower(email)], nil
}

func (r *UserRepository) AddUser(ctx context.Context, data domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return domain.User{}, r.Err
	}

	key := strings.ToLower(data.Email)
	if _, ok := r.users[key]; ok {
		return domain.User{}, errors.New("repositorytest: duplicate email")
	}

	data.ID = uuid.NewString()
	data.CreatedAt = time.Now().UTC()
	data.UpdatedAt = data.CreatedAt
	r.users[key] = data
	r.Inserts++

	data.HashedPassword = ""

	return data, nil
}

type AuditLogRepository struct {
	mu   sync.Mutex
	logs []domain.AuditLog

	// Err, when set, is returned by every call.
	Err error
}

func NewAuditLogRepository() *AuditLogRepository {
	return &AuditLogRepository{}
}

var _ repository.AuditLogRepository = (*AuditLogRepository)(nil)

func (r *AuditLogRepository) AddAuditLog(ctx context.Context, data domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}

	data.ID = uuid.NewString()
	data.CreatedAt = time.Now().UTC()
	r.logs = append(r.logs, data)

	return nil
}

func (r *AuditLogRepository) GetAuditLogs(ctx context.Context, filter pkgdto.Filter) ([]domain.AuditLog, error) {
	if r.Err != nil {
		return nil, r.Err
	}

	matched := r.filter(filter)
	start := filter.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], nil
}

func (r *AuditLogRepository) CountAuditLogs(ctx context.Context, filter pkgdto.Filter) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}

	return int64(len(r.filter(filter))), nil
}

// Entries returns every stored log, oldest first.
func (r *AuditLogRepository) Entries() []domain.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]domain.AuditLog(nil), r.logs...)
}

func (r *AuditLogRepository) filter(filter pkgdto.Filter) []domain.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []domain.AuditLog
	for i := len(r.logs) - 1; i >= 0; i-- {
		l := r.logs[i]
		if filter.TableName != "" && l.TableName != filter.TableName {
			continue
		}
		if filter.RecordID != "" && (l.RecordID == nil || *l.RecordID != filter.RecordID) {
			continue
		}
		if filter.Scope != "" && string(l.Scope) != filter.Scope {
			continue
		}
		if filter.Action != "" && string(l.Action) != filter.Action {
			continue
		}
		matched = append(matched, l)
	}

	return matched
}
