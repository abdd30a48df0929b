package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/primeitclub/ict-meetup-api/internal/domain"
	"github.com/primeitclub/ict-meetup-api/pkg/errs"
	"github.com/rs/zerolog/log"
)

const versionColumns = "id, version_name, slug, version_number, status, start_date, end_date, is_current, created_at, updated_at, created_by_id, modified_by"

// versionsLockKey is the pg_advisory_xact_lock key guarding the current flag.
const versionsLockKey = 7305118

var versionUniqueConstraints = map[string]bool{
	"flagship_event_versions_slug_key":           true,
	"flagship_event_versions_version_number_key": true,
}

type VersionRepositoryImpl struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

func CreateVersionRepository(db *sqlx.DB) VersionRepository {
	return &VersionRepositoryImpl{
		db: db,
	}
}

func (r *VersionRepositoryImpl) conn() sqlx.ExtContext {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *VersionRepositoryImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo VersionRepository) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		log.Error().Err(err).Str("component", "HandleTrx").Msg("")
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Str("component", "HandleTrx").Msg("rollback failed")
			}
			return
		}

		err = tx.Commit()
	}()

	txRepo := &VersionRepositoryImpl{
		db: r.db,
		tx: tx,
	}

	err = fn(ctx, txRepo)

	return err
}

func (r *VersionRepositoryImpl) LockVersions(ctx context.Context) (err error) {
	if r.tx == nil {
		return nil
	}

	_, err = r.tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", versionsLockKey)
	if err != nil {
		log.Error().Err(err).Str("component", "LockVersions").Msg("")
	}

	return
}

func (r *VersionRepositoryImpl) AddVersion(ctx context.Context, data domain.FlagshipEventVersion) (res domain.FlagshipEventVersion, err error) {
	row := r.conn().QueryRowxContext(ctx,
		"INSERT INTO flagship_event_versions(version_name, slug, version_number, status, start_date, end_date, is_current, created_by_id, modified_by) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING "+versionColumns,
		data.VersionName, data.Slug, data.VersionNumber, data.Status, data.StartDate, data.EndDate, data.IsCurrent, data.CreatedByID, data.ModifiedBy,
	)

	err = row.StructScan(&res)
	if err != nil {
		log.Error().Err(err).Str("component", "AddVersion").Msg("")
		return res, mapVersionError(err)
	}

	return
}

func (r *VersionRepositoryImpl) GetVersions(ctx context.Context) (data []domain.FlagshipEventVersion, err error) {
	data = []domain.FlagshipEventVersion{}

	err = sqlx.SelectContext(ctx, r.conn(), &data, "SELECT "+versionColumns+" FROM flagship_event_versions ORDER BY version_number DESC")
	if err != nil {
		log.Error().Err(err).Str("component", "GetVersions").Msg("")
		return nil, err
	}

	return
}

func (r *VersionRepositoryImpl) GetVersionByID(ctx context.Context, id string) (data domain.FlagshipEventVersion, err error) {
	return r.getVersion(ctx, "GetVersionByID", "SELECT "+versionColumns+" FROM flagship_event_versions WHERE id = $1", id)
}

func (r *VersionRepositoryImpl) GetVersionBySlug(ctx context.Context, slug string) (data domain.FlagshipEventVersion, err error) {
	return r.getVersion(ctx, "GetVersionBySlug", "SELECT "+versionColumns+" FROM flagship_event_versions WHERE slug = $1", slug)
}

func (r *VersionRepositoryImpl) GetCurrentVersion(ctx context.Context) (data domain.FlagshipEventVersion, err error) {
	return r.getVersion(ctx, "GetCurrentVersion", "SELECT "+versionColumns+" FROM flagship_event_versions WHERE is_current = true LIMIT 1")
}

func (r *VersionRepositoryImpl) GetConflictingVersion(ctx context.Context, slug string, versionNumber float64, excludeID string) (data domain.FlagshipEventVersion, err error) {
	return r.getVersion(ctx, "GetConflictingVersion",
		"SELECT "+versionColumns+" FROM flagship_event_versions WHERE (slug = $1 OR version_number = $2) AND id::text <> $3 LIMIT 1",
		slug, versionNumber, excludeID,
	)
}

func (r *VersionRepositoryImpl) getVersion(ctx context.Context, component string, query string, args ...interface{}) (data domain.FlagshipEventVersion, err error) {
	err = sqlx.GetContext(ctx, r.conn(), &data, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.FlagshipEventVersion{}, nil
		}
		log.Error().Err(err).Str("component", component).Msg("")
		return data, err
	}

	return
}

func (r *VersionRepositoryImpl) UpdateVersion(ctx context.Context, data domain.FlagshipEventVersion) (res domain.FlagshipEventVersion, err error) {
	row := r.conn().QueryRowxContext(ctx,
		"UPDATE flagship_event_versions SET version_name = $2, slug = $3, version_number = $4, status = $5, start_date = $6, end_date = $7, is_current = $8, modified_by = $9, updated_at = now() WHERE id = $1 RETURNING "+versionColumns,
		data.ID, data.VersionName, data.Slug, data.VersionNumber, data.Status, data.StartDate, data.EndDate, data.IsCurrent, data.ModifiedBy,
	)

	err = row.StructScan(&res)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateVersion").Msg("")
		if errors.Is(err, sql.ErrNoRows) {
			return res, errs.ErrVersionNotFound
		}
		return res, mapVersionError(err)
	}

	return
}

func (r *VersionRepositoryImpl) DeleteVersion(ctx context.Context, id string) (err error) {
	_, err = r.conn().ExecContext(ctx, "DELETE FROM flagship_event_versions WHERE id = $1", id)
	if err != nil {
		log.Error().Err(err).Str("component", "DeleteVersion").Msg("")
	}

	return
}

func mapVersionError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" && versionUniqueConstraints[pqErr.Constraint] {
		return errs.ErrVersionConflict
	}

	return err
}
