package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/primeitclub/ict-meetup-api/internal/domain"
	"github.com/rs/zerolog/log"
)

const userColumns = "id, name, email, role, created_at, updated_at, created_by_id, modified_by"

type UserRepositoryImpl struct {
	db *sqlx.DB
}

func CreateUserRepository(db *sqlx.DB) UserRepository {
	return &UserRepositoryImpl{
		db: db,
	}
}

func (r *UserRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (data domain.User, err error) {
	err = r.db.GetContext(ctx, &data, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, nil
		}
		log.Error().Err(err).Str("component", "GetUserByEmail").Msg("")
		return
	}

	return
}

func (r *UserRepositoryImpl) GetUserCredentialsByEmail(ctx context.Context, email string) (data domain.User, err error) {
	err = r.db.GetContext(ctx, &data, "SELECT "+userColumns+", password FROM users WHERE email = $1", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, nil
		}
		log.Error().Err(err).Str("component", "GetUserCredentialsByEmail").Msg("")
		return
	}

	return
}

func (r *UserRepositoryImpl) AddUser(ctx context.Context, data domain.User) (res domain.User, err error) {
	row := r.db.QueryRowxContext(ctx,
		"INSERT INTO users(name, email, password, role, created_by_id, modified_by) VALUES ($1, $2, $3, $4, $5, $6) RETURNING "+userColumns,
		data.Name, data.Email, data.HashedPassword, data.Role, data.CreatedByID, data.ModifiedBy,
	)

	err = row.StructScan(&res)
	if err != nil {
		log.Error().Err(err).Str("component", "AddUser").Msg("")
		return
	}

	return
}
