package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/primeitclub/ict-meetup-api/internal/domain"
	"github.com/primeitclub/ict-meetup-api/internal/dto"
	"github.com/primeitclub/ict-meetup-api/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const passwordHashCost = 10

type SeedServiceImpl struct {
	repository  repository.UserRepository
	audit       AuditRecorder
	staticUsers []dto.SeedUserRequest
	hash        func(password []byte, cost int) ([]byte, error)
}

func CreateSeedService(repository repository.UserRepository, audit AuditRecorder, staticUsers []dto.SeedUserRequest) SeedService {
	return &SeedServiceImpl{
		repository:  repository,
		audit:       audit,
		staticUsers: staticUsers,
		hash:        bcrypt.GenerateFromPassword,
	}
}

type seededUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SeedUser creates the user unless the email is already taken, in which case
// the existing row is left untouched.
func (s *SeedServiceImpl) SeedUser(ctx context.Context, req dto.SeedUserRequest, actor domain.Actor) (res dto.SeedResult, err error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	res.Email = email

	existing, err := s.repository.GetUserByEmail(ctx, email)
	if err != nil {
		return
	}

	if existing.ID != "" {
		res.Status = dto.SeedStatusSkipped
		res.Message = fmt.Sprintf("User %s already exists", email)
		return res, nil
	}

	hashedPassword, err := s.hash([]byte(req.Password), passwordHashCost)
	if err != nil {
		return res, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.repository.AddUser(ctx, domain.User{
		Base: domain.Base{
			CreatedByID: actor.Ref(),
			ModifiedBy:  actor.Ref(),
		},
		Name:           req.Name,
		Email:          email,
		HashedPassword: string(hashedPassword),
		Role:           domain.UserRole(req.Role),
	})
	if err != nil {
		return
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Action:    domain.AuditActionCreate,
		TableName: domain.UserTableName,
		RecordID:  user.ID,
		ChangedBy: actor.Name(),
		Changes: seededUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  string(user.Role),
		},
		Scope:     domain.AuditScopeUsers,
		IPAddress: actor.IPAddress,
	})

	res.Status = dto.SeedStatusSeeded
	res.Message = fmt.Sprintf("User %s seeded successfully", email)

	return
}

func (s *SeedServiceImpl) SeedStaticUsers(ctx context.Context, actor domain.Actor) (res []dto.SeedResult) {
	res = make([]dto.SeedResult, 0, len(s.staticUsers))

	for _, user := range s.staticUsers {
		result, err := s.SeedUser(ctx, user, actor)
		if err != nil {
			log.Error().Err(err).Str("component", "SeedStaticUsers").Str("email", user.Email).Msg("")
			res = append(res, dto.SeedResult{
				Message: fmt.Sprintf("Error seeding user %s", user.Email),
				Status:  dto.SeedStatusFailed,
				Email:   user.Email,
				Error:   err.Error(),
			})
			continue
		}

		res = append(res, result)
	}

	log.Info().Str("component", "SeedStaticUsers").Int("count", len(res)).Msg("static user seeding completed")

	return
}
