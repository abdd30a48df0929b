package service

import (
	"context"
	"strings"

	"github.com/primeitclub/ict-meetup-api/internal/domain"
	"github.com/primeitclub/ict-meetup-api/internal/dto"
	"github.com/primeitclub/ict-meetup-api/internal/repository"
	"github.com/primeitclub/ict-meetup-api/pkg/errs"
	"github.com/primeitclub/ict-meetup-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	repository repository.UserRepository
	audit      AuditRecorder
	jwtSecret  string
}

func CreateAuthService(repository repository.UserRepository, audit AuditRecorder, jwtSecret string) AuthService {
	return &AuthServiceImpl{
		repository: repository,
		audit:      audit,
		jwtSecret:  jwtSecret,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, req dto.LoginRequest, actor domain.Actor) (res dto.LoginResponse, err error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repository.GetUserCredentialsByEmail(ctx, email)
	if err != nil {
		return
	}

	if user.ID == "" {
		return res, errs.ErrInvalidCredentialsEmail
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password))
	if err != nil {
		return res, errs.ErrInvalidCredentialsEmail
	}

	token, err := utils.CreateJWTToken(user.ID, user.Name, string(user.Role), s.jwtSecret)
	if err != nil {
		return
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Action:    domain.AuditActionLogin,
		TableName: domain.UserTableName,
		RecordID:  user.ID,
		ChangedBy: user.ID,
		Changes:   map[string]string{"email": user.Email},
		Scope:     domain.AuditScopeUsers,
		IPAddress: actor.IPAddress,
	})

	res.Token = token
	res.UserID = user.ID
	res.Name = user.Name
	res.Role = string(user.Role)

	return
}
