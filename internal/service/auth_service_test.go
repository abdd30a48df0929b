package service

import (
	"context"
	"testing"

	"github.com/primeitclub/ict-meetup-api/internal/domain"
	"github.com/primeitclub/ict-meetup-api/internal/dto"
	"github.com/primeitclub/ict-meetup-api/internal/repository/repositorytest"
	"github.com/primeitclub/ict-meetup-api/pkg/errs"
	"github.com/primeitclub/ict-meetup-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

func seededUsers(t *testing.T) *repositorytest.UserRepository {
	t.Helper()

	users := repositorytest.NewUserRepository()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	_, err = users.AddUser(context.Background(), domain.User{
		Name:           "Admin",
		Email:          "admin@example.com",
		HashedPassword: string(hash),
		Role:           domain.UserRoleAdmin,
	})
	require.NoError(t, err)

	return users
}

func TestLogin(t *testing.T) {
	users := seededUsers(t)
	audits := repositorytest.NewAuditLogRepository()
	svc := CreateAuthService(users, CreateAuditRecorder(audits), testJWTSecret)

	res, err := svc.Login(context.Background(), dto.LoginRequest{Email: "ADMIN@example.com", Password: "hunter22"}, domain.Actor{IPAddress: "10.0.0.9"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "admin", res.Role)

	claims, err := utils.ParseJWTToken(res.Token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, res.UserID, claims.UserID)

	logs := audits.Entries()
	require.Len(t, logs, 1)
	assert.Equal(t, domain.AuditActionLogin, logs[0].Action)
	assert.Equal(t, res.UserID, logs[0].ChangedBy)
	assert.Equal(t, "10.0.0.9", *logs[0].IPAddress)
}

func TestLoginInvalidCredentials(t *testing.T) {
	users := seededUsers(t)
	audits := repositorytest.NewAuditLogRepository()
	svc := CreateAuthService(users, CreateAuditRecorder(audits), testJWTSecret)

	testCases := []struct {
		Name string
		Req  dto.LoginRequest
	}{
		{Name: "wrong password", Req: dto.LoginRequest{Email: "admin@example.com", Password: "nope"}},
		{Name: "unknown email", Req: dto.LoginRequest{Email: "ghost@example.com", Password: "hunter22"}},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.Req, domain.Actor{})
			assert.ErrorIs(t, err, errs.ErrInvalidCredentialsEmail)
		})
	}

	assert.Empty(t, audits.Entries())
}
