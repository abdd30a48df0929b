// Package seed holds the built-in records created by the seeding endpoints.
package seed

import (
	"github.com/primeitclub/ict-meetup-api/internal/domain"
	"github.com/primeitclub/ict-meetup-api/internal/dto"
)

// StaticUsers returns the accounts created by POST /api/seeds/init, all
// sharing the configured initial password.
func StaticUsers(password string) []dto.SeedUserRequest {
	return []dto.SeedUserRequest{
		{
			Name:     "Super Admin",
			Email:    "superadmin@ictmeetup.org",
			Role:     string(domain.UserRoleSuperAdmin),
			Password: password,
		},
		{
			Name:     "Admin",
			Email:    "admin@ictmeetup.org",
			Role:     string(domain.UserRoleAdmin),
			Password: password,
		},
	}
}
