package domain

type UserRole string

const (
	UserRoleSuperAdmin UserRole = "superadmin"
	UserRoleAdmin      UserRole = "admin"
)

const UserTableName = "users"

// User never carries the password hash outside of the credential lookup used
// by login.
type User struct {
	Base
	Name           string   `db:"name"`
	Email          string   `db:"email"`
	HashedPassword string   `db:"password"`
	Role           UserRole `db:"role"`
}
