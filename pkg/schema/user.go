// Package schema defines the data structures shared by the HRMS daemon, the SDK and the CLI.
package schema

// Role is the access level of a user account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// User is a static account identity. Users are seeded and never created at runtime.
type User struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
	Role  Role   `json:"role" yaml:"role"`
}

// Credential pairs a User with the plaintext password it logs in with.
type Credential struct {
	User
	Password string `json:"-" yaml:"-"`
}

// Session is the authenticated identity held by the auth store.
// It lives only in memory and is never persisted.
type Session struct {
	User  User   `json:"user" yaml:"user"`
	Token string `json:"token" yaml:"token"`
}
