package domain

// Role identifies the acting role on a core operation. Roles are supplied by
// the session layer on every call; the core never reads ambient identity.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleEngineer   Role = "ENGINEER"
)

// IsPrivileged reports whether the role belongs to the admin tier. Privileged
// roles bypass the attendance mutability window and may hard-delete
// submissions.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleEngineer:
		return true
	}
	return false
}

// Actor is the identity a caller supplies with every core operation.
type Actor struct {
	UserID string
	Role   Role
}
