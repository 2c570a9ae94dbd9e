package domain

import "errors"

const (
	RoleAdmin   = "admin"
	RoleFaculty = "faculty"
	RoleStudent = "student"
)

// ErrSessionInvalid means the server rejected the stored credential during
// identity resolution. The credential must be discarded.
var ErrSessionInvalid = errors.New("session invalid")

// Identity is the resolved username/role pair for the current session.
// It is derived from the stored credential, never persisted itself.
type Identity struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// CanMutate reports whether the identity may modify registrations.
// Only staff roles grant mutation access; an absent identity or any
// other role (student included) does not. The result must be recomputed
// from the current identity on every render cycle.
func CanMutate(identity *Identity) bool {
	if identity == nil {
		return false
	}
	return identity.Role == RoleAdmin || identity.Role == RoleFaculty
}
