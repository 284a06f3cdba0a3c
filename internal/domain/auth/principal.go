package auth

import (
	"errors"
	"slices"

	"tour-booking/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrAnonymous        = errors.New("no authenticated principal")
	ErrRoleNotPermitted = errors.New("role not permitted for this operation")
)

// Principal is the authenticated actor of a single call. It is derived from a
// verified token and never persisted.
type Principal struct {
	ID    uuid.UUID
	Email string
	Role  user.Role
}

func NewPrincipal(id uuid.UUID, email string, role user.Role) (Principal, error) {
	if id == uuid.Nil {
		return Principal{}, ErrAnonymous
	}
	if !role.IsValid() {
		return Principal{}, user.ErrInvalidRole
	}
	return Principal{ID: id, Email: email, Role: role}, nil
}

func (p Principal) IsZero() bool {
	return p.ID == uuid.Nil
}

func (p Principal) IsStaff() bool {
	return p.Role.IsStaff()
}

func (p Principal) IsAdmin() bool {
	return p.Role == user.RoleAdmin
}

// Owns reports whether the principal is the given user.
func (p Principal) Owns(userID uuid.UUID) bool {
	return !p.IsZero() && p.ID == userID
}

// Authorize succeeds when the principal holds one of the roles.
func Authorize(p Principal, roles ...user.Role) error {
	if p.IsZero() {
		return ErrAnonymous
	}
	if !slices.Contains(roles, p.Role) {
		return ErrRoleNotPermitted
	}
	return nil
}
