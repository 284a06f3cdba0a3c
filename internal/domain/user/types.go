package user

type Role string

const (
	RoleClient   Role = "client"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleOperator, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsStaff reports whether the role acts on behalf of the marketplace.
func (r Role) IsStaff() bool {
	return r == RoleOperator || r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
