package user

type Role string

const (
	RoleGuest   Role = "guest"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) IsStaff() bool {
	return r == RoleManager || r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
