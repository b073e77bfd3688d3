package user

type Role string

const (
	// RoleCustomer books spots and manages its own vehicles.
	RoleCustomer Role = "customer"
	// RoleOperator owns spots, registers entries/exits and reads income
	// reports.
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleOperator, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
