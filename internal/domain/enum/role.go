package enum

// Role is the account type of a user.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleClient     Role = "client"
	RoleStaff      Role = "staff"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleClient, RoleStaff:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
