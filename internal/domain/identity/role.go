package identity

// Role is the access level a user holds within a company. Roles form a
// strict hierarchy: chairman > company_admin > branch_head > staff.
type Role string

const (
	RoleChairman     Role = "chairman"
	RoleCompanyAdmin Role = "company_admin"
	RoleBranchHead   Role = "branch_head"
	RoleStaff        Role = "staff"
)

var roleLevels = map[Role]int{
	RoleChairman:     4,
	RoleCompanyAdmin: 3,
	RoleBranchHead:   2,
	RoleStaff:        1,
}

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	_, ok := roleLevels[r]
	return ok
}

// AtLeast reports whether the role grants at least the access of other.
func (r Role) AtLeast(other Role) bool {
	return roleLevels[r] >= roleLevels[other]
}

func (r Role) String() string {
	return string(r)
}
