package domain

// Company is the tenant boundary. Every core entity belongs to exactly one.
type Company struct {
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
	TaxID     string `json:"taxID,omitempty"`
	AuditFields
}

// MembershipRole defines the permission level of a user within a company.
type MembershipRole string

const (
	RoleAdmin    MembershipRole = "ADMIN"
	RoleMember   MembershipRole = "MEMBER"
	RoleReadOnly MembershipRole = "READ_ONLY"
)

// CanPerform reports whether this role satisfies the required role.
func (r MembershipRole) CanPerform(required MembershipRole) bool {
	rank := map[MembershipRole]int{RoleReadOnly: 1, RoleMember: 2, RoleAdmin: 3}
	return rank[r] >= rank[required]
}

// Membership links a user to a company with a role.
type Membership struct {
	CompanyID string         `json:"companyID"`
	UserID    string         `json:"userID"`
	Role      MembershipRole `json:"role"`
	AuditFields
}
