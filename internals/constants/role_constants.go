package constants

// Role claims recognized by the portal.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleMember  = "member"
)

// AdminAndAbove are the roles allowed to run ledger mutations.
var AdminAndAbove = []string{RoleAdmin, RoleManager}
