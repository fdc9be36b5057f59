package session

import "slices"

// Role is the privilege level of an authenticated identity.
type Role string

const (
	RoleMember        Role = "member"
	RoleAdministrator Role = "administrator"
	RoleOwner         Role = "owner"
)

// Policy names the privileged identities. Emails are compared exactly.
type Policy struct {
	Master string
	Admins []string
}

// DeriveRole returns owner for the master email, administrator for any
// allow-listed email and member otherwise. The master check wins when an
// email is listed in both.
func DeriveRole(email string, p Policy) Role {
	switch {
	case email != "" && email == p.Master:
		return RoleOwner
	case email != "" && slices.Contains(p.Admins, email):
		return RoleAdministrator
	default:
		return RoleMember
	}
}

// CanViewDirectory reports whether r may list registered identities.
func (r Role) CanViewDirectory() bool {
	return r == RoleOwner || r == RoleAdministrator
}

// CanExport reports whether r may export the directory.
func (r Role) CanExport() bool {
	return r == RoleOwner
}

func (r Role) String() string {
	return string(r)
}
