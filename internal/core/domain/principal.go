package domain

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// Principal is the authenticated user attached to a session. JSON names follow
// the auth API so the record can be persisted and restored verbatim.
type Principal struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TenantID  string `json:"tenant_id"`
}

// IsAdmin reports whether p holds the admin role. A nil principal is never admin.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// DisplayName is the "first last" form shown in the navbar.
func (p *Principal) DisplayName() string {
	if p == nil {
		return ""
	}
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// RoleFor maps the registration form's admin checkbox to a role.
func RoleFor(isAdmin bool) string {
	if isAdmin {
		return RoleAdmin
	}
	return RoleStudent
}
