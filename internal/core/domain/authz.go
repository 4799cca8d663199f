package domain

// CanView reports whether the competitions section is shown at all.
func CanView(p *Principal) bool {
	return p != nil
}

// CanCreate gates the "Add Competition" affordance. The creator's tenant always
// becomes the owner, so no tenant comparison is needed.
func CanCreate(p *Principal) bool {
	return p.IsAdmin()
}

// CanEdit gates both editing and deleting c: only admins of the owning tenant
// may mutate it.
func CanEdit(p *Principal, c Competition) bool {
	return p.IsAdmin() && p.TenantID == c.OwnerTenantID
}
