package domain

import "time"

// Session is the per-browser authentication state: an opaque bearer credential
// and the principal it belongs to. It is hydrated from persisted storage on
// every request and handed explicitly to the services that need it.
type Session struct {
	ID          string
	AccessToken string
	Principal   *Principal
	ExpiresAt   time.Time
}

// Authenticated is true only when both persisted entries are present.
func (s *Session) Authenticated() bool {
	return s != nil && s.AccessToken != "" && s.Principal != nil
}

// User returns the principal of an authenticated session, or nil.
func (s *Session) User() *Principal {
	if !s.Authenticated() {
		return nil
	}
	return s.Principal
}
