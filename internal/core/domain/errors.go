package domain

import "errors"

var (
	ErrForbidden           = errors.New("access forbidden")
	ErrUnauthenticated     = errors.New("not signed in")
	ErrCompetitionNotFound = errors.New("competition not found")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrSessionNotFound     = errors.New("session not found")
)
