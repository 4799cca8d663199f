package domain

import "time"

// Visibility controls which tenants may see a competition.
type Visibility string

const (
	VisibilityPublic     Visibility = "public"
	VisibilityRestricted Visibility = "restricted"
)

// VisibilityFor maps the "Make Public" checkbox to a visibility value.
func VisibilityFor(public bool) Visibility {
	if public {
		return VisibilityPublic
	}
	return VisibilityRestricted
}

// Competition is a record owned by exactly one tenant.
type Competition struct {
	ID            string
	Title         string
	Description   string
	StartAt       time.Time
	EndAt         time.Time
	Visibility    Visibility
	RivalTeamName string
	OwnerTenantID string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CompetitionDraft is the payload submitted by the create and edit forms.
//
// StartAt and EndAt are validated independently; no ordering between them is
// enforced.
type CompetitionDraft struct {
	Title            string
	Description      string
	StartAt          time.Time
	EndAt            time.Time
	Visibility       Visibility
	RivalTeamName    string
	AllowedTenantIDs []string
}

// NewCompetitionDraft returns the blank draft a form opens with.
func NewCompetitionDraft(callerTenantID string, now time.Time) CompetitionDraft {
	return CompetitionDraft{
		StartAt:          now,
		EndAt:            now,
		Visibility:       VisibilityRestricted,
		AllowedTenantIDs: []string{callerTenantID},
	}
}
