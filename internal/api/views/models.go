package views

import (
	"github.com/schoolsapp/schools-web/internal/core/domain"
)

// Tooltip texts shown on disabled affordances.
const (
	TooltipCreateDenied = "You have to be admin to add a new competition"
	TooltipEditDenied   = "Only administrators that belong to the same school that created the competition can edit or modify competitions"
	TooltipMakePublic   = "Making the competition public will let everyone access it"
)

// Layout is embedded by every page.
type Layout struct {
	Title     string
	Tenant    string
	Principal *domain.Principal
}

// HomePage is the landing page: the welcome prompt when signed out, the
// competitions section when signed in.
type HomePage struct {
	Layout
	Competitions []CompetitionCard
	CanCreate    bool
	Form         *CompetitionFormView
}

// CompetitionCard is one competition in the list.
type CompetitionCard struct {
	domain.Competition
	CanEdit bool
}

// CompetitionFormView binds domain.CompetitionForm to the template.
type CompetitionFormView struct {
	Mode         string
	Action       string
	Draft        domain.CompetitionDraft
	CustomRival  bool
	RivalOptions []domain.TenantSummary
	Submission   domain.Submission
}

// Public reports whether the "Make Public" checkbox is ticked.
func (f *CompetitionFormView) Public() bool {
	return f.Draft.Visibility == domain.VisibilityPublic
}

// PendingLabel is shown on the submit button while the request is in flight.
func (f *CompetitionFormView) PendingLabel() string {
	if f.Mode == domain.FormEditing.String() {
		return "Updating..."
	}
	return "Creating..."
}

// NewCompetitionFormView adapts an open form for rendering.
func NewCompetitionFormView(f *domain.CompetitionForm, sub domain.Submission) *CompetitionFormView {
	if !f.IsOpen() {
		return nil
	}
	action := "/competitions"
	if f.Editing() {
		action = "/competitions/" + f.EditingID
	}
	return &CompetitionFormView{
		Mode:         f.Mode.String(),
		Action:       action,
		Draft:        f.Draft,
		CustomRival:  f.CustomRival,
		RivalOptions: f.RivalOptions(),
		Submission:   sub,
	}
}

// AuthPage backs the login and register forms.
type AuthPage struct {
	Layout
	TenantName     string
	WelcomeMessage string
	Submission     domain.Submission
	// Values re-populates the form after a failed submission. Passwords are
	// never echoed back.
	Values map[string]string
}

// ErrorPage is the generic error page.
type ErrorPage struct {
	Layout
	Status  int
	Message string
}
