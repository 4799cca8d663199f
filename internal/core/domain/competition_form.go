package domain

import "time"

// FormMode is the state of the competition form.
type FormMode int

const (
	FormClosed FormMode = iota
	FormCreating
	FormEditing
)

func (m FormMode) String() string {
	switch m {
	case FormCreating:
		return "creating"
	case FormEditing:
		return "editing"
	default:
		return "closed"
	}
}

// CompetitionForm holds the create/edit form for one caller. Creating and
// editing are mutually exclusive: opening "Add" discards an edit in progress.
type CompetitionForm struct {
	Mode        FormMode
	EditingID   string
	Draft       CompetitionDraft
	CustomRival bool

	callerTenantID string
	tenants        []TenantSummary
	now            func() time.Time
}

// NewCompetitionForm returns a closed form for a caller of callerTenantID.
// tenants is the known-tenant directory used for rival selection.
func NewCompetitionForm(callerTenantID string, tenants []TenantSummary) *CompetitionForm {
	f := &CompetitionForm{
		callerTenantID: callerTenantID,
		tenants:        tenants,
		now:            time.Now,
	}
	f.reset()
	return f
}

// IsOpen reports whether the form is rendered.
func (f *CompetitionForm) IsOpen() bool {
	return f.Mode != FormClosed
}

// Editing reports whether the form edits an existing competition.
func (f *CompetitionForm) Editing() bool {
	return f.Mode == FormEditing
}

// ToggleAdd flips between closed and creating. From editing it moves to
// creating with a fresh draft.
func (f *CompetitionForm) ToggleAdd() {
	if f.Mode == FormCreating {
		f.Mode = FormClosed
		f.reset()
		return
	}
	f.Mode = FormCreating
	f.EditingID = ""
	f.reset()
}

// Edit opens the form on c. The allowed tenants restart from the caller's own
// tenant, and the custom-rival mode is on when the stored rival name does not
// match any known tenant.
func (f *CompetitionForm) Edit(c Competition) {
	f.Mode = FormEditing
	f.EditingID = c.ID
	f.Draft = CompetitionDraft{
		Title:            c.Title,
		Description:      c.Description,
		StartAt:          c.StartAt,
		EndAt:            c.EndAt,
		Visibility:       c.Visibility,
		RivalTeamName:    c.RivalTeamName,
		AllowedTenantIDs: []string{f.callerTenantID},
	}
	_, known := FindTenantByName(f.tenants, c.RivalTeamName)
	f.CustomRival = !known
}

// Cancel closes the form and drops the draft. It is also the transition taken
// after a successful submit.
func (f *CompetitionForm) Cancel() {
	f.Mode = FormClosed
	f.EditingID = ""
	f.reset()
}

// Apply runs updates in order against the draft.
func (f *CompetitionForm) Apply(updates ...FieldUpdate) {
	for _, u := range updates {
		u.applyTo(f)
	}
}

// RivalOptions lists the tenants offered in the rival select.
func (f *CompetitionForm) RivalOptions() []TenantSummary {
	return RivalCandidates(f.tenants, f.callerTenantID)
}

func (f *CompetitionForm) reset() {
	f.Draft = NewCompetitionDraft(f.callerTenantID, f.now().UTC().Truncate(time.Minute))
	f.CustomRival = false
}

func (f *CompetitionForm) ownTenantOnly() []string {
	return []string{f.callerTenantID}
}

// FieldUpdate is one edit to the form. The set of variants is closed: every
// form field has exactly one update type below.
type FieldUpdate interface {
	applyTo(f *CompetitionForm)
}

type (
	SetTitle           string
	SetDescription     string
	SetStartAt         time.Time
	SetEndAt           time.Time
	SetPublic          bool
	SelectRival        string
	SetCustomRivalName string
	ToggleCustomRival  bool
)

func (u SetTitle) applyTo(f *CompetitionForm)       { f.Draft.Title = string(u) }
func (u SetDescription) applyTo(f *CompetitionForm) { f.Draft.Description = string(u) }
func (u SetStartAt) applyTo(f *CompetitionForm)     { f.Draft.StartAt = time.Time(u) }
func (u SetEndAt) applyTo(f *CompetitionForm)       { f.Draft.EndAt = time.Time(u) }
func (u SetPublic) applyTo(f *CompetitionForm)      { f.Draft.Visibility = VisibilityFor(bool(u)) }

// SelectRival picks a rival from the tenant select. A known tenant is granted
// access alongside the caller.
func (u SelectRival) applyTo(f *CompetitionForm) {
	f.Draft.RivalTeamName = string(u)
	if t, ok := FindTenantByName(f.tenants, string(u)); ok {
		f.Draft.AllowedTenantIDs = []string{f.callerTenantID, t.ID}
		return
	}
	f.Draft.AllowedTenantIDs = f.ownTenantOnly()
}

// SetCustomRivalName sets a free-text rival. Free-text rivals never gain access.
func (u SetCustomRivalName) applyTo(f *CompetitionForm) {
	f.Draft.RivalTeamName = string(u)
	f.Draft.AllowedTenantIDs = f.ownTenantOnly()
}

// ToggleCustomRival switches between the select and free text. Turning it off
// clears the rival.
func (u ToggleCustomRival) applyTo(f *CompetitionForm) {
	f.CustomRival = bool(u)
	if !f.CustomRival {
		f.Draft.RivalTeamName = ""
		f.Draft.AllowedTenantIDs = f.ownTenantOnly()
	}
}

// SubmissionState is the outcome of the last form submission as the server
// sees it. The pending state exists only in the browser, where the submit
// control is disabled until the response arrives.
type SubmissionState int

const (
	SubmissionIdle SubmissionState = iota
	SubmissionSucceeded
	SubmissionFailed
)

// Submission is bound by the views: a failed submission renders its message
// inline next to the form.
type Submission struct {
	State   SubmissionState
	Message string
}

// FailedSubmission records a failure with a user-facing message.
func FailedSubmission(msg string) Submission {
	return Submission{State: SubmissionFailed, Message: msg}
}

func (s Submission) Failed() bool { return s.State == SubmissionFailed }
