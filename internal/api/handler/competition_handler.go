package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/schoolsapp/schools-web/internal/api/middleware"
	"github.com/schoolsapp/schools-web/internal/api/views"
	"github.com/schoolsapp/schools-web/internal/core/domain"
	"github.com/schoolsapp/schools-web/internal/core/ports"
)

// CompetitionHandler serves the home page and the competition form routes.
type CompetitionHandler struct {
	competitions ports.CompetitionService
	tenants      ports.TenantDirectory
	log          zerolog.Logger
}

func NewCompetitionHandler(competitions ports.CompetitionService, tenants ports.TenantDirectory, log zerolog.Logger) *CompetitionHandler {
	return &CompetitionHandler{competitions: competitions, tenants: tenants, log: log}
}

// competitionForm is the create/edit form as posted by the browser. A rival is
// required in whichever mode is selected: the tenant select or free text.
type competitionForm struct {
	Title           string `form:"title"             validate:"required"`
	Description     string `form:"description"       validate:"required"`
	StartAt         string `form:"start_at"          validate:"required,datetime=2006-01-02T15:04"`
	EndAt           string `form:"end_at"            validate:"required,datetime=2006-01-02T15:04"`
	Public          bool   `form:"public"`
	CustomRival     bool   `form:"custom_rival"`
	Rival           string `form:"rival"             validate:"required_without=CustomRival"`
	CustomRivalName string `form:"custom_rival_name" validate:"required_if=CustomRival true"`
}

// updates translates the posted fields into form updates. Unparseable
// timestamps are left out; validation reports them.
func (f competitionForm) updates() []domain.FieldUpdate {
	ups := []domain.FieldUpdate{
		domain.SetTitle(f.Title),
		domain.SetDescription(f.Description),
		domain.SetPublic(f.Public),
		domain.ToggleCustomRival(f.CustomRival),
	}
	if t, err := time.Parse(views.DatetimeLocal, f.StartAt); err == nil {
		ups = append(ups, domain.SetStartAt(t))
	}
	if t, err := time.Parse(views.DatetimeLocal, f.EndAt); err == nil {
		ups = append(ups, domain.SetEndAt(t))
	}
	switch {
	case f.CustomRival:
		ups = append(ups, domain.SetCustomRivalName(f.CustomRivalName))
	case f.Rival != "":
		ups = append(ups, domain.SelectRival(f.Rival))
	}
	return ups
}

// Home renders the welcome prompt for anonymous callers and the competitions
// section otherwise. ?form=new opens the create form for admins.
//
// @Summary      Home page
// @Tags         pages
// @Produce      html
// @Param        form  query  string  false  "\"new\" opens the create form"
// @Success      200
// @Failure      502  "external API unavailable"
// @Router       / [get]
func (h *CompetitionHandler) Home(c echo.Context) error {
	p := middleware.SessionFrom(c).User()
	if p == nil || c.QueryParam("form") != "new" || !domain.CanCreate(p) {
		return h.renderHome(c, http.StatusOK, nil, domain.Submission{})
	}

	form, err := h.newForm(c, p)
	if err != nil {
		return err
	}
	form.ToggleAdd()
	return h.renderHome(c, http.StatusOK, form, domain.Submission{})
}

// Edit opens the form on an existing competition. Callers that may not edit
// it get 403 and never see the form.
//
// @Summary      Edit competition form
// @Tags         competitions
// @Produce      html
// @Param        id  path  string  true  "Competition ID"
// @Success      200
// @Failure      403  "caller may not edit this competition"
// @Failure      404  "competition not found"
// @Router       /competitions/{id}/edit [get]
func (h *CompetitionHandler) Edit(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	existing, err := h.competitions.Find(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	if !domain.CanEdit(sess.User(), *existing) {
		return domain.ErrForbidden
	}

	form, err := h.newForm(c, sess.User())
	if err != nil {
		return err
	}
	form.Edit(*existing)
	return h.renderHome(c, http.StatusOK, form, domain.Submission{})
}

// Create submits a new competition owned by the caller's tenant.
//
// @Summary      Create competition
// @Tags         competitions
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        title              formData  string  true   "Title"
// @Param        description        formData  string  true   "Description"
// @Param        start_at           formData  string  true   "Start (YYYY-MM-DDTHH:MM)"
// @Param        end_at             formData  string  true   "End (YYYY-MM-DDTHH:MM)"
// @Param        public             formData  bool    false  "Make public"
// @Param        custom_rival       formData  bool    false  "Rival is free text"
// @Param        rival              formData  string  false  "Rival tenant name"
// @Param        custom_rival_name  formData  string  false  "Free-text rival name"
// @Success      303  "redirect to /"
// @Failure      403  "caller is not an admin"
// @Failure      422  "validation failed, form re-rendered"
// @Router       /competitions [post]
func (h *CompetitionHandler) Create(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	var in competitionForm
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	form, err := h.newForm(c, sess.User())
	if err != nil {
		return err
	}
	form.ToggleAdd()
	form.Apply(in.updates()...)

	if err := c.Validate(&in); err != nil {
		return h.renderHome(c, failureStatus(err), form, domain.FailedSubmission(failureMessage(err, "Invalid form")))
	}

	if _, err := h.competitions.Create(c.Request().Context(), sess, form.Draft); err != nil {
		if isAccessError(err) {
			return err
		}
		h.log.Warn().Err(err).Msg("create competition failed")
		return h.renderHome(c, failureStatus(err), form, domain.FailedSubmission(failureMessage(err, "Failed to create competition")))
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Update replaces an existing competition.
//
// @Summary      Update competition
// @Tags         competitions
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        id                 path      string  true   "Competition ID"
// @Param        title              formData  string  true   "Title"
// @Param        description        formData  string  true   "Description"
// @Param        start_at           formData  string  true   "Start (YYYY-MM-DDTHH:MM)"
// @Param        end_at             formData  string  true   "End (YYYY-MM-DDTHH:MM)"
// @Param        public             formData  bool    false  "Make public"
// @Param        custom_rival       formData  bool    false  "Rival is free text"
// @Param        rival              formData  string  false  "Rival tenant name"
// @Param        custom_rival_name  formData  string  false  "Free-text rival name"
// @Success      303  "redirect to /"
// @Failure      403  "caller may not edit this competition"
// @Failure      404  "competition not found"
// @Failure      422  "validation failed, form re-rendered"
// @Router       /competitions/{id} [post]
func (h *CompetitionHandler) Update(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	id := c.Param("id")

	var in competitionForm
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	existing, err := h.competitions.Find(c.Request().Context(), sess, id)
	if err != nil {
		return err
	}
	if !domain.CanEdit(sess.User(), *existing) {
		return domain.ErrForbidden
	}

	form, err := h.newForm(c, sess.User())
	if err != nil {
		return err
	}
	form.Edit(*existing)
	form.Apply(in.updates()...)

	if err := c.Validate(&in); err != nil {
		return h.renderHome(c, failureStatus(err), form, domain.FailedSubmission(failureMessage(err, "Invalid form")))
	}

	if _, err := h.competitions.Update(c.Request().Context(), sess, id, form.Draft); err != nil {
		if isAccessError(err) {
			return err
		}
		h.log.Warn().Err(err).Str("competition_id", id).Msg("update competition failed")
		return h.renderHome(c, failureStatus(err), form, domain.FailedSubmission(failureMessage(err, "Failed to update competition")))
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Delete removes a competition. The browser asks for confirmation first.
//
// @Summary      Delete competition
// @Tags         competitions
// @Param        id  path  string  true  "Competition ID"
// @Success      303  "redirect to /"
// @Failure      403  "caller may not delete this competition"
// @Failure      404  "competition not found"
// @Failure      502  "external API rejected the request"
// @Router       /competitions/{id}/delete [post]
func (h *CompetitionHandler) Delete(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	if err := h.competitions.Delete(c.Request().Context(), sess, c.Param("id")); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *CompetitionHandler) newForm(c echo.Context, p *domain.Principal) (*domain.CompetitionForm, error) {
	tenants, err := h.tenants.List(credentialContext(c))
	if err != nil {
		return nil, err
	}
	return domain.NewCompetitionForm(p.TenantID, tenants), nil
}

func (h *CompetitionHandler) renderHome(c echo.Context, status int, form *domain.CompetitionForm, sub domain.Submission) error {
	sess := middleware.SessionFrom(c)
	page := views.HomePage{Layout: layout(c, "Home")}

	p := sess.User()
	if domain.CanView(p) {
		comps, err := h.competitions.List(c.Request().Context(), sess)
		if err != nil {
			return err
		}
		page.Competitions = make([]views.CompetitionCard, len(comps))
		for i, comp := range comps {
			page.Competitions[i] = views.CompetitionCard{Competition: comp, CanEdit: domain.CanEdit(p, comp)}
		}
		page.CanCreate = domain.CanCreate(p)
		if form != nil {
			page.Form = views.NewCompetitionFormView(form, sub)
		}
	}
	return c.Render(status, views.PageHome, page)
}
