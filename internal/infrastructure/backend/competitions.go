package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/schoolsapp/schools-web/internal/core/domain"
)

// apiTime accepts the timestamp layouts the API is known to return, including
// the bare datetime-local form. null and "" decode to the zero time.
type apiTime time.Time

var apiTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func (t *apiTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = apiTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		*t = apiTime{}
		return nil
	}
	for _, layout := range apiTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = apiTime(parsed)
			return nil
		}
	}
	return fmt.Errorf("timestamp: unrecognised format %q", s)
}

// competitionRecord is a competition as the API returns it. The owner tenant
// arrives under either owner_tenant_id or ownerTenantId.
type competitionRecord struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	StartAt          apiTime `json:"start_at"`
	EndAt            apiTime `json:"end_at"`
	Visibility       string  `json:"visibility"`
	RivalTeamName    string  `json:"rival_team_name"`
	OwnerTenantID    string  `json:"owner_tenant_id"`
	OwnerTenantIDAlt string  `json:"ownerTenantId"`
	CreatedBy        string  `json:"createdBy"`
	CreatedAt        apiTime `json:"createdAt"`
	UpdatedAt        apiTime `json:"updatedAt"`
}

func (r competitionRecord) toDomain() domain.Competition {
	owner := r.OwnerTenantID
	if owner == "" {
		owner = r.OwnerTenantIDAlt
	}
	return domain.Competition{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		StartAt:       time.Time(r.StartAt),
		EndAt:         time.Time(r.EndAt),
		Visibility:    domain.Visibility(r.Visibility),
		RivalTeamName: r.RivalTeamName,
		OwnerTenantID: owner,
		CreatedBy:     r.CreatedBy,
		CreatedAt:     time.Time(r.CreatedAt),
		UpdatedAt:     time.Time(r.UpdatedAt),
	}
}

// competitionPayload is the create/update body.
type competitionPayload struct {
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	StartAt          time.Time `json:"start_at"`
	EndAt            time.Time `json:"end_at"`
	Visibility       string    `json:"visibility"`
	RivalTeamName    string    `json:"rival_team_name"`
	AllowedTenantIDs []string  `json:"allowedTenantIds"`
	OwnerTenantID    string    `json:"ownerTenantId,omitempty"`
	CreatedBy        string    `json:"createdBy,omitempty"`
}

func newCompetitionPayload(d domain.CompetitionDraft) competitionPayload {
	allowed := d.AllowedTenantIDs
	if allowed == nil {
		allowed = []string{}
	}
	return competitionPayload{
		Title:            d.Title,
		Description:      d.Description,
		StartAt:          d.StartAt.UTC(),
		EndAt:            d.EndAt.UTC(),
		Visibility:       string(d.Visibility),
		RivalTeamName:    d.RivalTeamName,
		AllowedTenantIDs: allowed,
	}
}

// CompetitionGateway implements ports.CompetitionGateway against /competitions.
// The bearer credential is taken from the request context.
type CompetitionGateway struct {
	client *Client
}

func NewCompetitionGateway(client *Client) *CompetitionGateway {
	return &CompetitionGateway{client: client}
}

// List fetches the whole collection.
func (g *CompetitionGateway) List(ctx context.Context) ([]domain.Competition, error) {
	var records []competitionRecord
	err := g.client.do(ctx, call{
		op:     "competitions.list",
		method: http.MethodGet,
		path:   "/competitions",
		out:    &records,
	})
	if err != nil {
		return nil, err
	}

	comps := make([]domain.Competition, 0, len(records))
	for _, r := range records {
		comps = append(comps, r.toDomain())
	}
	return comps, nil
}

// Create posts draft together with the owner tenant and creator.
func (g *CompetitionGateway) Create(ctx context.Context, draft domain.CompetitionDraft, ownerTenantID, createdBy string) (*domain.Competition, error) {
	payload := newCompetitionPayload(draft)
	payload.OwnerTenantID = ownerTenantID
	payload.CreatedBy = createdBy

	return g.write(ctx, "competitions.create", http.MethodPost, "/competitions", payload)
}

// Update replaces competition id with draft.
func (g *CompetitionGateway) Update(ctx context.Context, id string, draft domain.CompetitionDraft) (*domain.Competition, error) {
	return g.write(ctx, "competitions.update", http.MethodPut, "/competitions/"+url.PathEscape(id), newCompetitionPayload(draft))
}

// Delete removes competition id.
func (g *CompetitionGateway) Delete(ctx context.Context, id string) error {
	return g.client.do(ctx, call{
		op:     "competitions.delete",
		method: http.MethodDelete,
		path:   "/competitions/" + url.PathEscape(id),
	})
}

func (g *CompetitionGateway) write(ctx context.Context, op, method, path string, payload competitionPayload) (*domain.Competition, error) {
	var rec competitionRecord
	err := g.client.do(ctx, call{op: op, method: method, path: path, in: payload, out: &rec})
	if err != nil {
		return nil, err
	}
	c := rec.toDomain()
	return &c, nil
}
