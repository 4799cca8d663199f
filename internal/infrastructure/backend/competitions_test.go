package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolsapp/schools-web/internal/core/domain"
	"github.com/schoolsapp/schools-web/internal/core/ports"
)

func TestCompetitionGateway_ListDecodesOwnerFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/competitions", r.URL.Path)
		_, _ = io.WriteString(w, `[
			{"id":"c1","title":"Math Bowl","start_at":"2025-03-01T10:00:00Z","end_at":"2025-03-01T12:00","visibility":"public","owner_tenant_id":"T1","ownerTenantId":"ignored"},
			{"id":"c2","title":"Debate","start_at":null,"visibility":"restricted","rival_team_name":"Ohio High","ownerTenantId":"T2","createdBy":"u9"}
		]`)
	})

	comps, err := NewCompetitionGateway(client).List(ports.WithAccessToken(context.Background(), "tok"))
	require.NoError(t, err)
	require.Len(t, comps, 2)

	assert.Equal(t, "T1", comps[0].OwnerTenantID)
	assert.Equal(t, domain.VisibilityPublic, comps[0].Visibility)
	assert.True(t, comps[0].StartAt.Equal(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)))
	assert.True(t, comps[0].EndAt.Equal(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)))

	assert.Equal(t, "T2", comps[1].OwnerTenantID)
	assert.Equal(t, "u9", comps[1].CreatedBy)
	assert.Equal(t, "Ohio High", comps[1].RivalTeamName)
	assert.True(t, comps[1].StartAt.IsZero())
}

func TestCompetitionGateway_CreateAugmentsPayload(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/competitions", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"c9","title":"Spring Cup","ownerTenantId":"T1"}`)
	})

	start := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	draft := domain.CompetitionDraft{
		Title:            "Spring Cup",
		StartAt:          start,
		EndAt:            start.Add(time.Hour),
		Visibility:       domain.VisibilityRestricted,
		RivalTeamName:    "Ohio High",
		AllowedTenantIDs: []string{"T1", "T2"},
	}

	created, err := NewCompetitionGateway(client).Create(context.Background(), draft, "T1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "c9", created.ID)
	assert.Equal(t, "T1", created.OwnerTenantID)

	assert.Equal(t, "T1", body["ownerTenantId"])
	assert.Equal(t, "u1", body["createdBy"])
	assert.Equal(t, "restricted", body["visibility"])
	assert.Equal(t, "Ohio High", body["rival_team_name"])
	assert.Equal(t, "2025-04-01T09:00:00Z", body["start_at"])
	assert.Equal(t, []any{"T1", "T2"}, body["allowedTenantIds"])
}

func TestCompetitionGateway_UpdateOmitsOwner(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/competitions/c1", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = io.WriteString(w, `{"id":"c1","title":"Renamed"}`)
	})

	updated, err := NewCompetitionGateway(client).Update(context.Background(), "c1", domain.CompetitionDraft{Title: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.NotContains(t, body, "ownerTenantId")
	assert.NotContains(t, body, "createdBy")
	assert.Equal(t, []any{}, body["allowedTenantIds"])
}

func TestCompetitionGateway_DeleteNoContent(t *testing.T) {
	var method, path string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, NewCompetitionGateway(client).Delete(context.Background(), "c1"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/competitions/c1", path)
}
