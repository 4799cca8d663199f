package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolsapp/schools-web/internal/core/domain"
	"github.com/schoolsapp/schools-web/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubCompetitionGateway struct {
	comps     []domain.Competition
	listCalls int
	tokens    []string

	created       *domain.CompetitionDraft
	createdOwner  string
	createdBy     string
	updatedID     string
	deletedID     string
	mutationError error
}

func (g *stubCompetitionGateway) record(ctx context.Context) {
	tok, _ := ports.AccessTokenFrom(ctx)
	g.tokens = append(g.tokens, tok)
}

func (g *stubCompetitionGateway) List(ctx context.Context) ([]domain.Competition, error) {
	g.record(ctx)
	g.listCalls++
	return append([]domain.Competition(nil), g.comps...), nil
}

func (g *stubCompetitionGateway) Create(ctx context.Context, draft domain.CompetitionDraft, owner, createdBy string) (*domain.Competition, error) {
	g.record(ctx)
	if g.mutationError != nil {
		return nil, g.mutationError
	}
	g.created = &draft
	g.createdOwner = owner
	g.createdBy = createdBy
	c := domain.Competition{ID: "new", Title: draft.Title, OwnerTenantID: owner, CreatedBy: createdBy}
	g.comps = append(g.comps, c)
	return &c, nil
}

func (g *stubCompetitionGateway) Update(ctx context.Context, id string, draft domain.CompetitionDraft) (*domain.Competition, error) {
	g.record(ctx)
	if g.mutationError != nil {
		return nil, g.mutationError
	}
	g.updatedID = id
	return &domain.Competition{ID: id, Title: draft.Title}, nil
}

func (g *stubCompetitionGateway) Delete(ctx context.Context, id string) error {
	g.record(ctx)
	if g.mutationError != nil {
		return g.mutationError
	}
	g.deletedID = id
	return nil
}

type stubCompetitionCache struct {
	entries     map[string][]domain.Competition
	invalidated []string
}

func newStubCompetitionCache() *stubCompetitionCache {
	return &stubCompetitionCache{entries: make(map[string][]domain.Competition)}
}

func (c *stubCompetitionCache) Get(_ context.Context, id string) ([]domain.Competition, bool, error) {
	comps, ok := c.entries[id]
	return comps, ok, nil
}

func (c *stubCompetitionCache) Set(_ context.Context, id string, comps []domain.Competition) error {
	c.entries[id] = comps
	return nil
}

func (c *stubCompetitionCache) Invalidate(_ context.Context, id string) error {
	c.invalidated = append(c.invalidated, id)
	delete(c.entries, id)
	return nil
}

func sessionFor(p domain.Principal) *domain.Session {
	return &domain.Session{ID: "sess-" + p.ID, AccessToken: "token-" + p.ID, Principal: &p}
}

var (
	adminT1   = domain.Principal{ID: "u1", Role: domain.RoleAdmin, TenantID: "T1"}
	studentT1 = domain.Principal{ID: "u2", Role: domain.RoleStudent, TenantID: "T1"}
	adminT2   = domain.Principal{ID: "u3", Role: domain.RoleAdmin, TenantID: "T2"}
)

func seededGateway() *stubCompetitionGateway {
	return &stubCompetitionGateway{comps: []domain.Competition{
		{ID: "c1", Title: "Math Bowl", OwnerTenantID: "T1"},
		{ID: "c2", Title: "Debate", OwnerTenantID: "T2"},
	}}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestCompetitionService_List_AttachesCredential(t *testing.T) {
	gw := seededGateway()
	svc := NewCompetitionService(gw, nil, zerolog.Nop())

	comps, err := svc.List(context.Background(), sessionFor(studentT1))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(comps) != 2 {
		t.Fatalf("expected 2 competitions, got %d", len(comps))
	}
	if gw.tokens[0] != "token-u2" {
		t.Fatalf("expected bearer token in context, got %q", gw.tokens[0])
	}
}

func TestCompetitionService_List_RequiresPrincipal(t *testing.T) {
	svc := NewCompetitionService(seededGateway(), nil, zerolog.Nop())

	if _, err := svc.List(context.Background(), &domain.Session{}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.List(context.Background(), nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for nil session, got %v", err)
	}
}

func TestCompetitionService_List_UsesCache(t *testing.T) {
	gw := seededGateway()
	cache := newStubCompetitionCache()
	svc := NewCompetitionService(gw, cache, zerolog.Nop())
	sess := sessionFor(studentT1)

	for i := 0; i < 3; i++ {
		if _, err := svc.List(context.Background(), sess); err != nil {
			t.Fatalf("list failed: %v", err)
		}
	}
	if gw.listCalls != 1 {
		t.Fatalf("expected 1 API call, got %d", gw.listCalls)
	}
}

func TestCompetitionService_Create_AugmentsOwnerAndCreator(t *testing.T) {
	gw := seededGateway()
	cache := newStubCompetitionCache()
	svc := NewCompetitionService(gw, cache, zerolog.Nop())
	sess := sessionFor(adminT1)

	if _, err := svc.List(context.Background(), sess); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	draft := domain.NewCompetitionDraft("T1", time.Now())
	draft.Title = "Spring Cup"
	if _, err := svc.Create(context.Background(), sess, draft); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if gw.createdOwner != "T1" || gw.createdBy != "u1" {
		t.Fatalf("expected owner T1 / creator u1, got %q / %q", gw.createdOwner, gw.createdBy)
	}
	if gw.created.Title != "Spring Cup" {
		t.Fatalf("draft not forwarded: %+v", gw.created)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != sess.ID {
		t.Fatalf("expected cache invalidation for %s, got %v", sess.ID, cache.invalidated)
	}

	comps, err := svc.List(context.Background(), sess)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(comps) != 3 || gw.listCalls != 2 {
		t.Fatalf("expected a refetch with 3 competitions, got %d (calls=%d)", len(comps), gw.listCalls)
	}
}

func TestCompetitionService_Create_RequiresAdmin(t *testing.T) {
	gw := seededGateway()
	svc := NewCompetitionService(gw, nil, zerolog.Nop())

	_, err := svc.Create(context.Background(), sessionFor(studentT1), domain.CompetitionDraft{Title: "x"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if gw.created != nil {
		t.Fatalf("gateway must not be called")
	}

	if _, err := svc.Create(context.Background(), &domain.Session{}, domain.CompetitionDraft{}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestCompetitionService_UpdateDelete_OwnerTenantAdmin(t *testing.T) {
	gw := seededGateway()
	cache := newStubCompetitionCache()
	svc := NewCompetitionService(gw, cache, zerolog.Nop())
	sess := sessionFor(adminT1)

	if _, err := svc.Update(context.Background(), sess, "c1", domain.CompetitionDraft{Title: "Renamed"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if gw.updatedID != "c1" {
		t.Fatalf("expected update of c1, got %q", gw.updatedID)
	}

	if err := svc.Delete(context.Background(), sess, "c1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if gw.deletedID != "c1" {
		t.Fatalf("expected delete of c1, got %q", gw.deletedID)
	}
	if len(cache.invalidated) != 2 {
		t.Fatalf("expected two invalidations, got %v", cache.invalidated)
	}
}

func TestCompetitionService_UpdateDelete_Forbidden(t *testing.T) {
	cases := []struct {
		name string
		sess *domain.Session
		id   string
		want error
	}{
		{"admin of other tenant", sessionFor(adminT2), "c1", domain.ErrForbidden},
		{"student of owning tenant", sessionFor(studentT1), "c1", domain.ErrForbidden},
		{"logged out", &domain.Session{}, "c1", domain.ErrUnauthenticated},
		{"unknown competition", sessionFor(adminT1), "nope", domain.ErrCompetitionNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := seededGateway()
			svc := NewCompetitionService(gw, nil, zerolog.Nop())

			if _, err := svc.Update(context.Background(), tc.sess, tc.id, domain.CompetitionDraft{}); !errors.Is(err, tc.want) {
				t.Fatalf("update: expected %v, got %v", tc.want, err)
			}
			if err := svc.Delete(context.Background(), tc.sess, tc.id); !errors.Is(err, tc.want) {
				t.Fatalf("delete: expected %v, got %v", tc.want, err)
			}
			if gw.updatedID != "" || gw.deletedID != "" {
				t.Fatalf("gateway mutated despite denial")
			}
		})
	}
}

func TestCompetitionService_MutationFailureKeepsCache(t *testing.T) {
	gw := seededGateway()
	gw.mutationError = errors.New("boom")
	cache := newStubCompetitionCache()
	svc := NewCompetitionService(gw, cache, zerolog.Nop())

	if err := svc.Delete(context.Background(), sessionFor(adminT1), "c1"); err == nil {
		t.Fatalf("expected error")
	}
	if len(cache.invalidated) != 0 {
		t.Fatalf("failed mutation must not invalidate, got %v", cache.invalidated)
	}
}

func TestCompetitionService_Find(t *testing.T) {
	svc := NewCompetitionService(seededGateway(), nil, zerolog.Nop())

	c, err := svc.Find(context.Background(), sessionFor(studentT1), "c2")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if c.Title != "Debate" {
		t.Fatalf("unexpected competition: %+v", c)
	}
}
