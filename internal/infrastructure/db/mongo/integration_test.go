//go:build integration

package mongo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/schoolsapp/schools-web/internal/core/domain"
	"github.com/schoolsapp/schools-web/internal/core/ports"
)

func setupMongoContainer(t *testing.T, ctx context.Context) (*SessionRepository, func()) {
	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForLog("Waiting for connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	client, db, err := Connect(ctx, Config{
		URI:      fmt.Sprintf("mongodb://%s:%s", host, port.Port()),
		Database: "schools_web_test",
	})
	require.NoError(t, err)

	repo := NewSessionRepository(db)
	require.NoError(t, repo.EnsureIndexes(ctx))

	cleanup := func() {
		_ = client.Disconnect(ctx)
		_ = container.Terminate(ctx)
	}
	return repo, cleanup
}

func TestIntegration_SessionRepository(t *testing.T) {
	ctx := context.Background()
	repo, cleanup := setupMongoContainer(t, ctx)
	defer cleanup()

	require.NoError(t, repo.Ping(ctx))

	t.Run("save and load", func(t *testing.T) {
		rec := ports.SessionRecord{
			AccessToken: "tok",
			User:        `{"id":"u1","role":"student","tenant_id":"T1"}`,
			ExpiresAt:   time.Now().Add(time.Hour).UTC().Truncate(time.Millisecond),
		}
		require.NoError(t, repo.Save(ctx, "s1", rec))

		got, err := repo.Load(ctx, "s1")
		require.NoError(t, err)
		require.Equal(t, rec.AccessToken, got.AccessToken)
		require.Equal(t, rec.User, got.User)
		require.True(t, rec.ExpiresAt.Equal(got.ExpiresAt))
	})

	t.Run("expired record is not found", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "old", ports.SessionRecord{
			AccessToken: "tok",
			User:        `{}`,
			ExpiresAt:   time.Now().Add(-time.Minute),
		}))

		_, err := repo.Load(ctx, "old")
		require.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("delete twice", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "s1"))
		require.NoError(t, repo.Delete(ctx, "s1"))

		_, err := repo.Load(ctx, "s1")
		require.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}
