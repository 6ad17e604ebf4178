package integration

import (
	"context"
	"testing"
	"time"

	"github.com/satari/satari-api/internal/services"
	"github.com/satari/satari-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_Integration_StoreAndCleanup(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTokenService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)

	require.NoError(t, svc.Store(ctx, user.ID, services.HashToken("live-token"), time.Now().Add(time.Hour)))
	require.NoError(t, svc.Store(ctx, user.ID, services.HashToken("dead-token"), time.Now().Add(-time.Hour)))

	require.NoError(t, svc.CleanupExpired(ctx))

	var remaining int
	err := tdb.DB.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM user_tokens WHERE user_id = $1`, user.ID).Scan(&remaining)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)
}

func TestSignupFlow_Integration_TokenVersions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	userSvc := services.NewUserService(tdb.DB)
	jwtSvc := testutil.TestJWTService()
	ctx := context.Background()

	hash, err := services.HashPassword("password123")
	require.NoError(t, err)

	user, err := userSvc.Register(ctx, "alice", "alice@example.com", hash, "127.0.0.1")
	require.NoError(t, err)

	// Signup signs with the initial version, then bumps it.
	token, err := jwtSvc.Generate(user.ID, user.TokenVersion)
	require.NoError(t, err)
	require.NoError(t, userSvc.IncrementTokenVersion(ctx, user.ID))

	claims, err := jwtSvc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.TokenVersion)

	reloaded, err := userSvc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.TokenVersion)

	// The stale-versioned token still verifies.
	_, err = jwtSvc.Validate(token)
	assert.NoError(t, err)
}
