package redis

import (
	"context"
	"os"
	"testing"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/alphadate/domain"
)

// Runs against the Redis named by REDIS_TEST_URL.
func testClient(t *testing.T) *redislib.Client {
	t.Helper()
	raw := os.Getenv("REDIS_TEST_URL")
	if raw == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	opts, err := redislib.ParseURL(raw)
	require.NoError(t, err)
	client := redislib.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())
	return client
}

func TestCurrentUserRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := testClient(t)
	key := "test:" + t.Name()
	t.Cleanup(func() { client.Del(context.Background(), key) })
	repo := NewCurrentUserRepository(client, key, 0)

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrNoCurrentUser)

	require.NoError(t, repo.Set(ctx, "amr"))
	user, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.UserAMR, user)

	assert.ErrorIs(t, repo.Set(ctx, "bob"), domain.ErrUnknownUser)

	require.NoError(t, client.Set(ctx, key, "garbage", 0).Err())
	_, err = repo.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrNoCurrentUser)

	require.NoError(t, repo.Clear(ctx))
	_, err = repo.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrNoCurrentUser)
}
