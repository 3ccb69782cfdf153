package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/alphadate/domain"
)

// Runs against a disposable database named by POSTGRES_TEST_URL.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("POSTGRES_TEST_URL")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile("../../assets/migrations/000001_init.up.sql")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `TRUNCATE activities, feedbacks`)
	require.NoError(t, err)
	return pool
}

func TestActivityUpsertAndOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testPool(t))

	now := time.Now().UTC().Truncate(time.Millisecond)
	z, err := domain.NewActivity("Z", "Zoo Visit", now)
	require.NoError(t, err)
	b, err := domain.NewActivity("B", "Bowling", now)
	require.NoError(t, err)

	for _, a := range []*domain.Activity{z, b} {
		_, err := store.Activities.Save(ctx, a)
		require.NoError(t, err)
	}

	fb, err := domain.NewFeedback(b.ID, domain.UserASEI, 4, "fun", now)
	require.NoError(t, err)
	b.UpsertFeedback(*fb)
	b.Complete(now.Add(time.Hour))
	b.AttachPhotos("https://example.com/b.jpg")
	saved, err := store.Activities.Save(ctx, b)
	require.NoError(t, err)
	assert.True(t, saved.IsCompleted)
	require.Len(t, saved.Feedbacks, 1)
	assert.Equal(t, domain.UserASEI, saved.Feedbacks[0].User)

	list, err := store.Activities.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].Letter)
	assert.Equal(t, []string{"https://example.com/b.jpg"}, list[0].Photos)
	assert.Equal(t, "Z", list[1].Letter)

	require.NoError(t, store.Activities.Delete(ctx, z.ID))
	require.NoError(t, store.Activities.Delete(ctx, z.ID))
	list, err = store.Activities.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestFeedbackNewestFirstSurvivesActivityDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testPool(t))

	now := time.Now().UTC()
	older, err := domain.NewFeedback("act-1", domain.UserAMR, 3, "", now.Add(-time.Hour))
	require.NoError(t, err)
	newer, err := domain.NewFeedback("act-1", domain.UserASEI, 5, "great", now)
	require.NoError(t, err)
	other, err := domain.NewFeedback("act-2", domain.UserAMR, 1, "", now)
	require.NoError(t, err)
	for _, f := range []*domain.Feedback{older, newer, other} {
		_, err := store.Feedbacks.Save(ctx, f)
		require.NoError(t, err)
	}
	require.NoError(t, store.Activities.Delete(ctx, "act-1"))

	list, err := store.Feedbacks.ListByActivity(ctx, "act-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}
