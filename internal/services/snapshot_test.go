package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/fastygo/alphadate/domain"
	"github.com/fastygo/alphadate/internal/infrastructure/localstore"
	"github.com/fastygo/alphadate/repository/local"
)

type staticSource struct {
	mu    sync.Mutex
	items []domain.Activity
	err   error
	calls int
}

func (s *staticSource) List(context.Context) ([]domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.items, s.err
}

func (s *staticSource) Save(_ context.Context, a *domain.Activity) (*domain.Activity, error) {
	return a, nil
}

func (s *staticSource) Delete(context.Context, string) error { return nil }

func (s *staticSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type onlineFlag bool

func (o onlineFlag) IsOnline() bool { return bool(o) }

func localRepo(t *testing.T) *local.ActivityRepository {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "snapshot.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return local.NewActivityRepository(store, zaptest.NewLogger(t))
}

func TestRunOnceMirrorsRemote(t *testing.T) {
	ctx := context.Background()
	sink := localRepo(t)
	_, err := sink.Save(ctx, &domain.Activity{ID: "stale", Letter: "Q", Name: "old"})
	require.NoError(t, err)

	source := &staticSource{items: []domain.Activity{
		{ID: "1", Letter: "A", Name: "Archery"},
		{ID: "2", Letter: "B", Name: "Bowling", IsCompleted: true},
	}}
	job := NewSnapshotJob(source, sink, nil, zaptest.NewLogger(t), SnapshotConfig{})

	n, err := job.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, job.LastSync().IsZero())

	got, err := sink.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.True(t, got[1].IsCompleted)
}

func TestRunOnceKeepsSnapshotOnFailure(t *testing.T) {
	ctx := context.Background()
	sink := localRepo(t)
	_, err := sink.Save(ctx, &domain.Activity{ID: "kept", Letter: "K", Name: "Karaoke"})
	require.NoError(t, err)

	job := NewSnapshotJob(&staticSource{err: assert.AnError}, sink, nil, nil, SnapshotConfig{})
	_, err = job.RunOnce(ctx)
	assert.ErrorIs(t, err, assert.AnError)
	assert.True(t, job.LastSync().IsZero())

	got, err := sink.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "kept", got[0].ID)
}

func TestRunOnceSkipsWhenOffline(t *testing.T) {
	source := &staticSource{}
	job := NewSnapshotJob(source, localRepo(t), onlineFlag(false), nil, SnapshotConfig{})

	n, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, source.Calls())
}

func TestScheduledRunsStopCleanly(t *testing.T) {
	defer goleak.VerifyNone(t)

	source := &staticSource{items: []domain.Activity{{ID: "1", Letter: "A", Name: "Archery"}}}
	job := NewSnapshotJob(source, localRepo(t), onlineFlag(true), nil, SnapshotConfig{Interval: time.Second})
	job.Start()
	require.Eventually(t, func() bool { return source.Calls() > 0 }, 3*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	job.Stop(ctx)
}
