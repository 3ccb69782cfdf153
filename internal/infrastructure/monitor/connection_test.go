package monitor

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/fastygo/alphadate/internal/infrastructure/localstore"
)

type togglePinger struct{ down atomic.Bool }

func (p *togglePinger) Ping(context.Context) error {
	if p.down.Load() {
		return assert.AnError
	}
	return nil
}

func openLocal(t *testing.T) *localstore.Store {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "local.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRefreshReflectsRemote(t *testing.T) {
	remote := &togglePinger{}
	m := New("rest", remote, nil, openLocal(t), time.Hour, nil)

	status := m.Refresh()
	assert.True(t, status.Healthy())
	assert.True(t, status.RemoteConfigured)
	assert.False(t, status.RedisConfigured)
	assert.Equal(t, "rest", status.Backend)

	remote.down.Store(true)
	status = m.Refresh()
	assert.False(t, status.Healthy())
	assert.False(t, m.IsOnline())
}

func TestLocalOnlyIsHealthy(t *testing.T) {
	m := New("local", nil, nil, openLocal(t), time.Hour, nil)
	assert.True(t, m.Refresh().Healthy())

	assert.False(t, New("local", nil, nil, nil, time.Hour, nil).Refresh().Healthy())
}

func TestRefreshReportsLocalStats(t *testing.T) {
	store := openLocal(t)
	require.NoError(t, store.Put("doublea_activities", []byte(`[]`)))
	_, err := store.Get("doublea_activities")
	require.NoError(t, err)

	status := New("local", nil, nil, store, time.Hour, nil).Refresh()
	assert.Equal(t, 1, status.LocalKeys)
	assert.GreaterOrEqual(t, status.LocalReadTxs, 2)
	assert.Zero(t, status.LocalOpenTxs)

	empty := New("local", nil, nil, nil, time.Hour, nil).Refresh()
	assert.Zero(t, empty.LocalReadTxs)
}

func TestStartStopDoesNotLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := New("local", nil, nil, openLocal(t), 5*time.Millisecond, nil)
	m.Start()
	require.Eventually(t, func() bool { return !m.GetStatus().LastCheck.IsZero() }, time.Second, 5*time.Millisecond)
	m.Stop()
	m.Stop()
}
