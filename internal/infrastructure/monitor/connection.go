package monitor

import (
	"context"
	"sync"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fastygo/alphadate/internal/infrastructure/localstore"
)

// Pinger checks that the remote table store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Monitor struct {
	backend string
	remote  Pinger
	redis   *redislib.Client
	local   *localstore.Store

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	doneCh   chan struct{}
	logger   *zap.Logger
}

// New builds a monitor. remote and redis may be nil when not configured.
func New(backend string, remote Pinger, redis *redislib.Client, local *localstore.Store, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		backend:  backend,
		remote:   remote,
		redis:    redis,
		local:    local,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

// Stop ends the polling loop and waits for it to exit.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
		<-m.doneCh
	})
}

func (m *Monitor) IsOnline() bool {
	return m.GetStatus().Healthy()
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Refresh runs every check once and stores the result.
func (m *Monitor) Refresh() Status {
	localOK, localKeys := m.checkLocal()
	localStats := m.local.Stats()
	status := Status{
		Backend:          m.backend,
		RemoteConfigured: m.remote != nil,
		Remote:           m.checkRemote(),
		RedisConfigured:  m.redis != nil,
		Redis:            m.checkRedis(),
		Local:            localOK,
		LocalKeys:        localKeys,
		LocalReadTxs:     localStats.TxN,
		LocalOpenTxs:     localStats.OpenTxN,
		LastCheck:        time.Now(),
	}

	m.mu.Lock()
	prev := m.status
	m.status = status
	m.mu.Unlock()

	if !prev.LastCheck.IsZero() && prev.Healthy() != status.Healthy() {
		m.logger.Warn("dependency health changed",
			zap.Bool("healthy", status.Healthy()),
			zap.Bool("remote", status.Remote),
			zap.Bool("redis", status.Redis),
			zap.Bool("local", status.Local))
	}
	return status
}

func (m *Monitor) loop() {
	defer close(m.doneCh)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Refresh()
	for {
		select {
		case <-ticker.C:
			m.Refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) checkRemote() bool {
	if m.remote == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return m.remote.Ping(ctx) == nil
}

func (m *Monitor) checkRedis() bool {
	if m.redis == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return m.redis.Ping(ctx).Err() == nil
}

func (m *Monitor) checkLocal() (bool, int) {
	if m.local == nil {
		return false, 0
	}
	size, err := m.local.Size()
	if err != nil {
		m.logger.Warn("local store check failed", zap.Error(err))
		return false, size
	}
	return true, size
}
