package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/alphadate/domain"
	"github.com/fastygo/alphadate/repository"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// SnapshotSink receives the mirrored activity list.
type SnapshotSink interface {
	Replace(ctx context.Context, activities []domain.Activity) error
}

// SnapshotConfig controls how often the remote list is mirrored.
type SnapshotConfig struct {
	Interval time.Duration
}

// SnapshotJob copies the remote activity list into the local fallback so a
// degraded read serves recent data. Writes are never queued or replayed.
type SnapshotJob struct {
	source  repository.ActivityRepository
	sink    SnapshotSink
	monitor ConnectionHealth
	logger  *zap.Logger
	cron    *cron.Cron
	cfg     SnapshotConfig

	running  atomic.Bool
	lastSync atomic.Int64
}

func NewSnapshotJob(
	source repository.ActivityRepository,
	sink SnapshotSink,
	monitor ConnectionHealth,
	logger *zap.Logger,
	cfg SnapshotConfig,
) *SnapshotJob {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	job := &SnapshotJob{
		source:  source,
		sink:    sink,
		monitor: monitor,
		logger:  logger.With(zap.String("component", "snapshot")),
		cfg:     cfg,
		cron:    cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", max(1, int(cfg.Interval.Seconds())))
	_, _ = job.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if _, err := job.RunOnce(ctx); err != nil {
			job.logger.Warn("snapshot failed", zap.Error(err))
		}
	})

	return job
}

// Start launches the cron scheduler.
func (j *SnapshotJob) Start() {
	if j == nil || j.cron == nil {
		return
	}
	j.cron.Start()
	j.logger.Info("snapshot job started", zap.Duration("interval", j.cfg.Interval))
}

// Stop waits for a running snapshot to finish or ctx to expire.
func (j *SnapshotJob) Stop(ctx context.Context) {
	if j == nil || j.cron == nil {
		return
	}
	stopCtx := j.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	j.logger.Info("snapshot job stopped")
}

// RunOnce mirrors the remote list now and returns how many activities were copied.
// Overlapping runs and offline periods are skipped without touching the sink.
func (j *SnapshotJob) RunOnce(ctx context.Context) (int, error) {
	if j == nil || j.source == nil || j.sink == nil {
		return 0, nil
	}
	if j.monitor != nil && !j.monitor.IsOnline() {
		j.logger.Debug("skipping snapshot (offline)")
		return 0, nil
	}
	if !j.running.CompareAndSwap(false, true) {
		return 0, nil
	}
	defer j.running.Store(false)

	activities, err := j.source.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list remote activities: %w", err)
	}
	if err := j.sink.Replace(ctx, activities); err != nil {
		return 0, fmt.Errorf("replace local snapshot: %w", err)
	}
	j.lastSync.Store(time.Now().UnixNano())
	j.logger.Debug("snapshot stored", zap.Int("activities", len(activities)))
	return len(activities), nil
}

// LastSync reports when the last successful snapshot finished.
func (j *SnapshotJob) LastSync() time.Time {
	if j == nil {
		return time.Time{}
	}
	ns := j.lastSync.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}
