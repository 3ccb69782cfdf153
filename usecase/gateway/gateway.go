// Package gateway is the storage-agnostic entry point for activities and
// feedbacks. Backend failures never escape it: they are logged and turned
// into empty collections, nil results or false.
package gateway

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/alphadate/domain"
	"github.com/fastygo/alphadate/repository"
)

// Gateway routes every operation to the backend chosen at startup.
type Gateway struct {
	primary  repository.Store
	fallback *repository.Store
	logger   *zap.Logger
}

// New builds a gateway over primary. When fallback is non-nil and differs from
// primary, failed listings are served from its snapshot.
func New(primary repository.Store, fallback *repository.Store, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fallback != nil && fallback.Name == primary.Name {
		fallback = nil
	}
	return &Gateway{
		primary:  primary,
		fallback: fallback,
		logger:   logger.With(zap.String("backend", primary.Name)),
	}
}

// Backend names the store all writes go to.
func (g *Gateway) Backend() string {
	return g.primary.Name
}

// ListActivities returns every activity, or the fallback snapshot when the
// primary backend fails. The result is never nil.
func (g *Gateway) ListActivities(ctx context.Context) []domain.Activity {
	activities, err := g.primary.Activities.List(ctx)
	if err == nil {
		return nonNil(activities)
	}
	g.logger.Error("list activities failed", zap.Error(err))

	if g.fallback == nil {
		return []domain.Activity{}
	}
	snapshot, err := g.fallback.Activities.List(ctx)
	if err != nil {
		g.logger.Error("fallback snapshot unavailable", zap.String("fallback", g.fallback.Name), zap.Error(err))
		return []domain.Activity{}
	}
	g.logger.Warn("serving activities from fallback snapshot",
		zap.String("fallback", g.fallback.Name),
		zap.Int("count", len(snapshot)))
	return nonNil(snapshot)
}

// SaveActivity upserts by id. A nil result means the write did not persist.
func (g *Gateway) SaveActivity(ctx context.Context, activity *domain.Activity) *domain.Activity {
	if activity == nil {
		return nil
	}
	saved, err := g.primary.Activities.Save(ctx, activity)
	if err != nil {
		g.logger.Error("save activity failed", zap.String("activity_id", activity.ID), zap.Error(err))
		return nil
	}
	return saved
}

// DeleteActivity removes the activity. Deleting an unknown id succeeds.
// Standalone feedback rows of the activity are left untouched.
func (g *Gateway) DeleteActivity(ctx context.Context, id string) bool {
	if err := g.primary.Activities.Delete(ctx, id); err != nil {
		g.logger.Error("delete activity failed", zap.String("activity_id", id), zap.Error(err))
		return false
	}
	return true
}

// SaveFeedback persists the standalone feedback record. It does not touch the
// copy embedded in the owning activity.
func (g *Gateway) SaveFeedback(ctx context.Context, feedback *domain.Feedback) *domain.Feedback {
	if feedback == nil {
		return nil
	}
	saved, err := g.primary.Feedbacks.Save(ctx, feedback)
	if err != nil {
		g.logger.Error("save feedback failed",
			zap.String("feedback_id", feedback.ID),
			zap.String("activity_id", feedback.ActivityID),
			zap.Error(err))
		return nil
	}
	return saved
}

// GetFeedbacks returns the standalone feedbacks of an activity, newest first.
func (g *Gateway) GetFeedbacks(ctx context.Context, activityID string) []domain.Feedback {
	feedbacks, err := g.primary.Feedbacks.ListByActivity(ctx, activityID)
	if err != nil {
		g.logger.Error("list feedbacks failed", zap.String("activity_id", activityID), zap.Error(err))
		return []domain.Feedback{}
	}
	if feedbacks == nil {
		return []domain.Feedback{}
	}
	return feedbacks
}

func nonNil(activities []domain.Activity) []domain.Activity {
	if activities == nil {
		return []domain.Activity{}
	}
	return activities
}
