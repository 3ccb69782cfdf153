package local

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/fastygo/alphadate/domain"
	"github.com/fastygo/alphadate/internal/infrastructure/localstore"
	"github.com/fastygo/alphadate/repository"
)

// FeedbackRepository keeps standalone feedbacks in their own blob, separate
// from the copies embedded in each activity.
type FeedbackRepository struct {
	blob *blob[domain.Feedback]
}

var _ repository.FeedbackRepository = (*FeedbackRepository)(nil)

func NewFeedbackRepository(store *localstore.Store, logger *zap.Logger) *FeedbackRepository {
	return &FeedbackRepository{blob: newBlob[domain.Feedback](store, KeyFeedbacks, logger)}
}

func (r *FeedbackRepository) ListByActivity(ctx context.Context, activityID string) ([]domain.Feedback, error) {
	items, err := r.blob.read()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", KeyFeedbacks, err)
	}
	out := make([]domain.Feedback, 0)
	for _, fb := range items {
		if fb.ActivityID == activityID {
			out = append(out, fb)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *FeedbackRepository) Save(ctx context.Context, feedback *domain.Feedback) (*domain.Feedback, error) {
	if feedback == nil || feedback.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	saved := *feedback
	err := r.blob.update(func(items []domain.Feedback) []domain.Feedback {
		for i := range items {
			if items[i].ID == saved.ID {
				items[i] = saved
				return items
			}
		}
		return append(items, saved)
	})
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", KeyFeedbacks, err)
	}
	return &saved, nil
}
