package local

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/alphadate/domain"
	"github.com/fastygo/alphadate/internal/infrastructure/localstore"
	"github.com/fastygo/alphadate/repository"
)

// ActivityRepository keeps activities in insertion order under KeyActivities.
type ActivityRepository struct {
	blob *blob[domain.Activity]
}

var _ repository.ActivityRepository = (*ActivityRepository)(nil)

// NewActivityRepository creates the local-fallback activity repository.
func NewActivityRepository(store *localstore.Store, logger *zap.Logger) *ActivityRepository {
	return &ActivityRepository{blob: newBlob[domain.Activity](store, KeyActivities, logger)}
}

func (r *ActivityRepository) List(ctx context.Context) ([]domain.Activity, error) {
	items, err := r.blob.read()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", KeyActivities, err)
	}
	return items, nil
}

func (r *ActivityRepository) Save(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	if activity == nil || activity.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	saved := activity.Clone()
	err := r.blob.update(func(items []domain.Activity) []domain.Activity {
		for i := range items {
			if items[i].ID == saved.ID {
				items[i] = *saved
				return items
			}
		}
		return append(items, *saved)
	})
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", KeyActivities, err)
	}
	return saved, nil
}

func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	err := r.blob.update(func(items []domain.Activity) []domain.Activity {
		kept := items[:0]
		for _, a := range items {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		return kept
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", KeyActivities, err)
	}
	return nil
}

// Replace overwrites the whole collection, used to mirror a remote snapshot.
func (r *ActivityRepository) Replace(ctx context.Context, activities []domain.Activity) error {
	err := r.blob.update(func([]domain.Activity) []domain.Activity {
		out := make([]domain.Activity, 0, len(activities))
		for i := range activities {
			out = append(out, *activities[i].Clone())
		}
		return out
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", KeyActivities, err)
	}
	return nil
}
