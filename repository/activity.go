package repository

import (
	"context"

	"github.com/fastygo/alphadate/domain"
)

// ActivityRepository persists activities keyed by id.
type ActivityRepository interface {
	// List returns every activity. Remote backends order by letter ascending.
	List(ctx context.Context) ([]domain.Activity, error)
	// Save inserts or wholesale-replaces the activity with the same id.
	Save(ctx context.Context, activity *domain.Activity) (*domain.Activity, error)
	// Delete removes the activity. A missing id is not an error.
	Delete(ctx context.Context, id string) error
}

// FeedbackRepository persists standalone feedback records.
type FeedbackRepository interface {
	// ListByActivity returns the feedbacks of one activity, newest first.
	ListByActivity(ctx context.Context, activityID string) ([]domain.Feedback, error)
	Save(ctx context.Context, feedback *domain.Feedback) (*domain.Feedback, error)
}

// CurrentUserRepository remembers which user last picked themselves on this device.
type CurrentUserRepository interface {
	Get(ctx context.Context) (domain.User, error)
	Set(ctx context.Context, user domain.User) error
	Clear(ctx context.Context) error
}

// Store bundles the repositories of one backend.
type Store struct {
	Name       string
	Activities ActivityRepository
	Feedbacks  FeedbackRepository
}
