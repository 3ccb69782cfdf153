package rest

import (
	"context"
	"fmt"
	"net/url"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/alphadate/domain"
	"github.com/fastygo/alphadate/repository"
)

const (
	StoreName = "rest"

	tableActivities = "activities"
	tableFeedbacks  = "feedbacks"
)

type activityRepository struct {
	client *Client
}

// NewActivityRepository returns an ActivityRepository over the remote activities table.
func NewActivityRepository(client *Client) repository.ActivityRepository {
	return &activityRepository{client: client}
}

func (r *activityRepository) List(ctx context.Context) ([]domain.Activity, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "letter.asc")

	activities := make([]domain.Activity, 0)
	if err := r.client.do(ctx, fasthttp.MethodGet, tableActivities, q, nil, "", &activities); err != nil {
		return nil, err
	}
	for i := range activities {
		if activities[i].Feedbacks == nil {
			activities[i].Feedbacks = []domain.Feedback{}
		}
	}
	return activities, nil
}

func (r *activityRepository) Save(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	if activity == nil || activity.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	body := activity.Clone()
	if body.Feedbacks == nil {
		body.Feedbacks = []domain.Feedback{}
	}

	var rows []domain.Activity
	if err := r.client.do(ctx, fasthttp.MethodPost, tableActivities, nil, body, preferUpsert, &rows); err != nil {
		return nil, err
	}
	if len(rows) != 1 {
		return nil, fmt.Errorf("upsert %s returned %d rows", tableActivities, len(rows))
	}
	return &rows[0], nil
}

func (r *activityRepository) Delete(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("id", "eq."+id)
	return r.client.do(ctx, fasthttp.MethodDelete, tableActivities, q, nil, "", nil)
}

type feedbackRepository struct {
	client *Client
}

// NewFeedbackRepository returns a FeedbackRepository over the remote feedbacks table.
func NewFeedbackRepository(client *Client) repository.FeedbackRepository {
	return &feedbackRepository{client: client}
}

func (r *feedbackRepository) ListByActivity(ctx context.Context, activityID string) ([]domain.Feedback, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("activityId", "eq."+activityID)
	q.Set("order", "createdAt.desc")

	feedbacks := make([]domain.Feedback, 0)
	if err := r.client.do(ctx, fasthttp.MethodGet, tableFeedbacks, q, nil, "", &feedbacks); err != nil {
		return nil, err
	}
	return feedbacks, nil
}

func (r *feedbackRepository) Save(ctx context.Context, feedback *domain.Feedback) (*domain.Feedback, error) {
	if feedback == nil || feedback.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	var rows []domain.Feedback
	if err := r.client.do(ctx, fasthttp.MethodPost, tableFeedbacks, nil, feedback, preferUpsert, &rows); err != nil {
		return nil, err
	}
	if len(rows) != 1 {
		return nil, fmt.Errorf("upsert %s returned %d rows", tableFeedbacks, len(rows))
	}
	return &rows[0], nil
}

// NewStore wires both remote repositories over one client.
func NewStore(client *Client) repository.Store {
	return repository.Store{
		Name:       StoreName,
		Activities: NewActivityRepository(client),
		Feedbacks:  NewFeedbackRepository(client),
	}
}
