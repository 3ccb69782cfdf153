package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/alphadate/domain"
	"github.com/fastygo/alphadate/repository"
)

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository returns a Postgres-backed implementation of ActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) repository.ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) List(ctx context.Context) ([]domain.Activity, error) {
	const query = `
	SELECT id, letter, name, "isCompleted", "completedDate", feedbacks, photos, "createdAt"
	FROM activities
	ORDER BY letter ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]domain.Activity, 0)
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *activity)
	}
	return activities, rows.Err()
}

func (r *activityRepository) Save(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	if activity == nil || activity.ID == "" {
		return nil, domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO activities (id, letter, name, "isCompleted", "completedDate", feedbacks, photos, "createdAt")
	VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, NOW()))
	ON CONFLICT (id) DO UPDATE
	SET letter = EXCLUDED.letter,
		name = EXCLUDED.name,
		"isCompleted" = EXCLUDED."isCompleted",
		"completedDate" = EXCLUDED."completedDate",
		feedbacks = EXCLUDED.feedbacks,
		photos = EXCLUDED.photos,
		"createdAt" = EXCLUDED."createdAt"
	RETURNING id, letter, name, "isCompleted", "completedDate", feedbacks, photos, "createdAt"
	`

	feedbacks := activity.Feedbacks
	if feedbacks == nil {
		feedbacks = []domain.Feedback{}
	}
	photos := activity.Photos
	if photos == nil {
		photos = []string{}
	}

	row := r.pool.QueryRow(ctx, query,
		activity.ID,
		activity.Letter,
		activity.Name,
		activity.IsCompleted,
		nullTime(activity.CompletedDate),
		marshalJSON(feedbacks),
		marshalJSON(photos),
		createdAt(activity.CreatedAt),
	)
	return scanActivity(row)
}

func (r *activityRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM activities WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return err
	}
	return nil
}

func scanActivity(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Activity, error) {
	var activity domain.Activity
	var (
		completed *time.Time
		feedbacks []byte
		photos    []byte
	)

	if err := row.Scan(
		&activity.ID,
		&activity.Letter,
		&activity.Name,
		&activity.IsCompleted,
		&completed,
		&feedbacks,
		&photos,
		&activity.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, err
	}

	activity.CompletedDate = completed
	activity.Feedbacks = []domain.Feedback{}
	if len(feedbacks) > 0 {
		if err := json.Unmarshal(feedbacks, &activity.Feedbacks); err != nil {
			return nil, fmt.Errorf("decode feedbacks of %s: %w", activity.ID, err)
		}
	}
	if len(photos) > 0 {
		if err := json.Unmarshal(photos, &activity.Photos); err != nil {
			return nil, fmt.Errorf("decode photos of %s: %w", activity.ID, err)
		}
	}
	if len(activity.Photos) == 0 {
		activity.Photos = nil
	}

	return &activity, nil
}
