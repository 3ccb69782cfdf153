package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/alphadate/domain"
	"github.com/fastygo/alphadate/repository"
)

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository returns a Postgres-backed implementation of FeedbackRepository.
func NewFeedbackRepository(pool *pgxpool.Pool) repository.FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

func (r *feedbackRepository) ListByActivity(ctx context.Context, activityID string) ([]domain.Feedback, error) {
	const query = `
	SELECT id, "activityId", "user", rating, comment, "createdAt"
	FROM feedbacks
	WHERE "activityId" = $1
	ORDER BY "createdAt" DESC
	`
	rows, err := r.pool.Query(ctx, query, activityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feedbacks := make([]domain.Feedback, 0)
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		feedbacks = append(feedbacks, *fb)
	}
	return feedbacks, rows.Err()
}

func (r *feedbackRepository) Save(ctx context.Context, feedback *domain.Feedback) (*domain.Feedback, error) {
	if feedback == nil || feedback.ID == "" {
		return nil, domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO feedbacks (id, "activityId", "user", rating, comment, "createdAt")
	VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()))
	ON CONFLICT (id) DO UPDATE
	SET "activityId" = EXCLUDED."activityId",
		"user" = EXCLUDED."user",
		rating = EXCLUDED.rating,
		comment = EXCLUDED.comment,
		"createdAt" = EXCLUDED."createdAt"
	RETURNING id, "activityId", "user", rating, comment, "createdAt"
	`

	row := r.pool.QueryRow(ctx, query,
		feedback.ID,
		feedback.ActivityID,
		string(feedback.User),
		feedback.Rating,
		feedback.Comment,
		createdAt(feedback.CreatedAt),
	)
	return scanFeedback(row)
}

func scanFeedback(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Feedback, error) {
	var fb domain.Feedback
	var user string
	if err := row.Scan(&fb.ID, &fb.ActivityID, &user, &fb.Rating, &fb.Comment, &fb.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidPayload
		}
		return nil, err
	}
	fb.User = domain.User(user)
	return &fb, nil
}
