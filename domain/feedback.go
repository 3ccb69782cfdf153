package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User identifies one of the two people sharing the tracker.
type User string

const (
	UserAMR  User = "AMR"
	UserASEI User = "ASEI"
)

// Users lists every known user.
func Users() []User {
	return []User{UserAMR, UserASEI}
}

// ParseUser accepts a user identifier case-insensitively.
func ParseUser(raw string) (User, error) {
	switch User(strings.ToUpper(strings.TrimSpace(raw))) {
	case UserAMR:
		return UserAMR, nil
	case UserASEI:
		return UserASEI, nil
	default:
		return "", ErrUnknownUser
	}
}

const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is one user's star rating and comment about an activity.
type Feedback struct {
	ID         string    `json:"id"`
	ActivityID string    `json:"activityId"`
	User       User      `json:"user"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewFeedback validates the input and assigns a fresh id and timestamp.
func NewFeedback(activityID string, user User, rating int, comment string, now time.Time) (*Feedback, error) {
	if strings.TrimSpace(activityID) == "" {
		return nil, ErrInvalidPayload
	}
	u, err := ParseUser(string(user))
	if err != nil {
		return nil, err
	}
	if rating < MinRating || rating > MaxRating {
		return nil, ErrInvalidRating
	}
	if now.IsZero() {
		now = time.Now()
	}
	return &Feedback{
		ID:         uuid.NewString(),
		ActivityID: activityID,
		User:       u,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  now.UTC(),
	}, nil
}
