package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Activity is a planned or completed date tied to one letter of the alphabet.
type Activity struct {
	ID            string     `json:"id"`
	Letter        string     `json:"letter"`
	Name          string     `json:"name"`
	IsCompleted   bool       `json:"isCompleted"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
	Feedbacks     []Feedback `json:"feedbacks"`
	Photos        []string   `json:"photos,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// NewActivity builds a pending activity for letter with a fresh id.
func NewActivity(letter, name string, now time.Time) (*Activity, error) {
	l, err := NormalizeLetter(letter)
	if err != nil {
		return nil, err
	}
	n := strings.TrimSpace(name)
	if n == "" {
		return nil, ErrEmptyName
	}
	if now.IsZero() {
		now = time.Now()
	}
	return &Activity{
		ID:        uuid.NewString(),
		Letter:    l,
		Name:      n,
		Feedbacks: []Feedback{},
		CreatedAt: now.UTC(),
	}, nil
}

// Clone returns a deep copy so callers can mutate without aliasing slices.
func (a *Activity) Clone() *Activity {
	if a == nil {
		return nil
	}
	out := *a
	if a.CompletedDate != nil {
		d := *a.CompletedDate
		out.CompletedDate = &d
	}
	out.Feedbacks = append([]Feedback{}, a.Feedbacks...)
	if a.Photos != nil {
		out.Photos = append([]string(nil), a.Photos...)
	}
	return &out
}

// Complete marks the activity done. It reports false and leaves the activity
// untouched when it was already completed, so CompletedDate is set once.
func (a *Activity) Complete(now time.Time) bool {
	if a == nil || a.IsCompleted {
		return false
	}
	if now.IsZero() {
		now = time.Now()
	}
	if now.Before(a.CreatedAt) {
		now = a.CreatedAt
	}
	done := now.UTC()
	a.IsCompleted = true
	a.CompletedDate = &done
	return true
}

// Rename replaces the activity name. The letter never changes.
func (a *Activity) Rename(name string) error {
	n := strings.TrimSpace(name)
	if n == "" {
		return ErrEmptyName
	}
	a.Name = n
	return nil
}

// UpsertFeedback keeps at most one entry per user. An existing entry for the
// same user is replaced in place; otherwise fb is appended.
func (a *Activity) UpsertFeedback(fb Feedback) (replaced bool) {
	for i := range a.Feedbacks {
		if a.Feedbacks[i].User == fb.User {
			a.Feedbacks[i] = fb
			return true
		}
	}
	a.Feedbacks = append(a.Feedbacks, fb)
	return false
}

// FeedbackBy returns the entry left by user, if any.
func (a *Activity) FeedbackBy(user User) (Feedback, bool) {
	for _, fb := range a.Feedbacks {
		if fb.User == user {
			return fb, true
		}
	}
	return Feedback{}, false
}

// AverageRating is zero when nobody rated the activity yet.
func (a *Activity) AverageRating() float64 {
	if len(a.Feedbacks) == 0 {
		return 0
	}
	sum := 0
	for _, fb := range a.Feedbacks {
		sum += fb.Rating
	}
	return float64(sum) / float64(len(a.Feedbacks))
}

// AttachPhotos appends non-empty image references.
func (a *Activity) AttachPhotos(refs ...string) int {
	added := 0
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		a.Photos = append(a.Photos, ref)
		added++
	}
	return added
}

// RemovePhoto drops the photo at index, preserving the order of the rest.
func (a *Activity) RemovePhoto(index int) error {
	if index < 0 || index >= len(a.Photos) {
		return ErrPhotoNotFound
	}
	a.Photos = append(a.Photos[:index], a.Photos[index+1:]...)
	return nil
}
