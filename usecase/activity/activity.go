package activity

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/alphadate/domain"
)

// Gateway is the persistence surface the flows depend on.
type Gateway interface {
	ListActivities(ctx context.Context) []domain.Activity
	SaveActivity(ctx context.Context, activity *domain.Activity) *domain.Activity
	DeleteActivity(ctx context.Context, id string) bool
	SaveFeedback(ctx context.Context, feedback *domain.Feedback) *domain.Feedback
	GetFeedbacks(ctx context.Context, activityID string) []domain.Feedback
}

// Result is what every mutation hands back: the full reloaded collection,
// the affected activity as reloaded (nil if it is gone) and whether every
// write reported success.
type Result struct {
	Activity   *domain.Activity  `json:"activity,omitempty"`
	Activities []domain.Activity `json:"activities"`
	Persisted  bool              `json:"persisted"`
}

type Option func(*UseCase)

// WithClock overrides the time source used for creation and completion stamps.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

// WithRand overrides the letter picker's random source. Calls into rng are
// serialized, so sources that are not goroutine-safe may be passed.
func WithRand(rng domain.IntN) Option {
	return func(uc *UseCase) {
		if rng != nil {
			uc.rng = &lockedRand{src: rng}
		}
	}
}

// globalRand draws from the goroutine-safe top-level generator.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

type lockedRand struct {
	mu  sync.Mutex
	src domain.IntN
}

func (r *lockedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.IntN(n)
}

type UseCase struct {
	gateway Gateway
	logger  *zap.Logger
	now     func() time.Time
	rng     domain.IntN
}

func New(gateway Gateway, logger *zap.Logger, opts ...Option) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &UseCase{
		gateway: gateway,
		logger:  logger,
		now:     time.Now,
		rng:     globalRand{},
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *UseCase) List(ctx context.Context) []domain.Activity {
	return uc.gateway.ListActivities(ctx)
}

// Get returns one activity from a fresh listing.
func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Activity, error) {
	return uc.find(ctx, id)
}

// Create plans a new activity for a letter that has none yet.
func (uc *UseCase) Create(ctx context.Context, letter, name string) (*Result, error) {
	activity, err := domain.NewActivity(letter, name, uc.now())
	if err != nil {
		return nil, err
	}
	if _, taken := domain.FindByLetter(uc.gateway.ListActivities(ctx), activity.Letter); taken {
		return nil, domain.ErrLetterTaken
	}

	saved := uc.gateway.SaveActivity(ctx, activity)
	if saved == nil {
		uc.logger.Warn("activity not persisted", zap.String("letter", activity.Letter))
	}
	return uc.reload(ctx, activity.ID, saved != nil), nil
}

// Rename edits the activity name. The letter is never changed.
func (uc *UseCase) Rename(ctx context.Context, id, name string) (*Result, error) {
	current, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := current.Clone()
	if err := updated.Rename(name); err != nil {
		return nil, err
	}
	saved := uc.gateway.SaveActivity(ctx, updated)
	return uc.reload(ctx, id, saved != nil), nil
}

// Complete marks the activity done. Completing twice is a no-op and issues no write.
func (uc *UseCase) Complete(ctx context.Context, id string) (*Result, error) {
	current, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := current.Clone()
	if !updated.Complete(uc.now()) {
		uc.logger.Debug("activity already completed", zap.String("activity_id", id))
		return uc.reload(ctx, id, true), nil
	}
	saved := uc.gateway.SaveActivity(ctx, updated)
	return uc.reload(ctx, id, saved != nil), nil
}

// Delete removes the activity; unknown ids succeed.
func (uc *UseCase) Delete(ctx context.Context, id string) *Result {
	ok := uc.gateway.DeleteActivity(ctx, id)
	return uc.reload(ctx, id, ok)
}

// SubmitFeedback records user's rating for an activity. It writes the
// standalone feedback first and then the activity with its embedded copy
// upserted by user. Both writes are attempted even if the first one fails;
// the two copies may diverge when only one of them lands.
func (uc *UseCase) SubmitFeedback(ctx context.Context, activityID string, user domain.User, rating int, comment string) (*Result, error) {
	feedback, err := domain.NewFeedback(activityID, user, rating, comment, uc.now())
	if err != nil {
		return nil, err
	}
	current, err := uc.find(ctx, activityID)
	if err != nil {
		return nil, err
	}

	standalone := uc.gateway.SaveFeedback(ctx, feedback)
	if standalone == nil {
		uc.logger.Warn("standalone feedback not persisted, embedded copy still written",
			zap.String("activity_id", activityID),
			zap.String("user", string(feedback.User)))
	}

	updated := current.Clone()
	replaced := updated.UpsertFeedback(*feedback)
	saved := uc.gateway.SaveActivity(ctx, updated)

	uc.logger.Debug("feedback submitted",
		zap.String("activity_id", activityID),
		zap.String("user", string(feedback.User)),
		zap.Bool("replaced", replaced))
	return uc.reload(ctx, activityID, standalone != nil && saved != nil), nil
}

// Feedbacks returns the standalone feedback records of an activity.
func (uc *UseCase) Feedbacks(ctx context.Context, activityID string) []domain.Feedback {
	return uc.gateway.GetFeedbacks(ctx, activityID)
}

func (uc *UseCase) AttachPhotos(ctx context.Context, id string, refs ...string) (*Result, error) {
	current, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := current.Clone()
	if updated.AttachPhotos(refs...) == 0 {
		return nil, domain.ErrInvalidPayload
	}
	saved := uc.gateway.SaveActivity(ctx, updated)
	return uc.reload(ctx, id, saved != nil), nil
}

func (uc *UseCase) RemovePhoto(ctx context.Context, id string, index int) (*Result, error) {
	current, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := current.Clone()
	if err := updated.RemovePhoto(index); err != nil {
		return nil, err
	}
	saved := uc.gateway.SaveActivity(ctx, updated)
	return uc.reload(ctx, id, saved != nil), nil
}

func (uc *UseCase) find(ctx context.Context, id string) (*domain.Activity, error) {
	activities := uc.gateway.ListActivities(ctx)
	for i := range activities {
		if activities[i].ID == id {
			return &activities[i], nil
		}
	}
	return nil, domain.ErrActivityNotFound
}

func (uc *UseCase) reload(ctx context.Context, id string, persisted bool) *Result {
	activities := uc.gateway.ListActivities(ctx)
	res := &Result{Activities: activities, Persisted: persisted}
	for i := range activities {
		if activities[i].ID == id {
			res.Activity = &activities[i]
			break
		}
	}
	return res
}
