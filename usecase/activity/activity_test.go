package activity

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/alphadate/domain"
	"github.com/fastygo/alphadate/internal/infrastructure/localstore"
	"github.com/fastygo/alphadate/repository/local"
	"github.com/fastygo/alphadate/usecase/gateway"
)

type stepClock struct{ t time.Time }

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func newUseCase(t *testing.T, opts ...Option) *UseCase {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "local.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	s := local.NewStore(store, nil)
	return New(gateway.New(s, &s, nil), nil, opts...)
}

func TestAlphabetDateScenario(t *testing.T) {
	ctx := context.Background()
	clock := &stepClock{t: time.Date(2026, time.February, 14, 18, 0, 0, 0, time.UTC)}
	uc := newUseCase(t, WithClock(clock.now))

	res, err := uc.Create(ctx, "A", "Art Gallery Visit")
	require.NoError(t, err)
	require.True(t, res.Persisted)
	require.NotNil(t, res.Activity)
	require.Len(t, res.Activities, 1)
	assert.False(t, res.Activity.IsCompleted)
	id := res.Activity.ID

	res, err = uc.Complete(ctx, id)
	require.NoError(t, err)
	require.True(t, res.Activity.IsCompleted)
	require.NotNil(t, res.Activity.CompletedDate)
	completedAt := *res.Activity.CompletedDate
	assert.False(t, completedAt.Before(res.Activity.CreatedAt))

	res, err = uc.SubmitFeedback(ctx, id, domain.UserAMR, 5, "Loved it")
	require.NoError(t, err)
	require.True(t, res.Persisted)
	require.Len(t, res.Activity.Feedbacks, 1)
	assert.Equal(t, domain.UserAMR, res.Activity.Feedbacks[0].User)
	assert.Equal(t, 5, res.Activity.Feedbacks[0].Rating)

	res, err = uc.SubmitFeedback(ctx, id, domain.UserAMR, 3, "")
	require.NoError(t, err)
	require.Len(t, res.Activity.Feedbacks, 1)
	assert.Equal(t, 3, res.Activity.Feedbacks[0].Rating)

	res, err = uc.SubmitFeedback(ctx, id, domain.UserASEI, 4, "nice")
	require.NoError(t, err)
	require.Len(t, res.Activity.Feedbacks, 2)

	// Completing again must not move the completion date.
	res, err = uc.Complete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, completedAt, *res.Activity.CompletedDate)

	assert.Len(t, uc.Feedbacks(ctx, id), 3, "every submission leaves a standalone record")
}

func TestCreateValidatesAndRejectsTakenLetter(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	_, err := uc.Create(ctx, "A", "  ")
	assert.ErrorIs(t, err, domain.ErrEmptyName)
	_, err = uc.Create(ctx, "AA", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidLetter)

	_, err = uc.Create(ctx, "b", "Bowling")
	require.NoError(t, err)
	_, err = uc.Create(ctx, "B", "Beach Day")
	assert.ErrorIs(t, err, domain.ErrLetterTaken)
	assert.Len(t, uc.List(ctx), 1)
}

func TestRenameKeepsLetter(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	res, err := uc.Create(ctx, "H", "Hiking")
	require.NoError(t, err)

	res, err = uc.Rename(ctx, res.Activity.ID, "Hot Springs")
	require.NoError(t, err)
	assert.Equal(t, "Hot Springs", res.Activity.Name)
	assert.Equal(t, "H", res.Activity.Letter)

	_, err = uc.Rename(ctx, "missing", "x")
	assert.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestDeleteTwice(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	res, err := uc.Create(ctx, "D", "Dancing")
	require.NoError(t, err)
	id := res.Activity.ID

	first := uc.Delete(ctx, id)
	assert.True(t, first.Persisted)
	assert.Nil(t, first.Activity)
	assert.Empty(t, first.Activities)

	second := uc.Delete(ctx, id)
	assert.True(t, second.Persisted)
}

func TestSubmitFeedbackValidation(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)
	res, err := uc.Create(ctx, "F", "Fishing")
	require.NoError(t, err)

	_, err = uc.SubmitFeedback(ctx, res.Activity.ID, domain.UserAMR, 0, "")
	assert.ErrorIs(t, err, domain.ErrInvalidRating)
	_, err = uc.SubmitFeedback(ctx, res.Activity.ID, "EVE", 3, "")
	assert.ErrorIs(t, err, domain.ErrUnknownUser)
	_, err = uc.SubmitFeedback(ctx, "missing", domain.UserAMR, 3, "")
	assert.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestPhotos(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)
	res, err := uc.Create(ctx, "P", "Picnic")
	require.NoError(t, err)
	id := res.Activity.ID

	res, err = uc.AttachPhotos(ctx, id, "https://img/1.jpg", "https://img/2.jpg")
	require.NoError(t, err)
	assert.Len(t, res.Activity.Photos, 2)

	res, err = uc.RemovePhoto(ctx, id, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img/2.jpg"}, res.Activity.Photos)

	_, err = uc.RemovePhoto(ctx, id, 3)
	assert.ErrorIs(t, err, domain.ErrPhotoNotFound)
	_, err = uc.AttachPhotos(ctx, id, " ")
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}

// recordingGateway counts writes and can be told to fail them.
type recordingGateway struct {
	activities    []domain.Activity
	failActivity  bool
	failFeedback  bool
	activitySaves int
	feedbackSaves int
}

func (g *recordingGateway) ListActivities(context.Context) []domain.Activity {
	out := make([]domain.Activity, 0, len(g.activities))
	for i := range g.activities {
		out = append(out, *g.activities[i].Clone())
	}
	return out
}

func (g *recordingGateway) SaveActivity(_ context.Context, a *domain.Activity) *domain.Activity {
	g.activitySaves++
	if g.failActivity {
		return nil
	}
	for i := range g.activities {
		if g.activities[i].ID == a.ID {
			g.activities[i] = *a.Clone()
			return a
		}
	}
	g.activities = append(g.activities, *a.Clone())
	return a
}

func (g *recordingGateway) DeleteActivity(context.Context, string) bool { return true }

func (g *recordingGateway) SaveFeedback(_ context.Context, fb *domain.Feedback) *domain.Feedback {
	g.feedbackSaves++
	if g.failFeedback {
		return nil
	}
	return fb
}

func (g *recordingGateway) GetFeedbacks(context.Context, string) []domain.Feedback {
	return []domain.Feedback{}
}

func TestSubmitFeedbackAttemptsBothWrites(t *testing.T) {
	ctx := context.Background()
	gw := &recordingGateway{activities: []domain.Activity{{ID: "a1", Letter: "A", Name: "Archery", Feedbacks: []domain.Feedback{}}}}
	gw.failFeedback = true
	uc := New(gw, nil)

	res, err := uc.SubmitFeedback(ctx, "a1", domain.UserAMR, 4, "")
	require.NoError(t, err)
	assert.False(t, res.Persisted)
	assert.Equal(t, 1, gw.feedbackSaves)
	assert.Equal(t, 1, gw.activitySaves, "embedded copy is still written")
	assert.Len(t, res.Activity.Feedbacks, 1)
}

func TestFailedSaveIsSilent(t *testing.T) {
	ctx := context.Background()
	gw := &recordingGateway{failActivity: true}
	uc := New(gw, nil)

	res, err := uc.Create(ctx, "Z", "Zoo Visit")
	require.NoError(t, err)
	assert.False(t, res.Persisted)
	assert.Nil(t, res.Activity)
	assert.Empty(t, res.Activities)
}

func TestCompleteAlreadyCompletedIssuesNoWrite(t *testing.T) {
	done := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	gw := &recordingGateway{activities: []domain.Activity{{ID: "a1", Letter: "A", IsCompleted: true, CompletedDate: &done}}}
	uc := New(gw, nil)

	res, err := uc.Complete(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, 0, gw.activitySaves)
	assert.Equal(t, done, *res.Activity.CompletedDate)
}
