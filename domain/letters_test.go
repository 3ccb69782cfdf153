package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRand struct{ n int }

func (f fixedRand) IntN(n int) int { return f.n % n }

func activitiesFor(letters ...string) []Activity {
	out := make([]Activity, 0, len(letters))
	for _, l := range letters {
		out = append(out, Activity{ID: "id-" + l, Letter: l, Name: l})
	}
	return out
}

func TestAvailableLetters(t *testing.T) {
	acts := activitiesFor("A", "C", "Z")

	available := AvailableLetters(acts)
	assert.Len(t, available, 23)
	assert.NotContains(t, available, "A")
	assert.NotContains(t, available, "C")
	assert.NotContains(t, available, "Z")
	assert.Equal(t, "B", available[0])

	used := UsedLetters(acts)
	for _, l := range Alphabet {
		assert.NotEqual(t, used[l], contains(available, l), l)
	}
}

func TestPickRandomNeverReturnsUsedLetter(t *testing.T) {
	acts := activitiesFor("A", "B", "C", "D")
	used := UsedLetters(acts)
	for i := 0; i < 50; i++ {
		letter, err := PickRandom(acts, fixedRand{n: i})
		require.NoError(t, err)
		assert.False(t, used[letter], letter)
	}
}

func TestPickRandomRefusesWhenExhausted(t *testing.T) {
	acts := activitiesFor(Alphabet...)
	letter, err := PickRandom(acts, fixedRand{})
	assert.ErrorIs(t, err, ErrNoLettersLeft)
	assert.Empty(t, letter)
}

func TestResolve(t *testing.T) {
	acts := activitiesFor("M")

	sel, err := Resolve(acts, "m")
	require.NoError(t, err)
	assert.Equal(t, SelectionDetails, sel.Kind)
	require.NotNil(t, sel.Activity)
	assert.Equal(t, "id-M", sel.Activity.ID)

	sel, err = Resolve(acts, "N")
	require.NoError(t, err)
	assert.Equal(t, SelectionCreate, sel.Kind)
	assert.Equal(t, "N", sel.Letter)
	assert.Nil(t, sel.Activity)

	_, err = Resolve(acts, "?")
	assert.ErrorIs(t, err, ErrInvalidLetter)
}

func TestSuggestions(t *testing.T) {
	assert.Contains(t, Suggestions("a"), "Art Gallery Visit")
	assert.Len(t, Suggestions("Z"), 5)
	assert.Nil(t, Suggestions("7"))

	s := Suggestions("B")
	s[0] = "mutated"
	assert.Equal(t, "Bowling", Suggestions("B")[0])
}

func TestGroupByMonth(t *testing.T) {
	at := func(y int, m time.Month, d int) *time.Time {
		ts := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
		return &ts
	}
	acts := []Activity{
		{ID: "1", Letter: "A", IsCompleted: true, CompletedDate: at(2026, time.January, 5)},
		{ID: "2", Letter: "B", IsCompleted: true, CompletedDate: at(2026, time.March, 1)},
		{ID: "3", Letter: "C"},
		{ID: "4", Letter: "D", IsCompleted: true, CompletedDate: at(2026, time.January, 20)},
		{ID: "5", Letter: "E", IsCompleted: true, CompletedDate: at(2025, time.December, 31)},
	}

	groups := GroupByMonth(acts, time.UTC)
	require.Len(t, groups, 3)
	assert.Equal(t, "March 2026", groups[0].Label)
	assert.Equal(t, "January 2026", groups[1].Label)
	assert.Equal(t, "December 2025", groups[2].Label)
	require.Len(t, groups[1].Activities, 2)
	assert.Equal(t, "4", groups[1].Activities[0].ID)

	p := ComputeProgress(acts)
	assert.Equal(t, Progress{Completed: 4, Pending: 1, LettersRemaining: 21}, p)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
