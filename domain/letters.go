package domain

import (
	"strings"
)

// Alphabet is the fixed set of letters activities are assigned to.
var Alphabet = []string{
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
}

// NormalizeLetter upper-cases and validates a single latin letter.
func NormalizeLetter(raw string) (string, error) {
	l := strings.ToUpper(strings.TrimSpace(raw))
	if len(l) != 1 || l[0] < 'A' || l[0] > 'Z' {
		return "", ErrInvalidLetter
	}
	return l, nil
}

// UsedLetters returns the set of letters that already have an activity.
func UsedLetters(activities []Activity) map[string]bool {
	used := make(map[string]bool, len(activities))
	for _, a := range activities {
		used[a.Letter] = true
	}
	return used
}

// AvailableLetters returns the alphabet minus used letters, in alphabet order.
func AvailableLetters(activities []Activity) []string {
	used := UsedLetters(activities)
	out := make([]string, 0, len(Alphabet))
	for _, l := range Alphabet {
		if !used[l] {
			out = append(out, l)
		}
	}
	return out
}

// FindByLetter returns the first activity assigned to letter.
func FindByLetter(activities []Activity, letter string) (*Activity, bool) {
	for i := range activities {
		if activities[i].Letter == letter {
			return &activities[i], true
		}
	}
	return nil, false
}

// IntN is the random source used by PickRandom; *rand.Rand from math/rand/v2 satisfies it.
type IntN interface {
	IntN(n int) int
}

// PickRandom selects uniformly among available letters.
func PickRandom(activities []Activity, rng IntN) (string, error) {
	available := AvailableLetters(activities)
	if len(available) == 0 {
		return "", ErrNoLettersLeft
	}
	return available[rng.IntN(len(available))], nil
}

// SelectionKind tells the caller which flow a letter click leads to.
type SelectionKind string

const (
	SelectionDetails SelectionKind = "details"
	SelectionCreate  SelectionKind = "create"
)

// Selection is the outcome of clicking a letter on the grid.
type Selection struct {
	Kind     SelectionKind `json:"kind"`
	Letter   string        `json:"letter"`
	Activity *Activity     `json:"activity,omitempty"`
}

// Resolve maps a clicked letter to the details view when an activity exists
// for it and to the creation flow otherwise.
func Resolve(activities []Activity, letter string) (Selection, error) {
	l, err := NormalizeLetter(letter)
	if err != nil {
		return Selection{}, err
	}
	if existing, ok := FindByLetter(activities, l); ok {
		return Selection{Kind: SelectionDetails, Letter: l, Activity: existing.Clone()}, nil
	}
	return Selection{Kind: SelectionCreate, Letter: l}, nil
}
