package activity

import (
	"context"
	"time"

	"github.com/fastygo/alphadate/domain"
)

// LetterBoard is the used/available split of the alphabet.
type LetterBoard struct {
	Used      []string `json:"used"`
	Available []string `json:"available"`
}

// LetterChoice is a resolved grid click plus ideas for the creation form.
type LetterChoice struct {
	domain.Selection
	Suggestions []string `json:"suggestions,omitempty"`
}

// Calendar is the completed-activity history with overall progress.
type Calendar struct {
	Months   []domain.MonthGroup `json:"months"`
	Progress domain.Progress     `json:"progress"`
}

func (uc *UseCase) Letters(ctx context.Context) LetterBoard {
	activities := uc.gateway.ListActivities(ctx)
	board := LetterBoard{Used: []string{}, Available: domain.AvailableLetters(activities)}
	used := domain.UsedLetters(activities)
	for _, l := range domain.Alphabet {
		if used[l] {
			board.Used = append(board.Used, l)
		}
	}
	return board
}

// Spin picks a random free letter, or fails with ErrNoLettersLeft.
func (uc *UseCase) Spin(ctx context.Context) (string, error) {
	return domain.PickRandom(uc.gateway.ListActivities(ctx), uc.rng)
}

// Select decides between the details and creation flows for a clicked letter,
// always from a fresh listing.
func (uc *UseCase) Select(ctx context.Context, letter string) (*LetterChoice, error) {
	sel, err := domain.Resolve(uc.gateway.ListActivities(ctx), letter)
	if err != nil {
		return nil, err
	}
	choice := &LetterChoice{Selection: sel}
	if sel.Kind == domain.SelectionCreate {
		choice.Suggestions = domain.Suggestions(sel.Letter)
	}
	return choice, nil
}

func (uc *UseCase) Calendar(ctx context.Context, loc *time.Location) Calendar {
	activities := uc.gateway.ListActivities(ctx)
	months := domain.GroupByMonth(activities, loc)
	if months == nil {
		months = []domain.MonthGroup{}
	}
	return Calendar{Months: months, Progress: domain.ComputeProgress(activities)}
}
