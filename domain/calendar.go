package domain

import (
	"sort"
	"time"
)

// MonthGroup holds the completed activities of one calendar month.
type MonthGroup struct {
	Label      string     `json:"label"`
	Year       int        `json:"year"`
	Month      time.Month `json:"month"`
	Activities []Activity `json:"activities"`
}

// GroupByMonth buckets completed activities by completion month in loc.
// Months and the activities inside each month are ordered most recent first.
func GroupByMonth(activities []Activity, loc *time.Location) []MonthGroup {
	if loc == nil {
		loc = time.UTC
	}
	index := make(map[string]int)
	var groups []MonthGroup
	for _, a := range activities {
		if !a.IsCompleted || a.CompletedDate == nil {
			continue
		}
		local := a.CompletedDate.In(loc)
		label := local.Format("January 2006")
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, MonthGroup{Label: label, Year: local.Year(), Month: local.Month()})
		}
		groups[i].Activities = append(groups[i].Activities, a)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Year != groups[j].Year {
			return groups[i].Year > groups[j].Year
		}
		return groups[i].Month > groups[j].Month
	})
	for _, g := range groups {
		sort.SliceStable(g.Activities, func(i, j int) bool {
			return g.Activities[i].CompletedDate.After(*g.Activities[j].CompletedDate)
		})
	}
	return groups
}

// Progress summarises how far through the alphabet the pair is.
type Progress struct {
	Completed        int `json:"completed"`
	Pending          int `json:"pending"`
	LettersRemaining int `json:"lettersRemaining"`
}

func ComputeProgress(activities []Activity) Progress {
	var p Progress
	for _, a := range activities {
		if a.IsCompleted {
			p.Completed++
		} else {
			p.Pending++
		}
	}
	p.LettersRemaining = len(AvailableLetters(activities))
	return p
}
