package release

import (
	"fmt"
	"strings"
	"time"
)

// SetSchedule replaces the schedule of r. The due date is one calendar month
// before the release date, clamped to the last day of that month.
func (r *Release) SetSchedule(releaseDate, eolDate string) error {
	released, err := time.Parse(DateLayout, releaseDate)
	if err != nil {
		return fmt.Errorf("%w: release date: %w", ErrInvalidSchedule, err)
	}

	r.Schedule = &Schedule{
		Release: releaseDate,
		Due:     monthBefore(released).Format(DateLayout),
		EOL:     eolDate,
	}

	return nil
}

// ValidateSchedule returns one message per problem found in the schedule.
// An empty result means the schedule is usable.
func (r *Release) ValidateSchedule() []string {
	if r.Schedule == nil {
		return []string{"missing schedule"}
	}

	problems := make([]string, 0)
	problems = append(problems, validateDate("release", r.Schedule.Release)...)
	problems = append(problems, validateDate("EOL", r.Schedule.EOL)...)

	return problems
}

func validateDate(name, value string) []string {
	if strings.TrimSpace(value) == "" {
		return []string{"missing " + name + " date"}
	}

	if _, err := time.Parse(DateLayout, value); err != nil {
		return []string{fmt.Sprintf("invalid %s ISO8601 date: %s", name, err)}
	}

	return nil
}

func monthBefore(t time.Time) time.Time {
	firstOfPrevious := time.Date(t.Year(), t.Month()-1, 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfPrevious.AddDate(0, 1, -1).Day()

	return firstOfPrevious.AddDate(0, 0, min(t.Day(), lastDay)-1)
}
