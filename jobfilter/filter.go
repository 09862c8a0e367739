// Package jobfilter derives the visible subset of a job list from the
// active date/search/status filters. Filtering is pure: same inputs give
// the same output and the source slice is never mutated.
package jobfilter

import (
	"strings"
	"time"

	"landscape-supply-api/models"
)

// Mode selects which view of the job board is active
type Mode string

const (
	ModeNormal      Mode = "normal"      // jobs scheduled for a chosen calendar day
	ModeUnscheduled Mode = "unscheduled" // jobs still waiting on a date
)

// Options are the active filters for one view
type Options struct {
	Mode   Mode
	Date   time.Time // zero value means no date filter
	Search string    // case-insensitive substring over customer name or address
	Status string    // empty or "all" keeps every status
}

// ParseDate parses a YYYY-MM-DD string at noon UTC. Anchoring to noon
// keeps the calendar day stable across timezone conversions, the same
// trick the clients use by appending T12:00:00.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC), nil
}

// SameCalendarDay compares the plain calendar dates of two times,
// ignoring time-of-day and whatever zone the values were stored in.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Filter returns the visible jobs for the given options.
//
// Unscheduled mode keeps jobs with status to_be_scheduled or a missing
// delivery date and ignores the date and status filters. Normal mode
// drops those jobs, keeps only the selected calendar day, then applies
// the status filter. The search term applies last in both modes.
func Filter(jobs []models.Job, opts Options) []models.Job {
	visible := make([]models.Job, 0, len(jobs))

	for _, job := range jobs {
		unscheduled := job.Status == models.StatusToBeScheduled || job.DeliveryDate == nil

		switch opts.Mode {
		case ModeUnscheduled:
			if !unscheduled {
				continue
			}
		default:
			if unscheduled {
				continue
			}
			if !opts.Date.IsZero() && !SameCalendarDay(*job.DeliveryDate, opts.Date) {
				continue
			}
			if opts.Status != "" && opts.Status != "all" && string(job.Status) != opts.Status {
				continue
			}
		}

		visible = append(visible, job)
	}

	if term := strings.ToLower(strings.TrimSpace(opts.Search)); term != "" {
		matched := visible[:0:0]
		for _, job := range visible {
			if strings.Contains(strings.ToLower(job.CustomerName), term) ||
				strings.Contains(strings.ToLower(job.Address), term) {
				matched = append(matched, job)
			}
		}
		visible = matched
	}

	return visible
}
