package export

import (
	"fmt"
	"time"
)

// DateLayout is the calendar format accepted for explicit window bounds.
const DateLayout = "02/01/2006"

// MaxWindowDays is the largest span an export window may cover.
const MaxWindowDays = 90

// Request carries the caller's window and facility-query input.
// Precedence when resolving the window: Days > FromDate > the caller's
// selected default.
type Request struct {
	Query    string
	FromDate string
	ToDate   string
	Days     int
}

// Window is a resolved, validated date range.
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

func (w Window) String() string {
	return fmt.Sprintf("%s to %s", w.From.Format(DateLayout), w.To.Format(DateLayout))
}

// WindowDefault selects which default applies when the request names
// neither explicit dates nor a relative day count. The two defaults
// serve different callers and are not interchangeable.
type WindowDefault int

const (
	// DefaultLastSevenDays is the bulk-export default.
	DefaultLastSevenDays WindowDefault = iota
	// DefaultTrailingTwelveHours is the single-facility inspection default.
	DefaultTrailingTwelveHours
)

// PlanWindow validates and normalizes the request into a concrete window.
func PlanWindow(req Request, def WindowDefault) (Window, error) {
	return planWindowAt(req, def, time.Now())
}

func planWindowAt(req Request, def WindowDefault, now time.Time) (Window, error) {
	switch {
	case req.Days != 0:
		if req.Days < 0 {
			return Window{}, &ValidationError{Field: "days", Reason: "must be positive"}
		}
		if req.Days > MaxWindowDays {
			return Window{}, &ValidationError{
				Field:  "days",
				Reason: fmt.Sprintf("window may span at most %d days", MaxWindowDays),
			}
		}
		return Window{
			From: startOfDay(now.AddDate(0, 0, -req.Days)),
			To:   endOfDay(now),
		}, nil

	case req.FromDate != "":
		from, err := time.ParseInLocation(DateLayout, req.FromDate, now.Location())
		if err != nil {
			return Window{}, &ValidationError{
				Field:  "from_date",
				Reason: fmt.Sprintf("expected %s, got %q", DateLayout, req.FromDate),
			}
		}
		to := now
		if req.ToDate != "" {
			to, err = time.ParseInLocation(DateLayout, req.ToDate, now.Location())
			if err != nil {
				return Window{}, &ValidationError{
					Field:  "to_date",
					Reason: fmt.Sprintf("expected %s, got %q", DateLayout, req.ToDate),
				}
			}
		}
		if from.After(to) {
			return Window{}, &ValidationError{Field: "from_date", Reason: "start date is after end date"}
		}
		if spanDays(from, to) > MaxWindowDays {
			return Window{}, &ValidationError{
				Field:  "to_date",
				Reason: fmt.Sprintf("window may span at most %d days", MaxWindowDays),
			}
		}
		return Window{From: startOfDay(from), To: endOfDay(to)}, nil

	case def == DefaultTrailingTwelveHours:
		return Window{From: now.Add(-12 * time.Hour), To: now}, nil

	default:
		return Window{
			From: startOfDay(now.AddDate(0, 0, -7)),
			To:   endOfDay(now),
		}, nil
	}
}

// spanDays counts whole calendar days between the two dates.
func spanDays(from, to time.Time) int {
	return int(startOfDay(to).Sub(startOfDay(from)) / (24 * time.Hour))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
