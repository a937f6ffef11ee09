package period

import (
	"fmt"
	"time"

	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
)

// Window is one aggregate period: an inclusive [Start, End] date range.
type Window struct {
	Type  domain.PeriodType
	Start time.Time
	End   time.Time
}

// DateOnly normalizes a timestamp to a pure calendar date (UTC midnight).
// Expense dates and period bounds are always compared at date granularity.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Start returns the period start containing the given date: the date itself
// for daily, the Monday on/before it for weekly, the first of the month for
// monthly. Panics on an unrecognized period type: that is a programming error,
// not a runtime condition.
func Start(periodType domain.PeriodType, date time.Time) time.Time {
	d := DateOnly(date)
	switch periodType {
	case domain.PeriodDaily:
		return d
	case domain.PeriodWeekly:
		// time.Weekday has Sunday=0; shift so Monday=0.
		offset := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -offset)
	case domain.PeriodMonthly:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	panic(fmt.Sprintf("period: unsupported period type %q", periodType))
}

// End returns the inclusive period end for a period starting at periodStart.
// Monthly ends are computed by advancing to the first day of the next month
// and stepping back one day; time.Date normalizes the December rollover.
// Panics on an unrecognized period type.
func End(periodType domain.PeriodType, periodStart time.Time) time.Time {
	start := DateOnly(periodStart)
	switch periodType {
	case domain.PeriodDaily:
		return start
	case domain.PeriodWeekly:
		return start.AddDate(0, 0, 6)
	case domain.PeriodMonthly:
		return time.Date(start.Year(), start.Month()+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	}
	panic(fmt.Sprintf("period: unsupported period type %q", periodType))
}

// WindowsFor maps an expense date to the three period windows it belongs to.
// Deterministic, no I/O.
func WindowsFor(expenseDate time.Time) []Window {
	windows := make([]Window, 0, 3)
	for _, pt := range []domain.PeriodType{domain.PeriodDaily, domain.PeriodWeekly, domain.PeriodMonthly} {
		start := Start(pt, expenseDate)
		windows = append(windows, Window{Type: pt, Start: start, End: End(pt, start)})
	}
	return windows
}
