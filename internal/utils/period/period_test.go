package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStart_Daily(t *testing.T) {
	d := date(2025, time.March, 15)
	assert.Equal(t, d, Start(domain.PeriodDaily, d))
}

func TestStart_Weekly_MidweekSnapsToMonday(t *testing.T) {
	// 2025-01-01 is a Wednesday; its week starts Monday 2024-12-30.
	assert.Equal(t, date(2024, time.December, 30), Start(domain.PeriodWeekly, date(2025, time.January, 1)))
}

func TestStart_Weekly_MondayIsItsOwnStart(t *testing.T) {
	monday := date(2025, time.March, 3)
	assert.Equal(t, monday, Start(domain.PeriodWeekly, monday))
}

func TestStart_Weekly_SundayBelongsToPrecedingMonday(t *testing.T) {
	assert.Equal(t, date(2025, time.March, 3), Start(domain.PeriodWeekly, date(2025, time.March, 9)))
}

func TestStart_Monthly(t *testing.T) {
	assert.Equal(t, date(2025, time.February, 1), Start(domain.PeriodMonthly, date(2025, time.February, 28)))
}

func TestEnd_Daily(t *testing.T) {
	d := date(2025, time.June, 10)
	assert.Equal(t, d, End(domain.PeriodDaily, d))
}

func TestEnd_Weekly(t *testing.T) {
	assert.Equal(t, date(2025, time.January, 5), End(domain.PeriodWeekly, date(2024, time.December, 30)))
}

func TestEnd_Monthly(t *testing.T) {
	assert.Equal(t, date(2025, time.January, 31), End(domain.PeriodMonthly, date(2025, time.January, 1)))
}

func TestEnd_Monthly_DecemberRollsIntoNextYear(t *testing.T) {
	assert.Equal(t, date(2025, time.December, 31), End(domain.PeriodMonthly, date(2025, time.December, 1)))
}

func TestEnd_Monthly_LeapFebruary(t *testing.T) {
	assert.Equal(t, date(2024, time.February, 29), End(domain.PeriodMonthly, date(2024, time.February, 1)))
}

func TestWindowsFor_CoversAllThreePeriods(t *testing.T) {
	windows := WindowsFor(date(2025, time.January, 1))
	require.Len(t, windows, 3)

	byType := map[domain.PeriodType]Window{}
	for _, w := range windows {
		byType[w.Type] = w
	}

	assert.Equal(t, date(2025, time.January, 1), byType[domain.PeriodDaily].Start)
	assert.Equal(t, date(2025, time.January, 1), byType[domain.PeriodDaily].End)

	assert.Equal(t, date(2024, time.December, 30), byType[domain.PeriodWeekly].Start)
	assert.Equal(t, date(2025, time.January, 5), byType[domain.PeriodWeekly].End)

	assert.Equal(t, date(2025, time.January, 1), byType[domain.PeriodMonthly].Start)
	assert.Equal(t, date(2025, time.January, 31), byType[domain.PeriodMonthly].End)
}

func TestWindowsFor_ContainsTheExpenseDate(t *testing.T) {
	d := date(2025, time.August, 17)
	for _, w := range WindowsFor(d) {
		assert.False(t, d.Before(w.Start), "%s window should start on/before the date", w.Type)
		assert.False(t, d.After(w.End), "%s window should end on/after the date", w.Type)
	}
}

func TestStart_PanicsOnUnknownPeriodType(t *testing.T) {
	assert.Panics(t, func() { Start(domain.PeriodType("HOURLY"), date(2025, time.January, 1)) })
}

func TestEnd_PanicsOnUnknownPeriodType(t *testing.T) {
	assert.Panics(t, func() { End(domain.PeriodType("HOURLY"), date(2025, time.January, 1)) })
}

func TestDateOnly_StripsTimeAndZone(t *testing.T) {
	loc := time.FixedZone("X", 5*3600)
	ts := time.Date(2025, time.April, 2, 23, 45, 1, 0, loc)
	assert.Equal(t, date(2025, time.April, 2), DateOnly(ts))
}
