package domain

import (
	"fmt"
	"time"
)

// Period is the date window a report covers: either a calendar month or an
// explicit inclusive date range. Both kinds filter on the date projection of
// a record's creation timestamp.
type Period struct {
	Year  int
	Month time.Month

	Start time.Time
	End   time.Time

	byMonth bool
}

func MonthPeriod(year int, month time.Month) Period {
	return Period{Year: year, Month: month, byMonth: true}
}

// CurrentMonth is the month containing now.
func CurrentMonth(now time.Time) Period {
	return MonthPeriod(now.Year(), now.Month())
}

// PreviousMonth wraps January back into December of the prior year.
func PreviousMonth(now time.Time) Period {
	y, m := now.Year(), now.Month()
	if m == time.January {
		return MonthPeriod(y-1, time.December)
	}
	return MonthPeriod(y, m-1)
}

// RangePeriod covers [start, end] inclusive, date-only.
func RangePeriod(start, end time.Time) Period {
	return Period{Start: start, End: end}
}

func (p Period) ByMonth() bool { return p.byMonth }

// MonthKey renders the month as the store's YYYY-MM match key.
func (p Period) MonthKey() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Label is the human period line of the report summary.
func (p Period) Label() string {
	if p.byMonth {
		return fmt.Sprintf("tháng %d/%d", int(p.Month), p.Year)
	}
	return fmt.Sprintf("%s đến %s", p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"))
}

// Contains reports whether t falls inside the window. Used by in-memory
// stores; the SQL gateways filter server-side.
func (p Period) Contains(t time.Time) bool {
	if p.byMonth {
		return t.Year() == p.Year && t.Month() == p.Month
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	s := time.Date(p.Start.Year(), p.Start.Month(), p.Start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(p.End.Year(), p.End.Month(), p.End.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(s) && !d.After(e)
}
