// internal/daily/daily.go
//
// Calendar arithmetic for the daily puzzle.
// Responsibilities:
//   - Map a local calendar date to a day number (day 1 = epoch date).
//   - Map a day number back to its local date (exact inverse).
//   - Storage keys for today's and archive games.
//   - Countdown until the next puzzle.
//
// All arithmetic is done on civil dates (Y-M-D), never on instants, so a
// player close to midnight or across a DST change gets the same day number
// as the wall calendar shows.

package daily

import (
	"fmt"
	"strings"
	"time"
)

// Epoch is the calendar date of day number 1.
var Epoch = civil{2022, time.January, 1}

const secondsPerDay = 24 * 60 * 60

type civil struct {
	year  int
	month time.Month
	day   int
}

// ordinal counts days since 1970-01-01 for the civil date.
func (c civil) ordinal() int64 {
	return time.Date(c.year, c.month, c.day, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

func civilOf(t time.Time) civil {
	y, m, d := t.Date()
	return civil{y, m, d}
}

// Calendar computes day numbers in one location.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// New returns a Calendar for loc; a nil loc means time.Local.
func New(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	return &Calendar{loc: loc, now: time.Now}
}

// LoadCalendar resolves an IANA zone name ("" = local time).
func LoadCalendar(zone string) (*Calendar, error) {
	if zone == "" {
		return New(nil), nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", zone, err)
	}
	return New(loc), nil
}

// WithClock returns a copy of c that reads the current time from now.
func (c *Calendar) WithClock(now func() time.Time) *Calendar {
	return &Calendar{loc: c.loc, now: now}
}

// In returns a copy of c, sharing its clock, for another location.
func (c *Calendar) In(loc *time.Location) *Calendar {
	return &Calendar{loc: loc, now: c.now}
}

// Location returns the calendar's time zone.
func (c *Calendar) Location() *time.Location { return c.loc }

// Today returns the current instant in the calendar's location.
func (c *Calendar) Today() time.Time { return c.now().In(c.loc) }

// DayNumber returns today's day number.
func (c *Calendar) DayNumber() int { return c.DayNumberFromDate(c.now()) }

// DayNumberFromDate returns the day number of t's local calendar date.
func (c *Calendar) DayNumberFromDate(t time.Time) int {
	return int(civilOf(t.In(c.loc)).ordinal()-Epoch.ordinal()) + 1
}

// DateFromDayNumber returns local midnight of day n.
func (c *Calendar) DateFromDayNumber(n int) time.Time {
	d := civilOf(time.Date(Epoch.year, Epoch.month, Epoch.day+n-1, 0, 0, 0, 0, time.UTC))
	t := time.Date(d.year, d.month, d.day, 0, 0, 0, 0, c.loc)
	if civilOf(t) != d {
		// midnight does not exist on a DST start day in some zones
		t = time.Date(d.year, d.month, d.day, 1, 0, 0, 0, c.loc)
	}
	return t
}

// DateKey formats t's local calendar date as YYYY-MM-DD.
func (c *Calendar) DateKey(t time.Time) string {
	return t.In(c.loc).Format("2006-01-02")
}

// TodayKey is DateKey of the current date.
func (c *Calendar) TodayKey() string { return c.DateKey(c.now()) }

// ArchiveKey is the storage date key of a past puzzle replayed from the archive.
func ArchiveKey(dayNumber int) string {
	return fmt.Sprintf("archive-%d", dayNumber)
}

// UntilMidnight returns the time left before the next day number starts.
func (c *Calendar) UntilMidnight() time.Duration {
	now := c.Today()
	next := c.DateFromDayNumber(c.DayNumberFromDate(now) + 1)
	return next.Sub(now)
}

// FormatCountdown renders d as HH:MM:SS.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

// IsArchiveKey reports whether dateKey was produced by ArchiveKey.
func IsArchiveKey(dateKey string) bool {
	return strings.HasPrefix(dateKey, "archive-")
}
