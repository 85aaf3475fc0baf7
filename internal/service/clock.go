package service

import "time"

// Clock decides what "today" means for a deployment's time zone.
// Calendar dates are represented as midnight UTC of that date.
type Clock struct {
	Location *time.Location
	Now      func() time.Time
}

func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{Location: loc, Now: time.Now}
}

func (c Clock) local() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

func (c Clock) Today() time.Time {
	return AsDate(c.local())
}

// StartOfDay is the instant the current local day began.
func (c Clock) StartOfDay() time.Time {
	n := c.local()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())
}

func (c Clock) StartOfMonth() time.Time {
	today := c.Today()
	return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AsDate drops the clock reading and keeps the calendar date as seen in t's location.
func AsDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}
