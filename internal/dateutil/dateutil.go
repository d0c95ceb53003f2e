package dateutil

import "time"

// Clock yields the calendar-date key used to locate attendance columns. The
// offset is a fixed shift from UTC with no daylight-saving adjustment; the
// header of an attendance column must match the string Today returns.
type Clock struct {
	Offset time.Duration
	Now    func() time.Time
}

// New returns a Clock reading the wall clock with the given fixed offset.
func New(offset time.Duration) Clock {
	return Clock{Offset: offset, Now: time.Now}
}

// Today returns the current date as YYYY-MM-DD after applying the offset.
func (c Clock) Today() string {
	now := c.Now
	if now == nil {
		now = time.Now
	}
	return now().UTC().Add(c.Offset).Format("2006-01-02")
}
