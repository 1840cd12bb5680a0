package service

import "time"

// Clock returns the current time in the station's time zone
type Clock func() time.Time

// SystemClock reads the wall clock in loc
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}

func (c Clock) today() time.Time {
	now := c()
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}
