package testhelpers

import "time"

// IST is the society's local zone in tests.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// At returns hh:mm on 2024-03-15 in IST.
func At(hour, minute int) time.Time {
	return time.Date(2024, time.March, 15, hour, minute, 0, 0, IST)
}

// Clock is a settable time source.
type Clock struct {
	Current time.Time
}

func (c *Clock) Now() time.Time { return c.Current }

func (c *Clock) Advance(d time.Duration) { c.Current = c.Current.Add(d) }
