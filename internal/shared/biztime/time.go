// Package biztime centralises wall-clock access. All storage and transport use UTC.
package biztime

import "time"

// NowUTC returns current time in UTC truncated to microseconds, the precision
// both mysql DATETIME(6) and sqlite round-trip without loss.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Clock is the time source injected into services that compare expiries.
type Clock func() time.Time

// Fixed returns a Clock that always reports t. Used by tests.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}
