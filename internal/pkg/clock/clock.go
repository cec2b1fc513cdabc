package clock

import (
	"fmt"
	"time"
)

// Clock supplies the current wall time in the single civil timezone the
// attendance system operates in. Everything that needs "today" or the
// current time of day goes through here so the timezone is configured
// exactly once.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type fixedZoneClock struct {
	loc *time.Location
}

func New(timezone string) (Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}
	return &fixedZoneClock{loc: loc}, nil
}

func (c *fixedZoneClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *fixedZoneClock) Location() *time.Location {
	return c.loc
}

// DateString formats t as an ISO civil date (2006-01-02).
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// TimeString formats t as a time of day (15:04:05).
func TimeString(t time.Time) string {
	return t.Format("15:04:05")
}
