// Package dates computes local calendar dates as ISO strings.
package dates

import "time"

const (
	ISOLayout     = "2006-01-02"
	DisplayLayout = "2 Jan 2006"
)

// Clock abstracts time to keep day-boundary logic deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant. Set T to move it.
type FixedClock struct {
	T time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.T
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.T = c.T.Add(d)
}

func Today(c Clock) string {
	return c.Now().Format(ISOLayout)
}

// Parse interprets iso at local midnight.
func Parse(iso string) (time.Time, error) {
	return time.ParseInLocation(ISOLayout, iso, time.Local)
}

func IsISO(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Display formats iso as "9 Feb 2026". Unparseable input is returned as-is.
func Display(iso string) string {
	t, err := Parse(iso)
	if err != nil {
		return iso
	}
	return t.Format(DisplayLayout)
}

// AddDays shifts iso by n calendar days.
func AddDays(iso string, n int) (string, error) {
	t, err := Parse(iso)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(ISOLayout), nil
}

// StartOfWeek returns the Monday on or before today.
func StartOfWeek(c Clock) string {
	now := c.Now()
	shift := int(now.Weekday()) - 1
	if now.Weekday() == time.Sunday {
		shift = 6
	}
	y, m, d := now.Date()
	return time.Date(y, m, d-shift, 12, 0, 0, 0, now.Location()).Format(ISOLayout)
}
