// Package cycle handles billing-cycle tokens. A cycle is one calendar
// month, keyed as YYYY-MM.
package cycle

import (
	"fmt"
	"time"
)

const layout = "2006-01"

// Current returns the cycle token for the given instant.
func Current(now time.Time) string {
	return now.Format(layout)
}

// Valid reports whether s is a well-formed cycle token.
func Valid(s string) bool {
	_, err := time.Parse(layout, s)
	return err == nil
}

// Parse converts a cycle token to the first instant of its month.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cycle %q: want YYYY-MM", s)
	}
	return t, nil
}

// Next returns the cycle following s. s must be valid.
func Next(s string) string {
	t, err := Parse(s)
	if err != nil {
		return s
	}
	return t.AddDate(0, 1, 0).Format(layout)
}
