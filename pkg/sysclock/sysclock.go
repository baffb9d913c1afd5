// Package sysclock applies a fetched time to the system clock.
package sysclock

import (
	"fmt"
	"time"
)

// Skew returns how far the local clock is ahead of reference.
func Skew(reference, now time.Time) time.Duration {
	return now.Sub(reference)
}

// Set steps the system clock to t, adjusted by the time elapsed since
// the reading was taken. It needs CAP_SYS_TIME (or root).
func Set(t time.Time, readAt time.Time) error {
	target := t.Add(time.Since(readAt))
	if err := set(target); err != nil {
		return fmt.Errorf("set system clock to %s: %w", target.UTC().Format(time.RFC3339), err)
	}
	return nil
}
