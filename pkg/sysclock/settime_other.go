//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package sysclock

import (
	"errors"
	"time"
)

func set(time.Time) error {
	return errors.New("setting the system clock is not supported on this platform")
}
