//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package sysclock

import (
	"time"

	"golang.org/x/sys/unix"
)

func set(t time.Time) error {
	tv := unix.NsecToTimeval(t.UnixNano())
	return unix.Settimeofday(&tv)
}
