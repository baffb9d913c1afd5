package util

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
)

// MaxSize is the largest value a SizeFlag accepts.
const MaxSize = 1 << 20

// SizeFlag is a byte count given either as a plain number or in humanized
// form ("256", "4KiB", "1kB").
type SizeFlag int

func (s SizeFlag) String() string {
	return humanize.IBytes(uint64(s))
}

func (s *SizeFlag) Set(value string) error {
	size, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		size, err = humanize.ParseBytes(value)
		if err != nil {
			return err
		}
	}
	if size == 0 || size > MaxSize {
		return fmt.Errorf("size must be between 1 and %s", humanize.IBytes(MaxSize))
	}
	*s = SizeFlag(size)
	return nil
}

func (s SizeFlag) Type() string {
	return "size"
}
