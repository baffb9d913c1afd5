package httpdate

import (
	"errors"
	"fmt"
	"io"
)

// DefaultMaxLineLen bounds the Date header value collected by ScanDateHeader.
const DefaultMaxLineLen = 256

type scanState int

const (
	seekNewline scanState = iota
	matchD
	matchDa
	matchDat
	matchDate
	matchColon
	captured
)

// expected byte that moves each match state forward
var scanExpect = [...]byte{
	matchD:     'D',
	matchDa:    'a',
	matchDat:   't',
	matchDate:  'e',
	matchColon: ':',
}

func (s scanState) next(c byte) scanState {
	if s == seekNewline {
		if c == '\n' {
			return matchD
		}
		return seekNewline
	}
	if c == scanExpect[s] {
		return s + 1
	}
	// A mismatching '\n' does not restart the match at matchD.
	return seekNewline
}

// ScanDateHeader reads r until the first line starting with "Date:" and returns
// the header value: the byte after the colon is skipped and the value runs up
// to (not including) the next '\r'. The rest of the stream is left unread.
//
// If r ends before the header is found, ErrProtocol is returned. Values longer
// than maxLen bytes fail with ErrLineTooLong; maxLen <= 0 means DefaultMaxLineLen.
func ScanDateHeader(r io.ByteReader, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxLineLen
	}
	state := seekNewline
	for state != captured {
		c, err := r.ReadByte()
		if err != nil {
			return "", scanError(err)
		}
		state = state.next(c)
	}

	// separator
	if _, err := r.ReadByte(); err != nil {
		return "", scanError(err)
	}

	value := make([]byte, 0, 32)
	for {
		c, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return "", scanError(err)
		}
		if c == '\r' {
			break
		}
		if len(value) >= maxLen {
			return "", fmt.Errorf("%w: %w (limit %d bytes)", ErrProtocol, ErrLineTooLong, maxLen)
		}
		value = append(value, c)
	}
	return string(value), nil
}

func scanError(err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: stream ended", ErrProtocol)
	}
	return fmt.Errorf("%w: %w", ErrProtocol, err)
}
