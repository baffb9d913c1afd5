package httpdate

import "errors"

var (
	// ErrConnect is returned when no candidate host accepted a connection.
	ErrConnect = errors.New("no time server reachable")
	// ErrProtocol is returned when the response ended (or timed out) before a
	// Date header was found.
	ErrProtocol = errors.New("no Date header in response")
	// ErrParse is returned when the Date header value is not an HTTP-date.
	ErrParse = errors.New("malformed HTTP date")

	ErrLineTooLong = errors.New("Date header value too long")
)
