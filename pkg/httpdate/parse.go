package httpdate

import (
	"fmt"
	"strconv"
	"time"
)

// Unknown marks breakdown fields that are not computed.
const Unknown = -1

const dateFields = 8

// Breakdown holds calendar fields re-derived from an epoch instant.
type Breakdown struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`

	// Always Unknown.
	Weekday int `json:"weekday"`
	YearDay int `json:"yearday"`
	IsDST   int `json:"isdst"`
}

// Record is the result of parsing one Date header value, e.g.
// "Sun, 31 Jul 2016 22:52:16 GMT".
type Record struct {
	Raw         string `json:"raw"`
	WeekdayStr  string `json:"weekday"`
	MonthStr    string `json:"month_str"`
	TimezoneStr string `json:"timezone"`

	Month  int `json:"month"`
	Day    int `json:"day"`
	Year   int `json:"year"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`

	UTCInstant     int64     `json:"utc"`
	OffsetSeconds  int       `json:"offset"`
	LocalInstant   int64     `json:"local"`
	LocalBreakdown Breakdown `json:"local_breakdown"`
}

// UTC returns the parsed instant in UTC.
func (r Record) UTC() time.Time {
	return time.Unix(r.UTCInstant, 0).UTC()
}

// Local returns the parsed instant in a fixed zone of OffsetSeconds (no DST).
func (r Record) Local() time.Time {
	return time.Unix(r.UTCInstant, 0).In(time.FixedZone("", r.OffsetSeconds))
}

// Parser turns Date header values into Records.
//
// By default every numeric field must be a base-10 integer. With Lenient set,
// numeric fields are converted like strtol(3): an optional sign and leading
// digits are used and anything else yields 0. An unknown month is rejected
// in both modes.
type Parser struct {
	OffsetHours int
	Lenient     bool
}

// ParseDate parses s with a strict Parser using the given UTC offset.
func ParseDate(s string, offsetHours int) (Record, error) {
	return Parser{OffsetHours: offsetHours}.Parse(s)
}

// Parse never modifies s, so callers may keep using it afterwards.
func (p Parser) Parse(s string) (Record, error) {
	fields := splitDateFields(s)
	if len(fields) != dateFields {
		return Record{}, fmt.Errorf("%w: expected %d fields, got %d in %q", ErrParse, dateFields, len(fields), s)
	}

	rec := Record{
		Raw:         s,
		WeekdayStr:  fields[0],
		MonthStr:    fields[2],
		TimezoneStr: fields[7],
	}
	rec.Month = MonthFromAbbrev(rec.MonthStr)
	if rec.Month == 0 {
		return Record{}, fmt.Errorf("%w: unknown month %q", ErrParse, rec.MonthStr)
	}

	numeric := []struct {
		dst  *int
		name string
		s    string
	}{
		{&rec.Day, "day", fields[1]},
		{&rec.Year, "year", fields[3]},
		{&rec.Hour, "hour", fields[4]},
		{&rec.Minute, "minute", fields[5]},
		{&rec.Second, "second", fields[6]},
	}
	for _, f := range numeric {
		if p.Lenient {
			*f.dst = atoiLenient(f.s)
			continue
		}
		n, err := strconv.Atoi(f.s)
		if err != nil {
			return Record{}, fmt.Errorf("%w: invalid %s %q", ErrParse, f.name, f.s)
		}
		*f.dst = n
	}

	rec.UTCInstant = time.Date(rec.Year, time.Month(rec.Month), rec.Day,
		rec.Hour, rec.Minute, rec.Second, 0, time.UTC).Unix()
	rec.OffsetSeconds = p.OffsetHours * 60 * 60
	rec.LocalInstant = rec.UTCInstant + int64(rec.OffsetSeconds)
	rec.LocalBreakdown = breakdown(rec.LocalInstant)
	return rec, nil
}

func breakdown(instant int64) Breakdown {
	t := time.Unix(instant, 0).UTC()
	return Breakdown{
		Year:    t.Year(),
		Month:   int(t.Month()),
		Day:     t.Day(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
		Weekday: Unknown,
		YearDay: Unknown,
		IsDST:   Unknown,
	}
}

func isDateDelim(c byte) bool {
	return c == ',' || c == ' ' || c == ':'
}

// splitDateFields returns the non-empty runs between ',', ' ' and ':'.
// It stops after dateFields+1 tokens, which is enough to reject the input.
func splitDateFields(s string) []string {
	res := make([]string, 0, dateFields+1)
	for i := 0; i < len(s) && len(res) <= dateFields; {
		if isDateDelim(s[i]) {
			i++
			continue
		}
		j := i
		for j < len(s) && !isDateDelim(s[j]) {
			j++
		}
		res = append(res, s[i:j])
		i = j
	}
	return res
}

// atoiLenient mimics strtol(s, NULL, 10).
func atoiLenient(s string) int {
	i := 0
	for i < len(s) && (s[i] == '\t' || s[i] == '\n' || s[i] == '\v' || s[i] == '\f' || s[i] == '\r') {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}
