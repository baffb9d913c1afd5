package httpdate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	as := assert.New(t)
	const s = "Sun, 31 Jul 2016 22:52:16 GMT"
	rec, err := ParseDate(s, 0)
	if !as.NoError(err) {
		return
	}
	as.Equal(s, rec.Raw)
	as.Equal("Sun", rec.WeekdayStr)
	as.Equal("Jul", rec.MonthStr)
	as.Equal("GMT", rec.TimezoneStr)
	as.Equal(31, rec.Day)
	as.Equal(7, rec.Month)
	as.Equal(2016, rec.Year)
	as.Equal(22, rec.Hour)
	as.Equal(52, rec.Minute)
	as.Equal(16, rec.Second)

	expected := time.Date(2016, time.July, 31, 22, 52, 16, 0, time.UTC)
	as.Equal(expected.Unix(), rec.UTCInstant)
	as.Equal(rec.UTCInstant, rec.LocalInstant)
	as.True(expected.Equal(rec.UTC()))
	// the input is a real HTTP date, so the derived time agrees with the stdlib
	std, err := time.Parse(time.RFC1123, s)
	as.NoError(err)
	as.Equal(std.Unix(), rec.UTCInstant)
}

func TestParseDateOffset(t *testing.T) {
	as := assert.New(t)
	const s = "Sun, 31 Jul 2016 22:52:16 GMT"
	for _, offset := range []int{-12, -8, -1, 0, 1, 5, 14} {
		rec, err := ParseDate(s, offset)
		if !as.NoError(err) {
			continue
		}
		as.Equal(rec.UTCInstant+int64(offset)*3600, rec.LocalInstant, "offset %d", offset)
		as.Equal(offset*3600, rec.OffsetSeconds)
		_, zoneOffset := rec.Local().Zone()
		as.Equal(offset*3600, zoneOffset)
		as.True(rec.UTC().Equal(rec.Local()))
	}

	rec, err := ParseDate(s, -8)
	if as.NoError(err) {
		as.Equal(Breakdown{
			Year: 2016, Month: 7, Day: 31, Hour: 14, Minute: 52, Second: 16,
			Weekday: Unknown, YearDay: Unknown, IsDST: Unknown,
		}, rec.LocalBreakdown)
	}
	rec, err = ParseDate(s, 2)
	if as.NoError(err) {
		// crosses midnight and the month boundary
		as.Equal(2016, rec.LocalBreakdown.Year)
		as.Equal(8, rec.LocalBreakdown.Month)
		as.Equal(1, rec.LocalBreakdown.Day)
		as.Equal(0, rec.LocalBreakdown.Hour)
	}
}

func TestParseDateCalendar(t *testing.T) {
	as := assert.New(t)
	rec, err := ParseDate("Mon, 29 Feb 2016 00:00:00 GMT", 0)
	if as.NoError(err) {
		as.Equal(time.Date(2016, 2, 29, 0, 0, 0, 0, time.UTC).Unix(), rec.UTCInstant)
	}
	rec, err = ParseDate("Thu, 01 Jan 1970 00:00:00 GMT", 0)
	if as.NoError(err) {
		as.EqualValues(0, rec.UTCInstant)
	}
	rec, err = ParseDate("Fri, 31 Dec 1999 23:59:59 GMT", 1)
	if as.NoError(err) {
		as.Equal(2000, rec.LocalBreakdown.Year)
		as.Equal(1, rec.LocalBreakdown.Month)
		as.Equal(1, rec.LocalBreakdown.Day)
		as.Equal(0, rec.LocalBreakdown.Hour)
		as.Equal(59, rec.LocalBreakdown.Second)
	}
}

func TestParseDateFieldCount(t *testing.T) {
	as := assert.New(t)
	for _, s := range []string{
		"garbage no commas here",
		"",
		",,, :::",
		"Sun, 31 Jul 2016 22:52 GMT",
		"Sun, 31 Jul 2016 22:52:16 GMT extra",
		"Sunday, 31-Jul-16 22:52:16 GMT",
		"Sun Jul 31 22:52:16 2016",
	} {
		_, err := ParseDate(s, 0)
		as.ErrorIs(err, ErrParse, "%q", s)
	}

	// repeated delimiters produce no empty fields
	rec, err := ParseDate("Sun,,  31 Jul 2016 22::52:16   GMT", 0)
	if as.NoError(err) {
		as.Equal(52, rec.Minute)
		as.Equal("GMT", rec.TimezoneStr)
	}
}

func TestParseDateUnknownMonth(t *testing.T) {
	as := assert.New(t)
	for _, p := range []Parser{{}, {Lenient: true}} {
		rec, err := p.Parse("Sun, 31 jul 2016 22:52:16 GMT")
		as.ErrorIs(err, ErrParse)
		as.Equal(Record{}, rec)
	}
}

func TestParseDateNumericPolicy(t *testing.T) {
	as := assert.New(t)
	const s = "Sun, xx Jul 2016 22:5x:16 GMT"

	_, err := Parser{}.Parse(s)
	as.ErrorIs(err, ErrParse)

	rec, err := Parser{Lenient: true}.Parse(s)
	if as.NoError(err) {
		as.Equal(0, rec.Day)
		as.Equal(5, rec.Minute)
		// day 0 normalizes to the last day of the previous month
		as.Equal(time.Date(2016, 6, 30, 22, 5, 16, 0, time.UTC).Unix(), rec.UTCInstant)
	}
}

func TestParseDateDigits(t *testing.T) {
	as := assert.New(t)
	for _, tc := range []struct {
		s                      string
		day, hour, minute, sec int
	}{
		{"Tue, 01 Mar 2022 00:00:00 GMT", 1, 0, 0, 0},
		{"Wed, 9 Nov 2005 7:08:09 GMT", 9, 7, 8, 9},
		{"Sat, 18 Oct 2026 23:59:59 GMT", 18, 23, 59, 59},
	} {
		rec, err := ParseDate(tc.s, 0)
		if !as.NoError(err) {
			continue
		}
		as.Equal(tc.day, rec.Day)
		as.Equal(tc.hour, rec.Hour)
		as.Equal(tc.minute, rec.Minute)
		as.Equal(tc.sec, rec.Second)
	}
}

func TestSplitDateFields(t *testing.T) {
	as := assert.New(t)
	as.Equal([]string{"Sun", "31", "Jul", "2016", "22", "52", "16", "GMT"},
		splitDateFields("Sun, 31 Jul 2016 22:52:16 GMT"))
	as.Empty(splitDateFields(""))
	as.Len(splitDateFields("a b c d e f g h i j k l"), dateFields+1)
}

func TestAtoiLenient(t *testing.T) {
	as := assert.New(t)
	as.Equal(42, atoiLenient("42"))
	as.Equal(12, atoiLenient("12abc"))
	as.Equal(-7, atoiLenient("-7"))
	as.Equal(3, atoiLenient("+3"))
	as.Equal(0, atoiLenient("abc"))
	as.Equal(0, atoiLenient(""))
	as.Equal(0, atoiLenient("-"))
}

func TestParseErrorWrapping(t *testing.T) {
	_, err := ParseDate("nope", 0)
	assert.True(t, errors.Is(err, ErrParse))
	assert.False(t, errors.Is(err, ErrProtocol))
}
