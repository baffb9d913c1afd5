package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/taoky/httpclock/pkg/httpdate"
)

var (
	labelColor = color.New(color.Bold)
	okColor    = color.New(color.FgGreen)
	errColor   = color.New(color.FgRed, color.Bold)
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printRecord(w io.Writer, rec httpdate.Record) {
	line := func(label, format string, a ...any) {
		labelColor.Fprintf(w, "%-10s", label)
		fmt.Fprintf(w, format+"\n", a...)
	}
	line("Raw", "%q", rec.Raw)
	line("UTC", "%s", okColor.Sprint(rec.UTC().Format(time.RFC3339)))
	line("Local", "%s (UTC%+d, no DST)", rec.Local().Format(time.DateTime), rec.OffsetSeconds/3600)
	line("Fields", "%s %02d %s(%d) %04d %02d:%02d:%02d %s",
		rec.WeekdayStr, rec.Day, rec.MonthStr, rec.Month, rec.Year,
		rec.Hour, rec.Minute, rec.Second, rec.TimezoneStr)
	line("Epoch", "%d (local %d)", rec.UTCInstant, rec.LocalInstant)
}

func printError(w io.Writer, err error) {
	errColor.Fprint(w, "error: ")
	fmt.Fprintln(w, err)
}
