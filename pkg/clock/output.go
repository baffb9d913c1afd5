package clock

import (
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const TimeFormat = time.DateTime

func formatSince(t time.Time, absolute bool) string {
	if t.IsZero() {
		return "never"
	}
	if absolute {
		return t.Format(TimeFormat)
	}
	return humanize.Time(t)
}

// PrintStats writes one row per host that was asked so far.
func (s *Syncer) PrintStats(w io.Writer, absolute bool) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAutoWrap(tw.WrapNone),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithPadding(tw.Padding{
			Right:     "  ",
			Overwrite: true,
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
	)
	table.Header("Host", "Tries", "OK", "Failed", "Last Sync", "Skew", "Last Error")

	stats := s.Stats()
	for _, host := range s.SortedHosts() {
		h := stats[host]
		skew := ""
		if !h.LastSync.IsZero() {
			skew = h.LastSkew.String()
		}
		row := []string{
			host,
			strconv.FormatUint(h.Attempts, 10),
			strconv.FormatUint(h.Successes, 10),
			strconv.FormatUint(h.Failures, 10),
			formatSince(h.LastSync, absolute),
			skew,
			h.LastError,
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if n := s.ConnectFailures(); n > 0 {
		row := []string{"(unreachable)", strconv.FormatUint(n, 10), "0", strconv.FormatUint(n, 10), "", "", ""}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
