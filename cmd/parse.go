package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/taoky/httpclock/pkg/httpdate"
)

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <http-date>",
		Short: "Parse an HTTP Date header value without touching the network",
		Example: `  httpclock parse "Sun, 31 Jul 2016 22:52:16 GMT"
  httpclock parse --offset 8 Sun, 31 Jul 2016 22:52:16 GMT`,
		Args: cobra.MinimumNArgs(1),
	}
	config := httpdate.DefaultConfig()
	var jsonOutput bool
	cmd.Flags().IntVarP(&config.OffsetHours, "offset", "z", config.OffsetHours, "Fixed UTC offset in hours for local time (no DST)")
	cmd.Flags().BoolVar(&config.Lenient, "lenient", config.Lenient, "Treat non-numeric date fields as 0 instead of failing")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Print result as JSON")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		p := httpdate.Parser{OffsetHours: config.OffsetHours, Lenient: config.Lenient}
		rec, err := p.Parse(strings.Join(args, " "))
		if err != nil {
			printError(cmd.ErrOrStderr(), err)
			cmd.SilenceErrors = true
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), rec)
		}
		printRecord(cmd.OutOrStdout(), rec)
		return nil
	}
	return cmd
}
