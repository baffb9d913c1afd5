package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/taoky/httpclock/pkg/httpdate"
	"github.com/taoky/httpclock/pkg/sysclock"
)

func fetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [host...]",
		Short: "Fetch the current time once",
		Args:  cobra.ArbitraryArgs,
	}
	config := httpdate.DefaultConfig()
	config.InstallFlags(cmd.Flags())
	var hosts hostsFlags
	hosts.InstallFlags(cmd.Flags())
	var jsonOutput, setClock, verbose bool
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Print result as JSON")
	cmd.Flags().BoolVar(&setClock, "set-clock", false, "Set the system clock to the fetched time (needs root)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log each connection attempt")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := hosts.resolve(args, &config); err != nil {
			return err
		}
		f, err := httpdate.New(config)
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		logger := logrus.New()
		logger.SetOutput(cmd.ErrOrStderr())
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		}
		f.Logger = logger

		ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
		defer stop()
		res, err := f.Fetch(ctx)
		readAt := time.Now()
		if err != nil {
			printError(cmd.ErrOrStderr(), err)
			cmd.SilenceErrors = true
			return err
		}

		if jsonOutput {
			if err := printJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
		} else {
			w := cmd.OutOrStdout()
			labelColor.Fprintf(w, "%-10s", "Host")
			okColor.Fprintf(w, "%s", res.Host)
			labelColor.Fprintf(w, " (%s)\n", res.Elapsed.Round(time.Millisecond))
			printRecord(w, res.Record)
		}

		if setClock {
			return sysclock.Set(res.Record.UTC(), readAt)
		}
		return nil
	}
	return cmd
}

// contextOrBackground keeps commands usable when run without ExecuteContext.
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
