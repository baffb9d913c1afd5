package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/taoky/httpclock/pkg/clock"
	"github.com/taoky/httpclock/pkg/httpdate"
	"github.com/taoky/httpclock/pkg/systemd"
)

func daemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon [host...]",
		Short: "Keep fetching the time periodically (SIGHUP reloads hosts file and log, SIGUSR1 prints stats)",
		Args:  cobra.ArbitraryArgs,
	}
	config := httpdate.DefaultConfig()
	config.InstallFlags(cmd.Flags())
	syncConfig := clock.DefaultConfig()
	syncConfig.InstallFlags(cmd.Flags())
	var hosts hostsFlags
	hosts.InstallFlags(cmd.Flags())
	var absolute bool
	cmd.Flags().BoolVarP(&absolute, "absolute", "a", false, "Show absolute time in stats")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		// keep the command line host list across reloads
		flagHosts := config.Hosts
		newFetcher := func() (*httpdate.Fetcher, error) {
			c := config
			c.Hosts = flagHosts
			if err := hosts.resolve(args, &c); err != nil {
				return nil, err
			}
			return httpdate.New(c)
		}
		fetcher, err := newFetcher()
		if err != nil {
			return err
		}
		syncer, err := clock.NewSyncer(syncConfig, fetcher)
		if err != nil {
			return fmt.Errorf("failed to create syncer: %w", err)
		}
		cmd.SilenceUsage = true
		logger := syncer.Logger()
		fetcher.Logger = logger
		logger.WithField("hosts", fetcher.Config.Hosts).Info("starting")

		syncer.OnSync = func(res httpdate.Result) {
			status := fmt.Sprintf("Synced with %s at %s", res.Host, res.Record.UTC().Format(time.RFC3339))
			if err := systemd.NotifyStatus(status); err != nil {
				logger.WithError(err).Warn("failed to notify systemd")
			}
		}

		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGHUP, syscall.SIGUSR1)
		defer signal.Stop(c)
		go func() {
			for sig := range c {
				switch sig {
				case syscall.SIGHUP:
					systemd.MustNotifyReloading()
					if err := syncer.OpenLogFile(); err != nil {
						logger.WithError(err).Error("failed to reopen log file")
					}
					if f, err := newFetcher(); err != nil {
						logger.WithError(err).Error("failed to reload hosts, keeping the old list")
					} else {
						f.Logger = logger
						syncer.SetFetcher(f)
						logger.WithField("hosts", f.Config.Hosts).Info("hosts reloaded")
					}
					systemd.MustNotifyReady()
				case syscall.SIGUSR1:
					if err := syncer.PrintStats(cmd.OutOrStdout(), absolute); err != nil {
						logger.WithError(err).Error("failed to print stats")
					}
				}
			}
		}()

		if err := systemd.NotifyReady(); err != nil {
			return fmt.Errorf("failed to notify systemd: %w", err)
		}

		ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
		defer stop()
		err = syncer.Run(ctx)
		systemd.NotifyStopping()
		syncer.PrintStats(cmd.OutOrStdout(), absolute)
		if errors.Is(err, ctx.Err()) {
			return nil
		}
		return err
	}
	return cmd
}
