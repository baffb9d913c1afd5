package cmd

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"github.com/taoky/httpclock/pkg/httpdate"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <item>",
		Short: "List various items",
		Args:  cobra.NoArgs,
		RunE:  showHelp,
	}
	cmd.AddCommand(listHostsCmd())
	return cmd
}

func listHostsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hosts",
		Short: "List the time servers that would be asked, in order",
		Args:  cobra.NoArgs,
	}
	config := httpdate.DefaultConfig()
	cmd.Flags().StringArrayVarP(&config.Hosts, "host", "H", nil, "Time server (can be specified multiple times)")
	cmd.Flags().IntVarP(&config.Port, "port", "P", config.Port, "TCP port of the time servers")
	var hosts hostsFlags
	hosts.InstallFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := hosts.resolve(nil, &config); err != nil {
			return err
		}
		table := tablewriter.NewTable(
			cmd.OutOrStdout(),
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

		table.Header("Order", "Host", "Port")
		for i, h := range config.Hosts {
			if err := table.Append([]string{strconv.Itoa(i + 1), h, strconv.Itoa(config.Port)}); err != nil {
				return err
			}
		}
		return table.Render()
	}
	return cmd
}
