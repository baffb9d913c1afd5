package cmd

import (
	"github.com/spf13/cobra"
)

func showHelp(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "httpclock",
		Short: "Get the current time from the Date header of plain HTTP servers",
		Args:  cobra.NoArgs,
		RunE:  showHelp,
	}
	rootCmd.AddCommand(
		fetchCmd(),
		parseCmd(),
		daemonCmd(),
		listCmd(),
	)
	return rootCmd
}
