package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newBranchesCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "branches",
		Short: "List branches",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBranches(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	return cmd
}

func runBranches(cmd *cobra.Command, configPath string) error {
	_, client, _, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	branches, err := client.Branches(cmd.Context())
	if err != nil {
		return err
	}
	if len(branches) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No branches found.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, b := range branches {
		fmt.Fprintf(tw, "%d\t%s\n", b.ID, b.Name)
	}
	return tw.Flush()
}
