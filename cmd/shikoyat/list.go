package main

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		configPath string
		page       int
		status     string
		branch     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List complaints",
		Long:  "Shows one page of the complaints registry, optionally filtered by status and branch.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, configPath, page, status, branch)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (in_progress or completed)")
	cmd.Flags().IntVar(&branch, "branch", 0, "filter by branch id")
	return cmd
}

func runList(cmd *cobra.Command, configPath string, page int, status string, branch int) error {
	_, client, _, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	filters, err := parseFilters(status, branch)
	if err != nil {
		return err
	}

	list, pg, err := client.Complaints(cmd.Context(), page, filters)
	if err != nil {
		return err
	}

	printComplaintTable(cmd.OutOrStdout(), list, pg)
	return nil
}
