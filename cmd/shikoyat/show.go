package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one complaint in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid complaint id %q", args[0])
			}
			return runShow(cmd, configPath, id)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	return cmd
}

func runShow(cmd *cobra.Command, configPath string, id int) error {
	_, client, _, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	c, err := client.Complaint(cmd.Context(), id)
	if err != nil {
		return err
	}

	printComplaintDetail(cmd.OutOrStdout(), c)
	return nil
}
