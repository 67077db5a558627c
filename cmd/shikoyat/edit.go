package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ravshan77/shikoyatlar-web/internal/pipeline"
)

func newEditCmd() *cobra.Command {
	var (
		configPath string
		name       string
		phone      string
		phoneTwo   string
		text       string
		rent       string
		branch     int
		images     []string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing complaint",
		Long:  "Updates a complaint in progress. Only the given flags change; everything else keeps its current value. Completed complaints cannot be edited. New --image files are appended to the already-attached ones.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid complaint id %q", args[0])
			}
			in := complaintInput{
				name: name, phone: phone, phoneTwo: phoneTwo,
				text: text, rent: rent, branch: branch, images: images,
			}
			return runEdit(cmd, configPath, id, in)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	cmd.Flags().StringVar(&name, "name", "", "client name")
	cmd.Flags().StringVar(&phone, "phone", "", "client phone number")
	cmd.Flags().StringVar(&phoneTwo, "phone2", "", "secondary phone number")
	cmd.Flags().StringVar(&text, "text", "", "complaint text")
	cmd.Flags().StringVar(&rent, "rent", "", "rent number")
	cmd.Flags().IntVar(&branch, "branch", 0, "branch id")
	cmd.Flags().StringArrayVar(&images, "image", nil, "image file to attach (repeatable)")
	return cmd
}

func runEdit(cmd *cobra.Command, configPath string, id int, in complaintInput) error {
	_, client, sess, err := requireSession(configPath)
	if err != nil {
		return err
	}

	current, err := client.Complaint(cmd.Context(), id)
	if err != nil {
		return err
	}

	mode, err := pipeline.EditModeFor(current)
	if err != nil {
		return err
	}

	// Unset flags keep the record's current values.
	if in.name == "" {
		in.name = current.ClientName
	}
	if in.phone == "" {
		in.phone = current.ClientPhoneOne
	}
	if in.phoneTwo == "" && current.ClientPhoneTwo != nil {
		in.phoneTwo = *current.ClientPhoneTwo
	}
	if in.text == "" {
		in.text = current.ComplaintText
	}
	if in.rent == "" {
		in.rent = current.RentNumber
	}
	if in.branch == 0 {
		in.branch = current.BranchID
	}

	form, closers, err := buildForm(in)
	if err != nil {
		return err
	}
	defer func() {
		for _, fn := range closers {
			fn()
		}
	}()

	pipe := pipeline.New(client, client)
	if err := pipe.Submit(cmd.Context(), mode, form, sess); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Complaint #%d updated.\n", id)
	return nil
}
