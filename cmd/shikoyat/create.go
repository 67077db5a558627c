package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ravshan77/shikoyatlar-web/internal/format"
	"github.com/ravshan77/shikoyatlar-web/internal/pipeline"
)

func newCreateCmd() *cobra.Command {
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
		Use:   "create",
		Short: "File a new complaint",
		Long:  "Registers a new complaint. Images are uploaded one by one before the record is created; a failed upload is skipped, the rest still attach.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, configPath, complaintInput{
				name: name, phone: phone, phoneTwo: phoneTwo,
				text: text, rent: rent, branch: branch, images: images,
			})
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

// complaintInput groups the record flags shared by create and edit.
type complaintInput struct {
	name, phone, phoneTwo, text, rent string
	branch                            int
	images                            []string
}

// buildForm converts CLI input into a pipeline form, normalizing phone
// numbers and opening image files. The caller must run the returned
// closers when done.
func buildForm(in complaintInput) (pipeline.Form, []func(), error) {
	form := pipeline.Form{
		ClientName:     in.name,
		ClientPhoneOne: format.Phone(in.phone),
		ComplaintText:  in.text,
		RentNumber:     in.rent,
		BranchID:       in.branch,
	}
	if in.phoneTwo != "" {
		form.ClientPhoneTwo = format.Phone(in.phoneTwo)
	}

	var closers []func()
	for _, path := range in.images {
		f, err := os.Open(path)
		if err != nil {
			for _, fn := range closers {
				fn()
			}
			return pipeline.Form{}, nil, fmt.Errorf("open image: %w", err)
		}
		closers = append(closers, func() { f.Close() })
		form.Images = append(form.Images, pipeline.Image{Filename: filepath.Base(path), Data: f})
	}
	return form, closers, nil
}

func runCreate(cmd *cobra.Command, configPath string, in complaintInput) error {
	_, client, sess, err := requireSession(configPath)
	if err != nil {
		return err
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
	if err := pipe.Submit(cmd.Context(), pipeline.Create{}, form, sess); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Complaint filed.")
	return nil
}
