package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCodePattern = regexp.MustCompile(`^\d{6}$`)

func newLoginCmd() *cobra.Command {
	var (
		configPath string
		code       string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a one-time code",
		Long:  "Exchanges a 6-digit one-time code for a worker session and saves it for later commands. Without --code the code is read from the terminal with echo off.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, configPath, code)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	cmd.Flags().StringVar(&code, "code", "", "6-digit one-time code (prompted when omitted)")
	return cmd
}

func runLogin(cmd *cobra.Command, configPath, code string) error {
	_, client, _, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if code == "" {
		code, err = promptCode(cmd)
		if err != nil {
			return err
		}
	}
	if !loginCodePattern.MatchString(code) {
		return fmt.Errorf("code must be exactly 6 digits")
	}

	sess, err := client.Authenticate(cmd.Context(), code)
	if err != nil {
		return err
	}

	tf, err := tokenFile()
	if err != nil {
		return err
	}
	if err := tf.Save(sess); err != nil {
		return err
	}

	fmt.Fprintf(out, "Signed in as %s (worker #%d)\n", sess.WorkerName, sess.WorkerID)
	return nil
}

// promptCode reads the code without echoing it when stdin is a
// terminal, so the one-time code never lands in scrollback.
func promptCode(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Code: ")
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("read code: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read code: %w", err)
	}
	return strings.TrimSpace(line), nil
}
