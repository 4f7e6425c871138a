package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newUserCommand() *cobra.Command {
	userCommand := &cobra.Command{
		Use:   "user",
		Short: "Manage learner accounts",
	}
	userCommand.AddCommand(newUserAddCommand())
	return userCommand
}

func newUserAddCommand() *cobra.Command {
	var passwordStdin bool
	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Create an account that can sign in to the API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !passwordStdin {
				return fmt.Errorf("the password must be given with --password-stdin")
			}
			password, err := readPassword(cmd.InOrStdin())
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()
			authService, err := a.newAuth()
			if err != nil {
				return err
			}

			u, err := authService.Register(cmd.Context(), args[0], password)
			if err != nil {
				return fmt.Errorf("authService.Register(%s) > %w", args[0], err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created user %s\n", u.Username)
			return err
		},
	}
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	return cmd
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password > %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
