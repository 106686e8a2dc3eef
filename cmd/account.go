package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dtroode/basketd/internal/credential"
	"github.com/dtroode/basketd/internal/repository/postgres"
	"github.com/dtroode/basketd/internal/service"
)

func newAccountCommand() *cobra.Command {
	account := &cobra.Command{
		Use:   "account",
		Short: "Manage user accounts",
	}

	var password string
	create := &cobra.Command{
		Use:   "create <email>",
		Short: "Create an account with a hashed password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := passwordFrom(password, cmd.InOrStdin())
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.migrate(cmd.Context()); err != nil {
				return err
			}

			auth := service.NewAuth(postgres.NewAccountRepository(a.db), a.hasher, a.logger)
			id, err := auth.CreateAccount(cmd.Context(), args[0], secret)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "created account %d\n", id)
			return err
		},
	}
	create.Flags().StringVarP(&password, "password", "p", "", "account password (read from stdin when empty)")

	account.AddCommand(create)
	return account
}

func newHashPasswordCommand() *cobra.Command {
	var params credential.Params

	cmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the stored form of a password",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			secret, err := passwordFrom(arg, cmd.InOrStdin())
			if err != nil {
				return err
			}

			hash, err := credential.NewHasher(params).Hash(secret)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
	cmd.Flags().Uint32Var(&params.Time, "time", 1, "argon2id iterations")
	cmd.Flags().Uint32Var(&params.MemKiB, "mem", 64*1024, "argon2id memory in KiB")
	cmd.Flags().Uint8Var(&params.Par, "par", 4, "argon2id parallelism")

	return cmd
}

// passwordFrom returns value, or the first line of r when value is empty.
func passwordFrom(value string, r io.Reader) (string, error) {
	if value != "" {
		return value, nil
	}

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("password must not be empty")
	}
	return line, nil
}
