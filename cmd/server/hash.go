package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskly/taskly-api/internal/service/auth"
)

var errNoPassword = errors.New("usage: taskly-api hash [--cost N] <password>")

// hashCommand prints the bcrypt hash of a password, for fixtures and manual
// account repair.
func hashCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash",
		Usage:     "Print the bcrypt hash of a password",
		ArgsUsage: "<password>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "cost",
				Usage: "bcrypt work factor",
				Value: bcrypt.DefaultCost,
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			password := cmd.Args().First()
			if password == "" {
				return errNoPassword
			}

			hash, err := auth.NewBcryptHasher(int(cmd.Int("cost"))).Hash(password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, hash)
			return err
		},
	}
}
