package main

import (
	"errors"
	"fmt"
	"strings"

	"taskcli/internal/app"
	"taskcli/internal/config"
	"taskcli/internal/handlers"

	"github.com/spf13/cobra"
)

// errReported означает, что ошибка уже напечатана пользователю.
var errReported = errors.New("ошибка уже выведена")

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks [command]",
		Short: "Local task manager",
		Long: `Local task manager backed by a JSON file.

Commands: add, test, update, delete, deleteall, list, show, filter.
Without a command the task manager asks for one.
Arguments after the command are ignored.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return fmt.Errorf("конфигурация: %w", err)
			}

			a := app.New(cfg, cmd.InOrStdin(), cmd.OutOrStdout())
			defer a.Close()

			if err := a.Init(cmd.Context()); err != nil {
				return err
			}

			err = a.Run(cmd.Context(), args)
			if errors.Is(err, handlers.ErrUnknownCommand) {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				fmt.Fprintf(cmd.ErrOrStderr(), "valid commands: %s\n", strings.Join(a.Commands(), ", "))
				return errReported
			}
			return err
		},
	}

	config.RegisterFlags(cmd.Flags())
	return cmd
}
