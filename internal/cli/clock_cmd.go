package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	punchapp "github.com/alexanderramin/punch/internal/app"
	"github.com/alexanderramin/punch/internal/cli/formatter"
)

type transitionFunc func(ctx context.Context) (*punchapp.CommandResult, error)

// runTransition executes one clock command and prints its confirmation.
func runTransition(cmd *cobra.Command, fn transitionFunc) error {
	res, err := fn(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCommandResult(res))
	return nil
}

func newClockInCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "in",
		Aliases: []string{"clock-in"},
		Short:   "Clock in and start a work session",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransition(cmd, app.Timeclock.ClockIn)
		},
	}
}

func newClockOutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "out",
		Aliases: []string{"clock-out"},
		Short:   "Clock out and close the work session",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransition(cmd, app.Timeclock.ClockOut)
		},
	}
}

func newBreakCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break",
		Short: "Start or end a planned break",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "start",
			Short: "Start the next break in the plan",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runTransition(cmd, app.Timeclock.StartBreak)
			},
		},
		&cobra.Command{
			Use:   "end",
			Short: "End the current break",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runTransition(cmd, app.Timeclock.EndBreak)
			},
		},
	)

	return cmd
}
