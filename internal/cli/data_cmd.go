package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/punch/internal/cli/formatter"
)

func newExportCmd(app *App) *cobra.Command {
	var out string
	var toClipboard bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all sessions, breaks and events as JSON",
		Long: `Writes {exportedAt, state} as indented JSON.

By default the file is named time-tracker-export-YYYY-MM-DD.json in the
current directory. Use --out - to print to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Timeclock.Export(cmd.Context())
			if err != nil {
				return err
			}

			if toClipboard {
				if app.CopyToClipboard == nil {
					return errors.New("clipboard is not available")
				}
				if err := app.CopyToClipboard(string(res.Data)); err != nil {
					return fmt.Errorf("copying export: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.StyleGreen.Render("✔ Export copied to clipboard"))
				if out == "" {
					return nil
				}
			}

			if out == "-" {
				_, err := cmd.OutOrStdout().Write(append(res.Data, '\n'))
				return err
			}
			path := out
			if path == "" {
				path = res.FileName
			}
			if err := os.WriteFile(path, append(res.Data, '\n'), 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGreen.Render("✔ Exported to"), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file, or - for stdout")
	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "Copy the export to the clipboard")

	return cmd
}

// confirm asks before a destructive command. --yes skips the question;
// without a terminal the command refuses instead of guessing.
func confirm(app *App, yes bool, title, description string) error {
	if yes {
		return nil
	}
	if !app.interactive() {
		return errors.New("not a terminal: pass --yes to confirm")
	}
	ask := app.Confirm
	if ask == nil {
		ask = huhConfirm
	}
	ok, err := ask(title, description)
	if errors.Is(err, huh.ErrUserAborted) {
		return errCanceled
	}
	if err != nil {
		return err
	}
	if !ok {
		return errCanceled
	}
	return nil
}

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every session, break and event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := confirm(app, yes, "Reset all data?", "This removes every session, break and event."); err != nil {
				return err
			}
			if err := app.Timeclock.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("✔ All data cleared"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")

	return cmd
}

func newSeedCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Add a demo session with one break already taken",
		Long: `Clocks in 2h20m ago and records Break 1 from 1h05m ago for 15 minutes,
leaving you working with Lunch as the next break.

Refuses while a session is open (existing sessions are never overwritten)
and when any session ended within the last 2h20m.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := confirm(app, yes, "Add demo data?", "Clocks in 2h20m ago with a finished first break."); err != nil {
				return err
			}
			return runTransition(cmd, app.Timeclock.SeedDemo)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")

	return cmd
}
