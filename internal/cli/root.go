package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/punch/internal/cli/formatter"
	"github.com/alexanderramin/punch/internal/config"
	"github.com/alexanderramin/punch/internal/domain"
	"github.com/alexanderramin/punch/internal/service"
)

// ChangeSource delivers a signal whenever the stored state may have been
// changed by another process.
type ChangeSource interface {
	Start() error
	Stop() error
	Changes() <-chan struct{}
}

// App holds the services and terminal hooks used by CLI commands.
type App struct {
	Timeclock service.TimeclockService
	Config    config.Config

	// IsInteractive reports whether stdin is a terminal. Destructive commands
	// require --yes when it returns false.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Defaults to a huh confirmation form.
	Confirm func(title, description string) (bool, error)
	// CopyToClipboard places text on the system clipboard.
	CopyToClipboard func(text string) error
	// Now is the wall clock used for relative timestamps and the dashboard tick.
	Now func() time.Time
	// Watch builds the change source for the live dashboard. Nil disables
	// automatic reloads.
	Watch func() (ChangeSource, error)
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "punch" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "punch",
		Short:         "Clock in, take planned breaks, see your hours",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newClockInCmd(app),
		newClockOutCmd(app),
		newBreakCmd(app),
		newStatusCmd(app),
		newTotalsCmd(app),
		newPlanCmd(app),
		newLogCmd(app),
		newExportCmd(app),
		newResetCmd(app),
		newSeedCmd(app),
		newWatchCmd(app),
	)

	return root
}

// errCanceled is returned when the user declines a confirmation.
var errCanceled = errors.New("canceled")

// ReportError prints err the way the CLI presents it and returns the process
// exit code. Refused commands are notices; anything else is an error.
func ReportError(w io.Writer, err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errCanceled):
		fmt.Fprintln(w, formatter.Dim("Canceled."))
		return 1
	case domain.IsPrecondition(err):
		fmt.Fprintln(w, formatter.Notice(err.Error()))
		return 2
	default:
		fmt.Fprintln(w, formatter.ErrorLine("Error: "+err.Error()))
		return 1
	}
}
