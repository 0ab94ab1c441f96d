package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/punch/internal/accounting"
	"github.com/alexanderramin/punch/internal/cli/formatter"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show clock state, running timer and today's hours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ov, err := app.Timeclock.Overview(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatOverview(*ov, app.Config.DailyTargetMin))
			return nil
		},
	}
}

// periodValue adapts accounting.Period to a pflag.Value so bad input is
// rejected while flags are parsed.
type periodValue accounting.Period

var _ pflag.Value = (*periodValue)(nil)

func (p *periodValue) String() string { return string(*p) }

func (p *periodValue) Set(s string) error {
	period, err := accounting.ParsePeriod(strings.ToLower(s))
	if err != nil {
		return err
	}
	*p = periodValue(period)
	return nil
}

func (p *periodValue) Type() string { return "period" }

func newTotalsCmd(app *App) *cobra.Command {
	period := periodValue(accounting.PeriodDay)
	var all bool

	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Show gross, break and net time for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			periods := []accounting.Period{accounting.Period(period)}
			if all {
				periods = accounting.Periods
			}
			for _, p := range periods {
				v, err := app.Timeclock.Totals(cmd.Context(), p)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTotals(v))
			}
			return nil
		},
	}

	cmd.Flags().Var(&period, "period", "Period to total: day, week or month")
	cmd.Flags().BoolVar(&all, "all", false, "Show day, week and month")
	cmd.MarkFlagsMutuallyExclusive("period", "all")

	return cmd
}

func newPlanCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the break plan and which break comes next",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, err := app.Timeclock.NextBreakInfo(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlan(nb, app.Config.BreakScope))
			return nil
		},
	}
}

func newLogCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "List recent events, sessions and breaks, newest first",
		Long: `Lists the event trail, then each work session as "start → end (N min)"
and each break with its planned and actual length.

--limit caps every list separately.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				limit = app.Config.LogLimit
			}
			events, err := app.Timeclock.Events(cmd.Context(), limit)
			if err != nil {
				return err
			}
			l, err := app.Timeclock.Ledger(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatLog(events,
				newestFirst(l.WorkSessions(), limit),
				newestFirst(l.BreakRecords(), limit),
				app.now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum rows per list (0 for all; defaults to log_limit)")

	return cmd
}

// newestFirst returns the last limit items of a chronological slice in
// reverse order. limit <= 0 keeps them all.
func newestFirst[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		items = items[len(items)-limit:]
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	return out
}
