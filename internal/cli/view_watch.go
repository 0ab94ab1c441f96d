package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	punchapp "github.com/alexanderramin/punch/internal/app"
	"github.com/alexanderramin/punch/internal/cli/formatter"
	"github.com/alexanderramin/punch/internal/domain"
	"github.com/alexanderramin/punch/internal/ledger"
	"github.com/alexanderramin/punch/internal/service"
)

const watchTickInterval = time.Second

// ── key bindings ─────────────────────────────────────────────────────────────

type watchKeyMap struct {
	ClockIn    key.Binding
	ClockOut   key.Binding
	StartBreak key.Binding
	EndBreak   key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultWatchKeyMap() watchKeyMap {
	return watchKeyMap{
		ClockIn:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "clock in")),
		ClockOut:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "clock out")),
		StartBreak: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "start break")),
		EndBreak:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end break")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ClockIn, k.ClockOut, k.StartBreak, k.EndBreak, k.Quit, k.Help}
}

func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ClockIn, k.ClockOut},
		{k.StartBreak, k.EndBreak},
		{k.Reload, k.Help, k.Quit},
	}
}

// ── messages ─────────────────────────────────────────────────────────────────

// watchTickMsg drives the once-per-second recompute.
type watchTickMsg time.Time

// ledgerLoadedMsg carries a fresh copy of stored state and the revision it
// was read at.
type ledgerLoadedMsg struct {
	ledger   *ledger.Ledger
	revision string
	err      error
}

// storeChangedMsg signals that another process wrote to the database.
type storeChangedMsg struct{}

// revisionMsg reports the stored revision after a change signal.
type revisionMsg struct {
	revision string
	err      error
}

// commandDoneMsg reports the outcome of a key-triggered transition.
type commandDoneMsg struct {
	res *punchapp.CommandResult
	err error
}

// ── model ────────────────────────────────────────────────────────────────────

// watchModel is the live dashboard. It caches the ledger and recomputes the
// overview from the cache on every tick, so ticking never touches storage.
type watchModel struct {
	app     *App
	ctx     context.Context
	keys    watchKeyMap
	help    help.Model
	changes <-chan struct{}

	ledger   *ledger.Ledger
	revision string
	overview punchapp.Overview
	notice   string
	loading  bool
	width    int
}

func newWatchModel(ctx context.Context, app *App, changes <-chan struct{}) watchModel {
	return watchModel{
		app:     app,
		ctx:     ctx,
		keys:    defaultWatchKeyMap(),
		help:    help.New(),
		changes: changes,
		loading: true,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.tick(), m.waitForChange())
}

func (m watchModel) load() tea.Cmd {
	svc, ctx := m.app.Timeclock, m.ctx
	return func() tea.Msg {
		// Read the revision first so a write landing in between triggers
		// another reload instead of being missed.
		rev, err := svc.Revision(ctx)
		if err != nil {
			return ledgerLoadedMsg{err: err}
		}
		l, err := svc.Ledger(ctx)
		return ledgerLoadedMsg{ledger: l, revision: rev, err: err}
	}
}

func (m watchModel) checkRevision() tea.Cmd {
	svc, ctx := m.app.Timeclock, m.ctx
	return func() tea.Msg {
		rev, err := svc.Revision(ctx)
		return revisionMsg{revision: rev, err: err}
	}
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(watchTickInterval, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

func (m watchModel) run(fn transitionFunc) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		res, err := fn(ctx)
		return commandDoneMsg{res: res, err: err}
	}
}

func (m *watchModel) recompute() {
	if m.ledger == nil {
		return
	}
	m.overview = service.BuildOverview(m.ledger, m.app.now())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case watchTickMsg:
		m.recompute()
		return m, m.tick()

	case ledgerLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.notice = formatter.ErrorLine("Could not load state: " + msg.err.Error())
			return m, nil
		}
		m.ledger = msg.ledger
		m.revision = msg.revision
		m.recompute()
		return m, nil

	case storeChangedMsg:
		return m, tea.Batch(m.checkRevision(), m.waitForChange())

	case revisionMsg:
		// SQLite touches its files on reads too; only reload on a real write.
		if msg.err == nil && m.ledger != nil && msg.revision == m.revision {
			return m, nil
		}
		return m, m.load()

	case commandDoneMsg:
		if msg.err != nil {
			if domain.IsPrecondition(msg.err) {
				m.notice = formatter.Notice(msg.err.Error())
			} else {
				m.notice = formatter.ErrorLine(msg.err.Error())
			}
			return m, nil
		}
		m.notice = commandNotice(msg.res)
		return m, m.load()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m watchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	svc := m.app.Timeclock
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		m.notice = ""
		return m, m.load()
	case key.Matches(msg, m.keys.ClockIn):
		return m, m.run(svc.ClockIn)
	case key.Matches(msg, m.keys.ClockOut):
		return m, m.run(svc.ClockOut)
	case key.Matches(msg, m.keys.StartBreak):
		return m, m.run(svc.StartBreak)
	case key.Matches(msg, m.keys.EndBreak):
		return m, m.run(svc.EndBreak)
	}
	return m, nil
}

func commandNotice(res *punchapp.CommandResult) string {
	line := formatter.StatusColor(res.Overview.Status).Render("✔ "+res.Event.Label) +
		formatter.Dim(" at "+formatter.ClockTime(res.Event.At))
	if res.AutoClosedBreak != nil {
		line += formatter.Dim(fmt.Sprintf(" (ended %s first)", res.AutoClosedBreak.Label))
	}
	return line
}

func (m watchModel) View() string {
	if m.loading {
		return formatter.Dim("Loading…") + "\n"
	}
	var b strings.Builder
	if m.ledger != nil {
		b.WriteString(formatter.FormatOverview(m.overview, m.app.Config.DailyTargetMin))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(m.notice + "\n")
	}
	b.WriteString(m.help.View(m.keys) + "\n")
	return b.String()
}

// ── command ──────────────────────────────────────────────────────────────────

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live dashboard with a running timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			changes, stop := startChangeSource(app, cmd.ErrOrStderr())
			defer stop()

			p := tea.NewProgram(newWatchModel(ctx, app, changes),
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err := p.Run()
			return err
		},
	}
}

// startChangeSource starts the live-reload source. On failure it prints a
// notice and returns a nil channel; the returned stop func is always safe to
// call and releases the source either way.
func startChangeSource(app *App, errOut io.Writer) (<-chan struct{}, func()) {
	if app.Watch == nil {
		return nil, func() {}
	}
	src, err := app.Watch()
	if err != nil {
		fmt.Fprintln(errOut, formatter.Notice("live reload disabled: "+err.Error()))
		return nil, func() {}
	}
	stop := func() { _ = src.Stop() }
	if err := src.Start(); err != nil {
		stop()
		fmt.Fprintln(errOut, formatter.Notice("live reload disabled: "+err.Error()))
		return nil, func() {}
	}
	return src.Changes(), stop
}
