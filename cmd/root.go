package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/simon/ursa/internal/config"
	"github.com/simon/ursa/internal/errors"
	"github.com/simon/ursa/internal/logging"
	"github.com/simon/ursa/internal/session"
	"github.com/simon/ursa/internal/tmux"
	"github.com/simon/ursa/internal/tui"
)

func SetVersionInfo(version, commit string) {
	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)
}

var rootCmd = &cobra.Command{
	Use:           "ursa",
	Short:         "Browse, attach, rename and delete tmux sessions",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return errors.Wrap(errors.CategoryRuntime, "failed to load config", err).
				WithSuggestion("fix or remove " + config.Path())
		}

		closeLog := logging.Setup(cfg.LogFile, cfg.LogLevel)
		defer closeLog()

		ex, err := tmux.NewLocalExecutor(cfg.TmuxPath)
		if err != nil {
			return err
		}
		sessions, err := session.List(ex)
		if err != nil {
			return err
		}

		if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
			return errors.New(errors.CategoryInvalidInput, "ursa needs an interactive terminal")
		}

		action, _ := tui.ParseAction(cfg.DefaultAction)
		opts := tui.Options{
			DefaultAction: action,
			ShowDetails:   cfg.Details(),
		}
		return run(ex, tui.NewBrowser(sessions, action), opts)
	},
}

// run owns the terminal hand-off: the TUI holds raw mode and the alternate
// screen only while Program.Run is active, so tmux gets a clean terminal for
// attach and the browser resumes afterwards.
func run(ex tmux.Executor, browser tui.Browser, opts tui.Options) error {
	log.Info("browser started", "sessions", browser.Len())
	for {
		m := tui.NewModel(ex, browser, opts)
		p := tea.NewProgram(m, tea.WithAltScreen())

		finalModel, err := p.Run()
		if err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}

		final := finalModel.(tui.Model)
		if final.AttachTarget == "" {
			break
		}

		log.Info("attaching", "session", final.AttachTarget)
		browser, opts = resume(ex, final.Browser(), opts, final.AttachTarget)
		// Loop restarts TUI
	}

	log.Info("browser closed")
	return nil
}

// resume attaches to target and prepares the browser for the next round.
// An attach failure is carried into the resumed browser as an error status,
// and the list is re-read either way so the cursor lands on a live row.
func resume(ex tmux.Executor, browser tui.Browser, opts tui.Options, target string) (tui.Browser, tui.Options) {
	opts.Status, opts.StatusIsErr = "", false

	// Attach as child process; returns when user detaches
	if err := ex.AttachSession(target); err != nil {
		log.Warn("attach failed", "session", target, "err", err)
		opts.Status, opts.StatusIsErr = errors.Short(err), true
	}

	sessions, err := session.List(ex)
	if err != nil {
		log.Warn("refresh failed", "err", err)
		if !opts.StatusIsErr {
			opts.Status, opts.StatusIsErr = errors.Short(err), true
		}
		return browser, opts
	}
	browser.Replace(sessions)
	return browser, opts
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errors.Format(err))
		os.Exit(1)
	}
}
