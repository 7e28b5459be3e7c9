package tmux

import (
	"bytes"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"

	"github.com/simon/ursa/internal/errors"
)

// runFunc runs tmux non-interactively and returns its stdout and stderr.
type runFunc func(bin string, args ...string) (stdout, stderr string, err error)

// interactiveFunc runs tmux attached to the process's own terminal.
type interactiveFunc func(bin string, args ...string) error

// LocalExecutor runs tmux commands on the local machine.
type LocalExecutor struct {
	bin         string
	insideTmux  bool
	run         runFunc
	interactive interactiveFunc
}

// NewLocalExecutor resolves the tmux binary (tmuxPath, or $PATH when empty).
// It fails with a CategoryUnavailable error when tmux cannot be found.
func NewLocalExecutor(tmuxPath string) (*LocalExecutor, error) {
	bin, err := FindTmux(tmuxPath)
	if err != nil {
		return nil, err
	}
	return &LocalExecutor{
		bin:         bin,
		insideTmux:  os.Getenv("TMUX") != "",
		run:         runCommand,
		interactive: runInteractive,
	}, nil
}

func runCommand(bin string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func runInteractive(bin string, args ...string) error {
	cmd := exec.Command(bin, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = filterTMUX(os.Environ())
	return cmd.Run()
}

func (l *LocalExecutor) tmux(args ...string) (string, string, error) {
	log.Debug("tmux", "args", args)
	stdout, stderr, err := l.run(l.bin, args...)
	if err != nil {
		log.Debug("tmux failed", "args", args, "stderr", stderr, "err", err)
	}
	return stdout, stderr, err
}

// ListSessions returns every session in the order tmux reports them.
// A missing server means there are no sessions, not a failure.
func (l *LocalExecutor) ListSessions() ([]SessionInfo, error) {
	out, stderr, err := l.tmux("list-sessions", "-F", listFormat)
	if err != nil {
		if isNoServer(stderr) {
			return nil, nil
		}
		return nil, classify("list-sessions", "", "", stderr, err)
	}
	return parseSessionList(out), nil
}

// NewSession creates a new detached session.
func (l *LocalExecutor) NewSession(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	_, stderr, err := l.tmux("new-session", "-d", "-s", name)
	if err != nil {
		return classify("new-session", name, name, stderr, err)
	}
	return nil
}

func (l *LocalExecutor) RenameSession(name, newName string) error {
	if err := ValidateName(newName); err != nil {
		return err
	}
	_, stderr, err := l.tmux("rename-session", "-t", target(name), newName)
	if err != nil {
		return classify("rename-session", name, newName, stderr, err)
	}
	return nil
}

// KillSession terminates a session. A session that is already gone counts
// as killed.
func (l *LocalExecutor) KillSession(name string) error {
	_, stderr, err := l.tmux("kill-session", "-t", target(name))
	if err != nil {
		err = classify("kill-session", name, "", stderr, err)
		if errors.HasCategory(err, errors.CategoryNotFound) {
			log.Debug("session already gone", "session", name)
			return nil
		}
		return err
	}
	return nil
}

// HasSession checks if a tmux session exists.
func (l *LocalExecutor) HasSession(name string) bool {
	_, _, err := l.tmux("has-session", "-t", target(name))
	return err == nil
}

// AttachSession runs tmux attach as a child process (returns on detach).
// Inside tmux the current client is switched instead, since nesting
// clients is refused by tmux.
func (l *LocalExecutor) AttachSession(name string) error {
	if !l.HasSession(name) {
		return errors.SessionNotFound(name)
	}

	if l.insideTmux {
		_, stderr, err := l.tmux("switch-client", "-t", target(name))
		if err != nil {
			return classify("switch-client", name, "", stderr, err)
		}
		return nil
	}

	log.Debug("tmux attach", "session", name)
	if err := l.interactive(l.bin, "attach-session", "-t", target(name)); err != nil {
		// tmux wrote its reason to the terminal we handed over; the only
		// failure worth telling apart is the session vanishing meanwhile.
		if !l.HasSession(name) {
			return errors.SessionNotFound(name)
		}
		return classify("attach-session", name, "", "", err)
	}
	return nil
}
