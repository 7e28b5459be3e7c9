package tmux

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strconv"
	"strings"
	"unicode"

	"github.com/simon/ursa/internal/errors"
)

// listFormat is tab-delimited so session names containing colons parse.
const listFormat = "#{session_name}\t#{session_windows}\t#{session_attached}"

type SessionInfo struct {
	Name          string
	Windows       int
	AttachedCount int
}

// FindTmux locates the tmux binary. An empty path searches $PATH.
func FindTmux(path string) (string, error) {
	if path == "" {
		path = "tmux"
	}
	bin, err := exec.LookPath(path)
	if err != nil {
		return "", errors.TmuxNotFound(err)
	}
	return bin, nil
}

// parseSessionList parses tmux list-sessions output into SessionInfo structs,
// preserving the order tmux reported them in.
func parseSessionList(output string) []SessionInfo {
	var sessions []SessionInfo
	for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) < 3 || parts[0] == "" {
			continue
		}

		windows, _ := strconv.Atoi(parts[1])
		attached, _ := strconv.Atoi(parts[2])

		sessions = append(sessions, SessionInfo{
			Name:          parts[0],
			Windows:       windows,
			AttachedCount: attached,
		})
	}
	return sessions
}

// target returns an exact-match target so "work" never resolves to "work2".
func target(name string) string {
	return "=" + name
}

// filterTMUX drops TMUX from env so a nested attach-session is not refused
// when the variable leaked from an outer shell.
func filterTMUX(env []string) []string {
	out := make([]string, 0, len(env))
	for _, kv := range env {
		if strings.HasPrefix(kv, "TMUX=") {
			continue
		}
		out = append(out, kv)
	}
	return out
}

// isNoServer reports whether stderr says there is no tmux server at all.
func isNoServer(stderr string) bool {
	return strings.Contains(stderr, "no server running") ||
		strings.Contains(stderr, "error connecting to")
}

// classify maps a failed tmux invocation onto the error taxonomy.
// name is the session being targeted, newName the name being claimed (if any).
func classify(op, name, newName, stderr string, err error) error {
	if stderrors.Is(err, exec.ErrNotFound) || stderrors.Is(err, fs.ErrNotExist) {
		return errors.TmuxNotFound(err)
	}

	msg := strings.TrimSpace(stderr)
	switch {
	case strings.Contains(msg, "duplicate session"):
		return errors.NameConflict(newName)
	case strings.Contains(msg, "can't find session"),
		strings.Contains(msg, "session not found"),
		isNoServer(msg):
		return errors.SessionNotFound(name)
	}

	if msg != "" {
		err = fmt.Errorf("%s", msg)
	}
	return errors.Wrap(errors.CategoryRuntime, "tmux "+op+" failed", err)
}

// IsNameRune reports whether r may appear in a session name. tmux rewrites
// '.' and ':' and most punctuation breaks target parsing.
func IsNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}

// ValidateName rejects names tmux would refuse or rewrite.
func ValidateName(name string) error {
	if name == "" {
		return errors.InvalidName("session name cannot be empty")
	}
	for _, r := range name {
		if !IsNameRune(r) {
			return errors.InvalidName(fmt.Sprintf("invalid name %q: use only letters, digits, hyphens, underscores", name))
		}
	}
	return nil
}
