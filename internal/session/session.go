package session

import (
	"fmt"
	"strings"

	"github.com/simon/ursa/internal/tmux"
)

// Session is one row of the browser, rebuilt wholesale on every refresh.
type Session struct {
	Name          string // tmux identifier, unique among current sessions
	Label         string
	Windows       int
	AttachedCount int
}

// List returns the sessions the executor reports, in the order it reports them.
func List(ex tmux.Executor) ([]Session, error) {
	infos, err := ex.ListSessions()
	if err != nil {
		return nil, err
	}

	sessions := make([]Session, 0, len(infos))
	for _, info := range infos {
		sessions = append(sessions, Session{
			Name:          info.Name,
			Label:         info.Name,
			Windows:       info.Windows,
			AttachedCount: info.AttachedCount,
		})
	}
	return sessions, nil
}

// Attached reports whether at least one client is attached.
func (s Session) Attached() bool {
	return s.AttachedCount > 0
}

// Details renders the window count and attached marker, e.g. "[2 windows] (attached)".
func (s Session) Details() string {
	var b strings.Builder
	if s.Windows == 1 {
		b.WriteString("[1 window]")
	} else {
		fmt.Fprintf(&b, "[%d windows]", s.Windows)
	}
	if s.Attached() {
		b.WriteString(" (attached)")
	}
	return b.String()
}

// Index returns the position of the named session, or -1.
func Index(sessions []Session, name string) int {
	for i, s := range sessions {
		if s.Name == name {
			return i
		}
	}
	return -1
}
