package tui

import (
	"fmt"
	"strings"

	"github.com/simon/ursa/internal/session"
)

// Action is the operation Enter performs on the session under the cursor.
type Action int

const (
	Attach Action = iota
	Rename
	Delete
	numActions
)

var actionNames = [numActions]string{"Attach", "Rename", "Delete"}

func (a Action) String() string {
	if a < 0 || a >= numActions {
		return "Unknown"
	}
	return actionNames[a]
}

// Next cycles Attach -> Rename -> Delete -> Attach.
func (a Action) Next() Action {
	return (a + 1) % numActions
}

// Prev is the inverse of Next.
func (a Action) Prev() Action {
	return (a + numActions - 1) % numActions
}

// ParseAction maps a config value ("attach", "rename", "delete") to an Action.
// An empty string is Attach.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "attach":
		return Attach, nil
	case "rename":
		return Rename, nil
	case "delete":
		return Delete, nil
	}
	return Attach, fmt.Errorf("unknown action %q", s)
}

// Browser is the navigation state: the session snapshot, the cursor into it
// and the single action selector shared by all rows.
// cursor is always a valid index while sessions is non-empty.
type Browser struct {
	sessions []session.Session
	cursor   int
	action   Action
}

func NewBrowser(sessions []session.Session, action Action) Browser {
	b := Browser{action: action}
	b.Replace(sessions)
	return b
}

func (b Browser) Sessions() []session.Session { return b.sessions }
func (b Browser) Cursor() int                  { return b.cursor }
func (b Browser) Action() Action               { return b.action }
func (b Browser) Len() int                     { return len(b.sessions) }
func (b Browser) Empty() bool                  { return len(b.sessions) == 0 }

// Selected returns the session under the cursor.
func (b Browser) Selected() (session.Session, bool) {
	if b.Empty() {
		return session.Session{}, false
	}
	return b.sessions[b.cursor], true
}

func (b *Browser) Up() {
	if n := len(b.sessions); n > 0 {
		b.cursor = (b.cursor - 1 + n) % n
	}
}

func (b *Browser) Down() {
	if n := len(b.sessions); n > 0 {
		b.cursor = (b.cursor + 1) % n
	}
}

// NextAction and PrevAction are disabled while there is nothing to act on.
func (b *Browser) NextAction() {
	if !b.Empty() {
		b.action = b.action.Next()
	}
}

func (b *Browser) PrevAction() {
	if !b.Empty() {
		b.action = b.action.Prev()
	}
}

func (b *Browser) SetAction(a Action) {
	b.action = a
}

// Replace swaps in a fresh snapshot and clamps the cursor into it.
func (b *Browser) Replace(sessions []session.Session) {
	b.sessions = sessions
	switch {
	case len(sessions) == 0:
		b.cursor = 0
	case b.cursor >= len(sessions):
		b.cursor = len(sessions) - 1
	case b.cursor < 0:
		b.cursor = 0
	}
}

// Focus moves the cursor to the named session if it is present.
func (b *Browser) Focus(name string) bool {
	if i := session.Index(b.sessions, name); i >= 0 {
		b.cursor = i
		return true
	}
	return false
}
