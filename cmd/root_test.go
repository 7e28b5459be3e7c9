package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon/ursa/internal/errors"
	"github.com/simon/ursa/internal/session"
	"github.com/simon/ursa/internal/tmux"
	"github.com/simon/ursa/internal/tui"
)

// attachTmux serves a fixed session list and fails attach for sessions
// that are not in it.
type attachTmux struct {
	tmux.Executor
	names    []string
	listErr  error
	attached []string
}

func (a *attachTmux) ListSessions() ([]tmux.SessionInfo, error) {
	if a.listErr != nil {
		return nil, a.listErr
	}
	infos := make([]tmux.SessionInfo, 0, len(a.names))
	for _, n := range a.names {
		infos = append(infos, tmux.SessionInfo{Name: n, Windows: 1})
	}
	return infos, nil
}

func (a *attachTmux) AttachSession(name string) error {
	for _, n := range a.names {
		if n == name {
			a.attached = append(a.attached, name)
			return nil
		}
	}
	return errors.SessionNotFound(name)
}

func browserOn(t *testing.T, ex tmux.Executor, name string) tui.Browser {
	t.Helper()
	sessions, err := session.List(ex)
	require.NoError(t, err)
	b := tui.NewBrowser(sessions, tui.Attach)
	require.True(t, b.Focus(name))
	return b
}

func sessionNames(b tui.Browser) []string {
	var out []string
	for _, s := range b.Sessions() {
		out = append(out, s.Name)
	}
	return out
}

func TestResumeAfterAttach(t *testing.T) {
	ex := &attachTmux{names: []string{"work", "chat"}}
	b := browserOn(t, ex, "chat")

	// Session created while attached.
	ex.names = append(ex.names, "late")
	b, opts := resume(ex, b, tui.Options{Status: "stale", StatusIsErr: true}, "chat")

	assert.Equal(t, []string{"chat"}, ex.attached)
	assert.Empty(t, opts.Status)
	assert.False(t, opts.StatusIsErr)
	assert.Equal(t, []string{"work", "chat", "late"}, sessionNames(b))
	assert.Equal(t, 1, b.Cursor())
}

func TestResumeAfterAttachToVanishedSession(t *testing.T) {
	ex := &attachTmux{names: []string{"work", "chat", "gone"}}
	b := browserOn(t, ex, "gone")

	ex.names = []string{"work", "chat"}
	b, opts := resume(ex, b, tui.Options{DefaultAction: tui.Attach}, "gone")

	assert.Empty(t, ex.attached)
	assert.Equal(t, "session 'gone' no longer exists", opts.Status)
	assert.True(t, opts.StatusIsErr)
	assert.Equal(t, []string{"work", "chat"}, sessionNames(b))
	assert.Equal(t, 1, b.Cursor())
}

func TestResumeKeepsAttachErrorOverRefreshError(t *testing.T) {
	ex := &attachTmux{names: []string{"work", "gone"}}
	b := browserOn(t, ex, "gone")

	ex.names = []string{"work"}
	ex.listErr = errors.New(errors.CategoryRuntime, "tmux list-sessions failed")
	b, opts := resume(ex, b, tui.Options{}, "gone")

	assert.Equal(t, "session 'gone' no longer exists", opts.Status)
	assert.True(t, opts.StatusIsErr)
	// The previous snapshot stays when the list cannot be read.
	assert.Equal(t, []string{"work", "gone"}, sessionNames(b))
}

func TestResumeReportsRefreshError(t *testing.T) {
	ex := &attachTmux{names: []string{"work"}}
	b := browserOn(t, ex, "work")

	ex.listErr = errors.New(errors.CategoryRuntime, "tmux list-sessions failed")
	_, opts := resume(ex, b, tui.Options{}, "work")

	assert.Equal(t, "tmux list-sessions failed", opts.Status)
	assert.True(t, opts.StatusIsErr)
}
