package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/simon/ursa/internal/errors"
	"github.com/simon/ursa/internal/session"
	"github.com/simon/ursa/internal/tmux"
)

type editKind int

const (
	editRename editKind = iota
	editCreate
)

// editState is the line-editing sub-mode. A nil *editState on Model means
// Browsing.
type editState struct {
	kind     editKind
	original string // session being renamed
}

// Options configure a Model.
type Options struct {
	DefaultAction Action
	ShowDetails   bool
	// Status is shown until the first key press, e.g. an attach failure
	// reported by the caller when the browser resumes.
	Status      string
	StatusIsErr bool
}

// Model is the bubbletea model of the session browser. Every tmux call is
// made synchronously from Update, so a key press is fully handled before
// the next one is read.
type Model struct {
	browser       Browser
	executor      tmux.Executor
	edit          *editState
	input         textinput.Model
	defaultAction Action
	showDetails   bool
	status        string
	statusIsErr   bool
	width, height int
	scrollOffset  int    // index of the first visible row
	AttachTarget  string // set when the user asks to attach
	quitting      bool
}

func NewModel(ex tmux.Executor, b Browser, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 128
	ti.Width = 40
	// A blinking cursor would need a tick command; keep it static so every
	// update is synchronous.
	ti.Cursor.SetMode(cursor.CursorStatic)

	return Model{
		browser:       b,
		executor:      ex,
		input:         ti,
		defaultAction: opts.DefaultAction,
		showDetails:   opts.ShowDetails,
		status:        opts.Status,
		statusIsErr:   opts.StatusIsErr,
	}
}

// Browser returns the navigation state, so it survives an attach round trip.
func (m Model) Browser() Browser {
	return m.browser
}

// Editing reports whether the line-editing sub-mode is active.
func (m Model) Editing() bool {
	return m.edit != nil
}

// Status returns the transient status message.
func (m Model) Status() string {
	return m.status
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	nm := next.(Model)
	nm.ensureCursorVisible()
	return nm, cmd
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, msg.Width-12)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.edit != nil {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	m.statusIsErr = false

	if m.edit != nil {
		return m.handleEditKey(msg)
	}

	switch {
	case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.Quit), key.Matches(msg, keys.Escape):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		m.browser.Up()
	case key.Matches(msg, keys.Down):
		m.browser.Down()
	case key.Matches(msg, keys.Right):
		m.browser.NextAction()
	case key.Matches(msg, keys.Left):
		m.browser.PrevAction()
	case key.Matches(msg, keys.Refresh):
		m.refresh()
	case key.Matches(msg, keys.New):
		return m, m.startEdit(editCreate, "")
	case key.Matches(msg, keys.Enter):
		return m.dispatch()
	}
	return m, nil
}

// dispatch performs the selected action on the session under the cursor.
func (m Model) dispatch() (tea.Model, tea.Cmd) {
	sel, ok := m.browser.Selected()
	if !ok {
		return m, nil
	}

	switch m.browser.Action() {
	case Attach:
		m.AttachTarget = sel.Name
		m.quitting = true
		return m, tea.Quit

	case Rename:
		return m, m.startEdit(editRename, sel.Name)

	case Delete:
		if err := m.executor.KillSession(sel.Name); err != nil {
			m.fail("kill session", err)
		} else {
			log.Info("killed session", "session", sel.Name)
			m.setStatus(fmt.Sprintf("Killed '%s'", sel.Name))
			m.browser.SetAction(m.defaultAction)
		}
		m.refresh()
	}
	return m, nil
}

// startEdit enters the line-editing sub-mode. Renames start from the
// current name.
func (m *Model) startEdit(kind editKind, original string) tea.Cmd {
	m.edit = &editState{kind: kind, original: original}
	m.input.Reset()
	if kind == editRename {
		m.input.Placeholder = ""
		m.input.SetValue(original)
		m.input.CursorEnd()
	} else {
		m.input.Placeholder = "new session name"
	}
	return m.input.Focus()
}

func (m *Model) stopEdit() {
	m.edit = nil
	m.input.Blur()
	m.input.Reset()
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape), key.Matches(msg, keys.CtrlC):
		m.stopEdit()
		return m, nil
	case key.Matches(msg, keys.Enter):
		return m.confirmEdit()
	}

	if msg.Type == tea.KeyRunes {
		msg.Runes = filterNameRunes(msg.Runes)
		if len(msg.Runes) == 0 {
			return m, nil
		}
	} else if msg.Type == tea.KeySpace {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) confirmEdit() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.input.Value())
	if err := tmux.ValidateName(name); err != nil {
		m.fail("validate name", err)
		return m, nil
	}

	edit := *m.edit
	m.stopEdit()

	switch edit.kind {
	case editRename:
		if name == edit.original {
			m.refresh()
			return m, nil
		}
		if err := m.executor.RenameSession(edit.original, name); err != nil {
			m.fail("rename session", err)
			m.refresh()
			return m, nil
		}
		log.Info("renamed session", "from", edit.original, "to", name)
		m.setStatus(fmt.Sprintf("Renamed '%s' to '%s'", edit.original, name))
		m.browser.SetAction(m.defaultAction)
		m.refresh()
		m.browser.Focus(name)
		return m, nil

	case editCreate:
		if err := m.executor.NewSession(name); err != nil {
			m.fail("create session", err)
			m.refresh()
			return m, nil
		}
		log.Info("created session", "session", name)
		m.browser.SetAction(m.defaultAction)
		m.refresh()
		m.browser.Focus(name)
		m.AttachTarget = name
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// refresh re-fetches the session list. On failure the previous snapshot
// stays on screen together with the error.
func (m *Model) refresh() {
	sessions, err := session.List(m.executor)
	if err != nil {
		m.fail("refresh", err)
		return
	}
	m.browser.Replace(sessions)
}

// maxVisibleSessions is the number of rows that fit between the title and
// the footer. An unknown height shows every row.
func (m Model) maxVisibleSessions() int {
	n := m.browser.Len()
	if m.height <= 0 {
		return n
	}
	// title, blank, blank, status, help and the trailing newline
	chrome := 6
	if m.edit != nil && m.edit.kind == editCreate {
		chrome++
	}
	if n <= m.height-chrome {
		return n
	}
	// two more lines for the "more" markers
	return max(1, m.height-chrome-2)
}

func (m *Model) ensureCursorVisible() {
	maxVis := m.maxVisibleSessions()
	if maxVis <= 0 {
		m.scrollOffset = 0
		return
	}
	cur := m.browser.Cursor()
	if cur < m.scrollOffset {
		m.scrollOffset = cur
	}
	if cur >= m.scrollOffset+maxVis {
		m.scrollOffset = cur - maxVis + 1
	}
	maxOffset := max(0, m.browser.Len()-maxVis)
	if m.scrollOffset > maxOffset {
		m.scrollOffset = maxOffset
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusIsErr = false
}

func (m *Model) fail(op string, err error) {
	log.Warn(op+" failed", "err", err)
	// Keep the first error of a chain (e.g. rename failure then refresh).
	if m.statusIsErr && m.status != "" {
		return
	}
	m.status = errors.Short(err)
	m.statusIsErr = true
}

func filterNameRunes(runes []rune) []rune {
	out := runes[:0:0]
	for _, r := range runes {
		if tmux.IsNameRune(r) {
			out = append(out, r)
		}
	}
	return out
}
