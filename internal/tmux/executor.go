package tmux

// Executor abstracts the tmux operations the browser dispatches.
type Executor interface {
	ListSessions() ([]SessionInfo, error)
	NewSession(name string) error
	RenameSession(name, newName string) error
	KillSession(name string) error
	HasSession(name string) bool
	// AttachSession hands the terminal to tmux and returns when the
	// client detaches or the session ends.
	AttachSession(name string) error
}
