package tui

import tea "github.com/charmbracelet/bubbletea"

type StatusMsg struct {
	Text string
}

type errMsg struct {
	err error
}

// storeChangedMsg reports that the store behind tab signalled a change.
type storeChangedMsg struct {
	Tab string
}

func StatusCmd(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

// ErrorCmd shows err in the status bar and logs it. A nil err clears the
// status.
func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg { return errMsg{err: err} }
}

// listen blocks until changes fires. The model re-arms it after every
// delivery so each burst of store changes yields at most one redraw.
func listen(tab string, changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		<-changes
		return storeChangedMsg{Tab: tab}
	}
}
