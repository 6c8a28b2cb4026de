// Package tui renders the feature stores as a tabbed terminal UI. Views read
// store snapshots and turn key presses into store actions; they never mutate
// feature state themselves.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Tab is one top-level screen backed by a store.
type Tab interface {
	ID() string
	Title() string
	Scope() string
	// Capturing reports whether free-text input owns the keyboard, in which
	// case global bindings are not consulted.
	Capturing() bool
	Update(m *Model, msg tea.KeyMsg) tea.Cmd
	View(m *Model, width, height int) string
	Changes() <-chan struct{}
}

// refresher is implemented by tabs holding widget state derived from the
// store, resynced whenever the store changes.
type refresher interface {
	Refresh()
}

type Model struct {
	width     int
	height    int
	tabs      []Tab
	activeTab int
	keys      *KeyRegistry
	logger    *slog.Logger
	status    string
	statusErr bool
	quitting  bool
}

func NewModel(tabs []Tab, keys *KeyRegistry, logger *slog.Logger) Model {
	if keys == nil {
		keys = NewKeyRegistry(DefaultKeyBindings())
	}
	if logger == nil {
		logger = slog.Default()
	}
	return Model{
		width:  100,
		height: 30,
		tabs:   tabs,
		keys:   keys,
		logger: logger,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.tabs))
	for _, t := range m.tabs {
		if cmd := listen(t.ID(), t.Changes()); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case StatusMsg:
		m.SetStatus(msg.Text)
		return m, nil
	case errMsg:
		m.SetError(msg.err)
		return m, nil
	case storeChangedMsg:
		t := m.tab(msg.Tab)
		if t == nil {
			return m, nil
		}
		if r, ok := t.(refresher); ok {
			r.Refresh()
		}
		return m, listen(t.ID(), t.Changes())
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if len(m.tabs) == 0 {
		return m, nil
	}
	active := m.tabs[m.activeTab]
	if !active.Capturing() {
		scope := active.Scope()
		switch {
		case m.keys.IsAction(msg, actionQuit, scope):
			m.quitting = true
			return m, tea.Quit
		case m.keys.IsAction(msg, actionNextTab, scope):
			m.SwitchTab((m.activeTab + 1) % len(m.tabs))
			return m, nil
		case m.keys.IsAction(msg, actionPrevTab, scope):
			m.SwitchTab((m.activeTab + len(m.tabs) - 1) % len(m.tabs))
			return m, nil
		}
	}
	cmd := active.Update(&m, msg)
	return m, cmd
}

func (m *Model) SetStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) SetError(err error) {
	if err == nil {
		m.status = ""
		m.statusErr = false
		return
	}
	m.logger.Error("ui error", "tab", m.ActiveTab(), "err", err)
	m.status = err.Error()
	m.statusErr = true
}

func (m Model) ActiveScope() string {
	if len(m.tabs) == 0 {
		return "app"
	}
	return m.tabs[m.activeTab].Scope()
}

func (m Model) ActiveTab() string {
	if len(m.tabs) == 0 {
		return ""
	}
	return m.tabs[m.activeTab].ID()
}

func (m *Model) SwitchTab(index int) {
	if index < 0 || index >= len(m.tabs) {
		return
	}
	m.activeTab = index
}

// SwitchTabByID activates the tab with id and reports whether one exists.
func (m *Model) SwitchTabByID(id string) bool {
	for i, t := range m.tabs {
		if t.ID() == id {
			m.activeTab = i
			return true
		}
	}
	return false
}

func (m Model) tab(id string) Tab {
	for _, t := range m.tabs {
		if t.ID() == id {
			return t
		}
	}
	return nil
}

func (m Model) View() string {
	if m.quitting {
		return "Goodbye\n"
	}
	header := m.renderHeader()
	status := m.renderStatus()
	footer := m.renderFooter()
	bodyHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(status)-lipgloss.Height(footer))
	var body string
	if len(m.tabs) > 0 && bodyHeight > 0 {
		body = m.tabs[m.activeTab].View(&m, max(1, m.width), bodyHeight)
	}
	body = fitHeight(body, bodyHeight)
	parts := []string{header, status}
	if bodyHeight > 0 {
		parts = append(parts, body)
	}
	parts = append(parts, footer)
	return fitHeight(strings.Join(parts, "\n"), max(1, m.height))
}

func (m Model) renderHeader() string {
	labels := make([]string, 0, len(m.tabs))
	for i, t := range m.tabs {
		label := fmt.Sprintf("%d:%s", i+1, t.Title())
		if i == m.activeTab {
			labels = append(labels, activeTabStyle.Render(label))
		} else {
			labels = append(labels, inactiveTabStyle.Render(label))
		}
	}
	left := headerAppStyle.Render("Contacts")
	right := tabSepStyle.Render(" ") + strings.Join(labels, tabSepStyle.Render("│"))
	right = ansi.Truncate(right, max(1, m.width), "")
	gap := 1
	if w := ansi.StringWidth(left) + ansi.StringWidth(right); w+1 < m.width {
		gap = m.width - w
	}
	return renderBar(headerBarStyle, max(1, m.width), left+strings.Repeat(" ", gap)+right)
}

func (m Model) renderStatus() string {
	msg := strings.TrimSpace(m.status)
	if msg == "" {
		msg = "Ready"
	}
	if m.statusErr {
		return renderBar(statusErrBarStyle, max(1, m.width), msg)
	}
	return renderBar(statusBarStyle, max(1, m.width), msg)
}

func (m Model) renderFooter() string {
	keyStyle := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(colorMuted)
	var parts []string
	for _, b := range m.keys.BindingsForScope(m.ActiveScope()) {
		h := b.binding().Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(h.Key)+" "+descStyle.Render(h.Desc))
	}
	line := strings.Join(parts, "  ")
	if line == "" {
		line = descStyle.Render("No shortcuts")
	}
	return renderBar(footerStyle, max(1, m.width), line)
}
