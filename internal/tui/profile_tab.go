package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/contacts/internal/profile"
	"github.com/jask/contacts/internal/store"
)

// ProfileTab exercises equality-gated refreshes: only name changes count.
type ProfileTab struct {
	ctx   context.Context
	store *store.Store[profile.State, profile.Action]
	names []string
	next  int
	mocks int
}

func NewProfileTab(ctx context.Context, st *store.Store[profile.State, profile.Action]) *ProfileTab {
	return &ProfileTab{
		ctx:   ctx,
		store: st,
		names: []string{"Blob", "Blob Jr", "Blob Sr", "Blob Esq"},
	}
}

func (t *ProfileTab) ID() string               { return "profile" }
func (t *ProfileTab) Title() string            { return "Profile" }
func (t *ProfileTab) Scope() string            { return scopeProfile }
func (t *ProfileTab) Capturing() bool          { return false }
func (t *ProfileTab) Changes() <-chan struct{} { return t.store.Changes() }

func (t *ProfileTab) Update(m *Model, msg tea.KeyMsg) tea.Cmd {
	keys := m.keys
	switch {
	case keys.IsAction(msg, actionNewName, scopeProfile):
		name := t.names[t.next%len(t.names)]
		t.next++
		t.store.Send(t.ctx, profile.UpdateName{Name: name})
	case keys.IsAction(msg, actionSameName, scopeProfile):
		t.store.Send(t.ctx, profile.UpdateName{Name: t.store.State().UserName})
	case keys.IsAction(msg, actionNoChange, scopeProfile):
		t.store.Send(t.ctx, profile.NoChange{})
	case keys.IsAction(msg, actionMock, scopeProfile):
		t.mocks++
		t.store.Send(t.ctx, profile.SetMock{Value: fmt.Sprintf("mock-%d", t.mocks)})
	}
	return nil
}

func (t *ProfileTab) View(m *Model, width, height int) string {
	s := t.store.State()
	name := s.UserName
	if name == "" {
		name = mutedStyle.Render("(unset)")
	}
	lines := []string{
		sectionTitleStyle.Render("Profile"),
		"",
		"ID:        " + s.ID.String(),
		"Name:      " + name,
		fmt.Sprintf("Refreshes: %d", t.store.Revision()),
		"",
		mutedStyle.Render("Mock values and repeated names do not count as refreshes."),
	}
	return strings.Join(lines, "\n")
}
