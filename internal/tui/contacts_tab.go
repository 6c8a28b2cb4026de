package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jask/contacts/internal/addcontact"
	"github.com/jask/contacts/internal/alert"
	"github.com/jask/contacts/internal/contact"
	"github.com/jask/contacts/internal/contacts"
	"github.com/jask/contacts/internal/presentation"
	"github.com/jask/contacts/internal/store"
)

var errNoContact = errors.New("no contact to delete")

// ContactsTab shows the contacts list, the add sheet and the delete prompt.
type ContactsTab struct {
	ctx       context.Context
	store     *store.Store[contacts.State, contacts.Action]
	threshold float64
	cursor    int
	input     textinput.Model
	sheetID   uuid.UUID
}

func NewContactsTab(ctx context.Context, st *store.Store[contacts.State, contacts.Action], threshold float64) *ContactsTab {
	in := textinput.New()
	in.Prompt = "Name: "
	in.Placeholder = "Name"
	in.CharLimit = 64
	in.Width = 32
	t := &ContactsTab{ctx: ctx, store: st, threshold: threshold, input: in}
	t.Refresh()
	return t
}

func (t *ContactsTab) ID() string               { return "contacts" }
func (t *ContactsTab) Title() string            { return "Contacts" }
func (t *ContactsTab) Changes() <-chan struct{} { return t.store.Changes() }

func (t *ContactsTab) Scope() string {
	return scopeFor(t.store.State())
}

func scopeFor(s contacts.State) string {
	switch {
	case s.Alert != nil:
		return scopeContactsAlert
	case s.AddContact != nil:
		return scopeContactsSheet
	}
	return scopeContacts
}

func (t *ContactsTab) Capturing() bool {
	return t.Scope() == scopeContactsSheet
}

// Refresh resyncs the name field with the sheet and clamps the cursor.
func (t *ContactsTab) Refresh() {
	s := t.store.State()
	t.cursor = clampCursor(t.cursor, len(s.Contacts))
	if s.AddContact == nil {
		t.input.Blur()
		t.sheetID = uuid.Nil
		return
	}
	if s.AddContact.Contact.ID != t.sheetID {
		t.sheetID = s.AddContact.Contact.ID
		t.input.SetValue(s.AddContact.Contact.Name)
		t.input.Focus()
	}
}

func (t *ContactsTab) send(a contacts.Action) {
	t.store.Send(t.ctx, a)
	t.Refresh()
}

func (t *ContactsTab) Update(m *Model, msg tea.KeyMsg) tea.Cmd {
	s := t.store.State()
	switch scopeFor(s) {
	case scopeContactsAlert:
		return t.updateAlert(m, msg, s)
	case scopeContactsSheet:
		return t.updateSheet(m, msg, s)
	}
	return t.updateList(m, msg, s)
}

func (t *ContactsTab) updateList(m *Model, msg tea.KeyMsg, s contacts.State) tea.Cmd {
	keys := m.keys
	switch {
	case keys.IsAction(msg, actionUp, scopeContacts):
		t.cursor = clampCursor(t.cursor-1, len(s.Contacts))
	case keys.IsAction(msg, actionDown, scopeContacts):
		t.cursor = clampCursor(t.cursor+1, len(s.Contacts))
	case keys.IsAction(msg, actionAdd, scopeContacts):
		t.send(contacts.AddButtonTapped{})
	case keys.IsAction(msg, actionDelete, scopeContacts):
		if len(s.Contacts) == 0 {
			return ErrorCmd(errNoContact)
		}
		t.send(contacts.DeleteButtonTapped{ID: s.Contacts[t.cursor].ID})
	}
	return nil
}

func (t *ContactsTab) updateSheet(m *Model, msg tea.KeyMsg, s contacts.State) tea.Cmd {
	switch {
	case m.keys.IsAction(msg, actionSave, scopeContactsSheet):
		// s was read before the save; its name is the one the sheet commits.
		name := strings.TrimSpace(s.AddContact.Contact.Name)
		t.sendSheet(addcontact.SaveButtonTapped{})
		if name == "" {
			return StatusCmd("Saved unnamed contact")
		}
		return StatusCmd(fmt.Sprintf("Saved %s", name))
	case m.keys.IsAction(msg, actionCancel, scopeContactsSheet):
		t.sendSheet(addcontact.CancelButtonTapped{})
		return nil
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	if v := t.input.Value(); v != s.AddContact.Contact.Name {
		t.sendSheet(addcontact.SetName{Name: v})
	}
	return cmd
}

func (t *ContactsTab) sendSheet(a addcontact.Action) {
	t.send(contacts.AddContact{Presentation: presentation.Presented(a)})
}

func (t *ContactsTab) updateAlert(m *Model, msg tea.KeyMsg, s contacts.State) tea.Cmd {
	switch {
	case m.keys.IsAction(msg, actionConfirm, scopeContactsAlert):
		for _, b := range s.Alert.ResolvedButtons() {
			if b.Role == alert.RoleDestructive && b.Action != nil {
				t.send(contacts.Alert{Presentation: presentation.Presented(*b.Action)})
				return StatusCmd("Contact deleted")
			}
		}
	case m.keys.IsAction(msg, actionDismiss, scopeContactsAlert):
		t.send(contacts.Alert{Presentation: presentation.Dismiss[contacts.AlertAction]()})
	}
	return nil
}

func (t *ContactsTab) View(m *Model, width, height int) string {
	s := t.store.State()
	base := t.renderList(s, width)
	switch {
	case s.Alert != nil:
		return renderModal(base, renderAlert(m, s.Alert), alertBorderStyle, width, height)
	case s.AddContact != nil:
		return renderModal(base, t.renderSheet(s), modalBorderStyle, width, height)
	}
	return base
}

func (t *ContactsTab) renderList(s contacts.State, width int) string {
	var b strings.Builder
	b.WriteString(sectionTitleStyle.Render(fmt.Sprintf("Contacts (%d)", len(s.Contacts))))
	b.WriteString("\n\n")
	if len(s.Contacts) == 0 {
		b.WriteString(mutedStyle.Render("No contacts. Press a to add one."))
		return b.String()
	}
	cursor := clampCursor(t.cursor, len(s.Contacts))
	for i, c := range s.Contacts {
		name := c.Name
		if name == "" {
			name = mutedStyle.Render("(no name)")
		}
		line := "  " + name
		if i == cursor {
			line = selectedRowStyle.Render(padRightANSI(cursorStyle.Render("▶ ")+name, max(1, width-2)))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (t *ContactsTab) renderSheet(s contacts.State) string {
	lines := []string{
		sectionTitleStyle.Render("New contact"),
		"",
		t.input.View(),
	}
	if similar := contact.SimilarNames(s.Contacts, s.AddContact.Contact.Name, t.threshold, s.AddContact.Contact.ID); len(similar) > 0 {
		names := make([]string, len(similar))
		for i, c := range similar {
			names[i] = c.Name
		}
		lines = append(lines, "", warnStyle.Render("Similar: "+strings.Join(names, ", ")))
	}
	lines = append(lines, "", mutedStyle.Render("enter save  esc cancel"))
	return strings.Join(lines, "\n")
}

func renderAlert(m *Model, a *alert.State[contacts.AlertAction]) string {
	lines := []string{sectionTitleStyle.Render(a.Title)}
	if a.Message != "" {
		lines = append(lines, "", a.Message)
	}
	hints := make([]string, 0, 2)
	for _, b := range a.ResolvedButtons() {
		action := actionDismiss
		label := mutedStyle.Render(b.Label)
		if b.Role == alert.RoleDestructive {
			action = actionConfirm
			label = destructiveStyle.Render(b.Label)
		}
		hints = append(hints, "["+bindingKey(m.keys, action, scopeContactsAlert)+"] "+label)
	}
	lines = append(lines, "", strings.Join(hints, "   "))
	return strings.Join(lines, "\n")
}

func bindingKey(r *KeyRegistry, action, scope string) string {
	for _, b := range r.BindingsForScope(scope) {
		if b.Action == action && len(b.Keys) > 0 {
			return b.Keys[0]
		}
	}
	return "?"
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	return min(cursor, n-1)
}
