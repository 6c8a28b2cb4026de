package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	scopeContacts      = "contacts"
	scopeContactsSheet = "contacts:sheet"
	scopeContactsAlert = "contacts:alert"
	scopeProfile       = "profile"
	scopeFruits        = "fruits"
	scopeFruitsFilter  = "fruits:filter"
)

const (
	actionQuit      = "quit"
	actionNextTab   = "next-tab"
	actionPrevTab   = "prev-tab"
	actionUp        = "up"
	actionDown      = "down"
	actionAdd       = "add"
	actionDelete    = "delete"
	actionSave      = "save"
	actionCancel    = "cancel"
	actionConfirm   = "confirm"
	actionDismiss   = "dismiss"
	actionNewName   = "new-name"
	actionSameName  = "same-name"
	actionNoChange  = "no-change"
	actionMock      = "mock"
	actionFilter    = "filter"
	actionIncrement = "increment"
	actionDone      = "done"
)

// KeyBinding maps keys to a named action within a set of scopes. An empty
// Scopes list or "*" matches every scope.
type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

func (r *KeyRegistry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	for _, b := range r.bindings {
		if b.Action != action || !scopeMatch(scope, b.Scopes) {
			continue
		}
		if key.Matches(msg, b.binding()) {
			return true
		}
	}
	return false
}

func (b KeyBinding) binding() key.Binding {
	help := ""
	if len(b.Keys) > 0 {
		help = b.Keys[0]
	}
	return key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(help, b.Description))
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}

var browseScopes = []string{scopeContacts, scopeProfile, scopeFruits}

func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"tab"}, Action: actionNextTab, Description: "next tab", Scopes: browseScopes},
		{Keys: []string{"shift+tab"}, Action: actionPrevTab, Description: "prev tab", Scopes: browseScopes},
		{Keys: []string{"q"}, Action: actionQuit, Description: "quit", Scopes: browseScopes},

		{Keys: []string{"up", "k"}, Action: actionUp, Description: "up", Scopes: []string{scopeContacts, scopeFruits}},
		{Keys: []string{"down", "j"}, Action: actionDown, Description: "down", Scopes: []string{scopeContacts, scopeFruits}},
		{Keys: []string{"a"}, Action: actionAdd, Description: "add", Scopes: []string{scopeContacts}},
		{Keys: []string{"d"}, Action: actionDelete, Description: "delete", Scopes: []string{scopeContacts}},

		{Keys: []string{"enter"}, Action: actionSave, Description: "save", Scopes: []string{scopeContactsSheet}},
		{Keys: []string{"esc"}, Action: actionCancel, Description: "cancel", Scopes: []string{scopeContactsSheet}},

		{Keys: []string{"y", "enter"}, Action: actionConfirm, Description: "delete", Scopes: []string{scopeContactsAlert}},
		{Keys: []string{"n", "esc"}, Action: actionDismiss, Description: "cancel", Scopes: []string{scopeContactsAlert}},

		{Keys: []string{"n"}, Action: actionNewName, Description: "new name", Scopes: []string{scopeProfile}},
		{Keys: []string{"s"}, Action: actionSameName, Description: "same name", Scopes: []string{scopeProfile}},
		{Keys: []string{"x"}, Action: actionNoChange, Description: "no change", Scopes: []string{scopeProfile}},
		{Keys: []string{"m"}, Action: actionMock, Description: "mock", Scopes: []string{scopeProfile}},

		{Keys: []string{"/"}, Action: actionFilter, Description: "filter", Scopes: []string{scopeFruits}},
		{Keys: []string{"+", "enter"}, Action: actionIncrement, Description: "count", Scopes: []string{scopeFruits}},
		{Keys: []string{"enter", "esc"}, Action: actionDone, Description: "done", Scopes: []string{scopeFruitsFilter}},
	}
}
