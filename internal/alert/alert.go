// Package alert holds the data of a yes/no prompt. An alert has no logic of
// its own: the owner installs it, the view renders it, and whichever button
// the user picks is sent back to the owner as a presented action.
package alert

import "slices"

// Role tells the view how to present a button.
type Role int

const (
	RoleDefault Role = iota
	RoleCancel
	RoleDestructive
)

// Button is one choice. A button without an action only dismisses.
type Button[A comparable] struct {
	Label  string
	Role   Role
	Action *A
}

// State is the prompt content.
type State[A comparable] struct {
	Title   string
	Message string
	Buttons []Button[A]
}

// New builds a prompt.
func New[A comparable](title string, buttons ...Button[A]) *State[A] {
	return &State[A]{Title: title, Buttons: buttons}
}

// Destructive builds a button for an irreversible action.
func Destructive[A comparable](label string, action A) Button[A] {
	return Button[A]{Label: label, Role: RoleDestructive, Action: &action}
}

// Cancel builds a button that only dismisses.
func Cancel[A comparable](label string) Button[A] {
	return Button[A]{Label: label, Role: RoleCancel}
}

// ResolvedButtons returns the buttons to show. A prompt that declares no
// cancel button gets one appended so it can always be dismissed.
func (s State[A]) ResolvedButtons() []Button[A] {
	out := slices.Clone(s.Buttons)
	for _, b := range out {
		if b.Role == RoleCancel {
			return out
		}
	}
	return append(out, Cancel[A]("Cancel"))
}

// Actions lists the actions carried by the buttons, in order.
func (s State[A]) Actions() []A {
	var out []A
	for _, b := range s.Buttons {
		if b.Action != nil {
			out = append(out, *b.Action)
		}
	}
	return out
}

// Equal compares content and button actions by value.
func (s *State[A]) Equal(o *State[A]) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Title != o.Title || s.Message != o.Message || len(s.Buttons) != len(o.Buttons) {
		return false
	}
	for i := range s.Buttons {
		a, b := s.Buttons[i], o.Buttons[i]
		if a.Label != b.Label || a.Role != b.Role {
			return false
		}
		if (a.Action == nil) != (b.Action == nil) {
			return false
		}
		if a.Action != nil && *a.Action != *b.Action {
			return false
		}
	}
	return true
}

// Clone deep-copies the prompt.
func (s *State[A]) Clone() *State[A] {
	if s == nil {
		return nil
	}
	out := &State[A]{Title: s.Title, Message: s.Message, Buttons: make([]Button[A], len(s.Buttons))}
	for i, b := range s.Buttons {
		out.Buttons[i] = b
		if b.Action != nil {
			action := *b.Action
			out.Buttons[i].Action = &action
		}
	}
	return out
}
