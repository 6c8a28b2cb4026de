// Package addcontact is the add-contact sheet: it edits one contact in
// isolation from the contacts list. The list is only changed when the sheet
// reports a save through its delegate action; cancelling leaves no trace.
package addcontact

import (
	"context"

	"github.com/jask/contacts/internal/contact"
	"github.com/jask/contacts/internal/presentation"
	"github.com/jask/contacts/internal/store"
)

// State is the working copy being edited.
type State struct {
	Contact contact.Contact
}

// Action is the closed set of sheet actions.
type Action interface{ isAction() }

type (
	CancelButtonTapped struct{}
	SaveButtonTapped   struct{}
	SetName            struct{ Name string }
	// Delegate carries events for the owner. The sheet ignores them.
	Delegate struct{ Event DelegateEvent }
)

func (CancelButtonTapped) isAction() {}
func (SaveButtonTapped) isAction()   {}
func (SetName) isAction()            {}
func (Delegate) isAction()           {}

// DelegateEvent is the closed set of events the owner reacts to.
type DelegateEvent interface{ isDelegateEvent() }

// SaveContact reports the contact to commit.
type SaveContact struct{ Contact contact.Contact }

func (SaveContact) isDelegateEvent() {}

// Feature is the sheet reducer.
type Feature struct{}

func (Feature) Reduce(state *State, action Action) store.Effect[Action] {
	switch a := action.(type) {
	case CancelButtonTapped:
		return store.Run(func(ctx context.Context, _ store.Send[Action]) {
			presentation.RequestDismiss(ctx)
		})

	case Delegate:
		return store.None[Action]()

	case SaveButtonTapped:
		// Emit captures the contact now: the owner receives what the user saw
		// when saving, not whatever the state holds by the time the effect runs.
		return store.Concatenate(
			store.Emit[Action](Delegate{Event: SaveContact{Contact: state.Contact}}),
			store.Run(func(ctx context.Context, _ store.Send[Action]) {
				presentation.RequestDismiss(ctx)
			}),
		)

	case SetName:
		state.Contact.Name = a.Name
		return store.None[Action]()
	}
	return store.None[Action]()
}

// Clone copies the state. Contact holds no references, so a value copy is deep.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
