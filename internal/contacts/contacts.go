// Package contacts owns the contacts list and mediates every flow that changes
// it: adding through the add-contact sheet and deleting through a
// confirmation prompt.
package contacts

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/jask/contacts/internal/addcontact"
	"github.com/jask/contacts/internal/alert"
	"github.com/jask/contacts/internal/contact"
	"github.com/jask/contacts/internal/presentation"
	"github.com/jask/contacts/internal/store"
)

// State is the list plus its two optional children. AddContact is present
// while the add sheet is shown; Alert while a delete awaits confirmation.
type State struct {
	Contacts   []contact.Contact
	AddContact *addcontact.State
	Alert      *alert.State[AlertAction]
}

// Action is the closed set of list actions.
type Action interface{ isAction() }

type (
	AddButtonTapped    struct{}
	DeleteButtonTapped struct{ ID uuid.UUID }
	// AddContact routes actions to and from the add sheet.
	AddContact struct {
		Presentation presentation.Action[addcontact.Action]
	}
	// Alert routes the confirmation prompt's answer.
	Alert struct {
		Presentation presentation.Action[AlertAction]
	}
)

func (AddButtonTapped) isAction()    {}
func (DeleteButtonTapped) isAction() {}
func (AddContact) isAction()         {}
func (Alert) isAction()              {}

// AlertAction is the closed set of prompt answers.
type AlertAction interface{ isAlertAction() }

// ConfirmDelete is the destructive answer to the delete prompt.
type ConfirmDelete struct{ ID uuid.UUID }

func (ConfirmDelete) isAlertAction() {}

// Feature is the list reducer. NewID mints identities for new contacts; only
// this feature creates contact ids.
type Feature struct {
	NewID  contact.IDGenerator
	Logger *slog.Logger
}

// New returns the feature with random ids.
func New() Feature {
	return Feature{NewID: contact.RandomIDs()}
}

// Reducer wires the list reducer with its sheet and prompt children.
func (f Feature) Reducer() store.Reducer[State, Action] {
	withSheet := presentation.IfLet[State, Action, addcontact.State, addcontact.Action](
		store.ReducerFunc[State, Action](f.reduce),
		func(s *State) **addcontact.State { return &s.AddContact },
		func(a Action) (presentation.Action[addcontact.Action], bool) {
			ac, ok := a.(AddContact)
			return ac.Presentation, ok
		},
		func(pa presentation.Action[addcontact.Action]) Action { return AddContact{Presentation: pa} },
		addcontact.Feature{},
		presentation.WithLogger(f.Logger),
	)
	return presentation.IfLet[State, Action, alert.State[AlertAction], AlertAction](
		withSheet,
		func(s *State) **alert.State[AlertAction] { return &s.Alert },
		func(a Action) (presentation.Action[AlertAction], bool) {
			al, ok := a.(Alert)
			return al.Presentation, ok
		},
		func(pa presentation.Action[AlertAction]) Action { return Alert{Presentation: pa} },
		nil,
		presentation.WithLogger(f.Logger),
	)
}

func (f Feature) reduce(state *State, action Action) store.Effect[Action] {
	switch a := action.(type) {
	case AddButtonTapped:
		state.AddContact = &addcontact.State{
			Contact: contact.Contact{ID: f.newID(), Name: ""},
		}
		return store.None[Action]()

	case AddContact:
		child, ok := a.Presentation.Presented()
		if !ok {
			return store.None[Action]()
		}
		d, ok := child.(addcontact.Delegate)
		if !ok {
			return store.None[Action]()
		}
		switch ev := d.Event.(type) {
		case addcontact.SaveContact:
			// Duplicate ids are not checked here.
			state.Contacts = append(state.Contacts, ev.Contact)
			state.AddContact = nil
		}
		return store.None[Action]()

	case Alert:
		answer, ok := a.Presentation.Presented()
		if !ok {
			return store.None[Action]()
		}
		switch ans := answer.(type) {
		case ConfirmDelete:
			if i := contact.IndexOf(state.Contacts, ans.ID); i >= 0 {
				state.Contacts = slices.Delete(state.Contacts, i, i+1)
			}
		}
		return store.None[Action]()

	case DeleteButtonTapped:
		state.Alert = alert.New[AlertAction]("Are you sure?",
			alert.Destructive[AlertAction]("Delete", ConfirmDelete{ID: a.ID}),
		)
		if i := contact.IndexOf(state.Contacts, a.ID); i >= 0 && state.Contacts[i].Name != "" {
			state.Alert.Message = fmt.Sprintf("%s will be removed.", state.Contacts[i].Name)
		}
		return store.None[Action]()
	}
	return store.None[Action]()
}

func (f Feature) newID() uuid.UUID {
	if f.NewID == nil {
		return uuid.New()
	}
	return f.NewID()
}

// Seed builds contacts for names with ids minted by this feature.
func (f Feature) Seed(names []string) []contact.Contact {
	out := make([]contact.Contact, 0, len(names))
	for _, name := range names {
		out = append(out, contact.Contact{ID: f.newID(), Name: name})
	}
	return out
}

// PendingDelete returns the contact id the open prompt would delete.
func (s State) PendingDelete() (uuid.UUID, bool) {
	if s.Alert == nil {
		return uuid.Nil, false
	}
	for _, a := range s.Alert.Actions() {
		if cd, ok := a.(ConfirmDelete); ok {
			return cd.ID, true
		}
	}
	return uuid.Nil, false
}

// Equal compares states structurally.
func (s State) Equal(o State) bool {
	if !slices.Equal(s.Contacts, o.Contacts) {
		return false
	}
	if (s.AddContact == nil) != (o.AddContact == nil) {
		return false
	}
	if s.AddContact != nil && *s.AddContact != *o.AddContact {
		return false
	}
	return s.Alert.Equal(o.Alert)
}

// Clone deep-copies the state.
func (s State) Clone() State {
	return State{
		Contacts:   slices.Clone(s.Contacts),
		AddContact: s.AddContact.Clone(),
		Alert:      s.Alert.Clone(),
	}
}

// NewStore builds a store for the feature seeded with contacts.
func NewStore(f Feature, seed []contact.Contact, opts ...store.Option[State, Action]) *store.Store[State, Action] {
	base := []store.Option[State, Action]{
		store.WithEquality[State, Action](State.Equal),
		store.WithClone[State, Action](State.Clone),
		store.WithName[State, Action]("contacts"),
	}
	return store.New(State{Contacts: slices.Clone(seed)}, f.Reducer(), append(base, opts...)...)
}
