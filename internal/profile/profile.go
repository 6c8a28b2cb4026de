// Package profile is a one-field screen whose equality deliberately ignores
// part of its state, so only user-visible changes refresh the view.
package profile

import (
	"github.com/google/uuid"

	"github.com/jask/contacts/internal/store"
)

// State is the profile. Mock is scratch data that never affects rendering and
// is left out of Equal.
type State struct {
	ID       uuid.UUID
	UserName string
	Mock     string
}

// NewState returns a profile with a fresh id.
func NewState() State {
	return State{ID: uuid.New()}
}

// Equal compares ID and UserName only.
func (s State) Equal(o State) bool {
	return s.ID == o.ID && s.UserName == o.UserName
}

type Action interface{ isAction() }

type (
	UpdateName struct{ Name string }
	NoChange   struct{}
	SetMock    struct{ Value string }
)

func (UpdateName) isAction() {}
func (NoChange) isAction()   {}
func (SetMock) isAction()    {}

type Feature struct{}

func (Feature) Reduce(state *State, action Action) store.Effect[Action] {
	switch a := action.(type) {
	case UpdateName:
		state.UserName = a.Name
	case SetMock:
		state.Mock = a.Value
	case NoChange:
	}
	return store.None[Action]()
}

// NewStore builds a store that only signals changes Equal can see.
func NewStore(initial State, opts ...store.Option[State, Action]) *store.Store[State, Action] {
	base := []store.Option[State, Action]{
		store.WithEquality[State, Action](State.Equal),
		store.WithName[State, Action]("profile"),
	}
	return store.New(initial, store.Reducer[State, Action](Feature{}), append(base, opts...)...)
}
