package contacts

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jask/contacts/internal/addcontact"
	"github.com/jask/contacts/internal/contact"
	"github.com/jask/contacts/internal/presentation"
	"github.com/jask/contacts/internal/store"
)

func sheet(a addcontact.Action) Action {
	return AddContact{Presentation: presentation.Presented(a)}
}

func answer(a AlertAction) Action {
	return Alert{Presentation: presentation.Presented(a)}
}

type fixture struct {
	feature Feature
	a, b    contact.Contact
}

func newFixture() fixture {
	f := Feature{NewID: contact.IncrementingIDs()}
	seed := f.Seed([]string{"A", "B"})
	return fixture{feature: f, a: seed[0], b: seed[1]}
}

// actionLog records every action a store reduces, in order.
type actionLog struct {
	mu      sync.Mutex
	actions []Action
}

func (l *actionLog) Reduce(_ *State, action Action) store.Effect[Action] {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.actions = append(l.actions, action)
	return store.None[Action]()
}

func (l *actionLog) list() []Action {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Action(nil), l.actions...)
}

// logged records each action before handing it to next.
func logged(log *actionLog, next store.Reducer[State, Action]) store.Reducer[State, Action] {
	return store.ReducerFunc[State, Action](func(state *State, action Action) store.Effect[Action] {
		log.Reduce(state, action)
		return next.Reduce(state, action)
	})
}

func newTestStore(t *testing.T, fx fixture) (*store.Store[State, Action], *actionLog) {
	t.Helper()
	log := &actionLog{}
	s := store.New(
		State{Contacts: []contact.Contact{fx.a, fx.b}},
		logged(log, fx.feature.Reducer()),
		store.WithEquality[State, Action](State.Equal),
		store.WithClone[State, Action](State.Clone),
	)
	t.Cleanup(s.Close)
	return s, log
}

func settle(t *testing.T, s *store.Store[State, Action]) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Settle(ctx))
}

func TestSaveAppendsInOrder(t *testing.T) {
	fx := newFixture()
	s, log := newTestStore(t, fx)
	ctx := context.Background()

	s.Send(ctx, AddButtonTapped{})
	draft := s.State().AddContact
	require.NotNil(t, draft)
	require.Equal(t, "", draft.Contact.Name)

	s.Send(ctx, sheet(addcontact.SetName{Name: "C"}))
	s.Send(ctx, sheet(addcontact.SaveButtonTapped{}))
	settle(t, s)

	got := s.State()
	c := contact.Contact{ID: draft.Contact.ID, Name: "C"}
	require.Equal(t, []contact.Contact{fx.a, fx.b, c}, got.Contacts)
	require.Nil(t, got.AddContact)

	actions := log.list()
	require.Len(t, actions, 5)
	require.Equal(t, []Action{
		AddButtonTapped{},
		sheet(addcontact.SetName{Name: "C"}),
		sheet(addcontact.SaveButtonTapped{}),
		sheet(addcontact.Delegate{Event: addcontact.SaveContact{Contact: c}}),
	}, actions[:4])
	last, ok := actions[4].(AddContact)
	require.True(t, ok)
	require.True(t, last.Presentation.IsDismiss())
}

func TestCancelLeavesContactsUnchanged(t *testing.T) {
	fx := newFixture()
	s, _ := newTestStore(t, fx)
	ctx := context.Background()

	s.Send(ctx, AddButtonTapped{})
	s.Send(ctx, sheet(addcontact.SetName{Name: "never saved"}))
	s.Send(ctx, sheet(addcontact.CancelButtonTapped{}))
	settle(t, s)

	got := s.State()
	require.Equal(t, []contact.Contact{fx.a, fx.b}, got.Contacts)
	require.Nil(t, got.AddContact)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	fx := newFixture()
	r := fx.feature.Reducer()
	state := State{Contacts: []contact.Contact{fx.a, fx.b}}

	effect := r.Reduce(&state, DeleteButtonTapped{ID: fx.b.ID})
	require.True(t, effect.IsNone())
	require.Equal(t, []contact.Contact{fx.a, fx.b}, state.Contacts)
	id, ok := state.PendingDelete()
	require.True(t, ok)
	require.Equal(t, fx.b.ID, id)
	require.Equal(t, "Are you sure?", state.Alert.Title)
	require.Equal(t, "B will be removed.", state.Alert.Message)

	r.Reduce(&state, answer(ConfirmDelete{ID: fx.b.ID}))
	require.Equal(t, []contact.Contact{fx.a}, state.Contacts)
	require.Nil(t, state.Alert)
	_, ok = state.PendingDelete()
	require.False(t, ok)
}

func TestConfirmDeleteOfUnknownIDIsNoop(t *testing.T) {
	fx := newFixture()
	r := fx.feature.Reducer()
	state := State{Contacts: []contact.Contact{fx.a}}

	r.Reduce(&state, answer(ConfirmDelete{ID: uuid.New()}))
	require.Equal(t, []contact.Contact{fx.a}, state.Contacts)
	require.Nil(t, state.Alert)
}

func TestDismissConfirmationKeepsContacts(t *testing.T) {
	fx := newFixture()
	r := fx.feature.Reducer()
	state := State{Contacts: []contact.Contact{fx.a, fx.b}}

	r.Reduce(&state, DeleteButtonTapped{ID: fx.a.ID})
	require.NotNil(t, state.Alert)
	r.Reduce(&state, Alert{Presentation: presentation.Dismiss[AlertAction]()})
	require.Nil(t, state.Alert)
	require.Equal(t, []contact.Contact{fx.a, fx.b}, state.Contacts)
}

func TestStartAddReplacesOpenSheet(t *testing.T) {
	fx := newFixture()
	r := fx.feature.Reducer()
	state := State{}

	r.Reduce(&state, AddButtonTapped{})
	r.Reduce(&state, sheet(addcontact.SetName{Name: "draft"}))
	first := state.AddContact.Contact.ID

	r.Reduce(&state, AddButtonTapped{})
	require.NotEqual(t, first, state.AddContact.Contact.ID)
	require.Equal(t, "", state.AddContact.Contact.Name)
}

func TestSaveDoesNotDeduplicate(t *testing.T) {
	fx := newFixture()
	r := fx.feature.Reducer()
	state := State{Contacts: []contact.Contact{fx.a}}

	r.Reduce(&state, AddButtonTapped{})
	r.Reduce(&state, sheet(addcontact.Delegate{Event: addcontact.SaveContact{Contact: fx.a}}))
	require.Equal(t, []contact.Contact{fx.a, fx.a}, state.Contacts)

	// the second delete removes only the first match
	r.Reduce(&state, answer(ConfirmDelete{ID: fx.a.ID}))
	require.Equal(t, []contact.Contact{fx.a}, state.Contacts)
}

func TestSheetActionWithoutSheetIsIgnored(t *testing.T) {
	fx := newFixture()
	r := fx.feature.Reducer()
	state := State{Contacts: []contact.Contact{fx.a}}

	effect := r.Reduce(&state, sheet(addcontact.SetName{Name: "ghost"}))
	require.True(t, effect.IsNone())
	require.Nil(t, state.AddContact)
	require.Equal(t, []contact.Contact{fx.a}, state.Contacts)
}

func TestEqualAndClone(t *testing.T) {
	fx := newFixture()
	r := fx.feature.Reducer()
	state := State{Contacts: []contact.Contact{fx.a, fx.b}}
	r.Reduce(&state, AddButtonTapped{})
	r.Reduce(&state, DeleteButtonTapped{ID: fx.a.ID})

	cp := state.Clone()
	require.True(t, state.Equal(cp))

	cp.Contacts[0].Name = "changed"
	require.False(t, state.Equal(cp))
	require.Equal(t, "A", state.Contacts[0].Name)

	cp = state.Clone()
	cp.AddContact.Contact.Name = "draft"
	require.False(t, state.Equal(cp))
}

func TestSeedMintsDistinctIDs(t *testing.T) {
	f := Feature{NewID: contact.IncrementingIDs()}
	seed := f.Seed([]string{"Blob", "Blob Jr", "Blob Sr"})
	require.Len(t, seed, 3)
	require.NotEqual(t, seed[0].ID, seed[1].ID)
	require.NotEqual(t, seed[1].ID, seed[2].ID)
	require.Equal(t, "Blob Sr", seed[2].Name)
}

func TestLateDismissLeavesNewSheetOpen(t *testing.T) {
	fx := newFixture()
	r := fx.feature.Reducer()
	state := State{}

	r.Reduce(&state, AddButtonTapped{})
	r.Reduce(&state, sheet(addcontact.SetName{Name: "C"}))
	effect := r.Reduce(&state, sheet(addcontact.SaveButtonTapped{}))

	// The user opens a new sheet between the save landing and the saved
	// sheet's dismissal.
	var reopened uuid.UUID
	effect.Execute(context.Background(), func(_ context.Context, a Action) {
		r.Reduce(&state, a)
		if ac, ok := a.(AddContact); ok && !ac.Presentation.IsDismiss() {
			r.Reduce(&state, AddButtonTapped{})
			reopened = state.AddContact.Contact.ID
		}
	})

	require.Len(t, state.Contacts, 1)
	require.Equal(t, "C", state.Contacts[0].Name)
	require.NotNil(t, state.AddContact, "dismissal of the saved sheet closed the new one")
	require.Equal(t, reopened, state.AddContact.Contact.ID)
}

func TestOwnerDismissClearsAnySheet(t *testing.T) {
	fx := newFixture()
	r := fx.feature.Reducer()
	state := State{}

	r.Reduce(&state, AddButtonTapped{})
	r.Reduce(&state, AddContact{Presentation: presentation.Dismiss[addcontact.Action]()})
	require.Nil(t, state.AddContact)
}

func TestAbsentSheetWarningUsesFeatureLogger(t *testing.T) {
	var buf bytes.Buffer
	f := Feature{NewID: contact.IncrementingIDs(), Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	state := State{}

	f.Reducer().Reduce(&state, sheet(addcontact.SetName{Name: "ghost"}))
	require.Contains(t, buf.String(), "child action sent while child state is absent")
}

func TestDeletePromptWithoutNameHasNoMessage(t *testing.T) {
	fx := newFixture()
	r := fx.feature.Reducer()
	unnamed := contact.Contact{ID: uuid.New()}
	state := State{Contacts: []contact.Contact{unnamed}}

	r.Reduce(&state, DeleteButtonTapped{ID: unnamed.ID})
	require.NotNil(t, state.Alert)
	require.Empty(t, state.Alert.Message)
}
