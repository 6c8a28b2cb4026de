package addcontact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/contacts/internal/contact"
	"github.com/jask/contacts/internal/presentation"
)

// recorder runs effects outside a store and logs what they did in order.
type recorder struct {
	events []string
	sent   []Action
}

func (r *recorder) ctx() context.Context {
	return presentation.WithDismiss(context.Background(), func(context.Context) {
		r.events = append(r.events, "dismiss")
	})
}

func (r *recorder) send(_ context.Context, a Action) {
	r.events = append(r.events, "send")
	r.sent = append(r.sent, a)
}

func newState() State {
	return State{Contact: contact.Contact{ID: contact.IncrementingIDs()(), Name: ""}}
}

func TestSetNameReplacesName(t *testing.T) {
	s := newState()
	effect := Feature{}.Reduce(&s, SetName{Name: "Blob"})
	require.True(t, effect.IsNone())
	require.Equal(t, "Blob", s.Contact.Name)

	Feature{}.Reduce(&s, SetName{Name: ""})
	require.Equal(t, "", s.Contact.Name)
}

func TestSaveNotifiesThenDismisses(t *testing.T) {
	s := newState()
	Feature{}.Reduce(&s, SetName{Name: "C"})
	effect := Feature{}.Reduce(&s, SaveButtonTapped{})

	r := &recorder{}
	effect.Execute(r.ctx(), r.send)

	require.Equal(t, []string{"send", "dismiss"}, r.events)
	require.Equal(t, []Action{Delegate{Event: SaveContact{Contact: s.Contact}}}, r.sent)
}

func TestSaveCapturesContactAtReduceTime(t *testing.T) {
	s := newState()
	Feature{}.Reduce(&s, SetName{Name: "X"})
	effect := Feature{}.Reduce(&s, SaveButtonTapped{})

	// the working copy moves on before the effect gets to run
	Feature{}.Reduce(&s, SetName{Name: "Y"})

	r := &recorder{}
	effect.Execute(r.ctx(), r.send)

	require.Len(t, r.sent, 1)
	saved := r.sent[0].(Delegate).Event.(SaveContact).Contact
	require.Equal(t, "X", saved.Name)
	require.Equal(t, s.Contact.ID, saved.ID)
}

func TestCancelOnlyDismisses(t *testing.T) {
	s := newState()
	Feature{}.Reduce(&s, SetName{Name: "draft"})
	effect := Feature{}.Reduce(&s, CancelButtonTapped{})

	r := &recorder{}
	effect.Execute(r.ctx(), r.send)

	require.Equal(t, []string{"dismiss"}, r.events)
	require.Empty(t, r.sent)
}

func TestDelegateIsIgnored(t *testing.T) {
	s := newState()
	before := s
	effect := Feature{}.Reduce(&s, Delegate{Event: SaveContact{Contact: contact.Contact{Name: "other"}}})
	require.True(t, effect.IsNone())
	require.Equal(t, before, s)
}

func TestCloneIsIndependent(t *testing.T) {
	s := &State{Contact: contact.Contact{Name: "A"}}
	c := s.Clone()
	c.Contact.Name = "B"
	require.Equal(t, "A", s.Contact.Name)
	require.Nil(t, (*State)(nil).Clone())
}
