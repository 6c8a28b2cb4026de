// Package fruits is a filterable counter list. The filtered view is computed
// from state on read and is never stored.
package fruits

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/jask/contacts/internal/contact"
	"github.com/jask/contacts/internal/store"
)

// DefaultNames seeds a new list.
var DefaultNames = []string{
	"りんご",
	"バナナ",
	"オレンジ",
	"ぶどう",
	"いちご",
	"メロン",
	"スイカ",
	"パイナップル",
}

type Item struct {
	ID    uuid.UUID
	Name  string
	Count int
}

type State struct {
	Items      []Item
	SelectedID *uuid.UUID
	FilterText string
}

// NewState seeds one zero-count item per name.
func NewState(names []string, newID contact.IDGenerator) State {
	if newID == nil {
		newID = contact.RandomIDs()
	}
	items := make([]Item, 0, len(names))
	for _, n := range names {
		items = append(items, Item{ID: newID(), Name: n})
	}
	return State{Items: items}
}

// FilteredItems returns the items whose name contains FilterText, in order.
// An empty filter returns every item.
func (s State) FilteredItems() []Item {
	return Filter(s.Items, s.FilterText)
}

// Filter keeps items whose name contains text after NFC normalization.
func Filter(items []Item, text string) []Item {
	if text == "" {
		return slices.Clone(items)
	}
	needle := norm.NFC.String(text)
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if strings.Contains(norm.NFC.String(it.Name), needle) {
			out = append(out, it)
		}
	}
	return out
}

func (s State) Equal(o State) bool {
	if s.FilterText != o.FilterText || !slices.Equal(s.Items, o.Items) {
		return false
	}
	if (s.SelectedID == nil) != (o.SelectedID == nil) {
		return false
	}
	return s.SelectedID == nil || *s.SelectedID == *o.SelectedID
}

func (s State) Clone() State {
	out := State{Items: slices.Clone(s.Items), FilterText: s.FilterText}
	if s.SelectedID != nil {
		id := *s.SelectedID
		out.SelectedID = &id
	}
	return out
}

type Action interface{ isAction() }

type (
	IncrementItem struct{ ID uuid.UUID }
	UpdateFilter  struct{ Text string }
	Select        struct{ ID *uuid.UUID }
)

func (IncrementItem) isAction() {}
func (UpdateFilter) isAction()  {}
func (Select) isAction()        {}

type Feature struct{}

func (Feature) Reduce(state *State, action Action) store.Effect[Action] {
	switch a := action.(type) {
	case IncrementItem:
		if i := slices.IndexFunc(state.Items, func(it Item) bool { return it.ID == a.ID }); i >= 0 {
			state.Items[i].Count++
		}
	case UpdateFilter:
		state.FilterText = a.Text
	case Select:
		state.SelectedID = a.ID
	}
	return store.None[Action]()
}

func NewStore(initial State, opts ...store.Option[State, Action]) *store.Store[State, Action] {
	base := []store.Option[State, Action]{
		store.WithEquality[State, Action](State.Equal),
		store.WithClone[State, Action](State.Clone),
		store.WithName[State, Action]("fruits"),
	}
	return store.New(initial, store.Reducer[State, Action](Feature{}), append(base, opts...)...)
}
