package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/contacts/internal/fruits"
	"github.com/jask/contacts/internal/store"
)

var errNoMatch = errors.New("nothing matches the filter")

// FruitsTab is a filterable counter list.
type FruitsTab struct {
	ctx       context.Context
	store     *store.Store[fruits.State, fruits.Action]
	cursor    int
	filter    textinput.Model
	filtering bool
}

func NewFruitsTab(ctx context.Context, st *store.Store[fruits.State, fruits.Action]) *FruitsTab {
	in := textinput.New()
	in.Prompt = "/ "
	in.Placeholder = "filter"
	in.Width = 24
	in.SetValue(st.State().FilterText)
	return &FruitsTab{ctx: ctx, store: st, filter: in}
}

func (t *FruitsTab) ID() string               { return "fruits" }
func (t *FruitsTab) Title() string            { return "Fruits" }
func (t *FruitsTab) Capturing() bool          { return t.filtering }
func (t *FruitsTab) Changes() <-chan struct{} { return t.store.Changes() }

func (t *FruitsTab) Scope() string {
	if t.filtering {
		return scopeFruitsFilter
	}
	return scopeFruits
}

func (t *FruitsTab) Refresh() {
	t.cursor = clampCursor(t.cursor, len(t.store.State().FilteredItems()))
}

func (t *FruitsTab) Update(m *Model, msg tea.KeyMsg) tea.Cmd {
	keys := m.keys
	if t.filtering {
		if keys.IsAction(msg, actionDone, scopeFruitsFilter) {
			t.filtering = false
			t.filter.Blur()
			return nil
		}
		var cmd tea.Cmd
		t.filter, cmd = t.filter.Update(msg)
		if v := t.filter.Value(); v != t.store.State().FilterText {
			t.store.Send(t.ctx, fruits.UpdateFilter{Text: v})
			t.cursor = 0
			t.selectCursor()
		}
		return cmd
	}

	items := t.store.State().FilteredItems()
	switch {
	case keys.IsAction(msg, actionFilter, scopeFruits):
		t.filtering = true
		return t.filter.Focus()
	case keys.IsAction(msg, actionUp, scopeFruits):
		t.cursor = clampCursor(t.cursor-1, len(items))
		t.selectCursor()
	case keys.IsAction(msg, actionDown, scopeFruits):
		t.cursor = clampCursor(t.cursor+1, len(items))
		t.selectCursor()
	case keys.IsAction(msg, actionIncrement, scopeFruits):
		if len(items) == 0 {
			return ErrorCmd(errNoMatch)
		}
		t.store.Send(t.ctx, fruits.IncrementItem{ID: items[t.cursor].ID})
	}
	return nil
}

func (t *FruitsTab) selectCursor() {
	items := t.store.State().FilteredItems()
	if len(items) == 0 {
		t.store.Send(t.ctx, fruits.Select{})
		return
	}
	id := items[clampCursor(t.cursor, len(items))].ID
	t.store.Send(t.ctx, fruits.Select{ID: &id})
}

func (t *FruitsTab) View(m *Model, width, height int) string {
	s := t.store.State()
	items := s.FilteredItems()
	var b strings.Builder
	b.WriteString(sectionTitleStyle.Render(fmt.Sprintf("Fruits (%d/%d)", len(items), len(s.Items))))
	b.WriteString("\n")
	b.WriteString(t.filter.View())
	b.WriteString("\n\n")
	if len(items) == 0 {
		b.WriteString(mutedStyle.Render("No matches."))
		return b.String()
	}
	cursor := clampCursor(t.cursor, len(items))
	for i, it := range items {
		row := fmt.Sprintf("%s  %d", it.Name, it.Count)
		if i == cursor {
			row = selectedRowStyle.Render(padRightANSI(cursorStyle.Render("▶ ")+row, max(1, width-2)))
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
