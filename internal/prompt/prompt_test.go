package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/user/cardcourier/internal/types"
)

func TestGroupedWithFavorites(t *testing.T) {
	favorites := []types.FavoriteEntry{{Name: "Team", Value: "A"}}
	general := []types.Choice{{Name: "Ops", Value: "B"}, {Name: "Team", Value: "A"}}

	choices := Grouped(favorites, general)
	if len(choices) != 4 {
		t.Fatalf("expected 4 choices, got %d", len(choices))
	}
	if choices[0].Name != "Team" || choices[0].Value != "A" {
		t.Errorf("expected favorite first, got %+v", choices[0])
	}
	if !choices[1].Separator {
		t.Errorf("expected separator at index 1, got %+v", choices[1])
	}
	if choices[2].Value != "B" {
		t.Errorf("expected general list after separator, got %+v", choices[2])
	}
}

func TestGroupedWithoutFavorites(t *testing.T) {
	general := []types.Choice{{Name: "Ops", Value: "B"}}
	choices := Grouped(nil, general)
	if len(choices) != 1 || choices[0].Separator {
		t.Errorf("expected general list unchanged, got %+v", choices)
	}
}

func TestSelectable(t *testing.T) {
	if Selectable(nil) {
		t.Error("expected empty list to be unselectable")
	}
	if Selectable([]types.Choice{{Separator: true}}) {
		t.Error("expected separator-only list to be unselectable")
	}
	if !Selectable([]types.Choice{{Separator: true}, {Name: "x", Value: "x"}}) {
		t.Error("expected list with a real choice to be selectable")
	}
}

func press(m selectModel, key tea.KeyMsg) (selectModel, tea.Cmd) {
	next, cmd := m.Update(key)
	return next.(selectModel), cmd
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestSelectModelSkipsSeparators(t *testing.T) {
	choices := []types.Choice{
		{Name: "Team", Value: "A"},
		{Separator: true},
		{Name: "Ops", Value: "B"},
	}
	m := newSelectModel("Where?", choices)
	if m.cursor != 0 {
		t.Fatalf("expected cursor on first choice, got %d", m.cursor)
	}

	m, _ = press(m, keyDown)
	if m.cursor != 2 {
		t.Errorf("expected cursor to skip separator to 2, got %d", m.cursor)
	}

	// No wrap-around at the end of the list.
	m, _ = press(m, keyDown)
	if m.cursor != 2 {
		t.Errorf("expected cursor to stay at 2, got %d", m.cursor)
	}

	m, _ = press(m, keyUp)
	if m.cursor != 0 {
		t.Errorf("expected cursor back at 0, got %d", m.cursor)
	}
}

func TestSelectModelLeadingSeparator(t *testing.T) {
	m := newSelectModel("Pick", []types.Choice{{Separator: true}, {Name: "Ops", Value: "B"}})
	if m.cursor != 1 {
		t.Errorf("expected cursor on first selectable choice, got %d", m.cursor)
	}
}

func TestSelectModelEnter(t *testing.T) {
	m := newSelectModel("Pick", []types.Choice{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m, cmd := press(m, keyEnter)
	if !m.chosen {
		t.Fatal("expected selection to be made")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.choices[m.cursor].Value != "2" {
		t.Errorf("expected value 2, got %s", m.choices[m.cursor].Value)
	}
}

func TestSelectModelCancel(t *testing.T) {
	m := newSelectModel("Pick", []types.Choice{{Name: "a", Value: "1"}})
	m, cmd := press(m, keyEsc)
	if !m.cancelled || cmd == nil {
		t.Error("expected cancellation with quit command")
	}
}

func TestSelectModelPaging(t *testing.T) {
	var choices []types.Choice
	for i := 0; i < pageSize+5; i++ {
		choices = append(choices, types.Choice{Name: string(rune('a' + i)), Value: string(rune('a' + i))})
	}
	m := newSelectModel("Pick", choices)
	for i := 0; i < pageSize+2; i++ {
		m, _ = press(m, keyDown)
	}
	if m.cursor != pageSize+2 {
		t.Fatalf("expected cursor %d, got %d", pageSize+2, m.cursor)
	}
	if m.offset != 3 {
		t.Errorf("expected offset 3, got %d", m.offset)
	}
}
