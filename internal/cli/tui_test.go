package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/hpdgraph/pkg/graph"
	"github.com/matzehuels/hpdgraph/pkg/portfolio"
)

func testEntries(t *testing.T) []portfolio.Entry {
	t.Helper()
	b := graph.NewBuilder()
	for i, r := range []struct {
		name, addr string
		reg        uint32
	}{
		{"ALICE", "1 A ST", 1},
		{"ALICE", "1 A ST", 2},
		{"BOB", "2 B ST", 3},
		{"CAROL", "3 C ST", 4},
	} {
		if _, err := b.Add(r.name, r.addr, graph.Ref{RegistrationID: r.reg, ContactID: uint32(i)}); err != nil {
			t.Fatal(err)
		}
	}
	return portfolio.Rank(portfolio.Partition(b.Graph()), 0)
}

func press(m tea.Model, keys ...string) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func TestPortfolioListNavigation(t *testing.T) {
	entries := testEntries(t)
	m := tea.Model(NewPortfolioListModel(entries))

	m, _ = press(m, "down", "down", "down", "up")
	if got := m.(PortfolioListModel).Cursor; got != 1 {
		t.Errorf("Cursor = %d, want 1", got)
	}

	m, cmd := press(m, "enter")
	if cmd == nil {
		t.Error("enter should quit")
	}
	if got := m.(PortfolioListModel).Selected; got != entries[1].Portfolio {
		t.Errorf("Selected = %v, want %v", got, entries[1].Portfolio)
	}
}

func TestPortfolioListScroll(t *testing.T) {
	m := NewPortfolioListModel(testEntries(t))
	m.Height = 1

	next, _ := press(m, "j", "j")
	got := next.(PortfolioListModel)
	if got.Cursor != 2 || got.Offset != 2 {
		t.Errorf("Cursor, Offset = %d, %d; want 2, 2", got.Cursor, got.Offset)
	}
	if !strings.Contains(got.View(), "CAROL's portfolio") || strings.Contains(got.View(), "ALICE's portfolio") {
		t.Errorf("View() does not follow the cursor:\n%s", got.View())
	}
}

func TestPortfolioListView(t *testing.T) {
	view := NewPortfolioListModel(testEntries(t)).View()
	for _, want := range []string{"Select Portfolio", "ALICE's portfolio", "Buildings", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestPortfolioListEmpty(t *testing.T) {
	m := NewPortfolioListModel(nil)
	next, cmd := press(m, "enter")
	if cmd != nil || next.(PortfolioListModel).Selected != nil {
		t.Error("enter on an empty list should do nothing")
	}
	if !strings.Contains(m.View(), "no portfolios match") {
		t.Errorf("View() = %q", m.View())
	}
}

func TestPortfolioListQuit(t *testing.T) {
	_, cmd := press(NewPortfolioListModel(testEntries(t)), "q")
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}
